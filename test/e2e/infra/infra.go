package infra

// InfraManager abstracts the vCenter the e2e specs run against.
// Simulator-based: starts an in-process vcsim.
// External: no-op, the vCenter is provisioned outside the suite.
type InfraManager interface {
	StartVcenter() (Target, error)
	StopVcenter() error
}

// Target holds the coordinates of the vCenter under test.
type Target struct {
	Host     string
	Username string
	Password string
}

const (
	VcsimUsername = "administrator@vsphere.local"
	VcsimPassword = "123456"
)
