package models

// Target holds the vCenter coordinates and the trust decision fed to the
// installer prompts.
type Target struct {
	Host             string
	Username         string
	Password         string
	TrustFingerprint bool
	// Fingerprint is the SHA-1 thumbprint typed in when TrustFingerprint is false.
	Fingerprint string
}

// Scenario is one driver invocation in a matrix run.
type Scenario struct {
	Name          string
	Operation     Operation
	Target        Target
	ExpectFailure bool
	Force         bool
}
