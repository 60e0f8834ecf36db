package infra

import "errors"

// ExternalInfraManager implements InfraManager for a vCenter managed
// outside the suite. Start and stop are no-ops.
type ExternalInfraManager struct {
	target Target
}

func NewExternalInfraManager(target Target) *ExternalInfraManager {
	return &ExternalInfraManager{target: target}
}

func (e *ExternalInfraManager) StartVcenter() (Target, error) {
	if e.target.Host == "" {
		return Target{}, errors.New("external vCenter host is empty")
	}
	return e.target, nil
}

func (e *ExternalInfraManager) StopVcenter() error { return nil }
