package infra

import (
	"fmt"
	"net/url"

	"github.com/vmware/govmomi/simulator"
	"go.uber.org/zap"
)

// SimulatorInfraManager runs a vcsim VPX inventory in process. The
// simulator serves TLS and enforces the vcsim credentials.
type SimulatorInfraManager struct {
	model  *simulator.Model
	server *simulator.Server
}

func NewSimulatorInfraManager() *SimulatorInfraManager {
	return &SimulatorInfraManager{}
}

func (s *SimulatorInfraManager) StartVcenter() (Target, error) {
	if s.server != nil {
		return s.target(), nil
	}

	model := simulator.VPX()
	if err := model.Create(); err != nil {
		return Target{}, fmt.Errorf("failed to create vcsim inventory: %w", err)
	}
	model.Service.Listen = &url.URL{User: url.UserPassword(VcsimUsername, VcsimPassword)}

	s.model = model
	s.server = model.Service.NewServer()

	zap.S().Named("e2e").Infow("vcsim started", "url", s.server.URL.String())

	return s.target(), nil
}

func (s *SimulatorInfraManager) StopVcenter() error {
	if s.server == nil {
		return nil
	}
	s.server.Close()
	s.model.Remove()
	s.server, s.model = nil, nil
	return nil
}

func (s *SimulatorInfraManager) target() Target {
	return Target{
		Host:     s.server.URL.Host,
		Username: VcsimUsername,
		Password: VcsimPassword,
	}
}
