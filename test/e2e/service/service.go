package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kubev2v/installer-driver/internal/driver"
	"github.com/kubev2v/installer-driver/internal/models"
	"github.com/kubev2v/installer-driver/internal/services"
	"github.com/kubev2v/installer-driver/internal/store"
)

// DriverSvc drives the real installer and records every run in an
// in-memory history the specs can assert on.
type DriverSvc struct {
	*services.RunService
	store *store.Store
}

// NewDriverService initializes a driver service for the installer found in
// installerDir, writing transcripts to logDir.
func NewDriverService(ctx context.Context, installerDir, logDir string, opts ...driver.Option) (*DriverSvc, error) {
	zap.S().Info("Initializing DriverService...")

	db, err := store.NewDB(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}
	st := store.NewStore(db)
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to migrate run history: %w", err)
	}

	d := driver.New(installerDir, append([]driver.Option{driver.WithLogDir(logDir)}, opts...)...)

	return &DriverSvc{
		RunService: services.NewRunService(d, nil, st.Runs()),
		store:      st,
	}, nil
}

// Runs returns the recorded runs, most recent first.
func (s *DriverSvc) Runs(ctx context.Context) ([]models.Run, error) {
	return s.store.Runs().List(ctx)
}

func (s *DriverSvc) Close() error {
	return s.store.Close()
}
