package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kubev2v/installer-driver/internal/models"
	"github.com/kubev2v/installer-driver/internal/store"
)

type HistoryFilter struct {
	Operations []models.Operation
	Outcomes   []models.Outcome
	Host       string
	Since      time.Time
	Limit      uint64
	Offset     uint64
}

func (f HistoryFilter) options() []store.ListOption {
	opts := []store.ListOption{
		store.ByOperations(f.Operations...),
		store.ByOutcomes(f.Outcomes...),
		store.ByHost(f.Host),
	}
	if !f.Since.IsZero() {
		opts = append(opts, store.Since(f.Since))
	}
	if f.Limit > 0 {
		opts = append(opts, store.WithLimit(f.Limit))
	}
	if f.Offset > 0 {
		opts = append(opts, store.WithOffset(f.Offset))
	}
	return opts
}

// HistoryService reads the recorded runs.
type HistoryService struct {
	store *store.Store
}

func NewHistoryService(s *store.Store) *HistoryService {
	return &HistoryService{store: s}
}

func (h *HistoryService) List(ctx context.Context, filter HistoryFilter) ([]models.Run, int, error) {
	runs, err := h.store.Runs().List(ctx, filter.options()...)
	if err != nil {
		return nil, 0, err
	}

	countFilter := filter
	countFilter.Limit, countFilter.Offset = 0, 0
	total, err := h.store.Runs().Count(ctx, countFilter.options()...)
	if err != nil {
		return nil, 0, err
	}

	return runs, total, nil
}

func (h *HistoryService) Get(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	return h.store.Runs().Get(ctx, id)
}

// Export writes the runs matching filter to an xlsx report at path and
// returns how many rows were written.
func (h *HistoryService) Export(ctx context.Context, filter HistoryFilter, path string) (int, error) {
	runs, _, err := h.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	if err := ExportRuns(runs, path); err != nil {
		return 0, err
	}
	return len(runs), nil
}

// Prune removes runs older than maxAge.
func (h *HistoryService) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	return h.store.Runs().Prune(ctx, time.Now().Add(-maxAge))
}
