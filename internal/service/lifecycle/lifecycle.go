// Package lifecycle moves bed records between active, trashed and purged.
// Confirmation prompts for destructive transitions live at the request
// boundary, not here.
package lifecycle

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dlamayo/boardinghouse/internal/domain/models"
	"github.com/dlamayo/boardinghouse/internal/repository/bedstore"
)

// Service runs trash state transitions against the bed store.
type Service struct {
	store  bedstore.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a lifecycle service instance.
func NewService(store bedstore.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Trash soft-deletes the record. The slot becomes free for new occupancy
// while the record stays enumerable in the trash view.
func (s *Service) Trash(ctx context.Context, id string) error {
	deletedAt := s.now().UTC().Format(time.RFC3339)
	s.logger.Info("moving bed record to trash", zap.String("id", id))
	return s.store.Update(ctx, id, bedstore.BedPatch{DeletedAt: &deletedAt})
}

// Restore clears the trash marker, returning the record to active state.
func (s *Service) Restore(ctx context.Context, id string) error {
	cleared := ""
	s.logger.Info("restoring bed record from trash", zap.String("id", id))
	return s.store.Update(ctx, id, bedstore.BedPatch{DeletedAt: &cleared})
}

// Purge removes the record from storage. Irreversible.
func (s *Service) Purge(ctx context.Context, id string) error {
	s.logger.Info("permanently deleting bed record", zap.String("id", id))
	return s.store.Remove(ctx, id)
}

// Trashed filters the records sitting in the trash.
func Trashed(records []models.BedRecord) []models.BedRecord {
	var out []models.BedRecord
	for _, rec := range records {
		if rec.Deleted() {
			out = append(out, rec)
		}
	}
	return out
}
