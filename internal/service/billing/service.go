package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dlamayo/boardinghouse/internal/domain/models"
	"github.com/dlamayo/boardinghouse/internal/repository/bedstore"
)

// ErrRentLocked indicates the monthly rent was already set; rent is immutable
// once positive.
var ErrRentLocked = errors.New("monthly rent is already set")

// ErrInvalidRent indicates a rent value that is not strictly positive.
var ErrInvalidRent = errors.New("monthly rent must be greater than zero")

// ErrInvalidAmount indicates a payment amount that is not strictly positive.
var ErrInvalidAmount = errors.New("payment amount must be greater than zero")

// ErrInvalidDate indicates a payment date that is not a calendar date.
var ErrInvalidDate = errors.New("payment date must be YYYY-MM-DD")

// Service runs the mutating billing operations against the bed store.
type Service struct {
	store  bedstore.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a billing service instance.
func NewService(store bedstore.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// SetRent sets the monthly rent exactly once. A second attempt is rejected
// without touching storage.
func (s *Service) SetRent(ctx context.Context, id string, rent float64) error {
	if rent <= 0 {
		return ErrInvalidRent
	}

	rec, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if rec.MonthlyRent > 0 {
		return ErrRentLocked
	}

	s.logger.Info("setting monthly rent", zap.String("id", id), zap.Float64("rent", rent))
	return s.store.Update(ctx, id, bedstore.BedPatch{MonthlyRent: &rent})
}

// AddPayment appends one payment to the ledger, keeping it sorted by date
// ascending. An empty date defaults to today.
func (s *Service) AddPayment(ctx context.Context, id, date string, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	now := s.now().UTC()
	if date == "" {
		date = now.Format(dateLayout)
	}
	if _, err := time.ParseInLocation(dateLayout, date, time.UTC); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	rec, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	payments := append(PaymentsOf(rec, now), models.Payment{Date: date, Amount: amount})
	SortPayments(payments)

	s.logger.Info("recording payment", zap.String("id", id), zap.String("date", date), zap.Float64("amount", amount))
	return s.store.Update(ctx, id, bedstore.BedPatch{Payments: payments})
}

func (s *Service) find(ctx context.Context, id string) (models.BedRecord, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return models.BedRecord{}, fmt.Errorf("load bed records: %w", err)
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return models.BedRecord{}, bedstore.ErrNotFound
}
