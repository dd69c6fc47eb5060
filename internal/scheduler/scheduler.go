package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/dlamayo/boardinghouse/internal/config"
	"github.com/dlamayo/boardinghouse/internal/domain/models"
	"github.com/dlamayo/boardinghouse/internal/repository/bedstore"
	"github.com/dlamayo/boardinghouse/internal/service/projection"
	"github.com/dlamayo/boardinghouse/pkg/clients/notify"
)

// Scheduler runs the periodic overdue-rent sweep. While running it holds a
// change-fed snapshot of the collection so the sweep reads the latest state
// without a round trip per run.
type Scheduler struct {
	cron     *cron.Cron
	store    bedstore.Store
	notifier notify.Client
	cfg      config.AlertsConfig
	logger   *zap.Logger

	mu          sync.Mutex
	snapshot    []models.BedRecord
	hasSnapshot bool
	unsubscribe func()
}

// NewScheduler creates a new scheduler instance. The timezone falls back to
// the host local zone when the configured name does not resolve.
func NewScheduler(cfg config.AlertsConfig, store bedstore.Store, notifier notify.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []cron.Option{}
	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		opts = append(opts, cron.WithLocation(loc))
	} else {
		logger.Warn("unknown timezone, using local", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	return &Scheduler{
		cron:     cron.New(opts...),
		store:    store,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers and starts the alert job. With no notifier configured the
// scheduler stays idle.
func (s *Scheduler) Start() {
	if s.notifier == nil {
		s.logger.Info("no alert webhook configured, scheduler idle")
		return
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	unsubscribe, err := s.store.Subscribe(s.applySnapshot)
	if err != nil {
		s.logger.Warn("change subscription unavailable, sweep will list per run", zap.Error(err))
	} else {
		s.unsubscribe = unsubscribe
	}

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.sendOverdueAlerts); err != nil {
		s.logger.Error("failed to schedule overdue alerts", zap.Error(err))
		return
	}
	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.cron.Stop()
}

func (s *Scheduler) applySnapshot(records []models.BedRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = records
	s.hasSnapshot = true
}

// records returns the change-fed snapshot when one has arrived, listing from
// the store otherwise.
func (s *Scheduler) records(ctx context.Context) ([]models.BedRecord, error) {
	s.mu.Lock()
	snapshot, ok := s.snapshot, s.hasSnapshot
	s.mu.Unlock()
	if ok {
		return snapshot, nil
	}
	return s.store.List(ctx)
}

func (s *Scheduler) sendOverdueAlerts() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	records, err := s.records(ctx)
	if err != nil {
		s.logger.Error("failed loading beds for overdue sweep", zap.Error(err))
		return
	}

	now := time.Now()
	var overdue []notify.OverdueTenant
	for _, row := range projection.TenantRows(records, false, now) {
		if row.Status != models.PaymentOverdue {
			continue
		}
		overdue = append(overdue, notify.OverdueTenant{
			TenantName:       row.TenantName,
			Room:             row.RoomNumber,
			Bed:              row.BedNumber,
			RemainingBalance: row.RemainingBalance,
			NextDueDate:      row.NextDueDate,
		})
	}

	if len(overdue) == 0 {
		s.logger.Info("overdue sweep found no overdue tenants")
		return
	}

	alert := notify.OverdueAlert{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Tenants:     overdue,
	}
	if err := s.notifier.SendOverdueAlert(ctx, alert); err != nil {
		s.logger.Error("failed sending overdue alert", zap.Error(err))
		return
	}
	s.logger.Info("overdue alert sent", zap.Int("tenants", len(overdue)))
}
