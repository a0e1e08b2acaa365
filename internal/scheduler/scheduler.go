// Package scheduler archives the previous month on a cron schedule.
package scheduler

import (
	"context"
	"strings"
	"time"

	"github.com/goals-wallet/backend/internal/models"
	"github.com/goals-wallet/backend/internal/types"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Off disables the scheduler when used as schedule.
const Off = "off"

// MonthlySchedule runs at 03:00 on the first day of every month.
// Archiving is manual unless ARCHIVE_SCHEDULE is set, this is the schedule to opt in with.
const MonthlySchedule = "0 3 1 * *"

// Archiver is the part of the ledger the scheduler needs.
type Archiver interface {
	ArchiveMonth(ctx context.Context, month types.Month) (models.MonthlyArchive, error)
}

type Scheduler struct {
	cron     *cron.Cron
	archiver Archiver
	now      func() time.Time
}

// New parses the schedule and registers the archive job. It returns nil when the schedule is Off.
func New(schedule string, archiver Archiver, now func() time.Time) (*Scheduler, error) {
	if strings.EqualFold(strings.TrimSpace(schedule), Off) {
		return nil, nil
	}

	if now == nil {
		now = time.Now
	}

	s := &Scheduler{
		cron:     cron.New(),
		archiver: archiver,
		now:      now,
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate reports whether the schedule is usable.
func Validate(schedule string) error {
	if strings.EqualFold(strings.TrimSpace(schedule), Off) {
		return nil
	}
	_, err := cron.ParseStandard(schedule)
	return err
}

func (s *Scheduler) run() {
	if _, err := s.ArchivePreviousMonth(context.Background()); err != nil {
		log.Error().Err(err).Msg("scheduled archive failed")
	}
}

// ArchivePreviousMonth archives the month before the current one.
func (s *Scheduler) ArchivePreviousMonth(ctx context.Context) (models.MonthlyArchive, error) {
	month := types.MonthOf(s.now()).AddDate(0, -1)
	log.Info().Str("month", month.String()).Msg("archiving month")

	return s.archiver.ArchiveMonth(ctx, month)
}

// Run starts the cron loop and blocks until ctx is done. Running jobs are waited for.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	return nil
}
