package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/tempohq/tempo-backend-go/internal/domain/timeentry"
)

// LedgerJobs holds maintenance jobs over the punch ledger. They only
// observe and report; sessions are never closed automatically.
type LedgerJobs struct {
	entryRepo timeentry.TimeEntryRepository
}

func NewLedgerJobs(entryRepo timeentry.TimeEntryRepository) *LedgerJobs {
	return &LedgerJobs{entryRepo: entryRepo}
}

func (j *LedgerJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("report_stale_open_sessions", 6*time.Hour, j.ReportStaleOpenSessions)
}

// ReportStaleOpenSessions logs how many sessions have been open since
// before yesterday, so operators notice users who forgot to punch out.
func (j *LedgerJobs) ReportStaleOpenSessions(ctx context.Context) error {
	cutoff := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)

	count, err := j.entryRepo.CountStaleOpen(ctx, cutoff)
	if err != nil {
		return err
	}

	if count > 0 {
		slog.Warn("Stale open sessions detected", "count", count, "older_than", cutoff.Format("2006-01-02"))
	}

	return nil
}
