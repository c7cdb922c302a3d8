package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/UPAO-INSO/caso-agile-sub000/internal/application/dto"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/application/usecase"
	"github.com/UPAO-INSO/caso-agile-sub000/internal/domain/port"
)

const runTimeout = 10 * time.Minute

// ArrearsJob refreshes the arrears of every active loan on a cron schedule.
// Refreshing is idempotent, so an overlapping or repeated run is harmless.
type ArrearsJob struct {
	loanRepo port.LoanRepository
	refresh  *usecase.RefreshArrearsUseCase
	logger   *slog.Logger
	cron     *cron.Cron
}

// NewArrearsJob wires dependencies.
func NewArrearsJob(
	loanRepo port.LoanRepository,
	refresh *usecase.RefreshArrearsUseCase,
	logger *slog.Logger,
) *ArrearsJob {
	return &ArrearsJob{
		loanRepo: loanRepo,
		refresh:  refresh,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start registers the job under the given cron expression and starts the
// scheduler.
func (j *ArrearsJob) Start(spec string) error {
	if _, err := j.cron.AddFunc(spec, j.run); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("arrears refresh job scheduled", "cron", spec)
	return nil
}

// Stop halts the scheduler and waits for a running refresh to finish.
func (j *ArrearsJob) Stop() {
	<-j.cron.Stop().Done()
}

// Run refreshes all active loans once. Exposed for on-demand triggering.
func (j *ArrearsJob) Run(ctx context.Context) {
	now := time.Now().UTC()

	ids, err := j.loanRepo.ListActiveIDs(ctx)
	if err != nil {
		j.logger.Error("list active loans", "error", err)
		return
	}

	var refreshed, failed int
	for _, id := range ids {
		resp, err := j.refresh.Execute(ctx, dto.RefreshArrearsRequest{
			LoanID:        id,
			ReferenceDate: now,
		})
		if err != nil {
			failed++
			j.logger.Error("refresh arrears", "loan_id", id, "error", err)
			continue
		}
		refreshed += resp.Refreshed
	}

	j.logger.Info("arrears refresh complete",
		"loans", len(ids),
		"installments_refreshed", refreshed,
		"failed", failed,
	)
}

func (j *ArrearsJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	j.Run(ctx)
}
