package jobs

import (
	"time"

	"taraas/internal/service"

	"go.uber.org/zap"
)

// SettlementJob triggers the monthly commission run at 02:00 on the 1st of
// every month, targeting the previous calendar month.
type SettlementJob struct {
	settlement *service.SettlementService
	log        *zap.Logger
	stop       chan struct{}
}

func NewSettlementJob(settlement *service.SettlementService, log *zap.Logger) *SettlementJob {
	return &SettlementJob{
		settlement: settlement,
		log:        log.Named("settlement_job"),
		stop:       make(chan struct{}),
	}
}

func (j *SettlementJob) Start() {
	go j.run()
}

func (j *SettlementJob) Stop() {
	close(j.stop)
}

func (j *SettlementJob) run() {
	for {
		next := nextRun(time.Now().UTC())
		j.log.Info("next settlement run scheduled", zap.Time("at", next))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-timer.C:
			success, failures, err := j.settlement.SettlePreviousMonth()
			if err != nil {
				j.log.Error("scheduled settlement run failed", zap.Error(err))
				continue
			}
			j.log.Info("scheduled settlement run done",
				zap.Int("success", success),
				zap.Int("failures", failures),
			)
		case <-j.stop:
			timer.Stop()
			return
		}
	}
}

// nextRun returns the next 1st-of-month 02:00 UTC strictly after now.
func nextRun(now time.Time) time.Time {
	run := time.Date(now.Year(), now.Month(), 1, 2, 0, 0, 0, time.UTC)
	if !run.After(now) {
		run = run.AddDate(0, 1, 0)
	}
	return run
}
