package audit

import (
	"appointment-service/internal/app/config"
	"appointment-service/internal/app/contracts"
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/utils"
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	defaultCronSpec = "@every 5m"
	unlockTimeout   = 5 * time.Second
)

// Worker periodically reports appointments still PENDING past the configured age.
// It only reads, recovering a stuck appointment is left to operators.
type Worker struct {
	log     *zap.Logger
	cfg     config.AppPendingAudit
	locker  contracts.LockerService
	usecase contracts.AppointmentUsecase
	cron    *cron.Cron
	runCtx  context.Context
	cancel  context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg config.AppPendingAudit, lockerSvc contracts.LockerService, usecase contracts.AppointmentUsecase) *Worker {
	return &Worker{log: log, cfg: cfg, locker: lockerSvc, usecase: usecase}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.CronSpec
	if spec == "" {
		spec = defaultCronSpec
	}
	_, err := c.AddFunc(spec, func() { w.RunOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("audit.worker: failed to schedule with provided cron spec; falling back to default",
			zap.String("cron_spec", spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(defaultCronSpec, func() { w.RunOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop waits for a running audit to finish.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

// RunOnce returns the number of stale appointments found, or -1 when this
// instance is not the leader or the audit failed.
func (w *Worker) RunOnce(ctx context.Context) int {
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, utils.GenerateRequestID())
	requestID := utils.GetRequestID(ctx)

	ttl := time.Duration(w.cfg.LockTTLInSeconds) * time.Second
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	acquired, token, err := w.locker.TryLock(ctx, w.cfg.LockKey, ttl)
	if err != nil {
		w.log.Warn("audit.worker: leader lock attempt failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return -1
	}
	if !acquired {
		w.log.Info("audit.worker: leader lock not acquired; another instance is running",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return -1
	}
	defer w.releaseLock(ctx, token)

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go w.refreshLock(refreshCtx, token, ttl)

	age := time.Duration(w.cfg.AgeInMinutes) * time.Minute
	stale, err := w.usecase.FindStalePendingAppointments(ctx, age)
	if err != nil {
		w.log.Warn("audit.worker: pending lookup failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return -1
	}

	for _, appointment := range stale {
		w.log.Warn("audit.worker: appointment still pending",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingCountryCodeKey, appointment.CountryCode),
			zap.Int64(constvars.LoggingScheduleIDKey, appointment.ScheduleID),
			zap.Duration("pending_for", time.Since(appointment.CreatedAt)),
		)
	}

	w.log.Info("audit.worker: pending audit finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentCountKey, len(stale)),
		zap.Duration("age", age),
	)
	return len(stale)
}

// releaseLock outlives the run context so a run cut short by shutdown still
// frees the lock instead of waiting out its TTL.
func (w *Worker) releaseLock(ctx context.Context, token string) {
	unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), unlockTimeout)
	defer cancel()
	if err := w.locker.Unlock(unlockCtx, w.cfg.LockKey, token); err != nil {
		w.log.Warn("audit.worker: failed to release leader lock",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
}

func (w *Worker) refreshLock(ctx context.Context, token string, ttl time.Duration) {
	tick := time.NewTicker(ttl / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if err := w.locker.Refresh(ctx, w.cfg.LockKey, token, ttl); err != nil {
				w.log.Warn("audit.worker: failed to refresh leader lock TTL", zap.Error(err))
			}
		}
	}
}
