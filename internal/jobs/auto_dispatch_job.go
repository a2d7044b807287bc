package jobs

import (
	"context"
	"errors"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultAutoDispatchSpec runs the assignment every five seconds.
const DefaultAutoDispatchSpec = "@every 5s"

type courierAssigner interface {
	Handle(ctx context.Context, cmd commands.AssignCourierCommand) (*order.Order, error)
}

// AutoDispatchJob hands the oldest PRICED order to the nearest online courier on
// every tick.
type AutoDispatchJob struct {
	handler courierAssigner
	spec    string
	cron    *cron.Cron
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewAutoDispatchJob accepts a cron spec with an optional seconds field; empty means
// DefaultAutoDispatchSpec.
func NewAutoDispatchJob(handler courierAssigner, spec string, log *zap.Logger) *AutoDispatchJob {
	if spec == "" {
		spec = DefaultAutoDispatchSpec
	}
	return &AutoDispatchJob{
		handler: handler,
		spec:    spec,
		cron:    cron.New(cron.WithParser(secondsParser)),
		logger:  logger.Component(log, "auto_dispatch_job"),
	}
}

func (j *AutoDispatchJob) Start() error {
	j.ctx, j.cancel = context.WithCancel(context.Background())

	if _, err := j.cron.AddFunc(j.spec, func() { j.Tick(j.ctx) }); err != nil {
		j.cancel()
		return err
	}

	j.cron.Start()
	j.logger.Info("auto dispatch job started", zap.String("spec", j.spec))
	return nil
}

// Tick performs one assignment. Having nothing to assign is not an error, and an
// assignment lost to a concurrent writer is retried on the next tick.
func (j *AutoDispatchJob) Tick(ctx context.Context) {
	o, err := j.handler.Handle(ctx, commands.NewAutoAssignCourierCommand())
	switch {
	case errors.Is(err, commands.ErrNoOrderFound), errors.Is(err, commands.ErrNoFreeCouriersFound):
		return
	case errors.Is(err, errs.ErrVersionIsInvalid):
		j.logger.Debug("order was changed concurrently, retrying on next tick", zap.Error(err))
		return
	case err != nil:
		j.logger.Error("auto dispatch failed", zap.Error(err))
		return
	}

	courier := o.Courier()
	j.logger.Info("order dispatched",
		zap.Stringer("orderId", o.ID()),
		zap.Stringer("courierId", courier.ID),
	)
}

// Stop waits for a running tick to finish.
func (j *AutoDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	if j.cancel != nil {
		j.cancel()
	}
	j.logger.Info("auto dispatch job stopped")
}
