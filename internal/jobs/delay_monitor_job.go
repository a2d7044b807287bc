package jobs

import (
	"context"
	"sync"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultDelayCheckSpec evaluates delays once a minute.
const DefaultDelayCheckSpec = "@every 1m"

type delayedOrdersReader interface {
	Handle(ctx context.Context, query queries.GetDelayedOrdersQuery) ([]*order.Order, error)
}

// DelayMonitorJob periodically evaluates the delay rule and raises a DelayAlert when
// the delayed set is non-empty and larger than at the previous tick.
type DelayMonitorJob struct {
	reader    delayedOrdersReader
	publisher ports.EventPublisher
	threshold time.Duration
	spec      string
	clock     func() time.Time
	cron      *cron.Cron
	logger    *zap.Logger

	mu        sync.Mutex
	lastCount int

	ctx    context.Context
	cancel context.CancelFunc
}

func NewDelayMonitorJob(
	reader delayedOrdersReader,
	publisher ports.EventPublisher,
	threshold time.Duration,
	spec string,
	log *zap.Logger,
) *DelayMonitorJob {
	if spec == "" {
		spec = DefaultDelayCheckSpec
	}
	return &DelayMonitorJob{
		reader:    reader,
		publisher: publisher,
		threshold: threshold,
		spec:      spec,
		clock:     func() time.Time { return time.Now().UTC() },
		cron:      cron.New(cron.WithParser(secondsParser)),
		logger:    logger.Component(log, "delay_monitor_job"),
	}
}

func (j *DelayMonitorJob) Start() error {
	j.ctx, j.cancel = context.WithCancel(context.Background())

	if _, err := j.cron.AddFunc(j.spec, func() { j.Tick(j.ctx) }); err != nil {
		j.cancel()
		return err
	}

	j.cron.Start()
	j.logger.Info("delay monitor job started", zap.String("spec", j.spec), zap.Duration("threshold", j.threshold))
	return nil
}

// Tick runs one evaluation and returns the delayed orders it found.
func (j *DelayMonitorJob) Tick(ctx context.Context) []*order.Order {
	query := queries.NewGetDelayedOrdersQuery(j.threshold)
	delayed, err := j.reader.Handle(ctx, query)
	if err != nil {
		j.logger.Error("delay check failed", zap.Error(err))
		return nil
	}

	j.mu.Lock()
	grown := len(delayed) > 0 && len(delayed) > j.lastCount
	j.lastCount = len(delayed)
	j.mu.Unlock()

	if grown {
		alert := event.NewDelayAlert(delayed, query.Threshold(), j.clock())
		j.logger.Warn("orders are delayed", zap.Int("count", len(delayed)))
		if j.publisher != nil {
			j.publisher.Publish(ctx, alert)
		}
	}

	return delayed
}

// Stop waits for a running tick to finish.
func (j *DelayMonitorJob) Stop() {
	<-j.cron.Stop().Done()
	if j.cancel != nil {
		j.cancel()
	}
	j.logger.Info("delay monitor job stopped")
}
