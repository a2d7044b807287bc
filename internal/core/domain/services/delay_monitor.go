package services

import (
	"time"

	"dispatch/internal/core/domain/model/order"
)

// DefaultDelayThreshold is how long an order may sit in one status before it is flagged.
const DefaultDelayThreshold = 30 * time.Minute

// DelayMonitor flags in-flight orders that have not changed status for too long.
//
// An order is delayed when it is ASSIGNED or ON_WAY and strictly more than the
// threshold has passed since its newest history entry. Orders without history
// are never delayed.
type DelayMonitor struct{}

func NewDelayMonitor() DelayMonitor {
	return DelayMonitor{}
}

// DelayedOrders filters orders, preserving input order. A non-positive threshold
// falls back to DefaultDelayThreshold.
func (m DelayMonitor) DelayedOrders(orders []*order.Order, now time.Time, threshold time.Duration) []*order.Order {
	if threshold <= 0 {
		threshold = DefaultDelayThreshold
	}

	var delayed []*order.Order
	for _, o := range orders {
		if m.IsDelayed(o, now, threshold) {
			delayed = append(delayed, o)
		}
	}
	return delayed
}

// IsDelayed applies the delay rule to a single order.
func (m DelayMonitor) IsDelayed(o *order.Order, now time.Time, threshold time.Duration) bool {
	if o == nil || !o.Status().IsMonitoredForDelay() {
		return false
	}

	last, ok := o.LastTransitionAt()
	if !ok {
		last = now
	}
	return now.Sub(last) > threshold
}
