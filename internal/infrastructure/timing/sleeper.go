package timing

import (
	"context"
	"time"

	"qc-station/internal/domain/port"
)

// RealSleeper ждёт по настоящим часам и прерывается отменой контекста
type RealSleeper struct{}

func NewRealSleeper() *RealSleeper {
	return &RealSleeper{}
}

func (RealSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ port.Sleeper = (*RealSleeper)(nil)
