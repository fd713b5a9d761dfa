package port

import (
	"context"
	"time"
)

// Sleeper блокирующая задержка
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}
