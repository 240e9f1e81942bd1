package notify

import (
	"context"
	"time"
)

// Notifier delivers scheduled local reminders. Implementations must
// silently ignore Schedule calls whose fire time is already in the past,
// and treat Cancel of unknown identifiers as a no-op.
type Notifier interface {
	Schedule(ctx context.Context, id string, fireAt time.Time, title, body string) error

	Cancel(ctx context.Context, ids []string) error
}
