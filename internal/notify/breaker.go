package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	dErrors "trackwatch/pkg/domain-errors"
	"trackwatch/pkg/platform/circuit"
)

// How long an open circuit rejects sends before letting a probe through.
const probeInterval = 30 * time.Second

// CircuitNotifier wraps a Notifier with a circuit breaker so a dead push
// gateway fails fast instead of holding a timeout on every dispatch. While
// the circuit is open, sends are rejected immediately except for one probe
// per interval; probe successes close the circuit again. The monitor service
// already treats push failures as non-fatal, so rejected sends only surface
// as skipped notifications.
type CircuitNotifier struct {
	inner   Notifier
	breaker *circuit.Breaker
	logger  *slog.Logger

	mu        sync.Mutex
	nextProbe time.Time
}

func WithBreaker(inner Notifier, logger *slog.Logger) *CircuitNotifier {
	return &CircuitNotifier{
		inner:   inner,
		breaker: circuit.New("push", circuit.WithFailureThreshold(5), circuit.WithSuccessThreshold(2)),
		logger:  logger,
	}
}

func (c *CircuitNotifier) Send(ctx context.Context, deviceToken string, note Notification) error {
	if c.breaker.IsOpen() && !c.claimProbe() {
		return dErrors.New(dErrors.CodeUnavailable, "push gateway circuit open")
	}

	if err := c.inner.Send(ctx, deviceToken, note); err != nil {
		if _, change := c.breaker.RecordFailure(); change.Opened {
			c.logger.Warn("push gateway circuit opened", "error", err)
		}
		return err
	}

	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.Info("push gateway circuit closed")
	}
	return nil
}

// claimProbe reports whether this call may test the gateway while the
// circuit is open. At most one caller per interval gets through.
func (c *CircuitNotifier) claimProbe() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	if now.Before(c.nextProbe) {
		return false
	}
	c.nextProbe = now.Add(probeInterval)
	return true
}
