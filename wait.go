package greenthreads

import (
	"context"
	"runtime"
	"strings"

	"github.com/ygrebnov/errorc"
)

// WaitStrategy selects how AwaitAll waits for the in-flight counter to reach zero.
type WaitStrategy int

const (
	// WaitAdaptive polls up to the configured spin limit, then parks.
	WaitAdaptive WaitStrategy = iota
	// WaitSpin polls the counter, yielding the processor between polls. It never parks,
	// so it burns a CPU for the whole wait. Suited to short waits on short tasks only.
	WaitSpin
	// WaitPark blocks until the counter drops to zero, re-checking after every wake-up.
	WaitPark
)

var waitStrategyNames = map[WaitStrategy]string{
	WaitAdaptive: "adaptive",
	WaitSpin:     "spin",
	WaitPark:     "park",
}

func (s WaitStrategy) String() string {
	if name, ok := waitStrategyNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s WaitStrategy) valid() bool {
	_, ok := waitStrategyNames[s]
	return ok
}

// ParseWaitStrategy returns the strategy named s ("adaptive", "spin" or "park", case-insensitive).
func ParseWaitStrategy(s string) (WaitStrategy, error) {
	for ws, name := range waitStrategyNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return ws, nil
		}
	}
	return 0, errorc.With(ErrUnknownWaitStrategy, errorc.String("wait", s))
}

// awaitZero blocks until c reads zero or ctx is done. A zero counter wins over a done context.
func awaitZero(ctx context.Context, c *inflight, s WaitStrategy, spinLimit uint) error {
	switch s {
	case WaitSpin:
		return spin(ctx, c, -1)
	case WaitPark:
		return park(ctx, c)
	default:
		if err := spin(ctx, c, int(spinLimit)); err != nil || c.load() == 0 {
			return err
		}
		return park(ctx, c)
	}
}

// spin polls c until it reads zero, ctx is done, or limit polls were made (limit < 0 means no limit).
// Running out of polls is not an error; the caller re-checks the counter.
func spin(ctx context.Context, c *inflight, limit int) error {
	for i := 0; limit < 0 || i < limit; i++ {
		if c.load() == 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		runtime.Gosched()
	}
	return nil
}

func park(ctx context.Context, c *inflight) error {
	for {
		idle := c.idleSignal()
		if c.load() == 0 {
			return nil
		}
		select {
		case <-idle:
		case <-ctx.Done():
			if c.load() == 0 {
				return nil
			}
			return ctx.Err()
		}
	}
}
