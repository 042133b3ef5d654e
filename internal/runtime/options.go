package runtime

import (
	"github.com/forgecore/engine/internal/tick"
	"github.com/forgecore/engine/internal/world"
)

// Option configures a Runtime at construction time.
type Option func(*config)

type config struct {
	clock           tick.Clock
	worldOpts       []world.Option
	logRingCapacity int
}

// WithClock overrides the tick dispatcher's time source; tests pass a
// tick.FixedClock for deterministic dt values.
func WithClock(c tick.Clock) Option {
	return func(cfg *config) { cfg.clock = c }
}

// WithWorldOptions forwards options to world.New, e.g. world.WithCapacityHint.
func WithWorldOptions(opts ...world.Option) Option {
	return func(cfg *config) { cfg.worldOpts = opts }
}

// WithLogRingCapacity sets how many lines the Runtime's bounded log sink
// retains. Defaults to 1024.
func WithLogRingCapacity(n int) Option {
	return func(cfg *config) { cfg.logRingCapacity = n }
}
