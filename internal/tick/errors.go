package tick

// Dispatcher's Connect/Disconnect errors are exactly ebus's: a Dispatcher is
// a one-address, HandlerMultipleOrdered bus, so ErrHandlerAlreadyConnected,
// ErrHandlerNotConnected and ErrNilHandler from internal/ebus cover every
// failure this package's own operations can produce. No tick-specific sentinel errors
// exist; callers should match against the ebus package's errors.
