package utils

import (
	"time"

	"github.com/iov-one/pact"
)

// Logging is a decorator to log messages as they pass through.
type Logging struct{}

var _ pact.Decorator = Logging{}

// NewLogging creates a Logging decorator.
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (r Logging) Check(ctx pact.Context, store pact.KVStore, tx pact.Tx, next pact.Checker) (*pact.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx pact.Context, store pact.KVStore, tx pact.Tx, next pact.Deliverer) (*pact.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger.
func logDuration(ctx pact.Context, tx pact.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := pact.GetLogger(ctx).With(
		"path", pact.GetPath(tx),
		"duration", delta/time.Microsecond,
	)

	// Message can be empty, the entry is still emitted because of the
	// other attributes.
	switch {
	case err != nil:
		logger.With("err", err).Error(msg)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
