package fleet

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"

	"github.com/simplesurance/depmerge/internal/logfields"
	"github.com/simplesurance/depmerge/internal/retryerr"
)

const defMaxRetryTimeout = 2 * time.Hour

// Retryer executes a function repeatedly until it was successful, it returned
// an error that does not wrap retryerr.RetryableError or the execution was
// aborted via the context.
type Retryer struct {
	logger                 *zap.Logger
	maxRetryTimeout        time.Duration
	backoffInitialInterval time.Duration
	shutdownChan           chan struct{}
}

func NewRetryer() *Retryer {
	return &Retryer{
		logger:                 zap.L().Named("retryer"),
		maxRetryTimeout:        defMaxRetryTimeout,
		backoffInitialInterval: 5 * time.Second,
		shutdownChan:           make(chan struct{}),
	}
}

// Run executes fn until it succeeds, fails with a non-retryable error, the
// retry timeout expired, the context was cancelled or the Retryer was
// stopped.
func (r *Retryer) Run(ctx context.Context, fn func(context.Context) error, logF []zap.Field) error {
	var tryCnt uint

	endTime := time.Now().Add(r.maxRetryTimeout)

	retryTimeout := time.NewTimer(r.maxRetryTimeout)
	defer retryTimeout.Stop()

	retryTimer := time.NewTimer(0)
	defer retryTimer.Stop()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.backoffInitialInterval

	for {
		tryCnt++
		logger := r.logger.With(logF...).With(zap.Uint("try_count", tryCnt))

		select {
		case <-ctx.Done():
			logger.Info(
				"operation cancelled",
				logfields.Event("operation_cancelled"),
			)

			return ctx.Err()

		case <-retryTimer.C:
			err := fn(ctx)
			if err != nil {
				var retryError *retryerr.RetryableError

				logger = logger.With(zap.Error(err))

				if errors.Is(err, context.Canceled) {
					logger.Info(
						"operation cancelled",
						logfields.Event("operation_cancelled"),
					)

					return err
				}

				if errors.As(err, &retryError) {
					if retryError.After.After(endTime) {
						logger.Error(
							"operation failed, next possible retry time is after timeout expiration",
							logfields.Event("operation_failed"),
							zap.Time("earliest_allowed_retry", retryError.After),
						)

						return err
					}

					var retryIn time.Duration

					if retryError.After.IsZero() {
						retryIn = bo.NextBackOff()
					} else {
						retryIn = time.Until(retryError.After)
					}

					retryTimer.Reset(retryIn)
					logger.Warn(
						"operation failed, retry scheduled",
						logfields.Event("operation_retry_scheduled"),
						zap.Duration("retry_in", retryIn),
					)

					continue
				}

				logger.Error(
					"operation failed, not retryable",
					logfields.Event("operation_failed"),
				)

				return err
			}

			return nil

		case <-retryTimeout.C:
			logger.Warn(
				"giving up retrying, retry timeout expired",
				logfields.Event("operation_retry_timeout"),
				zap.Duration("retry_timeout", r.maxRetryTimeout),
			)

			return errors.New("retry timeout expired")

		case <-r.shutdownChan:
			logger.Info(
				"retryer terminated, operation not executed",
				logfields.Event("operation_cancelled_retryer_terminated"),
			)

			return nil
		}
	}
}

// Stop notifies all Run() methods to terminate.
// It does not wait for their termination.
func (r *Retryer) Stop() {
	r.logger.Debug("retryer terminating", logfields.Event("retryer_terminating"))

	select {
	case <-r.shutdownChan:
		return // already closed
	default:
		close(r.shutdownChan)
	}
}
