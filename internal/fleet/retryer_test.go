package fleet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/depmerge/internal/retryerr"
)

func TestRetryerRetriesRetryableErrors(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	r := NewRetryer()
	r.backoffInitialInterval = 10 * time.Millisecond
	t.Cleanup(r.Stop)

	var tries int

	err := r.Run(context.Background(), func(context.Context) error {
		tries++
		if tries < 3 {
			return retryerr.NewAnytime(errors.New("transient"))
		}

		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, tries)
}

func TestRetryerReturnsNonRetryableErrorImmediately(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	r := NewRetryer()
	t.Cleanup(r.Stop)

	permanentErr := errors.New("permanent")

	var tries int

	err := r.Run(context.Background(), func(context.Context) error {
		tries++
		return permanentErr
	}, nil)

	require.ErrorIs(t, err, permanentErr)
	assert.Equal(t, 1, tries)
}

func TestRetryerHonorsContextCancellation(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	r := NewRetryer()
	r.backoffInitialInterval = time.Hour
	t.Cleanup(r.Stop)

	ctx, cancelFn := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancelFn()

	err := r.Run(ctx, func(context.Context) error {
		return retryerr.NewAnytime(errors.New("transient"))
	}, nil)

	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRetryerGivesUpWhenRetryTimeIsAfterTimeout(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	r := NewRetryer()
	r.maxRetryTimeout = time.Second
	t.Cleanup(r.Stop)

	var tries int

	err := r.Run(context.Background(), func(context.Context) error {
		tries++
		return retryerr.New(errors.New("rate limited"), time.Now().Add(time.Hour))
	}, nil)

	require.Error(t, err)
	assert.Equal(t, 1, tries)
}
