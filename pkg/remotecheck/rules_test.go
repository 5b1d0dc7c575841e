package remotecheck_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/remotecheck"
)

func knows(values ...string) remotecheck.CheckerFunc {
	return func(ctx context.Context, value string) (bool, error) {
		for _, v := range values {
			if v == value {
				return true, nil
			}
		}
		return false, nil
	}
}

func TestUnique(t *testing.T) {
	t.Parallel()
	rule := remotecheck.Unique(knows("admin"))

	t.Run("flags taken values", func(t *testing.T) {
		t.Parallel()
		errs, err := rule(context.Background(), "admin")
		require.NoError(t, err)

		detail, ok := errs.Get(remotecheck.KeyUnique)
		require.True(t, ok)
		assert.Equal(t, remotecheck.Detail{Value: "admin"}, detail)
	})

	t.Run("passes free values", func(t *testing.T) {
		t.Parallel()
		errs, err := rule(context.Background(), "someone-else")
		require.NoError(t, err)
		assert.Nil(t, errs)
	})

	t.Run("skips empty values without a round trip", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int64
		counted := remotecheck.CheckerFunc(func(ctx context.Context, value string) (bool, error) {
			calls.Add(1)
			return false, nil
		})

		errs, err := remotecheck.Unique(counted)(context.Background(), "")
		require.NoError(t, err)
		assert.Nil(t, errs)
		assert.Zero(t, calls.Load())
	})

	t.Run("propagates checker faults", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("connection reset")
		failing := remotecheck.CheckerFunc(func(ctx context.Context, value string) (bool, error) {
			return false, boom
		})

		errs, err := remotecheck.Unique(failing)(context.Background(), "probe")
		assert.Nil(t, errs)
		assert.ErrorIs(t, err, boom)
	})
}

func TestExists(t *testing.T) {
	t.Parallel()
	rule := remotecheck.Exists(knows("WELCOME10"))

	t.Run("passes known values", func(t *testing.T) {
		t.Parallel()
		errs, err := rule(context.Background(), "WELCOME10")
		require.NoError(t, err)
		assert.Nil(t, errs)
	})

	t.Run("flags unknown values", func(t *testing.T) {
		t.Parallel()
		errs, err := rule(context.Background(), "EXPIRED99")
		require.NoError(t, err)

		detail, ok := errs.Get(remotecheck.KeyUnknown)
		require.True(t, ok)
		assert.Equal(t, remotecheck.Detail{Value: "EXPIRED99"}, detail)
	})

	t.Run("skips empty values", func(t *testing.T) {
		t.Parallel()
		errs, err := rule(context.Background(), "")
		require.NoError(t, err)
		assert.Nil(t, errs)
	})
}

func TestFieldIntegration(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	email := formkit.NewField("").WithAsync(remotecheck.Unique(knows("taken@example.com")))

	require.NoError(t, email.SetValue("taken@example.com"))
	status, err := formkit.Wait(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, formkit.StatusInvalid, status)
	assert.True(t, email.Errors().Has(remotecheck.KeyUnique))

	require.NoError(t, email.SetValue("fresh@example.com"))
	status, err = formkit.Wait(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, formkit.StatusValid, status)
}
