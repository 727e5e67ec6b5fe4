package locker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopLockerLease(t *testing.T) {
	ctx := context.Background()

	lease, err := NoopLocker{}.Lock(ctx, "invoice-batch:1")
	require.NoError(t, err)
	require.NoError(t, lease.Refresh(ctx))
	require.NoError(t, lease.Release(ctx))
}
