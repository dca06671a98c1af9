package ulid_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/tabletop-ledger/internal/ulid"
)

func TestNew_MonotonicWithinMillisecond(t *testing.T) {
	now := time.Now()

	ids := make([]string, 50)
	for i := range ids {
		ids[i] = ulid.New(now)
	}

	assert.True(t, sort.StringsAreSorted(ids))
}

func TestTime(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_123)

	got, err := ulid.Time(ulid.New(now))
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), got.UnixMilli())

	_, err = ulid.Time("not-a-ulid")
	assert.Error(t, err)
}
