package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/tabletop-ledger/internal/uuid"
)

func TestGoogleUUIDGenerator(t *testing.T) {
	gen := uuid.NewGoogleUUIDGenerator()

	a, b := gen.New(), gen.New()
	assert.NotEqual(t, a, b)
	assert.True(t, uuid.IsValid(a))
}

func TestSequentialGenerator(t *testing.T) {
	gen := uuid.NewSequentialGenerator("cbt")

	assert.Equal(t, "cbt-1", gen.New())
	assert.Equal(t, "cbt-2", gen.New())
	assert.False(t, uuid.IsValid("cbt-3"))
}
