// Package ulid generates the lexically sortable ids used by the event ledger.
package ulid

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// New returns a ULID for t. Ids generated in the same millisecond by this
// process sort in generation order.
func New(t time.Time) string {
	entropyLock.Lock()
	defer entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// Time extracts the millisecond timestamp encoded in id
func Time(id string) (time.Time, error) {
	parsed, err := ulid.Parse(id)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ULID %q: %w", id, err)
	}
	return ulid.Time(parsed.Time()), nil
}

// Generator produces ledger ids
type Generator interface {
	New(t time.Time) string
}

type monotonicGenerator struct{}

// NewGenerator returns the process-wide monotonic generator
func NewGenerator() Generator {
	return monotonicGenerator{}
}

func (monotonicGenerator) New(t time.Time) string {
	return New(t)
}
