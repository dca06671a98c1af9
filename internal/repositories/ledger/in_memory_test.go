package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/events"
	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
	"github.com/KirkDiggler/tabletop-ledger/internal/repositories/ledger"
)

type InMemoryStoreTestSuite struct {
	suite.Suite
	store ledger.Store
	ctx   context.Context
}

func (s *InMemoryStoreTestSuite) SetupTest() {
	s.store = ledger.NewInMemoryStore()
	s.ctx = context.Background()
}

func TestInMemoryStoreTestSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreTestSuite))
}

func newEvent(id, worldID, text string) *events.WorldEvent {
	return &events.WorldEvent{
		ID:         id,
		WorldID:    worldID,
		Type:       events.TypeNote,
		Scope:      events.ScopeMicro,
		Visibility: events.VisibilityPlayers,
		ActorID:    "gm",
		Payload:    events.Payload{"text": text},
		TS:         time.Now(),
	}
}

func (s *InMemoryStoreTestSuite) TestListByWorld_ReturnsAppendOrder() {
	for _, id := range []string{"e1", "e2", "e3"} {
		s.Require().NoError(s.store.Append(s.ctx, newEvent(id, "w1", id)))
	}
	s.Require().NoError(s.store.Append(s.ctx, newEvent("other", "w2", "elsewhere")))

	got, err := s.store.ListByWorld(s.ctx, "w1", 0)
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal("e1", got[0].ID)
	s.Equal("e2", got[1].ID)
	s.Equal("e3", got[2].ID)

	recent, err := s.store.ListByWorld(s.ctx, "w1", 2)
	s.Require().NoError(err)
	s.Require().Len(recent, 2)
	s.Equal("e2", recent[0].ID)
	s.Equal("e3", recent[1].ID)
}

func (s *InMemoryStoreTestSuite) TestListByWorld_EmptyWorld() {
	got, err := s.store.ListByWorld(s.ctx, "nowhere", 10)
	s.NoError(err)
	s.Empty(got)
}

func (s *InMemoryStoreTestSuite) TestAppend_DuplicateIDConflicts() {
	s.Require().NoError(s.store.Append(s.ctx, newEvent("e1", "w1", "first")))

	err := s.store.Append(s.ctx, newEvent("e1", "w1", "rewrite"))
	s.True(apperr.IsConflict(err))

	stored, err := s.store.Get(s.ctx, "e1")
	s.Require().NoError(err)
	s.Equal("first", stored.Text())
}

func (s *InMemoryStoreTestSuite) TestAppend_RequiresID() {
	err := s.store.Append(s.ctx, newEvent("", "w1", "x"))
	s.True(apperr.IsInvalidArgument(err))
}

func (s *InMemoryStoreTestSuite) TestGet_NotFound() {
	_, err := s.store.Get(s.ctx, "missing")
	s.True(apperr.IsNotFound(err))
}

func (s *InMemoryStoreTestSuite) TestStoredEventsCannotBeMutatedThroughReads() {
	in := newEvent("e1", "w1", "original")
	s.Require().NoError(s.store.Append(s.ctx, in))
	in.Payload["text"] = "changed by producer"

	got, err := s.store.Get(s.ctx, "e1")
	s.Require().NoError(err)
	got.Payload["text"] = "changed by reader"

	again, err := s.store.Get(s.ctx, "e1")
	s.Require().NoError(err)
	s.Equal("original", again.Text())
}
