package combats_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/combat"
	"github.com/KirkDiggler/tabletop-ledger/internal/domain/events"
	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
	"github.com/KirkDiggler/tabletop-ledger/internal/repositories/combats"
	"github.com/KirkDiggler/tabletop-ledger/internal/repositories/ledger"
)

type InMemoryRepositoryTestSuite struct {
	suite.Suite
	ledger ledger.Store
	repo   combats.Repository
	ctx    context.Context
}

func (s *InMemoryRepositoryTestSuite) SetupTest() {
	s.ledger = ledger.NewInMemoryStore()
	s.repo = combats.NewInMemoryRepository(&combats.InMemoryConfig{Ledger: s.ledger})
	s.ctx = context.Background()
}

func TestInMemoryRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(InMemoryRepositoryTestSuite))
}

func commitFor(c *combat.Combat, expected int64, eventID string) *combats.Commit {
	now := time.Now()
	return &combats.Commit{
		Combat:          c,
		ExpectedVersion: expected,
		Event: &combat.Event{
			ID:         "ce-" + eventID,
			CombatID:   c.ID,
			ActorName:  "gm",
			Type:       events.TypeTurn,
			Visibility: events.VisibilityPlayers,
			Payload:    events.Payload{"round": 1, "turnIndex": 0},
			TS:         now,
		},
		WorldEvent: &events.WorldEvent{
			ID:         eventID,
			WorldID:    c.WorldID,
			CampaignID: c.CampaignID,
			CombatID:   c.ID,
			Type:       events.TypeTurn,
			Scope:      events.ScopeMicro,
			Visibility: events.VisibilityPlayers,
			ActorID:    "gm",
			Payload:    events.Payload{"round": 1, "turnIndex": 0},
			TS:         now,
		},
	}
}

func (s *InMemoryRepositoryTestSuite) TestCommit_CreateAndUpdate() {
	c := combat.New("cbt-1", "camp-1", "world-1", "tormenta20", time.Now())

	s.Require().NoError(s.repo.Commit(s.ctx, commitFor(c, 0, "e1")))
	s.Equal(int64(1), c.Version)

	stored, err := s.repo.GetByCampaign(s.ctx, "camp-1")
	s.Require().NoError(err)
	s.Equal("cbt-1", stored.ID)
	s.Equal(int64(1), stored.Version)

	stored.Advance(combat.DirectionNext)
	s.Require().NoError(s.repo.Commit(s.ctx, commitFor(stored, 1, "e2")))

	byID, err := s.repo.GetByID(s.ctx, "cbt-1")
	s.Require().NoError(err)
	s.Equal(2, byID.Round)
	s.Equal(int64(2), byID.Version)

	evs, err := s.repo.ListEvents(s.ctx, "cbt-1")
	s.Require().NoError(err)
	s.Len(evs, 2)

	world, err := s.ledger.ListByWorld(s.ctx, "world-1", 0)
	s.Require().NoError(err)
	s.Require().Len(world, 2)
	s.Equal("e1", world[0].ID)
	s.Equal("e2", world[1].ID)
}

func (s *InMemoryRepositoryTestSuite) TestCommit_StaleVersionConflicts() {
	c := combat.New("cbt-1", "camp-1", "world-1", "tormenta20", time.Now())
	s.Require().NoError(s.repo.Commit(s.ctx, commitFor(c, 0, "e1")))

	stale := c.Clone()
	s.Require().NoError(s.repo.Commit(s.ctx, commitFor(c, 1, "e2")))

	err := s.repo.Commit(s.ctx, commitFor(stale, 1, "e3"))
	s.True(apperr.IsConflict(err))

	_, err = s.ledger.Get(s.ctx, "e3")
	s.True(apperr.IsNotFound(err), "rejected commit must not reach the ledger")

	evs, err := s.repo.ListEvents(s.ctx, "cbt-1")
	s.Require().NoError(err)
	s.Len(evs, 2)
}

func (s *InMemoryRepositoryTestSuite) TestCommit_SecondCombatForCampaignConflicts() {
	first := combat.New("cbt-1", "camp-1", "world-1", "tormenta20", time.Now())
	s.Require().NoError(s.repo.Commit(s.ctx, commitFor(first, 0, "e1")))

	second := combat.New("cbt-2", "camp-1", "world-1", "tormenta20", time.Now())
	err := s.repo.Commit(s.ctx, commitFor(second, 0, "e2"))
	s.True(apperr.IsConflict(err))
}

func (s *InMemoryRepositoryTestSuite) TestCommit_LedgerFailureLeavesStateUntouched() {
	c := combat.New("cbt-1", "camp-1", "world-1", "tormenta20", time.Now())
	s.Require().NoError(s.repo.Commit(s.ctx, commitFor(c, 0, "e1")))

	next := c.Clone()
	next.Advance(combat.DirectionNext)
	err := s.repo.Commit(s.ctx, commitFor(next, 1, "e1")) // duplicate ledger id
	s.Error(err)

	stored, err := s.repo.GetByID(s.ctx, "cbt-1")
	s.Require().NoError(err)
	s.Equal(1, stored.Round)
	s.Equal(int64(1), stored.Version)
}

func (s *InMemoryRepositoryTestSuite) TestCommit_RequiresEvents() {
	c := combat.New("cbt-1", "camp-1", "world-1", "tormenta20", time.Now())

	err := s.repo.Commit(s.ctx, &combats.Commit{Combat: c})
	s.True(apperr.IsInvalidArgument(err))
}

func (s *InMemoryRepositoryTestSuite) TestCommit_AppliedCondition() {
	c := combat.New("cbt-1", "camp-1", "world-1", "tormenta20", time.Now())
	commit := commitFor(c, 0, "e1")
	commit.Applied = &combat.AppliedCondition{ID: "ac-1", CombatID: "cbt-1", CombatantID: "x", ConditionID: "t20-cego"}

	s.Require().NoError(s.repo.Commit(s.ctx, commit))

	applied, err := s.repo.ListAppliedConditions(s.ctx, "cbt-1")
	s.Require().NoError(err)
	s.Require().Len(applied, 1)
	s.Equal("t20-cego", applied[0].ConditionID)
}

func (s *InMemoryRepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.GetByCampaign(s.ctx, "nope")
	s.True(apperr.IsNotFound(err))

	_, err = s.repo.GetByID(s.ctx, "nope")
	s.True(apperr.IsNotFound(err))
}

func (s *InMemoryRepositoryTestSuite) TestReadsAreCopies() {
	c := combat.New("cbt-1", "camp-1", "world-1", "tormenta20", time.Now())
	c.Combatants = []*combat.Combatant{{ID: "a", Name: "A", HPCurrent: 5, HPMax: 5}}
	s.Require().NoError(s.repo.Commit(s.ctx, commitFor(c, 0, "e1")))

	got, err := s.repo.GetByID(s.ctx, "cbt-1")
	s.Require().NoError(err)
	got.Combatants[0].HPCurrent = 0

	again, err := s.repo.GetByID(s.ctx, "cbt-1")
	s.Require().NoError(err)
	s.Equal(5, again.Combatants[0].HPCurrent)
}
