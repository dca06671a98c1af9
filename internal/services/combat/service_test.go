package combat_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/tabletop-ledger/internal/clients/dnd5e"
	mockdnd5e "github.com/KirkDiggler/tabletop-ledger/internal/clients/dnd5e/mock"
	mockdice "github.com/KirkDiggler/tabletop-ledger/internal/dice/mock"
	domain "github.com/KirkDiggler/tabletop-ledger/internal/domain/combat"
	"github.com/KirkDiggler/tabletop-ledger/internal/domain/events"
	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
	"github.com/KirkDiggler/tabletop-ledger/internal/metrics"
	"github.com/KirkDiggler/tabletop-ledger/internal/repositories/combats"
	mockcombatrepo "github.com/KirkDiggler/tabletop-ledger/internal/repositories/combats/mock"
	"github.com/KirkDiggler/tabletop-ledger/internal/repositories/conditions"
	mockconditions "github.com/KirkDiggler/tabletop-ledger/internal/repositories/conditions/mock"
	ledgerrepo "github.com/KirkDiggler/tabletop-ledger/internal/repositories/ledger"
	"github.com/KirkDiggler/tabletop-ledger/internal/ruleset"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/combat"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/ledger"
	"github.com/KirkDiggler/tabletop-ledger/internal/uuid"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2026, 3, 1, 21, 30, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

type CombatServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	roller   *mockdice.ManualMockRoller
	store    ledgerrepo.Store
	repo     combats.Repository
	monsters *mockdnd5e.MockClient
	metrics  *metrics.Metrics
	svc      combat.Service
}

func (s *CombatServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.roller = mockdice.NewManualMockRoller()
	s.store = ledgerrepo.NewInMemoryStore()
	s.repo = combats.NewInMemoryRepository(&combats.InMemoryConfig{Ledger: s.store})
	s.monsters = mockdnd5e.NewMockClient(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())

	catalog, err := conditions.NewCatalog()
	s.Require().NoError(err)

	clock := func() time.Time { return fixedNow }
	s.svc = combat.NewService(&combat.ServiceConfig{
		Repository: s.repo,
		Conditions: catalog,
		Ledger: ledger.NewService(&ledger.ServiceConfig{
			Store: s.store,
			Clock: clock,
		}),
		Registry:      ruleset.NewDefaultRegistry(s.roller),
		Roller:        s.roller,
		UUIDGenerator: uuid.NewSequentialGenerator("id"),
		Monsters:      s.monsters,
		Clock:         clock,
		Metrics:       s.metrics,
	})
}

func (s *CombatServiceTestSuite) TearDownTest() {
	s.svc.Close()
	s.ctrl.Finish()
}

func TestCombatServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CombatServiceTestSuite))
}

func (s *CombatServiceTestSuite) start() *domain.Combat {
	c, err := s.svc.StartCombat(s.ctx, &combat.StartCombatInput{
		CampaignID: "camp-1",
		WorldID:    "world-1",
	})
	s.Require().NoError(err)
	return c
}

func (s *CombatServiceTestSuite) add(name string, kind domain.Kind, roll, hp int) *domain.Combatant {
	s.roller.SetNextRoll(roll)
	cb, err := s.svc.AddCombatant(s.ctx, &combat.AddCombatantInput{
		CampaignID: "camp-1",
		Combatant:  &combat.CombatantSpec{Kind: string(kind), Name: name, HPMax: hp},
	})
	s.Require().NoError(err)
	return cb
}

func (s *CombatServiceTestSuite) worldEvents() []*events.WorldEvent {
	list, err := s.store.ListByWorld(s.ctx, "world-1", 0)
	s.Require().NoError(err)
	return list
}

func (s *CombatServiceTestSuite) TestStartCombat_CreatesActiveCombat() {
	c := s.start()

	s.True(c.IsActive)
	s.Equal(1, c.Round)
	s.Equal(0, c.TurnIndex)
	s.Equal(string(ruleset.Tormenta20), c.RulesetID)
	s.Equal(int64(1), c.Version)

	evs, err := s.svc.ListCombatEvents(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Require().Len(evs, 1)
	s.Equal(events.TypeCombatStarted, evs[0].Type)
	s.Equal(combat.DefaultActor, evs[0].ActorName)

	world := s.worldEvents()
	s.Require().Len(world, 1)
	s.Equal(events.TypeCombatStarted, world[0].Type)
	s.Equal(evs[0].ID, world[0].Payload.String("combatEventId"))
	s.Equal("camp-1", world[0].CampaignID)
	s.Equal(c.ID, world[0].CombatID)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.CombatCommands.WithLabelValues(combat.CommandStart, metrics.StatusOK)))
}

func (s *CombatServiceTestSuite) TestStartCombat_RequiresWorldOnCreate() {
	_, err := s.svc.StartCombat(s.ctx, &combat.StartCombatInput{CampaignID: "camp-1"})
	s.True(apperr.IsValidation(err))

	_, err = s.svc.StartCombat(s.ctx, &combat.StartCombatInput{WorldID: "world-1"})
	s.True(apperr.IsValidation(err))
	s.Empty(s.worldEvents())
}

func (s *CombatServiceTestSuite) TestStartCombat_ReactivatesExistingCombat() {
	first := s.start()
	s.add("Goblin", domain.KindNPC, 12, 7)

	_, err := s.svc.EndCombat(s.ctx, &combat.EndCombatInput{CampaignID: "camp-1"})
	s.Require().NoError(err)

	again, err := s.svc.StartCombat(s.ctx, &combat.StartCombatInput{CampaignID: "camp-1"})
	s.Require().NoError(err)

	s.Equal(first.ID, again.ID)
	s.True(again.IsActive)
	s.Len(again.Combatants, 1)
	s.Equal(int64(4), again.Version)
}

func (s *CombatServiceTestSuite) TestRollInitiative_ReplacesCharactersAndKeepsNPCs() {
	s.start()
	goblin := s.add("Goblin", domain.KindNPC, 12, 7)

	s.roller.SetNextRoll(10) // Aria, forca 14 => +2
	s.roller.SetNextRoll(15) // Bram
	c, err := s.svc.RollInitiative(s.ctx, &combat.RollInitiativeInput{
		CampaignID: "camp-1",
		Combatants: []*combat.CombatantSpec{
			{Name: "Aria", AttributeScore: 14, HPMax: 20},
			{Name: "Bram", HPMax: 18},
		},
	})
	s.Require().NoError(err)

	s.Require().Len(c.Combatants, 3)
	s.Equal("Bram", c.Combatants[0].Name)
	s.Equal(15, c.Combatants[0].Initiative)
	s.Equal(goblin.ID, c.Combatants[1].ID) // tie at 12 keeps the preserved NPC first
	s.Equal("Aria", c.Combatants[2].Name)
	s.Equal(12, c.Combatants[2].Initiative)
	s.Equal(domain.KindCharacter, c.Combatants[2].Kind)

	s.roller.SetNextRoll(5)
	c, err = s.svc.RollInitiative(s.ctx, &combat.RollInitiativeInput{
		CampaignID: "camp-1",
		Combatants: []*combat.CombatantSpec{{Name: "Cora", HPMax: 10}},
	})
	s.Require().NoError(err)

	s.Require().Len(c.Combatants, 2)
	s.Equal("Goblin", c.Combatants[0].Name)
	s.Equal("Cora", c.Combatants[1].Name)

	world := s.worldEvents()
	last := world[len(world)-1]
	s.Equal(events.TypeInitiative, last.Type)
	order, ok := last.Payload["order"].([]any)
	s.Require().True(ok)
	s.Len(order, 2)
}

func (s *CombatServiceTestSuite) TestRollInitiative_ValidatesBeforeMutation() {
	s.start()

	_, err := s.svc.RollInitiative(s.ctx, &combat.RollInitiativeInput{
		CampaignID: "camp-1",
		Combatants: []*combat.CombatantSpec{{Name: "Aria", DamageFormula: "lots"}},
	})
	s.True(apperr.IsValidation(err))

	_, err = s.svc.RollInitiative(s.ctx, &combat.RollInitiativeInput{CampaignID: "camp-1"})
	s.True(apperr.IsValidation(err))

	s.Len(s.worldEvents(), 1)
}

func (s *CombatServiceTestSuite) TestRollInitiative_NoCombat() {
	_, err := s.svc.RollInitiative(s.ctx, &combat.RollInitiativeInput{
		CampaignID: "camp-1",
		Combatants: []*combat.CombatantSpec{{Name: "Aria"}},
	})
	s.True(apperr.IsNotFound(err))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CombatCommands.WithLabelValues(combat.CommandRollInitiative, metrics.StatusNotFound)))
}

func (s *CombatServiceTestSuite) TestAdvanceTurn_WrapsRounds() {
	s.start()
	s.add("Goblin", domain.KindNPC, 15, 7)
	s.add("Orc", domain.KindNPC, 8, 15)

	steps := []struct {
		dir       domain.Direction
		wantTurn  int
		wantRound int
		wantActor string
	}{
		{domain.DirectionNext, 1, 1, "Orc"},
		{domain.DirectionNext, 0, 2, "Goblin"},
		{domain.DirectionPrev, 1, 1, "Orc"},
		{domain.DirectionPrev, 0, 1, "Goblin"},
		{domain.DirectionPrev, 1, 1, "Orc"}, // round never drops below 1
		{"", 0, 2, "Goblin"},
	}

	for i, step := range steps {
		c, err := s.svc.AdvanceTurn(s.ctx, &combat.AdvanceTurnInput{CampaignID: "camp-1", Direction: step.dir})
		s.Require().NoError(err, "step %d", i)
		s.Equal(step.wantTurn, c.TurnIndex, "step %d", i)
		s.Equal(step.wantRound, c.Round, "step %d", i)

		evs, err := s.svc.ListCombatEvents(s.ctx, c.ID)
		s.Require().NoError(err)
		last := evs[len(evs)-1]
		s.Equal(events.TypeTurn, last.Type)
		s.Equal(step.wantActor, last.ActorName)
		round, _ := last.Payload.Int("round")
		s.Equal(step.wantRound, round)
	}
}

func (s *CombatServiceTestSuite) TestAdvanceTurn_EmptyRoster() {
	s.start()

	c, err := s.svc.AdvanceTurn(s.ctx, &combat.AdvanceTurnInput{CampaignID: "camp-1"})
	s.Require().NoError(err)
	s.Equal(0, c.TurnIndex)
	s.Equal(2, c.Round)

	_, err = s.svc.AdvanceTurn(s.ctx, &combat.AdvanceTurnInput{CampaignID: "camp-1", Direction: "sideways"})
	s.True(apperr.IsValidation(err))
}

func (s *CombatServiceTestSuite) TestApplyDelta_ClampsAndRecordsOverride() {
	s.start()
	orc := s.add("Orc", domain.KindNPC, 8, 15)

	cb, err := s.svc.ApplyDelta(s.ctx, &combat.ApplyDeltaInput{
		CampaignID: "camp-1",
		TargetID:   orc.ID,
		DeltaHP:    intPtr(-40),
		Note:       "fell into the chasm",
		Visibility: events.VisibilityMaster,
	})
	s.Require().NoError(err)
	s.Equal(0, cb.HPCurrent)

	cb, err = s.svc.ApplyDelta(s.ctx, &combat.ApplyDeltaInput{
		CampaignID: "camp-1",
		TargetID:   orc.ID,
		DeltaHP:    intPtr(100),
	})
	s.Require().NoError(err)
	s.Equal(15, cb.HPCurrent)

	world := s.worldEvents()
	override := world[len(world)-2]
	s.Equal(events.TypeOverride, override.Type)
	s.Equal(events.VisibilityMaster, override.Visibility)
	before, _ := override.Payload.Int("hpBefore")
	after, _ := override.Payload.Int("hpAfter")
	s.Equal(15, before)
	s.Equal(0, after)
	s.Equal("fell into the chasm", override.Payload.String("note"))
}

func (s *CombatServiceTestSuite) TestApplyDelta_UnknownTarget() {
	s.start()

	_, err := s.svc.ApplyDelta(s.ctx, &combat.ApplyDeltaInput{
		CampaignID: "camp-1",
		TargetID:   "nobody",
		DeltaHP:    intPtr(-1),
	})
	s.True(apperr.IsNotFound(err))
	s.Len(s.worldEvents(), 1)
}

func (s *CombatServiceTestSuite) TestEndCombat_RetainsHistory() {
	c := s.start()
	s.add("Goblin", domain.KindNPC, 12, 7)

	ended, err := s.svc.EndCombat(s.ctx, &combat.EndCombatInput{CampaignID: "camp-1"})
	s.Require().NoError(err)
	s.False(ended.IsActive)
	s.Len(ended.Combatants, 1)

	evs, err := s.svc.ListCombatEvents(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Len(evs, 3)
	s.Equal(events.TypeCombatEnded, evs[2].Type)

	_, err = s.svc.EndCombat(s.ctx, &combat.EndCombatInput{CampaignID: "camp-2"})
	s.True(apperr.IsNotFound(err))
}

func (s *CombatServiceTestSuite) TestApplyCondition() {
	c := s.start()
	orc := s.add("Orc", domain.KindNPC, 8, 15)

	result, err := s.svc.ApplyCondition(s.ctx, &combat.ApplyConditionInput{
		CombatID:          c.ID,
		TargetCombatantID: orc.ID,
		ConditionKey:      "Caido",
		ExpiresAtTurn:     intPtr(3),
	})
	s.Require().NoError(err)

	s.Equal("t20-caido", result.Applied.ConditionID)
	s.Equal(orc.ID, result.Applied.CombatantID)
	s.Equal(result.Event.ID, result.Applied.CombatEventID)
	s.False(result.Applied.Expired(2))
	s.True(result.Applied.Expired(3))

	applied, err := s.svc.ListAppliedConditions(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Len(applied, 1)

	world := s.worldEvents()
	last := world[len(world)-1]
	s.Equal(events.TypeConditionApplied, last.Type)
	s.Equal(events.ScopeMacro, last.Scope)
	s.Equal(orc.ID, last.Payload.String("targetId"))
	s.Equal("caido", last.Payload.String("conditionKey"))

	_, err = s.svc.ApplyCondition(s.ctx, &combat.ApplyConditionInput{
		CombatID:          c.ID,
		TargetCombatantID: orc.ID,
		ConditionID:       "t20-abalado",
	})
	s.Require().NoError(err)
}

func (s *CombatServiceTestSuite) TestApplyCondition_NotFound() {
	c := s.start()
	orc := s.add("Orc", domain.KindNPC, 8, 15)

	tests := []struct {
		name  string
		input *combat.ApplyConditionInput
	}{
		{
			name:  "unknown combat",
			input: &combat.ApplyConditionInput{CombatID: "nope", TargetCombatantID: orc.ID, ConditionKey: "caido"},
		},
		{
			name:  "unknown target",
			input: &combat.ApplyConditionInput{CombatID: c.ID, TargetCombatantID: "nope", ConditionKey: "caido"},
		},
		{
			name:  "unknown condition",
			input: &combat.ApplyConditionInput{CombatID: c.ID, TargetCombatantID: orc.ID, ConditionKey: "petrificado-de-tedio"},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.ApplyCondition(s.ctx, tt.input)
			s.True(apperr.IsNotFound(err), "got %v", err)
		})
	}

	_, err := s.svc.ApplyCondition(s.ctx, &combat.ApplyConditionInput{CombatID: c.ID, TargetCombatantID: orc.ID})
	s.True(apperr.IsValidation(err))
}

func (s *CombatServiceTestSuite) TestAddCombatant_Defaults() {
	s.start()

	s.roller.SetNextRoll(17)
	cb, err := s.svc.AddCombatant(s.ctx, &combat.AddCombatantInput{
		CampaignID: "camp-1",
		Combatant:  &combat.CombatantSpec{Name: "Bandit", HPMax: 9, MPMax: 2},
	})
	s.Require().NoError(err)

	s.Equal(domain.KindNPC, cb.Kind)
	s.Equal(17, cb.Initiative)
	s.Equal(9, cb.HPCurrent)
	s.Equal(2, cb.MPCurrent)
	s.Equal(domain.DefaultDefense, cb.DefenseFinal)
	s.Equal(domain.DefaultDamageFormula, cb.DamageFormula)

	world := s.worldEvents()
	s.Equal(events.TypeCombatantAdded, world[len(world)-1].Type)
}

func (s *CombatServiceTestSuite) TestAddCombatant_Invalid() {
	_, err := s.svc.AddCombatant(s.ctx, &combat.AddCombatantInput{
		CampaignID: "camp-1",
		Combatant:  &combat.CombatantSpec{Name: "Bandit"},
	})
	s.True(apperr.IsNotFound(err))

	s.start()

	tests := []struct {
		name string
		spec *combat.CombatantSpec
	}{
		{name: "missing spec"},
		{name: "missing name", spec: &combat.CombatantSpec{HPMax: 3}},
		{name: "bad kind", spec: &combat.CombatantSpec{Name: "X", Kind: "DRAGON"}},
		{name: "bad formula", spec: &combat.CombatantSpec{Name: "X", DamageFormula: "2d"}},
		{name: "negative hp", spec: &combat.CombatantSpec{Name: "X", HPMax: -1}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.AddCombatant(s.ctx, &combat.AddCombatantInput{CampaignID: "camp-1", Combatant: tt.spec})
			s.True(apperr.IsValidation(err), "got %v", err)
		})
	}
}

func (s *CombatServiceTestSuite) TestAddMonster() {
	s.start()

	s.monsters.EXPECT().GetMonster("goblin").Return(&dnd5e.Monster{
		Key:           "goblin",
		Name:          "Goblin",
		HitPoints:     7,
		AttackBonus:   4,
		DamageFormula: "1d6+2",
	}, nil)

	s.roller.SetNextRoll(11)
	cb, err := s.svc.AddMonster(s.ctx, &combat.AddMonsterInput{CampaignID: "camp-1", MonsterKey: "goblin", Name: "Goblin Boss"})
	s.Require().NoError(err)

	s.Equal("Goblin Boss", cb.Name)
	s.Equal("goblin", cb.RefID)
	s.Equal(domain.KindNPC, cb.Kind)
	s.Equal(7, cb.HPMax)
	s.Equal(7, cb.HPCurrent)
	s.Equal(4, cb.AttackBonus)
	s.Equal("1d6+2", cb.DamageFormula)
}

func (s *CombatServiceTestSuite) TestAddMonster_LookupFails() {
	s.start()

	s.monsters.EXPECT().GetMonster("tarrasque").Return(nil, apperr.NotFound("monster tarrasque not found"))

	_, err := s.svc.AddMonster(s.ctx, &combat.AddMonsterInput{CampaignID: "camp-1", MonsterKey: "tarrasque"})
	s.True(apperr.IsNotFound(err))
	s.Len(s.worldEvents(), 1)
}

func (s *CombatServiceTestSuite) TestResolveAttack_CriticalHit() {
	s.start()
	hero := s.add("Hero", domain.KindCharacter, 15, 20)
	orc := s.add("Orc", domain.KindNPC, 8, 10)

	s.roller.SetNextRoll(20) // attack
	s.roller.SetNextRoll(4)  // 1d6 damage
	result, err := s.svc.ResolveAttack(s.ctx, &combat.ResolveAttackInput{
		CampaignID: "camp-1",
		AttackerID: hero.ID,
		TargetID:   orc.ID,
	})
	s.Require().NoError(err)

	s.True(result.Hit)
	s.Require().NotNil(result.Damage)
	s.True(result.Damage.IsCrit)
	s.Equal(8, result.Damage.Total)
	s.Equal(2, result.Target.HPCurrent)

	s.Equal(events.TypeAttack, result.Event.Type)
	s.Equal("Hero", result.Event.ActorName)
	hpAfter, _ := result.Event.Payload.Int("hpAfter")
	s.Equal(2, hpAfter)
}

func (s *CombatServiceTestSuite) TestResolveAttack_NaturalOneMisses() {
	s.start()
	hero := s.add("Hero", domain.KindCharacter, 15, 20)
	orc := s.add("Orc", domain.KindNPC, 8, 10)

	s.roller.SetNextRoll(1)
	result, err := s.svc.ResolveAttack(s.ctx, &combat.ResolveAttackInput{
		CampaignID: "camp-1",
		AttackerID: hero.ID,
		TargetID:   orc.ID,
	})
	s.Require().NoError(err)

	s.False(result.Hit)
	s.Nil(result.Damage)
	s.Equal(10, result.Target.HPCurrent)
	s.Equal(0, s.roller.Remaining())
}

func (s *CombatServiceTestSuite) TestResolveAttack_UnknownCombatant() {
	s.start()
	hero := s.add("Hero", domain.KindCharacter, 15, 20)

	_, err := s.svc.ResolveAttack(s.ctx, &combat.ResolveAttackInput{
		CampaignID: "camp-1",
		AttackerID: hero.ID,
		TargetID:   "ghost",
	})
	s.True(apperr.IsNotFound(err))
}

func (s *CombatServiceTestSuite) TestConcurrentCommandsAreSerialized() {
	s.start()
	orc := s.add("Orc", domain.KindNPC, 8, 30)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.ApplyDelta(s.ctx, &combat.ApplyDeltaInput{
				CampaignID: "camp-1",
				TargetID:   orc.ID,
				DeltaHP:    intPtr(-1),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}

	c, err := s.svc.GetCombat(s.ctx, "camp-1")
	s.Require().NoError(err)
	s.Equal(10, c.Find(orc.ID).HPCurrent)
	s.Equal(int64(22), c.Version)
	s.Len(s.worldEvents(), 22)
}

func (s *CombatServiceTestSuite) TestGetters() {
	c := s.start()

	byCampaign, err := s.svc.GetCombat(s.ctx, "camp-1")
	s.Require().NoError(err)
	s.Equal(c.ID, byCampaign.ID)

	byID, err := s.svc.GetCombatByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("camp-1", byID.CampaignID)

	_, err = s.svc.GetCombat(s.ctx, "")
	s.True(apperr.IsValidation(err))

	_, err = s.svc.GetCombatByID(s.ctx, "missing")
	s.True(apperr.IsNotFound(err))
}

func TestCommitFailureIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mockcombatrepo.NewMockRepository(ctrl)

	existing := domain.New("c1", "camp-1", "world-1", string(ruleset.Tormenta20), fixedNow)
	existing.Version = 3

	repo.EXPECT().GetByCampaign(gomock.Any(), "camp-1").Return(existing, nil)
	repo.EXPECT().Commit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, commit *combats.Commit) error {
		assert.Equal(t, int64(3), commit.ExpectedVersion)
		assert.Equal(t, events.TypeCombatEnded, commit.Event.Type)
		assert.Equal(t, commit.Event.ID, commit.WorldEvent.Payload.String("combatEventId"))
		return apperr.Persistence(errors.New("connection reset"), "failed to commit combat")
	})

	catalog, err := conditions.NewCatalog()
	require.NoError(t, err)

	svc := combat.NewService(&combat.ServiceConfig{
		Repository: repo,
		Conditions: catalog,
		Ledger:     ledger.NewService(&ledger.ServiceConfig{Store: ledgerrepo.NewInMemoryStore()}),
	})
	defer svc.Close()

	_, err = svc.EndCombat(context.Background(), &combat.EndCombatInput{CampaignID: "camp-1"})
	assert.True(t, apperr.IsPersistence(err))
}

func TestApplyCondition_ConditionRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mockcombatrepo.NewMockRepository(ctrl)
	conds := mockconditions.NewMockRepository(ctrl)

	existing := domain.New("c1", "camp-1", "world-1", string(ruleset.Tormenta20), fixedNow)
	existing.Combatants = []*domain.Combatant{{ID: "gob", CombatID: "c1", Name: "Goblin", Kind: domain.KindNPC, HPMax: 7, HPCurrent: 7}}
	existing.Version = 1

	repo.EXPECT().GetByID(gomock.Any(), "c1").Return(existing, nil).AnyTimes()

	svc := combat.NewService(&combat.ServiceConfig{
		Repository: repo,
		Conditions: conds,
		Ledger:     ledger.NewService(&ledger.ServiceConfig{Store: ledgerrepo.NewInMemoryStore()}),
	})
	defer svc.Close()

	t.Run("lookup by id skips the key", func(t *testing.T) {
		conds.EXPECT().Get(gomock.Any(), "t20-sangrando").Return(&domain.Condition{
			ID: "t20-sangrando", RulesetID: "tormenta20", Key: "sangrando", Name: "Sangrando",
		}, nil)
		repo.EXPECT().Commit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, commit *combats.Commit) error {
			require.NotNil(t, commit.Applied)
			assert.Equal(t, "sangrando", commit.Applied.ConditionKey)
			assert.Equal(t, "gob", commit.Applied.CombatantID)
			assert.Equal(t, events.TypeConditionApplied, commit.Event.Type)
			return nil
		})

		result, err := svc.ApplyCondition(context.Background(), &combat.ApplyConditionInput{
			CombatID:          "c1",
			TargetCombatantID: "gob",
			ConditionID:       "t20-sangrando",
			ConditionKey:      "ignored",
		})
		require.NoError(t, err)
		assert.Equal(t, "t20-sangrando", result.Applied.ConditionID)
	})

	t.Run("catalog failure commits nothing", func(t *testing.T) {
		conds.EXPECT().GetByKey(gomock.Any(), "tormenta20", "caido").
			Return(nil, apperr.Persistence(errors.New("catalog offline"), "failed to load condition"))

		_, err := svc.ApplyCondition(context.Background(), &combat.ApplyConditionInput{
			CombatID:          "c1",
			TargetCombatantID: "gob",
			ConditionKey:      " caido ",
		})
		assert.True(t, apperr.IsPersistence(err))
	})
}

func TestNewService_PanicsWithoutDependencies(t *testing.T) {
	assert.Panics(t, func() {
		combat.NewService(&combat.ServiceConfig{})
	})
}
