// Package combat runs the combat commands of a campaign: start, initiative,
// turn order, resource changes, conditions and attacks. Every command emits
// one combat event that is stored with its world event in a single commit.
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=mockcombat -source=service.go

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/KirkDiggler/tabletop-ledger/internal/clients/dnd5e"
	"github.com/KirkDiggler/tabletop-ledger/internal/dice"
	"github.com/KirkDiggler/tabletop-ledger/internal/domain/combat"
	"github.com/KirkDiggler/tabletop-ledger/internal/domain/events"
	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
	"github.com/KirkDiggler/tabletop-ledger/internal/metrics"
	"github.com/KirkDiggler/tabletop-ledger/internal/repositories/combats"
	"github.com/KirkDiggler/tabletop-ledger/internal/repositories/conditions"
	"github.com/KirkDiggler/tabletop-ledger/internal/ruleset"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/ledger"
	"github.com/KirkDiggler/tabletop-ledger/internal/uuid"
)

// DefaultActor names the author of commands issued without one
const DefaultActor = "GM"

// Command names used as metric labels
const (
	CommandStart          = "start"
	CommandRollInitiative = "roll_initiative"
	CommandAdvanceTurn    = "advance_turn"
	CommandApplyDelta     = "apply_delta"
	CommandEnd            = "end"
	CommandApplyCondition = "apply_condition"
	CommandAddCombatant   = "add_combatant"
	CommandResolveAttack  = "resolve_attack"
)

// Service defines the combat service interface
type Service interface {
	// StartCombat activates the campaign's combat, creating it on first use
	StartCombat(ctx context.Context, input *StartCombatInput) (*combat.Combat, error)

	// RollInitiative replaces every CHARACTER combatant with a freshly rolled set
	RollInitiative(ctx context.Context, input *RollInitiativeInput) (*combat.Combat, error)

	// AdvanceTurn moves the turn cursor one step
	AdvanceTurn(ctx context.Context, input *AdvanceTurnInput) (*combat.Combat, error)

	// ApplyDelta changes a combatant's hit and mana points
	ApplyDelta(ctx context.Context, input *ApplyDeltaInput) (*combat.Combatant, error)

	// EndCombat deactivates the campaign's combat
	EndCombat(ctx context.Context, input *EndCombatInput) (*combat.Combat, error)

	// ApplyCondition attaches a reference condition to a combatant
	ApplyCondition(ctx context.Context, input *ApplyConditionInput) (*ApplyConditionResult, error)

	// AddCombatant adds one combatant with a flat d20 initiative
	AddCombatant(ctx context.Context, input *AddCombatantInput) (*combat.Combatant, error)

	// AddMonster adds an NPC seeded from a reference stat block
	AddMonster(ctx context.Context, input *AddMonsterInput) (*combat.Combatant, error)

	// ResolveAttack rolls an attack between two combatants and applies its damage
	ResolveAttack(ctx context.Context, input *ResolveAttackInput) (*AttackResult, error)

	GetCombat(ctx context.Context, campaignID string) (*combat.Combat, error)
	GetCombatByID(ctx context.Context, combatID string) (*combat.Combat, error)
	ListCombatEvents(ctx context.Context, combatID string) ([]*combat.Event, error)
	ListAppliedConditions(ctx context.Context, combatID string) ([]*combat.AppliedCondition, error)

	// Close stops the campaign mailboxes
	Close()
}

// StartCombatInput contains data for starting a combat
type StartCombatInput struct {
	CampaignID string
	WorldID    string // required when the campaign has no combat yet
	RulesetID  string
	ActorName  string
	Visibility events.Visibility
}

// CombatantSpec describes a combatant to create
type CombatantSpec struct {
	Kind           string // empty means NPC, or CHARACTER when rolling initiative
	RefID          string
	Name           string
	AttributeScore int
	HPMax          int
	HPCurrent      *int // nil means HPMax
	MPMax          int
	MPCurrent      *int // nil means MPMax
	DefenseFinal   int
	AttackBonus    int
	DamageFormula  string
}

// RollInitiativeInput contains data for rolling initiative
type RollInitiativeInput struct {
	CampaignID string
	Combatants []*CombatantSpec
	ActorName  string
	Visibility events.Visibility
}

// AdvanceTurnInput contains data for advancing the turn
type AdvanceTurnInput struct {
	CampaignID string
	Direction  combat.Direction // empty means next
	Visibility events.Visibility
}

// ApplyDeltaInput contains data for changing a combatant's resources
type ApplyDeltaInput struct {
	CampaignID string
	TargetID   string
	DeltaHP    *int
	DeltaMP    *int
	Note       string
	ActorName  string
	Visibility events.Visibility
}

// EndCombatInput contains data for ending a combat
type EndCombatInput struct {
	CampaignID string
	ActorName  string
	Visibility events.Visibility
}

// ApplyConditionInput contains data for applying a condition. The condition
// is resolved by ConditionID, or by ConditionKey within the combat's ruleset.
type ApplyConditionInput struct {
	CombatID          string
	TargetCombatantID string
	ConditionID       string
	ConditionKey      string
	ExpiresAtTurn     *int
	ActorName         string
	Visibility        events.Visibility
}

// ApplyConditionResult holds the stored condition and the event it produced
type ApplyConditionResult struct {
	Applied *combat.AppliedCondition
	Event   *combat.Event
}

// AddCombatantInput contains data for adding a combatant
type AddCombatantInput struct {
	CampaignID string
	Combatant  *CombatantSpec
	ActorName  string
	Visibility events.Visibility
}

// AddMonsterInput contains data for adding a reference monster
type AddMonsterInput struct {
	CampaignID string
	MonsterKey string
	Name       string // overrides the stat block name
	ActorName  string
	Visibility events.Visibility
}

// ResolveAttackInput contains data for an attack between combatants
type ResolveAttackInput struct {
	CampaignID string
	AttackerID string
	TargetID   string
	Attribute  string // empty uses the ruleset's melee attribute
	Visibility events.Visibility
}

// AttackResult is the outcome of ResolveAttack
type AttackResult struct {
	Attack *ruleset.AttackResult
	Damage *ruleset.DamageResult // nil on a miss
	Hit    bool
	Target *combat.Combatant
	Event  *combat.Event
}

type service struct {
	repo       combats.Repository
	conditions conditions.Repository
	ledger     ledger.Service
	registry   *ruleset.Registry
	roller     dice.Roller
	ids        uuid.Generator
	monsters   dnd5e.Client
	clock      func() time.Time
	metrics    *metrics.Metrics
	logger     *slog.Logger
	boxes      *mailboxes
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    combats.Repository
	Conditions    conditions.Repository
	Ledger        ledger.Service
	Registry      *ruleset.Registry
	Roller        dice.Roller
	UUIDGenerator uuid.Generator
	Monsters      dnd5e.Client // optional, enables AddMonster
	Clock         func() time.Time
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
	IdleTimeout   time.Duration
}

// NewService creates a new combat service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("combat repository is required")
	}
	if cfg.Conditions == nil {
		panic("condition repository is required")
	}
	if cfg.Ledger == nil {
		panic("ledger service is required")
	}

	svc := &service{
		repo:       cfg.Repository,
		conditions: cfg.Conditions,
		ledger:     cfg.Ledger,
		registry:   cfg.Registry,
		roller:     cfg.Roller,
		ids:        cfg.UUIDGenerator,
		monsters:   cfg.Monsters,
		clock:      cfg.Clock,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
		boxes:      newMailboxes(cfg.IdleTimeout),
	}

	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.registry == nil {
		svc.registry = ruleset.NewDefaultRegistry(svc.roller)
	}
	if svc.ids == nil {
		svc.ids = uuid.NewGoogleUUIDGenerator()
	}
	if svc.clock == nil {
		svc.clock = time.Now
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	return svc
}

func (s *service) Close() {
	s.boxes.close()
}

func (s *service) StartCombat(ctx context.Context, input *StartCombatInput) (*combat.Combat, error) {
	if input == nil {
		return nil, apperr.Validation("input cannot be nil")
	}
	if err := requireID("campaignId", input.CampaignID); err != nil {
		return nil, err
	}

	return execute(ctx, s, input.CampaignID, CommandStart, func() (*combat.Combat, error) {
		existing, err := s.repo.GetByCampaign(ctx, input.CampaignID)
		if err != nil && !apperr.IsNotFound(err) {
			return nil, err
		}

		var next *combat.Combat
		var expected int64
		if existing == nil {
			if strings.TrimSpace(input.WorldID) == "" {
				return nil, apperr.Validation("worldId is required to create a combat")
			}
			rulesetID := s.registry.Resolve(input.RulesetID).ID()
			next = combat.New(s.ids.New(), input.CampaignID, input.WorldID, string(rulesetID), s.clock().UTC())
		} else {
			next = existing.Clone()
			expected = existing.Version
			next.Start()
		}

		payload := &events.CombatPayload{Round: next.Round, Text: "Combat started"}
		if _, err := s.commit(ctx, &commitInput{
			combat:     next,
			expected:   expected,
			eventType:  events.TypeCombatStarted,
			actorName:  input.ActorName,
			visibility: input.Visibility,
			payload:    payload,
		}); err != nil {
			return nil, err
		}

		return next, nil
	})
}

func (s *service) RollInitiative(ctx context.Context, input *RollInitiativeInput) (*combat.Combat, error) {
	if input == nil {
		return nil, apperr.Validation("input cannot be nil")
	}
	if err := requireID("campaignId", input.CampaignID); err != nil {
		return nil, err
	}
	if len(input.Combatants) == 0 {
		return nil, apperr.Validation("at least one combatant is required")
	}

	specs := make([]*combat.Combatant, 0, len(input.Combatants))
	for i, spec := range input.Combatants {
		cb, err := buildCombatant(spec, combat.KindCharacter)
		if err != nil {
			return nil, apperr.Wrapf(err, "combatant %d", i)
		}
		specs = append(specs, cb)
	}

	return execute(ctx, s, input.CampaignID, CommandRollInitiative, func() (*combat.Combat, error) {
		existing, err := s.repo.GetByCampaign(ctx, input.CampaignID)
		if err != nil {
			return nil, err
		}

		next := existing.Clone()
		strategy := s.registry.Resolve(next.RulesetID)

		rolled := make([]*combat.Combatant, 0, len(specs))
		for _, spec := range specs {
			cb := *spec
			roll, err := dice.RollD20(s.roller, strategy.AbilityMod(cb.AttributeScore))
			if err != nil {
				return nil, apperr.Wrap(err, "failed to roll initiative")
			}
			cb.ID = s.ids.New()
			cb.Initiative = roll.Total
			rolled = append(rolled, &cb)
		}
		next.ReplaceCharacters(rolled)

		order := make([]events.InitiativeEntry, 0, len(next.Combatants))
		for _, cb := range next.Combatants {
			order = append(order, events.InitiativeEntry{
				CombatantID: cb.ID,
				Name:        cb.Name,
				Kind:        string(cb.Kind),
				Initiative:  cb.Initiative,
			})
		}

		if _, err := s.commit(ctx, &commitInput{
			combat:     next,
			expected:   existing.Version,
			eventType:  events.TypeInitiative,
			actorName:  input.ActorName,
			visibility: input.Visibility,
			payload:    &events.InitiativePayload{Order: order, Text: "Initiative rolled"},
		}); err != nil {
			return nil, err
		}

		return next, nil
	})
}

func (s *service) AdvanceTurn(ctx context.Context, input *AdvanceTurnInput) (*combat.Combat, error) {
	if input == nil {
		return nil, apperr.Validation("input cannot be nil")
	}
	if err := requireID("campaignId", input.CampaignID); err != nil {
		return nil, err
	}

	dir := input.Direction
	switch dir {
	case "":
		dir = combat.DirectionNext
	case combat.DirectionNext, combat.DirectionPrev:
	default:
		return nil, apperr.Validationf("invalid direction %q", input.Direction)
	}

	return execute(ctx, s, input.CampaignID, CommandAdvanceTurn, func() (*combat.Combat, error) {
		existing, err := s.repo.GetByCampaign(ctx, input.CampaignID)
		if err != nil {
			return nil, err
		}

		next := existing.Clone()
		next.Advance(dir)

		payload := &events.TurnPayload{Round: next.Round, TurnIndex: next.TurnIndex}
		actor := DefaultActor
		if current := next.Current(); current != nil {
			actor = current.Name
			payload.ActorName = current.Name
			payload.CombatantID = current.ID
		}

		if _, err := s.commit(ctx, &commitInput{
			combat:     next,
			expected:   existing.Version,
			eventType:  events.TypeTurn,
			actorName:  actor,
			visibility: input.Visibility,
			payload:    payload,
		}); err != nil {
			return nil, err
		}

		return next, nil
	})
}

func (s *service) ApplyDelta(ctx context.Context, input *ApplyDeltaInput) (*combat.Combatant, error) {
	if input == nil {
		return nil, apperr.Validation("input cannot be nil")
	}
	if err := requireID("campaignId", input.CampaignID); err != nil {
		return nil, err
	}
	if err := requireID("targetId", input.TargetID); err != nil {
		return nil, err
	}

	return execute(ctx, s, input.CampaignID, CommandApplyDelta, func() (*combat.Combatant, error) {
		existing, err := s.repo.GetByCampaign(ctx, input.CampaignID)
		if err != nil {
			return nil, err
		}

		next := existing.Clone()
		target := next.Find(input.TargetID)
		if target == nil {
			return nil, apperr.NotFoundf("combatant %s not found in combat %s", input.TargetID, next.ID)
		}

		change := target.Apply(combat.ResourceDelta{HP: input.DeltaHP, MP: input.DeltaMP})

		if _, err := s.commit(ctx, &commitInput{
			combat:     next,
			expected:   existing.Version,
			eventType:  events.TypeOverride,
			actorName:  input.ActorName,
			visibility: input.Visibility,
			payload: &events.OverridePayload{
				TargetID:   target.ID,
				TargetName: target.Name,
				HPBefore:   change.HPBefore,
				HPAfter:    change.HPAfter,
				MPBefore:   change.MPBefore,
				MPAfter:    change.MPAfter,
				Note:       input.Note,
			},
		}); err != nil {
			return nil, err
		}

		return target, nil
	})
}

func (s *service) EndCombat(ctx context.Context, input *EndCombatInput) (*combat.Combat, error) {
	if input == nil {
		return nil, apperr.Validation("input cannot be nil")
	}
	if err := requireID("campaignId", input.CampaignID); err != nil {
		return nil, err
	}

	return execute(ctx, s, input.CampaignID, CommandEnd, func() (*combat.Combat, error) {
		existing, err := s.repo.GetByCampaign(ctx, input.CampaignID)
		if err != nil {
			return nil, err
		}

		next := existing.Clone()
		next.End()

		if _, err := s.commit(ctx, &commitInput{
			combat:     next,
			expected:   existing.Version,
			eventType:  events.TypeCombatEnded,
			actorName:  input.ActorName,
			visibility: input.Visibility,
			payload:    &events.CombatPayload{Round: next.Round, Text: "Combat ended"},
		}); err != nil {
			return nil, err
		}

		return next, nil
	})
}

func (s *service) ApplyCondition(ctx context.Context, input *ApplyConditionInput) (*ApplyConditionResult, error) {
	if input == nil {
		return nil, apperr.Validation("input cannot be nil")
	}
	if err := requireID("combatId", input.CombatID); err != nil {
		return nil, err
	}
	if err := requireID("targetCombatantId", input.TargetCombatantID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.ConditionID) == "" && strings.TrimSpace(input.ConditionKey) == "" {
		return nil, apperr.Validation("conditionId or conditionKey is required")
	}

	// commands are serialized per campaign, so find the owner first
	owner, err := s.repo.GetByID(ctx, input.CombatID)
	if err != nil {
		s.metrics.CombatCommand(CommandApplyCondition, statusFor(err))
		return nil, err
	}

	return execute(ctx, s, owner.CampaignID, CommandApplyCondition, func() (*ApplyConditionResult, error) {
		existing, err := s.repo.GetByID(ctx, input.CombatID)
		if err != nil {
			return nil, err
		}

		next := existing.Clone()
		target := next.Find(input.TargetCombatantID)
		if target == nil {
			return nil, apperr.NotFoundf("combatant %s not found in combat %s", input.TargetCombatantID, next.ID)
		}

		cond, err := s.resolveCondition(ctx, next.RulesetID, input)
		if err != nil {
			return nil, err
		}

		applied := &combat.AppliedCondition{
			ID:            s.ids.New(),
			CombatID:      next.ID,
			CombatantID:   target.ID,
			ConditionID:   cond.ID,
			ConditionKey:  cond.Key,
			ExpiresAtTurn: input.ExpiresAtTurn,
			CreatedAt:     s.clock().UTC(),
		}

		ev, err := s.commit(ctx, &commitInput{
			combat:     next,
			expected:   existing.Version,
			eventType:  events.TypeConditionApplied,
			actorName:  input.ActorName,
			visibility: input.Visibility,
			payload: &events.ConditionAppliedPayload{
				TargetID:           target.ID,
				TargetName:         target.Name,
				ConditionID:        cond.ID,
				ConditionKey:       cond.Key,
				ConditionName:      cond.Name,
				ExpiresAtTurn:      input.ExpiresAtTurn,
				AppliedConditionID: applied.ID,
				Text:               target.Name + " is " + cond.Name,
			},
			applied: applied,
		})
		if err != nil {
			return nil, err
		}

		return &ApplyConditionResult{Applied: applied, Event: ev}, nil
	})
}

func (s *service) resolveCondition(ctx context.Context, rulesetID string, input *ApplyConditionInput) (*combat.Condition, error) {
	if id := strings.TrimSpace(input.ConditionID); id != "" {
		return s.conditions.Get(ctx, id)
	}
	return s.conditions.GetByKey(ctx, rulesetID, strings.TrimSpace(input.ConditionKey))
}

func (s *service) AddCombatant(ctx context.Context, input *AddCombatantInput) (*combat.Combatant, error) {
	if input == nil {
		return nil, apperr.Validation("input cannot be nil")
	}
	if err := requireID("campaignId", input.CampaignID); err != nil {
		return nil, err
	}

	cb, err := buildCombatant(input.Combatant, combat.KindNPC)
	if err != nil {
		return nil, err
	}

	return s.addCombatant(ctx, input.CampaignID, cb, input.ActorName, input.Visibility)
}

func (s *service) AddMonster(ctx context.Context, input *AddMonsterInput) (*combat.Combatant, error) {
	if input == nil {
		return nil, apperr.Validation("input cannot be nil")
	}
	if err := requireID("campaignId", input.CampaignID); err != nil {
		return nil, err
	}
	if err := requireID("monsterKey", input.MonsterKey); err != nil {
		return nil, err
	}
	if s.monsters == nil {
		return nil, apperr.Internal("monster lookup is not configured")
	}

	monster, err := s.monsters.GetMonster(input.MonsterKey)
	if err != nil {
		s.metrics.CombatCommand(CommandAddCombatant, statusFor(err))
		return nil, apperr.Wrapf(err, "failed to look up monster %s", input.MonsterKey)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = monster.Name
	}

	cb, err := buildCombatant(&CombatantSpec{
		Kind:          string(combat.KindNPC),
		RefID:         monster.Key,
		Name:          name,
		HPMax:         monster.HitPoints,
		AttackBonus:   monster.AttackBonus,
		DamageFormula: monster.DamageFormula,
	}, combat.KindNPC)
	if err != nil {
		return nil, err
	}

	return s.addCombatant(ctx, input.CampaignID, cb, input.ActorName, input.Visibility)
}

func (s *service) addCombatant(ctx context.Context, campaignID string, cb *combat.Combatant, actorName string, visibility events.Visibility) (*combat.Combatant, error) {
	return execute(ctx, s, campaignID, CommandAddCombatant, func() (*combat.Combatant, error) {
		existing, err := s.repo.GetByCampaign(ctx, campaignID)
		if err != nil {
			return nil, err
		}

		roll, err := dice.RollD20(s.roller, 0)
		if err != nil {
			return nil, apperr.Wrap(err, "failed to roll initiative")
		}

		added := *cb
		added.ID = s.ids.New()
		added.Initiative = roll.Total

		next := existing.Clone()
		next.Add(&added)

		if _, err := s.commit(ctx, &commitInput{
			combat:     next,
			expected:   existing.Version,
			eventType:  events.TypeCombatantAdded,
			actorName:  actorName,
			visibility: visibility,
			payload: &events.CombatantAddedPayload{
				CombatantID: added.ID,
				Name:        added.Name,
				Kind:        string(added.Kind),
				Initiative:  added.Initiative,
				Text:        added.Name + " joins the combat",
			},
		}); err != nil {
			return nil, err
		}

		return &added, nil
	})
}

func (s *service) ResolveAttack(ctx context.Context, input *ResolveAttackInput) (*AttackResult, error) {
	if input == nil {
		return nil, apperr.Validation("input cannot be nil")
	}
	if err := requireID("campaignId", input.CampaignID); err != nil {
		return nil, err
	}
	if err := requireID("attackerId", input.AttackerID); err != nil {
		return nil, err
	}
	if err := requireID("targetId", input.TargetID); err != nil {
		return nil, err
	}

	return execute(ctx, s, input.CampaignID, CommandResolveAttack, func() (*AttackResult, error) {
		existing, err := s.repo.GetByCampaign(ctx, input.CampaignID)
		if err != nil {
			return nil, err
		}

		next := existing.Clone()
		attacker := next.Find(input.AttackerID)
		if attacker == nil {
			return nil, apperr.NotFoundf("combatant %s not found in combat %s", input.AttackerID, next.ID)
		}
		target := next.Find(input.TargetID)
		if target == nil {
			return nil, apperr.NotFoundf("combatant %s not found in combat %s", input.TargetID, next.ID)
		}

		strategy := s.registry.Resolve(next.RulesetID)
		attribute := input.Attribute
		if attribute == "" {
			attribute = ruleset.AttributeForca
		}
		sheet := &ruleset.Sheet{
			Attributes:  map[string]int{attribute: attacker.AttributeScore},
			AttackBonus: attacker.AttackBonus,
		}
		attack := &ruleset.Attack{Attribute: attribute, DamageFormula: attacker.DamageFormula}

		attackRoll, err := strategy.ComputeAttack(sheet, attack)
		if err != nil {
			return nil, apperr.Wrap(err, "failed to roll attack")
		}

		result := &AttackResult{
			Attack: attackRoll,
			Hit:    attackRoll.IsNat20 || (!attackRoll.IsNat1 && attackRoll.Total >= target.DefenseFinal),
			Target: target,
		}

		payload := &events.AttackPayload{
			ActorName:  attacker.Name,
			TargetName: target.Name,
			TargetID:   target.ID,
			D20:        attackRoll.D20,
			Modifier:   attackRoll.Modifier,
			Total:      attackRoll.Total,
			Hit:        result.Hit,
		}

		if result.Hit {
			dmg, err := strategy.ComputeDamage(sheet, attack, attackRoll.IsCritThreat)
			if err != nil {
				return nil, apperr.Wrap(err, "failed to roll damage")
			}
			result.Damage = dmg

			loss := -dmg.Total
			target.Apply(combat.ResourceDelta{HP: &loss})

			payload.IsCrit = dmg.IsCrit
			payload.Damage = dmg.Total
			payload.Detail = dmg.Detail
			payload.HPAfter = target.HPCurrent
			payload.Text = attacker.Name + " hits " + target.Name
		} else {
			payload.Text = attacker.Name + " misses " + target.Name
		}

		ev, err := s.commit(ctx, &commitInput{
			combat:     next,
			expected:   existing.Version,
			eventType:  events.TypeAttack,
			actorName:  attacker.Name,
			visibility: input.Visibility,
			payload:    payload,
		})
		if err != nil {
			return nil, err
		}

		result.Event = ev
		return result, nil
	})
}

func (s *service) GetCombat(ctx context.Context, campaignID string) (*combat.Combat, error) {
	if err := requireID("campaignId", campaignID); err != nil {
		return nil, err
	}
	return s.repo.GetByCampaign(ctx, campaignID)
}

func (s *service) GetCombatByID(ctx context.Context, combatID string) (*combat.Combat, error) {
	if err := requireID("combatId", combatID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, combatID)
}

func (s *service) ListCombatEvents(ctx context.Context, combatID string) ([]*combat.Event, error) {
	if err := requireID("combatId", combatID); err != nil {
		return nil, err
	}
	return s.repo.ListEvents(ctx, combatID)
}

func (s *service) ListAppliedConditions(ctx context.Context, combatID string) ([]*combat.AppliedCondition, error) {
	if err := requireID("combatId", combatID); err != nil {
		return nil, err
	}
	return s.repo.ListAppliedConditions(ctx, combatID)
}

type commitInput struct {
	combat     *combat.Combat
	expected   int64
	eventType  events.Type
	actorName  string
	visibility events.Visibility
	payload    any
	applied    *combat.AppliedCondition
}

// commit builds the combat event, projects it and stores everything in one
// repository commit
func (s *service) commit(ctx context.Context, in *commitInput) (*combat.Event, error) {
	payload, err := events.ToPayload(in.payload)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to encode combat event payload")
	}

	actor := strings.TrimSpace(in.actorName)
	if actor == "" {
		actor = DefaultActor
	}

	now := s.clock().UTC()
	in.combat.UpdatedAt = now

	ev := &combat.Event{
		ID:         s.ids.New(),
		CombatID:   in.combat.ID,
		ActorName:  actor,
		Type:       in.eventType,
		Visibility: events.ParseVisibility(string(in.visibility)),
		Payload:    payload,
		TS:         now,
	}
	if in.applied != nil {
		in.applied.CombatEventID = ev.ID
	}

	worldEvent, err := s.ledger.ProjectCombatEvent(ev, &ledger.ProjectionContext{
		WorldID:    in.combat.WorldID,
		CampaignID: in.combat.CampaignID,
		CombatID:   in.combat.ID,
		ActorID:    actor,
	})
	if err != nil {
		return nil, err
	}

	err = s.repo.Commit(ctx, &combats.Commit{
		Combat:          in.combat,
		ExpectedVersion: in.expected,
		Event:           ev,
		WorldEvent:      worldEvent,
		Applied:         in.applied,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to commit combat event",
			"combat_id", in.combat.ID,
			"campaign_id", in.combat.CampaignID,
			"type", in.eventType,
			"error", err,
		)
		return nil, err
	}

	s.metrics.EventAppended(string(worldEvent.Type), ledger.SourceCombat)
	return ev, nil
}

// execute runs fn on the campaign's mailbox and records the command outcome
func execute[T any](ctx context.Context, s *service, campaignID, command string, fn func() (T, error)) (T, error) {
	var (
		result T
		err    error
	)

	if boxErr := s.boxes.do(ctx, campaignID, func() {
		result, err = fn()
	}); boxErr != nil {
		err = boxErr
	}

	s.metrics.CombatCommand(command, statusFor(err))
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

func statusFor(err error) string {
	switch {
	case err == nil:
		return metrics.StatusOK
	case apperr.IsNotFound(err):
		return metrics.StatusNotFound
	case apperr.IsValidation(err), apperr.IsInvalidArgument(err):
		return metrics.StatusInvalid
	case apperr.IsConflict(err):
		return metrics.StatusConflict
	default:
		return metrics.StatusError
	}
}

func requireID(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Validationf("%s is required", field)
	}
	return nil
}

// buildCombatant validates spec and fills defaults. kind is used when the
// spec names none.
func buildCombatant(spec *CombatantSpec, kind combat.Kind) (*combat.Combatant, error) {
	if spec == nil {
		return nil, apperr.Validation("combatant is required")
	}

	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return nil, apperr.Validation("combatant name is required")
	}

	if spec.Kind != "" {
		parsed, ok := combat.ParseKind(strings.ToUpper(strings.TrimSpace(spec.Kind)))
		if !ok {
			return nil, apperr.Validationf("invalid combatant kind %q", spec.Kind)
		}
		kind = parsed
	}

	if spec.HPMax < 0 || spec.MPMax < 0 {
		return nil, apperr.Validation("hpMax and mpMax cannot be negative")
	}

	formula := strings.TrimSpace(spec.DamageFormula)
	if formula != "" {
		if _, ok := dice.ParseFormula(formula); !ok {
			return nil, apperr.Validationf("invalid damage formula %q", spec.DamageFormula)
		}
	}

	cb := &combat.Combatant{
		Kind:           kind,
		RefID:          spec.RefID,
		Name:           name,
		AttributeScore: spec.AttributeScore,
		HPMax:          spec.HPMax,
		HPCurrent:      spec.HPMax,
		MPMax:          spec.MPMax,
		MPCurrent:      spec.MPMax,
		DefenseFinal:   spec.DefenseFinal,
		AttackBonus:    spec.AttackBonus,
		DamageFormula:  formula,
	}
	if spec.HPCurrent != nil {
		cb.HPCurrent = *spec.HPCurrent
	}
	if spec.MPCurrent != nil {
		cb.MPCurrent = *spec.MPCurrent
	}
	cb.Normalize()

	return cb, nil
}
