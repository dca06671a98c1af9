package summary_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/combat"
	"github.com/KirkDiggler/tabletop-ledger/internal/domain/events"
	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
	mockledgerservice "github.com/KirkDiggler/tabletop-ledger/internal/services/ledger/mock"
	"github.com/KirkDiggler/tabletop-ledger/internal/services/summary"
	mocksummary "github.com/KirkDiggler/tabletop-ledger/internal/services/summary/mock"
)

var base = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

func ev(i int, t events.Type, payload events.Payload) *events.WorldEvent {
	return &events.WorldEvent{
		ID:         fmt.Sprintf("ev-%02d", i),
		WorldID:    "world-1",
		Type:       t,
		Visibility: events.VisibilityPlayers,
		Payload:    payload,
		TS:         base.Add(time.Duration(i) * time.Minute),
	}
}

func TestSummarize_Empty(t *testing.T) {
	d := summary.Summarize(nil)

	assert.Zero(t, d.EventCount)
	assert.Empty(t, d.Participants)
	assert.Empty(t, d.Highlights)
	assert.Empty(t, d.Hooks)
	assert.NotNil(t, d.Notes)
}

func TestSummarize_CollectsEverything(t *testing.T) {
	list := []*events.WorldEvent{
		ev(1, events.TypeLocationDiscovery, events.Payload{"name": "Valkaria", "text": "O grupo chega a Valkaria"}),
		ev(2, events.TypeNPCMention, events.Payload{"name": "Mestre Arsenal"}),
		ev(3, events.TypeNPCMention, events.Payload{"name": "mestre arsenal"}),
		ev(4, events.TypeItemMention, events.Payload{"name": "Adaga de Prata"}),
		ev(5, events.TypeTurn, events.Payload{"round": 1, "turnIndex": 0, "actorName": "Aria"}),
		ev(6, events.TypeAttack, events.Payload{
			"actorName": "Aria", "targetName": "Goblin", "d20": 20, "total": 22,
			"hit": true, "isCrit": true, "damage": 12,
		}),
		ev(7, events.TypeNote, events.Payload{"text": "A ponte esta rachada"}),
		ev(8, events.TypeAttack, events.Payload{"actorName": "Goblin", "targetName": "Bram", "d20": 1, "total": 3}),
		ev(9, events.TypeRoll, events.Payload{"actorName": "Bram", "total": 14, "formula": "1d20+2"}),
		ev(10, events.TypeDamage, events.Payload{"amount": 4, "targetName": "Bram"}),
		ev(11, events.TypeNote, events.Payload{"text": "Alguem observa das sombras"}),
	}

	d := summary.Summarize(list)

	assert.Equal(t, 11, d.EventCount)
	assert.Equal(t, []string{"Aria", "Goblin", "Bram"}, d.Participants)
	assert.Equal(t, []string{"Mestre Arsenal"}, d.NPCs)
	assert.Equal(t, []string{"Adaga de Prata"}, d.Items)
	assert.Equal(t, []string{"A ponte esta rachada", "Alguem observa das sombras"}, d.Notes)

	require.GreaterOrEqual(t, len(d.Highlights), 4)
	assert.Equal(t, []string{
		"Aria critically hits Goblin for 12 damage",
		"Goblin misses Bram",
		"Bram rolled 14 on 1d20+2",
		"Bram takes 4 damage",
	}, d.Highlights[:4])
	assert.Contains(t, d.Highlights, "O grupo chega a Valkaria")

	assert.Equal(t, []string{"Alguem observa das sombras", "A ponte esta rachada"}, d.Hooks)
}

func TestSummarize_Caps(t *testing.T) {
	var list []*events.WorldEvent
	for i := 0; i < 15; i++ {
		list = append(list,
			ev(i*3, events.TypeNote, events.Payload{"text": fmt.Sprintf("nota %d", i)}),
			ev(i*3+1, events.TypeNPCMention, events.Payload{"name": fmt.Sprintf("npc %d", i)}),
			ev(i*3+2, events.TypeDamage, events.Payload{"amount": i, "targetName": "Orc"}),
		)
	}

	d := summary.Summarize(list)

	assert.Len(t, d.Notes, summary.MaxNotes)
	assert.Len(t, d.NPCs, summary.MaxMentions)
	assert.Len(t, d.Highlights, summary.MaxHighlights)
	assert.Len(t, d.Hooks, summary.MaxHooks)
	for _, line := range d.Highlights {
		assert.Contains(t, line, "damage", "damage lines outrank notes")
	}
}

func TestSummarize_Deterministic(t *testing.T) {
	list := []*events.WorldEvent{
		ev(1, events.TypeNote, events.Payload{"text": "a"}),
		ev(2, events.TypeRollDice, events.Payload{"total": 3}),
	}

	assert.Equal(t, summary.Summarize(list), summary.Summarize(list))
}

func TestSummarizeWorld(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledgerSvc := mockledgerservice.NewMockService(ctrl)
	combats := mocksummary.NewMockCombatReader(ctrl)

	secret := ev(2, events.TypeNote, events.Payload{"text": "o vilao e o prefeito"})
	secret.Visibility = events.VisibilityMaster

	ledgerSvc.EXPECT().ListWorldEvents(gomock.Any(), "world-1", 50).Return([]*events.WorldEvent{
		ev(1, events.TypeNote, events.Payload{"text": "a taverna pega fogo"}),
		secret,
	}, nil).Times(2)
	combats.EXPECT().GetCombat(gomock.Any(), "camp-1").Return(&combat.Combat{ID: "c1", IsActive: true, Round: 3}, nil).Times(2)

	svc := summary.NewService(&summary.ServiceConfig{Ledger: ledgerSvc, Combats: combats})

	players, err := svc.SummarizeWorld(context.Background(), &summary.SummarizeWorldInput{
		WorldID:    "world-1",
		CampaignID: "camp-1",
		Limit:      50,
	})
	require.NoError(t, err)
	assert.True(t, players.CombatActive)
	assert.Equal(t, 3, players.CombatRound)
	assert.Equal(t, []string{"a taverna pega fogo"}, players.Digest.Notes)

	master, err := svc.SummarizeWorld(context.Background(), &summary.SummarizeWorldInput{
		WorldID:       "world-1",
		CampaignID:    "camp-1",
		Limit:         50,
		IncludeMaster: true,
	})
	require.NoError(t, err)
	assert.Len(t, master.Digest.Notes, 2)
}

func TestSummarizeWorld_NoCombatIsFine(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledgerSvc := mockledgerservice.NewMockService(ctrl)
	combats := mocksummary.NewMockCombatReader(ctrl)

	ledgerSvc.EXPECT().ListWorldEvents(gomock.Any(), "world-1", 0).Return(nil, nil)
	combats.EXPECT().GetCombat(gomock.Any(), "camp-1").Return(nil, apperr.NotFound("no combat"))

	svc := summary.NewService(&summary.ServiceConfig{Ledger: ledgerSvc, Combats: combats})
	result, err := svc.SummarizeWorld(context.Background(), &summary.SummarizeWorldInput{WorldID: "world-1", CampaignID: "camp-1"})
	require.NoError(t, err)
	assert.False(t, result.CombatActive)
	assert.Zero(t, result.Digest.EventCount)
}

func TestSummarizeWorld_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledgerSvc := mockledgerservice.NewMockService(ctrl)

	svc := summary.NewService(&summary.ServiceConfig{Ledger: ledgerSvc})

	_, err := svc.SummarizeWorld(context.Background(), &summary.SummarizeWorldInput{})
	assert.True(t, apperr.IsValidation(err))

	ledgerSvc.EXPECT().ListWorldEvents(gomock.Any(), "world-1", 0).
		Return(nil, apperr.Persistence(errors.New("timeout"), "failed to list"))

	_, err = svc.SummarizeWorld(context.Background(), &summary.SummarizeWorldInput{WorldID: "world-1", CampaignID: "camp-1"})
	assert.True(t, apperr.IsPersistence(err))
}
