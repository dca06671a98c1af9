package dnd5e

import (
	"net/http"
	"strings"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"

	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
)

// TODO: add context to functions once the upstream client accepts one
type client struct {
	client dnd5e.Interface
}

type Config struct {
	HttpClient *http.Client
}

func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, apperr.InvalidArgument("cfg is required")
	}

	dndClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client: cfg.HttpClient,
	})
	if err != nil {
		return nil, apperr.Wrap(err, "failed to create dnd5e api client")
	}

	return &client{
		client: dndClient,
	}, nil
}

func (c *client) GetMonster(key string) (*Monster, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return nil, apperr.InvalidArgument("monster key is required")
	}

	monster, err := c.client.GetMonster(key)
	if err != nil {
		return nil, apperr.Wrapf(err, "failed to get monster %s", key)
	}
	if monster == nil {
		return nil, apperr.NotFoundf("monster %s not found", key)
	}

	return apiToMonster(monster), nil
}

func apiToMonster(input *apiEntities.Monster) *Monster {
	out := &Monster{
		Key:       input.Key,
		Name:      input.Name,
		HitPoints: int(input.HitPoints),
	}

	// first action with a damage roll becomes the default attack
	for _, action := range input.MonsterActions {
		if action == nil {
			continue
		}
		formula := firstDamageDice(action.Damage)
		if formula == "" {
			continue
		}
		out.ActionName = action.Name
		out.AttackBonus = int(action.AttackBonus)
		out.DamageFormula = formula
		break
	}

	return out
}

func firstDamageDice(input []*apiEntities.Damage) string {
	for _, d := range input {
		if d == nil {
			continue
		}
		if dice := strings.ReplaceAll(d.DamageDice, " ", ""); dice != "" {
			return dice
		}
	}
	return ""
}
