package conditions

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/tabletop-ledger/internal/domain/combat"
	apperr "github.com/KirkDiggler/tabletop-ledger/internal/errors"
)

//go:embed tormenta20.yaml
var tormenta20Catalog []byte

type catalogFile struct {
	Conditions []*combat.Condition `yaml:"conditions"`
}

type catalog struct {
	mu    sync.RWMutex
	byID  map[string]*combat.Condition
	byKey map[string]*combat.Condition // rulesetID + "/" + key
}

// NewCatalog loads the embedded reference catalog
func NewCatalog() (Repository, error) {
	return LoadCatalog(bytes.NewReader(tormenta20Catalog))
}

// LoadCatalog parses a YAML catalog. Ids must be unique, as must keys within a ruleset.
func LoadCatalog(r io.Reader) (Repository, error) {
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode condition catalog: %w", err)
	}

	c := &catalog{
		byID:  make(map[string]*combat.Condition, len(file.Conditions)),
		byKey: make(map[string]*combat.Condition, len(file.Conditions)),
	}

	for _, cond := range file.Conditions {
		if cond.ID == "" || cond.Key == "" || cond.RulesetID == "" {
			return nil, fmt.Errorf("condition %q is missing id, key or ruleset", cond.Name)
		}
		if _, dup := c.byID[cond.ID]; dup {
			return nil, fmt.Errorf("duplicate condition id %q", cond.ID)
		}
		k := catalogKey(cond.RulesetID, cond.Key)
		if _, dup := c.byKey[k]; dup {
			return nil, fmt.Errorf("duplicate condition key %q in ruleset %q", cond.Key, cond.RulesetID)
		}
		c.byID[cond.ID] = cond
		c.byKey[k] = cond
	}

	return c, nil
}

func catalogKey(rulesetID, key string) string {
	return rulesetID + "/" + strings.ToLower(strings.TrimSpace(key))
}

func (c *catalog) Get(ctx context.Context, id string) (*combat.Condition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cond, ok := c.byID[id]
	if !ok {
		return nil, apperr.NotFoundf("condition %s not found", id)
	}
	cp := *cond
	return &cp, nil
}

func (c *catalog) GetByKey(ctx context.Context, rulesetID, key string) (*combat.Condition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cond, ok := c.byKey[catalogKey(rulesetID, key)]
	if !ok {
		return nil, apperr.NotFoundf("condition %s not found in ruleset %s", key, rulesetID)
	}
	cp := *cond
	return &cp, nil
}

func (c *catalog) List(ctx context.Context, rulesetID string) ([]*combat.Condition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*combat.Condition, 0)
	for _, cond := range c.byID {
		if cond.RulesetID == rulesetID {
			cp := *cond
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })

	return result, nil
}
