package ruleset

import (
	"sort"

	"github.com/KirkDiggler/tabletop-ledger/internal/dice"
)

// Registry maps ruleset ids to strategies. It is built once before serving
// traffic and never mutated afterwards.
type Registry struct {
	strategies map[ID]Strategy
	fallback   Strategy
}

// NewRegistry builds a registry from strategies. The first strategy whose id
// matches Default becomes the fallback; without one the first strategy is used.
func NewRegistry(strategies ...Strategy) *Registry {
	r := &Registry{
		strategies: make(map[ID]Strategy, len(strategies)),
	}

	for _, s := range strategies {
		if s == nil {
			continue
		}
		r.strategies[s.ID()] = s
		if r.fallback == nil {
			r.fallback = s
		}
	}

	if s, ok := r.strategies[Default]; ok {
		r.fallback = s
	}

	if r.fallback == nil {
		r.fallback = NewTormenta20(nil)
		r.strategies[Default] = r.fallback
	}

	return r
}

// NewDefaultRegistry returns the registry with every ruleset that ships with the service
func NewDefaultRegistry(roller dice.Roller) *Registry {
	return NewRegistry(NewTormenta20(roller))
}

// Resolve returns the strategy for id, or the default strategy when id is
// empty or unknown.
func (r *Registry) Resolve(id string) Strategy {
	if s, ok := r.strategies[ID(id)]; ok {
		return s
	}
	return r.fallback
}

// IDs lists the registered ruleset ids
func (r *Registry) IDs() []ID {
	ids := make([]ID, 0, len(r.strategies))
	for id := range r.strategies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
