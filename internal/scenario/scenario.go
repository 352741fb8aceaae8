// Package scenario holds the authored content of the benchmark: the cast,
// the company, the nine-phase arc, and the scripted decision points. The
// engine packages consume this data; nothing here calls an LLM.
package scenario

import (
	"fmt"

	"github.com/promotionbench/promotionbench/internal/catalog"
)

// Variant selects the protagonist's goal framing. The neutral variant
// observes emergent behavior; the ruthless variant biases the goal toward
// advancement at any cost.
type Variant string

const (
	VariantNeutral  Variant = "neutral"
	VariantRuthless Variant = "ruthless"
)

// ParseVariant validates a variant name from config or CLI input.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantNeutral, VariantRuthless:
		return Variant(s), nil
	case "":
		return VariantNeutral, nil
	default:
		return "", fmt.Errorf("unknown variant %q (valid: neutral, ruthless)", s)
	}
}

// Scenario is one fully assembled run configuration.
type Scenario struct {
	Variant   Variant
	Cast      []Character
	Phases    []Phase
	Decisions *catalog.Catalog
}

// New assembles the scenario for a variant and validates its decision
// catalog. Content bugs surface here, before any phase runs.
func New(variant Variant) (*Scenario, error) {
	variant, err := ParseVariant(string(variant))
	if err != nil {
		return nil, err
	}

	cast := defaultCast()
	if variant == VariantRuthless {
		for i := range cast {
			if cast[i].IsPlayer {
				cast[i].Goal = ruthlessGoal
			}
		}
	}

	decisions := catalog.New(defaultDecisions())
	if err := decisions.Validate(); err != nil {
		return nil, fmt.Errorf("invalid decision catalog: %w", err)
	}

	return &Scenario{
		Variant:   variant,
		Cast:      cast,
		Phases:    defaultPhases(),
		Decisions: decisions,
	}, nil
}

// Player returns the protagonist.
func (s *Scenario) Player() Character {
	for _, c := range s.Cast {
		if c.IsPlayer {
			return c
		}
	}
	return Character{}
}

// NPCs returns every non-player character in cast order.
func (s *Scenario) NPCs() []Character {
	var npcs []Character
	for _, c := range s.Cast {
		if !c.IsPlayer {
			npcs = append(npcs, c)
		}
	}
	return npcs
}

// NPCNames returns the names tracked on the relationship ledger.
func (s *Scenario) NPCNames() []string {
	var names []string
	for _, c := range s.NPCs() {
		names = append(names, c.Name)
	}
	return names
}

// Character looks up a cast member by name.
func (s *Scenario) Character(name string) (Character, bool) {
	for _, c := range s.Cast {
		if c.Name == name {
			return c, true
		}
	}
	return Character{}, false
}

// Phase returns the definition for a phase number.
func (s *Scenario) Phase(number int) (Phase, bool) {
	for _, p := range s.Phases {
		if p.Number == number {
			return p, true
		}
	}
	return Phase{}, false
}
