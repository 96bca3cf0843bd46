package engine

import (
	"fmt"
	"strings"

	"github.com/tatianab/absurd-path/internal/models"
)

// CondIsMet evaluates cond against state. Unknown operators fail closed.
func CondIsMet(cond models.Condition, state *models.GameState) bool {
	if cond.FlagSet != nil {
		return state.Flags[*cond.FlagSet]
	}
	if cond.FlagUnset != nil {
		return !state.Flags[*cond.FlagUnset]
	}
	if cond.Stat == "" {
		return true
	}

	lhs := state.Stats[cond.Stat]
	rhs := cond.Value
	switch cond.Op {
	case models.OpGT:
		return lhs > rhs
	case models.OpGE:
		return lhs >= rhs
	case models.OpLT:
		return lhs < rhs
	case models.OpLE:
		return lhs <= rhs
	case models.OpEQ:
		return lhs == rhs
	case models.OpNE:
		return lhs != rhs
	default:
		return false
	}
}

// ChoiceIsAvailable reports whether every condition on choice holds.
func ChoiceIsAvailable(choice models.Choice, state *models.GameState) bool {
	for _, cond := range choice.Conditions {
		if !CondIsMet(cond, state) {
			return false
		}
	}
	return true
}

// ApplyEffect mutates state. Fields fire in order: stat delta, set flag,
// clear flag, journal. Stats outside models.StatKeys are ignored so the
// stat set stays fixed.
func ApplyEffect(effect models.Effect, state *models.GameState) {
	if effect.Stat != "" && effect.Stat.Valid() {
		state.Stats[effect.Stat] += effect.Delta
	}
	if effect.SetFlag != "" {
		state.Flags[effect.SetFlag] = true
	}
	if effect.ClearFlag != "" {
		delete(state.Flags, effect.ClearFlag)
	}
	if effect.Journal != "" {
		state.Journal = append(state.Journal, effect.Journal)
	}
}

// StatsLine renders every stat with an explicit sign, e.g. "Absurdism:+1 Freedom:-2 ...".
func StatsLine(state *models.GameState) string {
	parts := make([]string, len(models.StatKeys))
	for i, k := range models.StatKeys {
		parts[i] = fmt.Sprintf("%s:%+d", k, state.Stats[k])
	}
	return strings.Join(parts, " ")
}
