package engine

import (
	"errors"
	"fmt"

	"github.com/tatianab/absurd-path/internal/models"
)

// ErrInvalidContent wraps every problem reported by Validate.
var ErrInvalidContent = errors.New("invalid content")

// Validate checks doc eagerly for the mistakes BuildContent tolerates:
// an unset or unknown start, repeated ids, dangling next references,
// unknown stats and unknown operators. All problems are returned joined;
// a nil error means the document is clean. Validation is opt-in and never
// required before BuildContent.
func Validate(doc models.ContentDoc) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidContent, fmt.Sprintf(format, args...)))
	}

	ids := make(map[string]int, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if n.ID == "" {
			add("node with empty id")
			continue
		}
		ids[n.ID]++
		if ids[n.ID] == 2 {
			add("duplicate node id %q", n.ID)
		}
	}

	switch {
	case doc.Start == "":
		add("start node is not set")
	case ids[doc.Start] == 0:
		add("start node %q is not defined", doc.Start)
	}

	for _, n := range doc.Nodes {
		for i, c := range n.Choices {
			where := fmt.Sprintf("node %q choice %d", n.ID, i)
			if c.Next == "" {
				add("%s has no next node", where)
			} else if ids[c.Next] == 0 {
				add("%s points at undefined node %q", where, c.Next)
			}
			for _, cond := range c.Conditions {
				if cond.FlagSet != nil || cond.FlagUnset != nil || cond.Stat == "" {
					continue
				}
				if !cond.Stat.Valid() {
					add("%s tests unknown stat %q", where, cond.Stat)
				}
				if !validOp(cond.Op) {
					add("%s uses unknown operator %q", where, cond.Op)
				}
			}
			for _, eff := range c.Effects {
				if eff.Stat != "" && !eff.Stat.Valid() {
					add("%s changes unknown stat %q", where, eff.Stat)
				}
			}
		}
	}
	return errors.Join(errs...)
}

func validOp(op string) bool {
	switch op {
	case models.OpGT, models.OpGE, models.OpLT, models.OpLE, models.OpEQ, models.OpNE:
		return true
	}
	return false
}
