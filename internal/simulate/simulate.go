// Package simulate plays stories automatically to check how authored
// content behaves: which endings are reached, which nodes are never seen,
// and where players get stuck.
package simulate

import (
	"math/rand/v2"
	"sort"

	"github.com/tatianab/absurd-path/internal/engine"
	"github.com/tatianab/absurd-path/internal/models"
)

// DefaultMaxSteps bounds a single playthrough.
const DefaultMaxSteps = 200

// Status is how a playthrough stopped.
type Status string

const (
	StatusEnded   Status = "ENDED"
	StatusDeadEnd Status = "DEAD_END"
	StatusCapped  Status = "CAPPED"
	StatusError   Status = "ERROR"
)

// Run is the result of one playthrough.
type Run struct {
	Status Status
	Final  string
	Steps  int
	State  *models.GameState
	Err    error
}

// Walk plays state forward, picking uniformly among the visible choices,
// until an end node, a node with no visible choice, maxSteps choices or
// an engine error.
func Walk(eng *engine.Engine, state *models.GameState, rng *rand.Rand, maxSteps int) Run {
	view, err := eng.View(state)
	for steps := 0; ; steps++ {
		switch {
		case err != nil:
			return Run{Status: StatusError, Final: state.Current, Steps: steps, State: state, Err: err}
		case view.Node.End:
			return Run{Status: StatusEnded, Final: state.Current, Steps: steps, State: state}
		case len(view.Choices) == 0:
			return Run{Status: StatusDeadEnd, Final: state.Current, Steps: steps, State: state}
		case steps >= maxSteps:
			return Run{Status: StatusCapped, Final: state.Current, Steps: steps, State: state}
		}
		picked := view.Choices[rng.IntN(len(view.Choices))]
		view, err = eng.Choose(state, picked.Index)
	}
}

// Report aggregates many playthroughs.
type Report struct {
	Runs      int
	Endings   map[string]int
	DeadEnds  map[string]int
	Capped    int
	Errors    map[string]int
	Visited   map[string]int
	Unvisited []string
	MaxSteps  int
	AvgSteps  float64
	AvgStats  map[models.StatKey]float64
}

// Explore plays runs games from the content's start with a generator
// seeded by seed, so results are reproducible. onRun, if set, is called
// after every playthrough.
func Explore(content *engine.Content, runs int, seed uint64, maxSteps int, onRun func(Run)) Report {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	eng := engine.NewEngine(content)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	rep := Report{
		Endings:  map[string]int{},
		DeadEnds: map[string]int{},
		Errors:   map[string]int{},
		Visited:  map[string]int{},
		AvgStats: map[models.StatKey]float64{},
	}
	totalSteps := 0
	for i := 0; i < runs; i++ {
		run := Walk(eng, eng.NewGame(), rng, maxSteps)
		rep.Runs++
		totalSteps += run.Steps
		if run.Steps > rep.MaxSteps {
			rep.MaxSteps = run.Steps
		}
		switch run.Status {
		case StatusEnded:
			rep.Endings[run.Final]++
		case StatusDeadEnd:
			rep.DeadEnds[run.Final]++
		case StatusCapped:
			rep.Capped++
		case StatusError:
			rep.Errors[run.Err.Error()]++
		}
		for _, id := range run.State.Visited {
			rep.Visited[id]++
		}
		for _, k := range models.StatKeys {
			rep.AvgStats[k] += float64(run.State.Stats[k])
		}
		if onRun != nil {
			onRun(run)
		}
	}

	if rep.Runs > 0 {
		rep.AvgSteps = float64(totalSteps) / float64(rep.Runs)
		for k := range rep.AvgStats {
			rep.AvgStats[k] /= float64(rep.Runs)
		}
	}
	rep.Unvisited = []string{}
	for _, id := range content.IDs() {
		if rep.Visited[id] == 0 {
			rep.Unvisited = append(rep.Unvisited, id)
		}
	}
	return rep
}

// Count is a key with its tally.
type Count struct {
	Key string
	N   int
}

// Sorted orders a tally by count, highest first, then by key.
func Sorted(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, n := range m {
		out = append(out, Count{Key: k, N: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Key < out[j].Key
	})
	return out
}
