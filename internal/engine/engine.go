package engine

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/tatianab/absurd-path/internal/models"
)

var (
	// ErrMissingNode is returned when the state points at a node the
	// content does not define.
	ErrMissingNode = errors.New("missing node")
	// ErrInvalidChoice is returned when a choice index is out of range or
	// names a choice whose conditions are not met.
	ErrInvalidChoice = errors.New("invalid choice index")
)

// ChoiceView is a visible choice. Index is the position in the node's full
// choice list and is what Choose expects back.
type ChoiceView struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// NodeView is the per-call projection handed to callers. It shares no
// memory with the Content or the GameState it was built from.
type NodeView struct {
	Node    models.NodeDef  `json:"node"`
	Choices []ChoiceView    `json:"choices"`
	Stats   models.Stats    `json:"stats"`
	Flags   map[string]bool `json:"flags"`
	Visited []string        `json:"visited"`
	Journal []string        `json:"journal"`
}

// Engine traverses a Content. It holds no per-player state; the same
// Engine serves any number of GameStates.
type Engine struct {
	content *Content
}

func NewEngine(content *Content) *Engine {
	return &Engine{content: content}
}

// Content returns the story the engine traverses.
func (e *Engine) Content() *Content {
	return e.content
}

// NewGame returns a fresh GameState at the content's start node.
func (e *Engine) NewGame() *models.GameState {
	return models.NewGameState(e.content.Start())
}

// View records the current node as visited and returns its projection.
func (e *Engine) View(state *models.GameState) (NodeView, error) {
	node, err := e.node(state.Current)
	if err != nil {
		return NodeView{}, err
	}
	markVisited(state, node.ID)

	choices := []ChoiceView{}
	for i, c := range node.Choices {
		if ChoiceIsAvailable(c, state) {
			choices = append(choices, ChoiceView{Index: i, Text: c.Text})
		}
	}

	flags := map[string]bool{}
	for k, v := range state.Flags {
		if v {
			flags[k] = true
		}
	}

	return NodeView{
		Node:    node.Clone(),
		Choices: choices,
		Stats:   maps.Clone(state.Stats),
		Flags:   flags,
		Visited: slices.Clone(state.Visited),
		Journal: slices.Clone(state.Journal),
	}, nil
}

// Choose takes the choice at index (its position in the node's full
// choice list), applies its effects, moves to its target and returns the
// new view. The state is left untouched if the index is not available.
func (e *Engine) Choose(state *models.GameState, index int) (NodeView, error) {
	node, err := e.node(state.Current)
	if err != nil {
		return NodeView{}, err
	}
	if index < 0 || index >= len(node.Choices) || !ChoiceIsAvailable(node.Choices[index], state) {
		return NodeView{}, fmt.Errorf("%w: %d", ErrInvalidChoice, index)
	}
	picked := node.Choices[index]

	markVisited(state, node.ID)
	for _, eff := range picked.Effects {
		ApplyEffect(eff, state)
	}
	// The target is resolved by View, which reports a dangling next.
	state.Current = picked.Next

	return e.View(state)
}

func (e *Engine) node(id string) (models.NodeDef, error) {
	n, ok := e.content.Node(id)
	if !ok {
		return models.NodeDef{}, fmt.Errorf("%w: %q", ErrMissingNode, id)
	}
	return n, nil
}

func markVisited(state *models.GameState, id string) {
	if !slices.Contains(state.Visited, id) {
		state.Visited = append(state.Visited, id)
	}
}
