package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/absurd-path/internal/engine"
	"github.com/tatianab/absurd-path/internal/models"
	"github.com/tatianab/absurd-path/internal/stories"
)

func demoEngine() *engine.Engine {
	return engine.NewEngine(engine.BuildContent(stories.Demo()))
}

func TestRunToTheEnd(t *testing.T) {
	eng := demoEngine()
	state := eng.NewGame()
	var out bytes.Buffer

	// Wander -> Rest at the oasis -> Close your eyes.
	outcome, err := Run(eng, state, strings.NewReader("2\n2\n1\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, Ended, outcome)
	assert.Equal(t, "the_end", state.Current)
	assert.Equal(t, 2, state.Stats[models.Faith])

	text := out.String()
	assert.Contains(t, text, "[camus_oasis] Oasis Mirage")
	assert.Contains(t, text, "THE JOURNEY PAUSES HERE")
	assert.Contains(t, text, "01. Dreams may be truer than paths.")
	assert.Contains(t, text, "Faith:+2")
}

func TestRunRejectsBadInput(t *testing.T) {
	eng := demoEngine()
	state := eng.NewGame()
	var out bytes.Buffer

	outcome, err := Run(eng, state, strings.NewReader("9\nabc\n0\nq\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, Quit, outcome)
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid selection."))
	assert.Contains(t, out.String(), "Goodbye.")
	assert.Equal(t, "camus_start", state.Current)
}

func TestRunInputClosed(t *testing.T) {
	eng := demoEngine()
	state := eng.NewGame()

	outcome, err := Run(eng, state, strings.NewReader("1\n"), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, InputClosed, outcome)
	assert.Equal(t, "camus_sandstorm", state.Current)
}

func TestRunUsesOriginalIndex(t *testing.T) {
	eng := engine.NewEngine(engine.BuildContent(models.ContentDoc{Start: "a", Nodes: []models.NodeDef{
		{ID: "a", Choices: []models.Choice{
			{Text: "hidden", Next: "x", Conditions: []models.Condition{{FlagSet: models.Flag("k")}}},
			{Text: "shown", Next: "b"},
		}},
		{ID: "b", End: true},
		{ID: "x", End: true},
	}}))
	state := eng.NewGame()
	var out bytes.Buffer

	outcome, err := Run(eng, state, strings.NewReader("1\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, Ended, outcome)
	assert.Equal(t, "b", state.Current)
	assert.Contains(t, out.String(), "(empty)")
}

func TestRunDeadEnd(t *testing.T) {
	eng := engine.NewEngine(engine.BuildContent(models.ContentDoc{Start: "a", Nodes: []models.NodeDef{
		{ID: "a", Choices: []models.Choice{{Text: "locked", Next: "a", Conditions: []models.Condition{{FlagSet: models.Flag("k")}}}}},
	}}))
	var out bytes.Buffer

	outcome, err := Run(eng, eng.NewGame(), strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Equal(t, DeadEnd, outcome)
	assert.Contains(t, out.String(), "The world refuses to respond.")
}

func TestRunMissingStart(t *testing.T) {
	eng := engine.NewEngine(engine.BuildContent(models.ContentDoc{Start: "ghost"}))
	_, err := Run(eng, eng.NewGame(), strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, engine.ErrMissingNode)
}
