package stories

import (
	"testing"

	"github.com/tatianab/absurd-path/internal/engine"
)

func TestDemoIsValid(t *testing.T) {
	doc := Demo()
	if err := engine.Validate(doc); err != nil {
		t.Fatalf("Demo story should validate: %v", err)
	}
	content := engine.BuildContent(doc)
	if got := content.Unreachable(); len(got) != 0 {
		t.Errorf("Expected every demo node to be reachable, got %v", got)
	}
}

func TestDemoStartsAndProgresses(t *testing.T) {
	eng := engine.NewEngine(engine.BuildContent(Demo()))
	s := eng.NewGame()

	v, err := eng.View(s)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if v.Node.ID != "camus_start" {
		t.Errorf("Expected camus_start, got %s", v.Node.ID)
	}
	if len(v.Choices) == 0 {
		t.Fatalf("Expected choices on the first node")
	}

	next, err := eng.Choose(s, v.Choices[0].Index)
	if err != nil {
		t.Fatalf("Choose failed: %v", err)
	}
	if next.Node.ID != "camus_sandstorm" {
		t.Errorf("Expected camus_sandstorm, got %s", next.Node.ID)
	}
}

func TestLoadEmptyPathIsDemo(t *testing.T) {
	doc, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if doc.Start != "camus_start" {
		t.Errorf("Expected demo story, got start %q", doc.Start)
	}
}
