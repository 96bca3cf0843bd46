// Package stories bundles the demo story shipped with the binary.
package stories

import (
	_ "embed"

	"github.com/tatianab/absurd-path/internal/models"
)

//go:embed absurd.yaml
var absurdYAML []byte

// Demo returns the built-in "Tower That Isn't There" story.
func Demo() models.ContentDoc {
	doc, err := models.ParseContentDoc(absurdYAML)
	if err != nil {
		panic("stories: embedded demo does not parse: " + err.Error())
	}
	return doc
}

// Load returns the story at path, or the demo when path is empty.
func Load(path string) (models.ContentDoc, error) {
	if path == "" {
		return Demo(), nil
	}
	return models.LoadContentDoc(path)
}
