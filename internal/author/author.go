// Package author drafts new stories with Gemini.
package author

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/absurd-path/internal/engine"
	"github.com/tatianab/absurd-path/internal/models"
)

//go:embed prompts/draft_story.txt
var draftStoryPrompt string

const (
	minNodes = 6
	maxNodes = 14
)

// Drafter turns a one-line hint into a ContentDoc.
type Drafter struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewDrafter(ctx context.Context, apiKey, modelName string) (*Drafter, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &Drafter{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

func (d *Drafter) Close() {
	d.client.Close()
}

// Draft asks the model for a story and returns it once it parses and
// passes engine.Validate. On a validation failure the document is still
// returned with the error so the caller can save it for hand editing.
func (d *Drafter) Draft(ctx context.Context, hint string) (models.ContentDoc, error) {
	prompt, err := renderPrompt(hint)
	if err != nil {
		return models.ContentDoc{}, err
	}

	resp, err := d.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return models.ContentDoc{}, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return models.ContentDoc{}, fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return models.ContentDoc{}, fmt.Errorf("unexpected response type from Gemini")
	}
	return parseDraft(string(text))
}

func renderPrompt(hint string) (string, error) {
	tmpl, err := template.New("draft_story").Parse(draftStoryPrompt)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(hint) == "" {
		hint = "random"
	}
	var buf bytes.Buffer
	data := struct {
		Hint     string
		Stats    []models.StatKey
		MinNodes int
		MaxNodes int
	}{
		Hint:     hint,
		Stats:    models.StatKeys,
		MinNodes: minNodes,
		MaxNodes: maxNodes,
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func parseDraft(text string) (models.ContentDoc, error) {
	cleanYAML := strings.TrimSpace(text)
	cleanYAML = strings.TrimPrefix(cleanYAML, "```yaml")
	cleanYAML = strings.TrimPrefix(cleanYAML, "```")
	cleanYAML = strings.TrimSuffix(cleanYAML, "```")

	doc, err := models.ParseContentDoc([]byte(cleanYAML))
	if err != nil {
		return models.ContentDoc{}, fmt.Errorf("failed to parse story YAML: %w\nOutput was: %s", err, cleanYAML)
	}
	if len(doc.Nodes) == 0 {
		return models.ContentDoc{}, fmt.Errorf("story has no nodes\nOutput was: %s", cleanYAML)
	}
	if err := engine.Validate(doc); err != nil {
		return doc, fmt.Errorf("drafted story needs editing: %w", err)
	}
	return doc, nil
}
