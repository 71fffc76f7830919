package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-3-flash-preview"

var _ Service = (*Gemini)(nil)

type generateFunc func(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error)

type Gemini struct {
	generate generateFunc
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Gemini{
		generate: func(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
			resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
			if err != nil {
				return "", err
			}
			return resp.Text(), nil
		},
	}, nil
}

func (g *Gemini) text(ctx context.Context, what, prompt string) (string, error) {
	out, err := g.generate(ctx, prompt, nil)
	if err != nil {
		return "", fmt.Errorf("suggesting %s: %w", what, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("suggesting %s: %w", what, ErrEmptySuggestion)
	}
	return out, nil
}

func (g *Gemini) CharacterBackstory(ctx context.Context, name, role string) (string, error) {
	prompt := fmt.Sprintf(`Crie uma biografia curta e impactante para um personagem de quadrinhos chamado %q, cujo papel é %q. Foque em motivações e mistérios. Responda em Português.`, name, role)
	return g.text(ctx, "backstory", prompt)
}

func (g *Gemini) LocationDescription(ctx context.Context, name, kind string) (string, error) {
	prompt := fmt.Sprintf(`Descreva detalhadamente a atmosfera, clima e aparência visual de um local de quadrinhos chamado %q, que é do tipo %q. Responda com um parágrafo rico em detalhes sensoriais em Português.`, name, kind)
	return g.text(ctx, "location description", prompt)
}

func (g *Gemini) Dialogue(ctx context.Context, speaker, sceneContext string) (string, error) {
	prompt := fmt.Sprintf(`O personagem %q está em: %q. Escreva um diálogo curto e potente para esta cena. Responda em Português.`, speaker, sceneContext)
	return g.text(ctx, "dialogue", prompt)
}

var traitSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"category":    {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
		},
		Required: []string{"category", "description"},
	},
}

func (g *Gemini) CharacterTraits(ctx context.Context, name, role string) ([]Trait, error) {
	prompt := fmt.Sprintf(`Sugira 4 características físicas ou psicológicas marcantes (tópicos) para o personagem %q (%s). Retorne em formato JSON.`, name, role)
	out, err := g.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   traitSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("suggesting traits: %w", err)
	}
	traits, err := parseTraits(out)
	if err != nil {
		return nil, fmt.Errorf("suggesting traits: %w", err)
	}
	return traits, nil
}

// parseTraits accepts the model's JSON list, tolerating a Markdown code
// fence around it. Entries with neither field set are dropped.
func parseTraits(out string) ([]Trait, error) {
	out = strings.TrimSpace(out)
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")
	out = strings.TrimSpace(out)
	if out == "" {
		return nil, ErrEmptySuggestion
	}

	var raw []Trait
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return nil, fmt.Errorf("decoding traits: %w", err)
	}

	traits := make([]Trait, 0, len(raw))
	for _, t := range raw {
		t.Category = strings.TrimSpace(t.Category)
		t.Description = strings.TrimSpace(t.Description)
		if t.Category == "" && t.Description == "" {
			continue
		}
		traits = append(traits, t)
	}
	if len(traits) == 0 {
		return nil, ErrEmptySuggestion
	}
	return traits, nil
}
