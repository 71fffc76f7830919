package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Templates are the starting points offered when a custom category is
// created.
type Templates struct {
	Version    int                `yaml:"version"`
	Categories []CategoryTemplate `yaml:"categories"`

	index map[string]*CategoryTemplate
}

type CategoryTemplate struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

func DefaultTemplates() *Templates {
	t := &Templates{
		Version: 1,
		Categories: []CategoryTemplate{
			{ID: "objects", Name: "Objetos & Itens", Description: "Crie um catálogo de armas, artefatos mágicos ou itens importantes da trama."},
			{ID: "groups", Name: "Grupos & Facções", Description: "Gerencie organizações, clãs, empresas ou grupos de heróis/vilões."},
			{ID: "lore", Name: "História & Lore", Description: "Documente fatos históricos, lendas do mundo, profecias ou cronologia."},
		},
	}
	t.buildIndex()
	return t
}

func LoadTemplates(path string) (*Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	var t Templates
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	if err := validateTemplates(&t); err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	t.buildIndex()
	return &t, nil
}

// LoadTemplatesOrDefault falls back to the built-in templates when path
// does not exist.
func LoadTemplatesOrDefault(path string) (*Templates, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultTemplates(), nil
	}
	return LoadTemplates(path)
}

func validateTemplates(t *Templates) error {
	if t.Version != 1 {
		return fmt.Errorf("unsupported version: %d", t.Version)
	}
	if len(t.Categories) == 0 {
		return fmt.Errorf("at least one category template is required")
	}

	seen := make(map[string]struct{})
	for i, c := range t.Categories {
		if strings.TrimSpace(c.ID) == "" {
			return fmt.Errorf("category template %d id is required", i)
		}
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("category template %s name is required", c.ID)
		}
		for _, key := range []string{strings.ToLower(c.ID), strings.ToLower(c.Name)} {
			if _, exists := seen[key]; exists {
				return fmt.Errorf("duplicate category template: %s", key)
			}
			seen[key] = struct{}{}
		}
	}
	return nil
}

func (t *Templates) buildIndex() {
	t.index = make(map[string]*CategoryTemplate)
	for i := range t.Categories {
		c := &t.Categories[i]
		t.index[strings.ToLower(c.ID)] = c
		t.index[strings.ToLower(c.Name)] = c
	}
}

// Lookup finds a template by id or name, ignoring case.
func (t *Templates) Lookup(key string) (*CategoryTemplate, bool) {
	if t == nil {
		return nil, false
	}
	c, ok := t.index[strings.ToLower(strings.TrimSpace(key))]
	return c, ok
}
