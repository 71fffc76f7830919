package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"comicstudio/internal/universe"
)

func TestBuildPatch(t *testing.T) {
	t.Run("set values override json", func(t *testing.T) {
		got, err := buildPatch([]string{"name=Ana", "role = Vilã "}, `{"name":"Rui","backstory":"Nasceu no cais"}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := universe.Patch{"name": "Ana", "role": "Vilã", "backstory": "Nasceu no cais"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("unexpected patch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty input gives empty patch", func(t *testing.T) {
		got, err := buildPatch(nil, "")
		if err != nil || len(got) != 0 {
			t.Fatalf("expected empty patch, got %v, %v", got, err)
		}
	})

	for name, tc := range map[string]struct {
		sets []string
		raw  string
	}{
		"missing equals": {sets: []string{"name"}},
		"empty key":      {sets: []string{"=Ana"}},
		"bad json":       {raw: `{"name":`},
		"json array":     {raw: `["name"]`},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := buildPatch(tc.sets, tc.raw); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseParamPairs(t *testing.T) {
	got, err := parseParamPairs([]string{"1=comic_studio_data", "", "2=a=b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"1": "comic_studio_data", "2": "a=b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected params (-want +got):\n%s", diff)
	}
}
