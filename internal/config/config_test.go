package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Chunk.MaxChunkChars != 1200 {
		t.Errorf("MaxChunkChars = %d, want 1200", cfg.Chunk.MaxChunkChars)
	}
	if cfg.Chunk.MaxAdditionChars != 900 {
		t.Errorf("MaxAdditionChars = %d, want 900", cfg.Chunk.MaxAdditionChars)
	}
	if cfg.Chunk.LargeElementChars != 2000 {
		t.Errorf("LargeElementChars = %d, want 2000", cfg.Chunk.LargeElementChars)
	}
	if len(cfg.Classify.FrontKeywords) == 0 {
		t.Error("FrontKeywords is empty")
	}
	if cfg.Classify.MinChapterElements != 10 {
		t.Errorf("MinChapterElements = %d, want 10", cfg.Classify.MinChapterElements)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("default config fails validation: %v", err)
	}
}

func TestLoad_PartialOverride(t *testing.T) {
	path := writeConfigFile(t, `chunk:
  max_chunk_chars: 2000
  large_element_chars: 3000
classify:
  chapter_patterns: ["kapitel"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Chunk.MaxChunkChars != 2000 {
		t.Errorf("MaxChunkChars = %d, want 2000", cfg.Chunk.MaxChunkChars)
	}
	// Unnamed fields keep their defaults.
	if cfg.Chunk.MaxAdditionChars != 900 {
		t.Errorf("MaxAdditionChars = %d, want default 900", cfg.Chunk.MaxAdditionChars)
	}
	if got := cfg.Classify.ChapterPatterns; len(got) != 1 || got[0] != "kapitel" {
		t.Errorf("ChapterPatterns = %v, want [kapitel]", got)
	}
	if len(cfg.Classify.FrontKeywords) == 0 {
		t.Error("FrontKeywords lost its default")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "non-positive chunk size",
			content: `chunk:
  max_chunk_chars: 0
`,
		},
		{
			name: "large element below chunk cap",
			content: `chunk:
  max_chunk_chars: 1200
  large_element_chars: 100
`,
		},
		{
			name: "non-positive element count",
			content: `classify:
  min_chapter_elements: -3
`,
		},
		{
			name:    "malformed yaml",
			content: "chunk: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfigFile(t, tt.content)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()

	lim := cfg.Limits()
	if lim.MaxChunkChars != cfg.Chunk.MaxChunkChars {
		t.Errorf("Limits().MaxChunkChars = %d, want %d", lim.MaxChunkChars, cfg.Chunk.MaxChunkChars)
	}

	cls := cfg.ClassifierConfig()
	if cls.MinChapterElements != cfg.Classify.MinChapterElements {
		t.Errorf("ClassifierConfig().MinChapterElements = %d, want %d",
			cls.MinChapterElements, cfg.Classify.MinChapterElements)
	}
}
