// Package config loads the optional YAML run configuration: chunk size
// limits and classifier keyword sets. Every field defaults to the package
// defaults, so a partial file overrides only what it names.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bookforge/simplebook/internal/chunk"
	"github.com/bookforge/simplebook/internal/classify"
)

// Config is the full run configuration.
type Config struct {
	Chunk    ChunkConfig    `yaml:"chunk"`
	Classify ClassifyConfig `yaml:"classify"`
}

// ChunkConfig overrides the chunker's size thresholds.
type ChunkConfig struct {
	MaxChunkChars     int `yaml:"max_chunk_chars"`
	MaxAdditionChars  int `yaml:"max_addition_chars"`
	LargeElementChars int `yaml:"large_element_chars"`
}

// ClassifyConfig overrides the classifier's keyword sets and thresholds.
type ClassifyConfig struct {
	FrontKeywords      []string `yaml:"front_keywords"`
	BackKeywords       []string `yaml:"back_keywords"`
	TOCKeywords        []string `yaml:"toc_keywords"`
	ChapterPatterns    []string `yaml:"chapter_patterns"`
	MinChapterElements int      `yaml:"min_chapter_elements"`
}

// Default returns the configuration with every field at its package default.
func Default() Config {
	limits := chunk.DefaultLimits()
	cls := classify.DefaultConfig()
	return Config{
		Chunk: ChunkConfig{
			MaxChunkChars:     limits.MaxChunkChars,
			MaxAdditionChars:  limits.MaxAdditionChars,
			LargeElementChars: limits.LargeElementChars,
		},
		Classify: ClassifyConfig{
			FrontKeywords:      cls.FrontKeywords,
			BackKeywords:       cls.BackKeywords,
			TOCKeywords:        cls.TOCKeywords,
			ChapterPatterns:    cls.ChapterPatterns,
			MinChapterElements: cls.MinChapterElements,
		},
	}
}

// Load reads a YAML configuration file over the defaults and validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func Validate(cfg Config) error {
	if cfg.Chunk.MaxChunkChars <= 0 {
		return fmt.Errorf("chunk.max_chunk_chars must be positive, got %d", cfg.Chunk.MaxChunkChars)
	}
	if cfg.Chunk.MaxAdditionChars <= 0 {
		return fmt.Errorf("chunk.max_addition_chars must be positive, got %d", cfg.Chunk.MaxAdditionChars)
	}
	if cfg.Chunk.LargeElementChars < cfg.Chunk.MaxChunkChars {
		return fmt.Errorf("chunk.large_element_chars (%d) must not be below chunk.max_chunk_chars (%d)",
			cfg.Chunk.LargeElementChars, cfg.Chunk.MaxChunkChars)
	}
	if cfg.Classify.MinChapterElements <= 0 {
		return fmt.Errorf("classify.min_chapter_elements must be positive, got %d", cfg.Classify.MinChapterElements)
	}
	return nil
}

// Limits converts the chunk section to the chunker's Limits.
func (c Config) Limits() chunk.Limits {
	return chunk.Limits{
		MaxChunkChars:     c.Chunk.MaxChunkChars,
		MaxAdditionChars:  c.Chunk.MaxAdditionChars,
		LargeElementChars: c.Chunk.LargeElementChars,
	}
}

// ClassifierConfig converts the classify section to the classifier's Config.
func (c Config) ClassifierConfig() classify.Config {
	return classify.Config{
		FrontKeywords:      c.Classify.FrontKeywords,
		BackKeywords:       c.Classify.BackKeywords,
		TOCKeywords:        c.Classify.TOCKeywords,
		ChapterPatterns:    c.Classify.ChapterPatterns,
		MinChapterElements: c.Classify.MinChapterElements,
	}
}
