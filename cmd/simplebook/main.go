package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bookforge/simplebook/internal/config"
	"github.com/bookforge/simplebook/internal/schema"
	"github.com/bookforge/simplebook/internal/simplebook"
)

// cliOptions holds the resolved command-line options for one run.
type cliOptions struct {
	InputPath  string
	OutputPath string
	Config     config.Config
	Preview    bool
	Validate   bool
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simplebook BOOK.epub",
		Short: "Convert EPUB files to normalized JSON",
		Long: `simplebook converts an EPUB ebook into a deterministic,
schema-validated JSON representation: classified chapters, typed content
elements with normalized text, and bounded-size chunk boundaries.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := readCLIOptions(cmd, args)
			if err != nil {
				return err
			}
			return run(opts)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file path (default: input with .json extension)")
	cmd.Flags().String("config", "", "YAML configuration file overriding chunking and classification settings")
	cmd.Flags().Bool("preview", false, "Serialize structure only: element types without text")
	cmd.Flags().Bool("validate", false, "Validate the output against the JSON schema before writing")

	return cmd
}

// readCLIOptions resolves flags and arguments into cliOptions, loading the
// configuration file when one is named.
func readCLIOptions(cmd *cobra.Command, args []string) (cliOptions, error) {
	outputPath, _ := cmd.Flags().GetString("output")
	configPath, _ := cmd.Flags().GetString("config")
	preview, _ := cmd.Flags().GetBool("preview")
	validate, _ := cmd.Flags().GetBool("validate")

	opts := cliOptions{
		InputPath:  args[0],
		OutputPath: outputPath,
		Config:     config.Default(),
		Preview:    preview,
		Validate:   validate,
	}
	if opts.OutputPath == "" {
		opts.OutputPath = defaultOutputPath(opts.InputPath)
	}
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return cliOptions{}, err
		}
		opts.Config = loaded
	}

	return opts, nil
}

// defaultOutputPath swaps the input's extension for .json.
func defaultOutputPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".json"
}

func run(opts cliOptions) error {
	log.Printf("Normalizing: %s -> %s", opts.InputPath, opts.OutputPath)

	normalizer := simplebook.New(simplebook.Options{
		InputPath: opts.InputPath,
		Limits:    opts.Config.Limits(),
		Classify:  opts.Config.ClassifierConfig(),
	})
	book, err := normalizer.Normalize()
	if err != nil {
		return fmt.Errorf("normalization failed: %w", err)
	}

	var data []byte
	if opts.Preview {
		data, err = book.PreviewJSON()
	} else {
		data, err = book.JSON()
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if opts.Validate {
		msgs, err := schema.Validate(data)
		if err != nil {
			return fmt.Errorf("schema validation failed to run: %w", err)
		}
		if len(msgs) > 0 {
			for _, msg := range msgs {
				log.Printf("schema violation: %s", msg)
			}
			return fmt.Errorf("output failed schema validation with %d violation(s)", len(msgs))
		}
	}

	if err := os.WriteFile(opts.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	log.Printf("Done: %s (%d chapters)", opts.OutputPath, len(book.Chapters))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
