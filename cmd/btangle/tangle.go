package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jcorbin/btangle/btxt"
)

func newTangleCmd(strict *bool) *cobra.Command {
	var dryRun bool
	var tag string

	cmd := &cobra.Command{
		Use:   "tangle [files...]",
		Short: "Tangle annotated code blocks into their destination files",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := resolveInputs(args)
			if err != nil {
				return err
			}
			for _, path := range files {
				if err := tangleFile(path, *strict, dryRun, tag); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be written without touching any files")
	cmd.Flags().StringVar(&tag, "tag", "", "only tangle code blocks whose resolved tag matches")
	return cmd
}

func newCheckCmd(strict *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "check [files...]",
		Short: "Parse documents and report any syntax errors without writing",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := resolveInputs(args)
			if err != nil {
				return err
			}
			var failed int
			for _, path := range files {
				if _, err := parseFile(path, true); err != nil {
					log.Printf("%s: %v", path, err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d document(s) failed to parse", failed)
			}
			return nil
		},
	}
}

func resolveInputs(args []string) ([]string, error) {
	if len(args) == 0 {
		if path, ok := findDefaultDoc(); ok {
			return []string{path}, nil
		}
		return nil, fmt.Errorf("no input files given and no README.md found")
	}
	return expandGlobs(args)
}

func parseFile(path string, strict bool) (btxt.Document, docConfig, error) {
	body, cfg, err := loadDocument(path)
	if err != nil {
		return btxt.Document{}, cfg, err
	}
	effectiveStrict := strict
	if cfg.Strict != nil {
		effectiveStrict = *cfg.Strict
	}
	parsers := parsersForConfig(cfg)
	doc, err := btxt.Parse(body, parsers, effectiveStrict)
	return doc, cfg, err
}

func parsersForConfig(cfg docConfig) btxt.Parsers {
	parsers := btxt.DefaultParsers()
	if cfg.Comment == "html" {
		parsers.Annotation = btxt.AnnotationParser{Delims: []btxt.DelimPair{
			{Open: "<!--btxt", Close: "-->"},
		}}
	}
	return parsers
}

func tangleFile(path string, strict, dryRun bool, tag string) error {
	doc, cfg, err := parseFile(path, strict)
	if err != nil {
		return err
	}
	written := make(map[string]bool)
	for _, code := range doc.CodeBlocks {
		if !code.Effective.Filename.Present {
			continue
		}
		if tag != "" && (!code.Effective.Tag.Present || string(code.Effective.Tag.Bytes) != tag) {
			continue
		}
		dest := resolveOutPath(path, cfg, string(code.Effective.Filename.Bytes))
		if dryRun {
			log.Printf("would write %s (%s)", dest, code.Effective.EffectiveMode())
			continue
		}
		// only the first block written to a file in this run replaces it;
		// a later Overwrite block for the same file is added after it
		if written[dest] && code.Effective.EffectiveMode().Kind() == btxt.OverwriteMode {
			if err := writeAppend(dest, withFixture(code)); err != nil {
				return fmt.Errorf("writing %s: %w", dest, err)
			}
			continue
		}
		written[dest] = true
		if err := writeCode(dest, code); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
	}
	return nil
}
