package main

import (
	"bytes"
	"io/ioutil"
	"path/filepath"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/jcorbin/btangle/internal/socutil"
)

// docConfig is per-document front matter: it overrides btangle's default
// recognisers and strictness on a file-by-file basis.
type docConfig struct {
	Strict  *bool  `yaml:"strict"`
	OutDir  string `yaml:"out_dir"`
	Comment string `yaml:"comment"` // alternate annotation delimiter style: "html" or "btxt" (default)
}

// expandGlobs resolves a list of glob patterns (as accepted by doublestar)
// into a de-duplicated list of matching file paths, kept in the order the
// patterns and their matches were produced; the list is not sorted.
func expandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pat := range patterns {
		matches, err := doublestar.FilepathGlob(pat)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			// not a glob at all, or a glob with no matches: treat as a
			// literal path and let the caller's open() surface any error
			matches = []string{pat}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

// loadDocument reads filename and splits off any YAML front matter,
// returning the remaining body bytes (the literate document proper) and
// the parsed config, which may be zero-valued if there was no front
// matter block.
func loadDocument(filename string) (body []byte, cfg docConfig, err error) {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, cfg, err
	}
	body, err = frontmatter.Parse(bytes.NewReader(raw), &cfg)
	if err != nil {
		return nil, cfg, err
	}
	return body, cfg, nil
}

// resolveOutPath resolves a tangled file's destination relative to the
// source document's directory and any out_dir front matter override.
func resolveOutPath(sourcePath string, cfg docConfig, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	base := filepath.Dir(sourcePath)
	if cfg.OutDir != "" {
		base = filepath.Join(base, cfg.OutDir)
	}
	return filepath.Join(base, name)
}

// findDefaultDoc locates a README.md by walking up from the working
// directory, for use when no input files are given on the command line.
func findDefaultDoc() (string, bool) {
	info, path, err := socutil.FindWDFile("README.md")
	if err != nil || info == nil {
		return "", false
	}
	return path, true
}
