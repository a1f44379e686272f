package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

type Source struct {
	Kind   SourceKind
	Name   string // for default
	File   string
	Line   int
	Column int
}

type LoadResult struct {
	Config  *Config
	Sources map[string]Source // YAML path -> file position of the last writer
	Files   []string          // loaded files, includes first
}

// sourcePaths are the keys whose file position is recorded for Explain and
// ValidationError.
var sourcePaths = []string{
	"include",
	"backend",
	"log_level",
	"sway",
	"sway.socket_path",
	"sway.swaymsg_path",
	"sway.bar_height",
	"sway.persistent_rule",
	"sway.criteria",
	"sway.criteria.app_id",
	"sway.criteria.title",
	"sway.legacy_criteria",
	"sway.legacy_criteria.app_id",
	"sway.legacy_criteria.title",
	"x11",
	"x11.display",
	"x11.instance",
	"x11.class",
	"x11.poll_interval",
	"x11.wait_timeout",
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/movewin/config.yaml, falling
// back to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "movewin", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "movewin", "config.yaml"), nil
}

// Load reads the configuration from the standard location.
func Load() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads path and the files it includes. A missing file yields
// the defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	l := &loader{
		sources: map[string]Source{},
		done:    map[string]bool{},
	}

	if _, err := os.Stat(path); err == nil {
		if err := l.load(path); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg := BuildEffectiveConfig(l.raw)
	if err := cfg.Validate(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			if src, ok := l.sources[verr.Path]; ok {
				verr.Source = src
			}
		}
		return nil, err
	}

	return &LoadResult{
		Config:  cfg,
		Sources: l.sources,
		Files:   l.files,
	}, nil
}

// loader merges a file after everything it includes.
type loader struct {
	raw     RawConfig
	sources map[string]Source
	files   []string
	chain   []string
	done    map[string]bool
}

func (l *loader) load(path string) error {
	file, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	for _, active := range l.chain {
		if active == file {
			return fmt.Errorf("include cycle detected: %s -> %s", strings.Join(l.chain, " -> "), file)
		}
	}
	if l.done[file] {
		return nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("%s: failed to read: %w", file, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%s: failed to parse yaml: %w", file, err)
	}
	var raw RawConfig
	if err := decodeStrictYAML(data, &raw); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	positions := fileSources(&doc, file)

	l.chain = append(l.chain, file)
	for _, include := range raw.Include {
		target := include
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(file), target)
		}
		if err := l.load(target); err != nil {
			src := positions["include"]
			return fmt.Errorf("%s:%d: include %q: %w", file, src.Line, include, err)
		}
	}
	l.chain = l.chain[:len(l.chain)-1]
	l.done[file] = true

	l.raw = l.raw.merge(raw)
	for key, src := range positions {
		l.sources[key] = src
	}
	l.files = append(l.files, file)
	return nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func fileSources(doc *yaml.Node, file string) map[string]Source {
	out := make(map[string]Source)
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	for _, path := range sourcePaths {
		if node := valueNode(root, strings.Split(path, ".")); node != nil {
			out[path] = Source{Kind: SourceFile, File: file, Line: node.Line, Column: node.Column}
		}
	}
	return out
}

// valueNode follows keys through nested mappings.
func valueNode(node *yaml.Node, keys []string) *yaml.Node {
	for _, key := range keys {
		if node == nil || node.Kind != yaml.MappingNode {
			return nil
		}
		var next *yaml.Node
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == key {
				next = node.Content[i+1]
				break
			}
		}
		node = next
	}
	return node
}
