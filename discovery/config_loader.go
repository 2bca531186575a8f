package discovery

import (
	"context"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// KoanfConfigLoader is the default LoadConfig collaborator. It reads
// entryPath's component.yaml (or component.yml) with koanf's file
// provider and YAML parser, grounded on moolen/spectre's
// internal/config use of the same stack, and hands back the decoded
// document as a plain map so [kiln.ConfigValidator] can check it against
// a manifest's JSON Schema.
type KoanfConfigLoader struct{}

// NewKoanfConfigLoader creates a KoanfConfigLoader.
func NewKoanfConfigLoader() *KoanfConfigLoader { return &KoanfConfigLoader{} }

func (l *KoanfConfigLoader) LoadConfig(ctx context.Context, entryPath string) (map[string]any, error) {
	path := manifestPath(entryPath)
	if path == "" {
		path = filepath.Join(entryPath, "component.yaml")
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, err
	}
	return k.Raw(), nil
}
