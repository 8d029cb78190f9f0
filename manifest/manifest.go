// Package manifest loads plugin and application descriptors from manifest
// files. It is the engine's only file-facing collaborator: a thin
// deserialization wrapper over a generic key/value format, producing
// immutable descriptor values. The resolution engine itself never touches
// the filesystem.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/creasty/defaults"
	validatorV10 "github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/statickit/composer/descriptor"
	"github.com/statickit/composer/naming"
)

var validator *validatorV10.Validate

func init() {
	validator = validatorV10.New()
}

// PluginManifest mirrors a plugin manifest file.
type PluginManifest struct {
	Name         string   `mapstructure:"name" validate:"required"`
	Dependencies []string `mapstructure:"dependencies"`
	Provides     []string `mapstructure:"provides"`
	Extends      []string `mapstructure:"extends"`
}

// ApplicationManifest mirrors an application manifest file.
type ApplicationManifest struct {
	Name    string   `mapstructure:"name" validate:"required"`
	Plugins []string `mapstructure:"plugins" validate:"required,min=1"`
}

// Options controls manifest loading.
type Options struct {
	// FileType is the manifest format understood by viper.
	FileType string `default:"yaml"`
	// FileName is the manifest file name inside a plugin folder, without
	// extension.
	FileName string `default:"plugin"`
}

// DefaultOptions returns the standard loading options.
func DefaultOptions() Options {
	var opts Options
	_ = defaults.Set(&opts)
	return opts
}

// LoadPlugin reads a single plugin manifest and builds its descriptor.
func LoadPlugin(path string, optsArr ...Options) (*descriptor.Plugin, error) {
	opts := pickOptions(optsArr)

	var m PluginManifest
	if err := readManifest(path, opts, &m); err != nil {
		return nil, err
	}
	if m.Name == "" {
		// Folder name is the fallback identity, minus any numeric
		// ordering prefix.
		m.Name = naming.StripOrderPrefix(filepath.Base(filepath.Dir(path)))
	}
	if err := validator.Struct(&m); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	return descriptor.NewPlugin(m.Name, m.Dependencies, m.Provides, m.Extends)
}

// LoadApplication reads an application manifest and builds its descriptor.
func LoadApplication(path string, optsArr ...Options) (*descriptor.Application, error) {
	opts := pickOptions(optsArr)

	var m ApplicationManifest
	if err := readManifest(path, opts, &m); err != nil {
		return nil, err
	}
	if err := validator.Struct(&m); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	return descriptor.NewApplication(m.Name, m.Plugins)
}

// LoadDir loads every plugin manifest under dir into a fresh registry.
// Each immediate subfolder holding a manifest file is one plugin; folders
// are visited in sorted name order, so numeric prefixes give a stable
// declaration order for the linearization tie-break.
func LoadDir(dir string, optsArr ...Options) (*descriptor.Registry, error) {
	opts := pickOptions(optsArr)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading plugin directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	registry := descriptor.NewRegistry()
	for _, name := range names {
		path := filepath.Join(dir, name, opts.FileName+"."+opts.FileType)
		if _, statErr := os.Stat(path); statErr != nil {
			continue // folder without a manifest is not a plugin
		}
		p, err := LoadPlugin(path, opts)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func pickOptions(optsArr []Options) Options {
	if len(optsArr) == 0 {
		return DefaultOptions()
	}
	opts := optsArr[0]
	_ = defaults.Set(&opts)
	return opts
}

func readManifest(path string, opts Options, target any) error {
	v := viper.New()
	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "" {
		v.SetConfigType(opts.FileType)
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading manifest %s: %w", path, err)
	}
	if err := v.Unmarshal(target); err != nil {
		return fmt.Errorf("unmarshaling manifest %s: %w", path, err)
	}
	return nil
}
