package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source loads an algorithm policy from an external location.
type Source interface {
	// Load reads and merges the policy.
	Load(ctx context.Context) (*Policy, error)

	// Close releases any resources held by the source.
	Close() error
}

// FileSource loads algorithm policies from local files (YAML or JSON).
type FileSource struct {
	// Path specifies a single file path to load
	Path string

	// Paths specifies multiple file paths to load and merge
	Paths []string

	// Dir specifies a directory to scan for policy files
	Dir string

	// Format specifies the file format ("yaml", "json", or "auto")
	Format string
}

// Load loads the policy from the configured file(s). When multiple files
// are given their allow lists are merged; conflicting defaults are an
// error.
func (fs *FileSource) Load(ctx context.Context) (*Policy, error) {
	var filePaths []string

	if fs.Path != "" {
		filePaths = append(filePaths, fs.Path)
	}

	if len(fs.Paths) > 0 {
		filePaths = append(filePaths, fs.Paths...)
	}

	if fs.Dir != "" {
		dirFiles, err := fs.scanDirectory(fs.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %s: %w", fs.Dir, err)
		}

		filePaths = append(filePaths, dirFiles...)
	}

	if len(filePaths) == 0 {
		return nil, fmt.Errorf("no files specified to load")
	}

	var merged *Policy

	for _, path := range filePaths {
		policy, err := fs.loadSingleFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to load file %s: %w", path, err)
		}

		if merged == nil {
			merged = policy
			continue
		}

		if err := mergePolicies(merged, policy); err != nil {
			return nil, fmt.Errorf("failed to merge policy from %s: %w", path, err)
		}
	}

	return merged, nil
}

// Close closes the file source (no-op for file sources)
func (fs *FileSource) Close() error {
	return nil
}

func (fs *FileSource) scanDirectory(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".yaml" || ext == ".yml" || ext == ".json" {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

func (fs *FileSource) loadSingleFile(_ context.Context, path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	format := fs.Format
	if format == "" || format == "auto" {
		format = detectFormat(path, data)
	}

	var policy Policy

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &policy); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &policy); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	return &policy, nil
}

// mergePolicies merges the source policy into the target policy.
func mergePolicies(target, source *Policy) error {
	if source.Default != "" {
		if target.Default != "" && normalizeName(target.Default) != normalizeName(source.Default) {
			return fmt.Errorf("default conflict: default algorithm defined as both %q and %q", target.Default, source.Default)
		}

		target.Default = source.Default
	}

	for _, name := range source.Allow {
		if !containsName(target.Allow, name) {
			target.Allow = append(target.Allow, name)
		}
	}

	return nil
}

func containsName(names []string, name string) bool {
	normalized := normalizeName(name)
	for _, existing := range names {
		if normalizeName(existing) == normalized {
			return true
		}
	}

	return false
}

func detectFormat(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return "json"
	}

	return "yaml"
}
