package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Extract  ExtractConfig  `yaml:"extract,omitempty"`
	Chunk    ChunkConfig    `yaml:"chunk,omitempty"`
	Pipeline PipelineConfig `yaml:"pipeline,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	Search   SearchConfig   `yaml:"search,omitempty"`
}

// ExtractConfig controls text extraction behavior
type ExtractConfig struct {
	OCR         *bool  `yaml:"ocr,omitempty"`           // OCR fallback for scanned PDF pages
	OCRLanguage string `yaml:"ocr_language,omitempty"`  // Tesseract language code
	OCRMinChars int    `yaml:"ocr_min_chars,omitempty"` // Pages below this text yield are treated as scanned
}

// ChunkConfig controls how cleaned text is split into chunks
type ChunkConfig struct {
	MaxWords     int `yaml:"max_words,omitempty"`     // Word cap per chunk before a forced split
	OverlapWords int `yaml:"overlap_words,omitempty"` // Words carried over between adjacent chunks
	MinChars     int `yaml:"min_chars,omitempty"`     // Chunks shorter than this are dropped
}

// PipelineConfig controls directory walking and concurrency
type PipelineConfig struct {
	MaxWorkers int      `yaml:"max_workers,omitempty"` // Maximum number of goroutines
	Exclude    []string `yaml:"exclude,omitempty"`     // Exclude patterns (doublestar)
}

// OutputConfig controls where processed chunk files are written
type OutputConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// SearchConfig holds search-specific configuration
type SearchConfig struct {
	DefaultTopK int `yaml:"default_top_k,omitempty"` // Default number of results
}

// OCREnabled reports whether OCR fallback is on (default true).
func (c *Config) OCREnabled() bool {
	if c.Extract.OCR == nil {
		return true
	}
	return *c.Extract.OCR
}

// Load loads configuration from the default config file
// Default location: ~/.docpipe/config/docpipe.yaml
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".docpipe", "config", "docpipe.yaml")
	return LoadFromFile(configPath)
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			homeDir, _ := os.UserHomeDir()
			defaultPath := filepath.Join(homeDir, ".docpipe", "config", "docpipe.yaml")
			return nil, &ConfigNotFoundError{
				RequestedPath: path,
				DefaultPath:   defaultPath,
			}
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ConfigNotFoundError is returned when config file is not found
type ConfigNotFoundError struct {
	RequestedPath string
	DefaultPath   string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("config file not found at: %s\n\nDefault location: %s\n\nYou can:\n"+
		"  1. Create the config file at the default location\n"+
		"  2. Specify a custom path with -config flag\n"+
		"  3. Run `docpipe ingest` once to create a default config",
		e.RequestedPath, e.DefaultPath)
}

// IsConfigNotFound checks if error is config not found
func IsConfigNotFound(err error) bool {
	_, ok := err.(*ConfigNotFoundError)
	return ok
}

// expandPath expands ~ and $HOME to the user's home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "$HOME/") || path == "$HOME" {
		homeDir := os.Getenv("HOME")
		if homeDir == "" {
			var err error
			homeDir, err = os.UserHomeDir()
			if err != nil {
				return path
			}
		}
		if path == "$HOME" {
			return homeDir
		}
		return filepath.Join(homeDir, path[6:])
	}

	if strings.HasPrefix(path, "~/") || path == "~" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return homeDir
		}
		return filepath.Join(homeDir, path[2:])
	}

	return path
}

// ApplyDefaults sets default values for missing configuration
func (c *Config) ApplyDefaults() {
	if c.Extract.OCRLanguage == "" {
		c.Extract.OCRLanguage = "eng"
	}
	if c.Extract.OCRMinChars == 0 {
		c.Extract.OCRMinChars = 100
	}

	if c.Chunk.MaxWords == 0 {
		c.Chunk.MaxWords = 500
	}
	if c.Chunk.OverlapWords == 0 {
		c.Chunk.OverlapWords = 50
	}
	if c.Chunk.MinChars == 0 {
		c.Chunk.MinChars = 50
	}

	if c.Pipeline.MaxWorkers == 0 {
		c.Pipeline.MaxWorkers = 4
	}
	if c.Pipeline.Exclude == nil {
		c.Pipeline.Exclude = []string{"**/~$*", "**/.*"}
	}

	if c.Output.Dir == "" {
		c.Output.Dir = "output_chunks"
	}
	c.Output.Dir = expandPath(c.Output.Dir)

	if c.Search.DefaultTopK == 0 {
		c.Search.DefaultTopK = 10
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Extract.OCRMinChars < 0 {
		return fmt.Errorf("extract.ocr_min_chars must not be negative, got: %d", c.Extract.OCRMinChars)
	}
	if c.OCREnabled() && strings.TrimSpace(c.Extract.OCRLanguage) == "" {
		return fmt.Errorf("extract.ocr_language must be set when OCR is enabled")
	}

	if c.Chunk.MaxWords <= 0 {
		return fmt.Errorf("chunk.max_words must be positive, got: %d", c.Chunk.MaxWords)
	}
	if c.Chunk.OverlapWords < 0 {
		return fmt.Errorf("chunk.overlap_words must not be negative, got: %d", c.Chunk.OverlapWords)
	}
	if c.Chunk.OverlapWords >= c.Chunk.MaxWords {
		return fmt.Errorf("chunk.overlap_words (%d) must be smaller than chunk.max_words (%d)",
			c.Chunk.OverlapWords, c.Chunk.MaxWords)
	}
	if c.Chunk.MinChars < 0 {
		return fmt.Errorf("chunk.min_chars must not be negative, got: %d", c.Chunk.MinChars)
	}

	if c.Pipeline.MaxWorkers < 1 {
		return fmt.Errorf("pipeline.max_workers must be at least 1, got: %d", c.Pipeline.MaxWorkers)
	}

	if c.Search.DefaultTopK <= 0 {
		return fmt.Errorf("search.default_top_k must be positive, got: %d", c.Search.DefaultTopK)
	}

	return nil
}

// SaveToFile saves the configuration to a specific file
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

const defaultConfigTemplate = `# docpipe Configuration
#
# Copy and edit this file for your environment.
# Default location: $HOME/.docpipe/config/docpipe.yaml

extract:
  # OCR fallback for scanned PDF pages (requires tesseract at runtime)
  ocr: true
  ocr_language: eng
  # A PDF page whose extracted text is shorter than this is treated as scanned
  ocr_min_chars: 100

chunk:
  # Word cap per chunk before a forced split
  max_words: 500
  # Words carried over between adjacent chunks
  overlap_words: 50
  # Chunks shorter than this many characters are dropped
  min_chars: 50

pipeline:
  max_workers: 4
  exclude:
    - "**/~$*"
    - "**/.*"

output:
  dir: output_chunks

search:
  default_top_k: 10
`

// WriteDefaultTemplate creates a default configuration file if it does not exist.
// It returns true if a file was created, false if it already existed.
func WriteDefaultTemplate(path string) (bool, error) {
	if path == "" {
		return false, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0644); err != nil {
		return false, fmt.Errorf("failed to write config template: %w", err)
	}

	return true, nil
}
