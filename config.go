package csvsearch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/csvsearch/domain/model"
	"gopkg.in/yaml.v3"
)

// DefaultPrompt is written before each line read from a non-terminal input.
const DefaultPrompt = ">>> "

// Config is the optional user configuration. Fields absent from the file keep
// their DefaultConfig values.
type Config struct {
	// Prompt is the prompt marker for interactive input
	Prompt string `yaml:"prompt"`
	// HistoryFile stores line editor history. Empty disables history.
	HistoryFile string `yaml:"history_file"`
	// InferTypes declares column types inferred from loaded values
	InferTypes bool `yaml:"infer_types"`
	// QuoteExport escapes delimited output fields
	QuoteExport bool `yaml:"quote_export"`
	// Replacements are the ordered name substitutions. Empty means the defaults.
	Replacements []model.Replacement `yaml:"replacements"`
	// Keywords are the meta-command spellings
	Keywords Keywords `yaml:"keywords"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Prompt:      DefaultPrompt,
		HistoryFile: expandHome("~/.csvsearch_history"),
		QuoteExport: true,
		Keywords:    DefaultKeywords(),
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/csvsearch/config.yaml or its
// platform equivalent.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "csvsearch", "config.yaml"), nil
}

// LoadConfig reads the configuration at path. An empty path reads the default
// location, where a missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := DefaultConfigPath()
		if err != nil {
			return cfg, nil //nolint:nilerr // no config directory means no config file
		}
		path = p
	}

	data, err := os.ReadFile(path) //nolint:gosec // User-provided path is necessary for file operations
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Keywords = cfg.Keywords.withDefaults()
	cfg.HistoryFile = expandHome(cfg.HistoryFile)
	return cfg, nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
