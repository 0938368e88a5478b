package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvXMLPath overrides the configured introspection directory when set.
const EnvXMLPath = "LOCKSTEP_XML_PATH"

// EnvDatabase overrides the configured run-history database path when set.
const EnvDatabase = "LOCKSTEP_DB"

type Config struct {
	// XMLPath is the introspection XML directory. Empty means the xml/ or
	// XML/ convention under the working directory.
	XMLPath string `yaml:"xml_path"`

	// Manifest is the check manifest path.
	Manifest string `yaml:"manifest"`

	// Database is the optional SQLite run-history path.
	Database string `yaml:"database"`
}

// Load reads the YAML config at path and applies environment overrides. A
// missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := &Config{Manifest: "lockstep.yaml"}

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(file, cfg); err != nil {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if xmlPath := os.Getenv(EnvXMLPath); xmlPath != "" {
		cfg.XMLPath = xmlPath
	}
	if db := os.Getenv(EnvDatabase); db != "" {
		cfg.Database = db
	}

	return cfg, nil
}
