package cinegraph

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the .cinegraph.yaml configuration file.
type Config struct {
	// Store backend name (e.g., "neo4j")
	Store string `yaml:"store"`

	// Connection config for the store
	Connection StoreConfig `yaml:"connection"`

	// Server config for the HTTP endpoint
	Server ServerConfig `yaml:"server,omitempty"`
}

// ServerConfig holds settings for the HTTP serving surface.
type ServerConfig struct {
	// Listen address (e.g., ":8080")
	Addr string `yaml:"addr,omitempty"`

	// Path the GraphQL endpoint is mounted on (default "/graphql")
	Path string `yaml:"path,omitempty"`
}

// DefaultConfigNames are the filenames we search for.
var DefaultConfigNames = []string{".cinegraph.yaml", ".cinegraph.yml", "cinegraph.yaml", "cinegraph.yml"}

// LoadConfig finds and loads the nearest .cinegraph.yaml walking up from dir.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}

	return LoadConfigFile(path)
}

// FindConfig searches for a config file starting from dir and walking up.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for dir := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(dir, name)

			_, err := os.Stat(path)
			if err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}

		dir = parent
	}
}

// LoadConfigFile loads a config from a specific path.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
