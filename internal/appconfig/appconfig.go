package appconfig

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

// DefaultDirectoryURL is the users collection used when none is configured.
const DefaultDirectoryURL = "https://jsonplaceholder.typicode.com/users"

// Config holds all configuration details
type Config struct {
	Host      string          `yaml:"host" env:"HOST"`
	BasePath  string          `yaml:"basePath" env:"BASE_PATH"`
	DocsPath  string          `yaml:"docsPath" env:"DOCS_PATH"`
	Directory DirectoryConfig `yaml:"directory" envPrefix:"DIRECTORY_"`
	CORS      CORSConfig      `yaml:"cors" envPrefix:"CORS_"`
}

// DirectoryConfig defines the remote users collection
type DirectoryConfig struct {
	URL     string        `yaml:"url" env:"URL"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// CORSConfig defines which origins may call the JSON state API
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins" env:"ALLOWED_ORIGINS" envSeparator:","`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Host:     "localhost:8080",
		DocsPath: "/docs",
		Directory: DirectoryConfig{
			URL: DefaultDirectoryURL,
		},
	}
}

// LoadConfig loads and parses the configuration from a given file path. The
// file is rendered as a template against the environment first, then USERS_*
// variables override individual keys. An empty path loads the defaults.
func LoadConfig(path string) (*Config, error) {
	config := Default()

	if path != "" {
		// Parse the template file
		tmpl, err := template.ParseFiles(path)
		if err != nil {
			log.Error().Err(err).Msg("error parsing config file template")
			return nil, err
		}

		// Execute the template with environment variables
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, loadEnvVars()); err != nil {
			log.Error().Err(err).Msg("error executing config file template")
			return nil, err
		}

		// Load and unmarshal the YAML
		if err := yaml.Unmarshal(buf.Bytes(), config); err != nil {
			log.Error().Err(err).Msg("failed to unmarshal config YAML")
			return nil, err
		}
	}

	if err := env.ParseWithOptions(config, env.Options{Prefix: "USERS_"}); err != nil {
		log.Error().Err(err).Msg("failed to read config overrides from environment")
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.BasePath = strings.TrimRight(config.BasePath, "/")
	return config, nil
}

// Validate checks the settings the console cannot run without.
func (c *Config) Validate() error {
	if c.Directory.URL == "" {
		return errors.New("directory.url is required")
	}
	if c.Directory.Timeout < 0 {
		return errors.New("directory.timeout must not be negative")
	}
	return nil
}

// loadEnvVars loads environment variables into a map
func loadEnvVars() map[string]string {
	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		kv := strings.SplitN(env, "=", 2)
		if len(kv) == 2 {
			envVars[kv[0]] = kv[1]
		}
	}
	return envVars
}
