// Package config loads the YAML configuration file that drives the
// CLI and RPC server.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aosen/loso/errs"
)

// envConfigPath is the environment variable that overrides the
// default config path.
const envConfigPath = "LOSO_CONFIG_FILE"

// DefaultPath is used when envConfigPath is unset.
const DefaultPath = "default.yaml"

// Lexicon mirrors the `lexicon:` YAML block.
type Lexicon struct {
	NGram int `yaml:"ngram"`
}

// Redis mirrors the `redis:` YAML block.
type Redis struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	DB       int    `yaml:"db"`
	Password string `yaml:"password"`
}

// XMLRPC mirrors the `xmlrpc:` YAML block. The name stays even though
// rpcserver speaks JSON over HTTP rather than XML-RPC.
type XMLRPC struct {
	Interface string `yaml:"interface"`
	Port      int    `yaml:"port"`
}

// StoreConfig selects which Store backend to build (memory, redis,
// localkv, or mongo) and where its data lives.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Prefix  string `yaml:"prefix"`
	Path    string `yaml:"path"`       // localkv
	URL     string `yaml:"url"`        // mongo
	DB      string `yaml:"db"`         // mongo database name
	Coll    string `yaml:"collection"` // mongo
}

// Config is the root of the YAML document.
type Config struct {
	Lexicon Lexicon     `yaml:"lexicon"`
	Redis   Redis       `yaml:"redis"`
	XMLRPC  XMLRPC      `yaml:"xmlrpc"`
	Store   StoreConfig `yaml:"store"`
}

// applyDefaults fills in the defaults: ngram 4, xmlrpc interface
// 0.0.0.0, xmlrpc port 5566.
func (c *Config) applyDefaults() {
	if c.Lexicon.NGram == 0 {
		c.Lexicon.NGram = 4
	}
	if c.XMLRPC.Interface == "" {
		c.XMLRPC.Interface = "0.0.0.0"
	}
	if c.XMLRPC.Port == 0 {
		c.XMLRPC.Port = 5566
	}
	if c.Store.Backend == "" {
		c.Store.Backend = "memory"
	}
}

// Path resolves the config file path: LOSO_CONFIG_FILE if set,
// otherwise DefaultPath.
func Path() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads and parses the YAML file at path, applying defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errs.ConfigError{Msg: "read config file " + path, Err: err}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &errs.ConfigError{Msg: "parse config file " + path, Err: err}
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadDefault loads the config at Path().
func LoadDefault() (*Config, error) {
	return Load(Path())
}
