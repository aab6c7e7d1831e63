// Package config loads abtools settings from YAML.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"abtools-core/numbering"
)

// Config mirrors the YAML layout.
type Config struct {
	Anarci    Anarci    `yaml:"anarci"`
	Numbering Numbering `yaml:"numbering"`
	Cache     Cache     `yaml:"cache"`
	Server    Server    `yaml:"server"`
	Log       Log       `yaml:"log"`
}

type Anarci struct {
	Path    string `yaml:"path"`
	NCPU    int    `yaml:"ncpu"`
	Timeout string `yaml:"timeout"`
}

type Numbering struct {
	Scheme  string   `yaml:"scheme"`
	Chain   string   `yaml:"chain"`
	Species []string `yaml:"species,flow,omitempty"`
}

type Cache struct {
	TTL     string `yaml:"ttl"`
	Cleanup string `yaml:"cleanup"`
	Redis   string `yaml:"redis,omitempty"` // host:port of a shared store
}

type Server struct {
	Listen string `yaml:"listen"`
}

type Log struct {
	Spec string `yaml:"spec"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Anarci:    Anarci{Path: "ANARCI", NCPU: 1, Timeout: "5m"},
		Numbering: Numbering{Scheme: numbering.DefaultScheme, Chain: string(numbering.Heavy)},
		Cache:     Cache{TTL: "30m", Cleanup: "1h"},
		Server:    Server{Listen: ":8080"},
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks the fields that cannot be checked by YAML decoding.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Anarci.Path) == "" {
		return fmt.Errorf("config: anarci.path must not be empty")
	}
	if c.Anarci.NCPU < 0 {
		return fmt.Errorf("config: anarci.ncpu must be ≥ 0")
	}
	if _, err := numbering.ParseChain(c.Numbering.Chain); err != nil {
		return fmt.Errorf("config: numbering.chain: %w", err)
	}
	for name, v := range map[string]string{
		"anarci.timeout": c.Anarci.Timeout,
		"cache.ttl":      c.Cache.TTL,
		"cache.cleanup":  c.Cache.Cleanup,
	} {
		if _, err := parseDuration(v); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}

// AnarciTimeout is the per-invocation limit; 0 means none.
func (c Config) AnarciTimeout() time.Duration {
	d, _ := parseDuration(c.Anarci.Timeout)
	return d
}

// CacheTTL is the result lifetime; 0 disables caching.
func (c Config) CacheTTL() time.Duration {
	d, _ := parseDuration(c.Cache.TTL)
	return d
}

// CacheCleanup is the expired-item sweep interval.
func (c Config) CacheCleanup() time.Duration {
	d, _ := parseDuration(c.Cache.Cleanup)
	return d
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(&c)
}
