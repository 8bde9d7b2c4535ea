// Package yaml loads the optional configuration file that tunes scraping
// behavior: request rates, concurrency, and custom rulesets.
package yaml

import (
	"fmt"
	"os"
	"time"

	"github.com/lmertens/annuaire"
	"gopkg.in/yaml.v3"
)

// Defaults used when the config file is absent or leaves fields unset.
const (
	DefaultQPS            = 8.0
	DefaultConcurrency    = 4
	DefaultPageTokenDelay = 2100 * time.Millisecond
)

// Config holds tunable scraping behavior. All fields are optional; zero
// values fall back to defaults.
type Config struct {
	// QPS limits requests per second per host.
	QPS float64 `yaml:"qps"`

	// Concurrency bounds the number of queries run in parallel.
	Concurrency int `yaml:"concurrency"`

	// PageTokenDelayMS is the wait before a Places next_page_token
	// activates, in milliseconds.
	PageTokenDelayMS int `yaml:"page_token_delay_ms"`

	// Rulesets overrides the built-in ruleset per category.
	Rulesets map[string]RulesetConfig `yaml:"rulesets"`
}

// RulesetConfig mirrors annuaire.Ruleset in YAML form.
type RulesetConfig struct {
	IncludeTypes        []string `yaml:"include_types"`
	IncludeNameKeywords []string `yaml:"include_name_keywords"`
	ExcludeTypes        []string `yaml:"exclude_types"`
	ExcludeNameKeywords []string `yaml:"exclude_name_keywords"`
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	return &Config{
		QPS:              DefaultQPS,
		Concurrency:      DefaultConcurrency,
		PageTokenDelayMS: int(DefaultPageTokenDelay / time.Millisecond),
	}
}

// Load reads the config file at path. A missing file is not an error: the
// defaults are returned. A file that exists but does not parse is an error,
// since silently ignoring a typo would be worse.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, annuaire.Errorf(annuaire.EINVALID, "parse config %s: %v", path, err)
	}

	if cfg.QPS <= 0 {
		cfg.QPS = DefaultQPS
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.PageTokenDelayMS <= 0 {
		cfg.PageTokenDelayMS = int(DefaultPageTokenDelay / time.Millisecond)
	}

	return cfg, nil
}

// PageTokenDelay returns the page-token activation delay as a duration.
func (c *Config) PageTokenDelay() time.Duration {
	return time.Duration(c.PageTokenDelayMS) * time.Millisecond
}

// RulesetFor returns the ruleset for a category: the config override when
// one is present, the built-in ruleset otherwise.
func (c *Config) RulesetFor(category annuaire.Category) *annuaire.Ruleset {
	rc, ok := c.Rulesets[string(category)]
	if !ok {
		return annuaire.RulesetFor(category)
	}
	return &annuaire.Ruleset{
		Category:            category,
		IncludeTypes:        rc.IncludeTypes,
		IncludeNameKeywords: rc.IncludeNameKeywords,
		ExcludeTypes:        rc.ExcludeTypes,
		ExcludeNameKeywords: rc.ExcludeNameKeywords,
	}
}
