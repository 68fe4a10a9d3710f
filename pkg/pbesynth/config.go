package pbesynth

import (
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// ExecutorConfig holds the configuration keys consumed by the core, listed
// in spec §6. It is deliberately flat: the grammar file format itself is an
// external collaborator's responsibility (spec §1 non-goal), but the core's
// own numeric/string knobs still need a home, and they get one the way
// go-mysql-server decodes its own engine configuration: spf13/cast for
// loose-typed values, gopkg.in/yaml.v2 for an optional file-based default.
type ExecutorConfig struct {
	// SizeLimit bounds the outer enumeration loop (default: unbounded,
	// represented here as 0 meaning "no limit").
	SizeLimit int `yaml:"size_limit"`

	// SubstrSamples (default 6) is carried on the config but not read by
	// the engine: the substr index is built over every row of the target
	// output.
	SubstrSamples int `yaml:"substr_samples"`

	// StrDecayRate (default 900) is carried on the config; no deducer
	// reads it.
	StrDecayRate int `yaml:"str.decay_rate"`

	// EnumReplaceCost caps the b/c sub-cost for Replace enumeration
	// (default 3); 0 leaves the operator's own ReplCap in force.
	EnumReplaceCost int `yaml:"enum_replace_cost"`

	// DataSubstrSample and DataListsubseqSample are carried on the config;
	// no index reads them.
	DataSubstrSample     int `yaml:"data.substr.sample"`
	DataListsubseqSample int `yaml:"data.listsubseq.sample"`

	// IteLimitRateMS / IteLimitGiveupMS are the conditional-learning
	// collaborator's timing knobs (spec §9 Open Question): milliseconds
	// before relaxing the conditional-tree size cap, and before giving up
	// entirely. They are carried on the config only: neither the executor
	// nor the conditional-learning glue (conditional.go) reads them.
	IteLimitRateMS   int `yaml:"ite_limit_rate"`
	IteLimitGiveupMS int `yaml:"ite_limit_giveup"`
}

// DefaultExecutorConfig returns the documented defaults from spec §6.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		SizeLimit:       0,
		SubstrSamples:   6,
		StrDecayRate:    900,
		EnumReplaceCost: 3,
	}
}

// LoadExecutorConfigYAML decodes an ExecutorConfig from YAML bytes, falling
// back to DefaultExecutorConfig for any field the document omits.
func LoadExecutorConfigYAML(data []byte) (ExecutorConfig, error) {
	cfg := DefaultExecutorConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ExecutorConfig{}, wrapErr(err, "decoding executor config")
	}
	if cfg.SizeLimit < 0 {
		return ExecutorConfig{}, ErrConfigMisuse.New("size_limit must be >= 0")
	}
	return cfg, nil
}

// Validate checks the fatal configuration-misuse conditions of spec §7.
func (c ExecutorConfig) Validate() error {
	if c.SizeLimit < 0 {
		return ErrConfigMisuse.New("size_limit must be >= 0")
	}
	if c.SubstrSamples < 0 {
		return ErrConfigMisuse.New("substr_samples must be >= 0")
	}
	return nil
}

// NTConfig is the per-non-terminal configuration map of spec §3
// ("per-non-terminal configuration (key->scalar map)"). Values arrive
// loosely typed (as they would from an external grammar-file parser) and
// are coerced on demand via spf13/cast, the same library go-mysql-server
// uses to coerce its own loosely-typed configuration values.
type NTConfig map[string]interface{}

// GetInt coerces key to an int, or returns def if absent/unconvertible.
func (c NTConfig) GetInt(key string, def int) int {
	v, ok := c[key]
	if !ok {
		return def
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return def
	}
	return n
}

// GetBool coerces key to a bool, or returns def if absent/unconvertible.
func (c NTConfig) GetBool(key string, def bool) bool {
	v, ok := c[key]
	if !ok {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return b
}

// GetString coerces key to a string, or returns def if absent.
func (c NTConfig) GetString(key string, def string) string {
	v, ok := c[key]
	if !ok {
		return def
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return def
	}
	return s
}
