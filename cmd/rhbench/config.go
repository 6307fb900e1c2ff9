package main

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// growthConfig mirrors rhmap.WithGrowth. Zero values keep the defaults.
type growthConfig struct {
	Threshold  uint `toml:"threshold"`
	Multiplier uint `toml:"multiplier"`
	Offset     uint `toml:"offset"`
}

// config describes one workload run
type config struct {
	Keys       int          `toml:"keys"`
	EraseEvery int          `toml:"erase_every"`
	Hasher     string       `toml:"hasher"`
	Seed       int64        `toml:"seed"`
	Capacity   int          `toml:"capacity"`
	Growth     growthConfig `toml:"growth"`
	LogLevel   string       `toml:"log_level"`
	Dev        bool         `toml:"dev"`
}

func defaultConfig() config {
	return config{
		Keys:       100000,
		EraseEvery: 3,
		Hasher:     "default",
		Seed:       1,
		LogLevel:   "info",
	}
}

// loadConfig decodes a TOML file over the defaults. Unknown keys are an
// error so typos don't silently run the default workload.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "decoding %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return cfg, errors.Newf("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func (c *config) validate() error {
	if c.Keys < 0 {
		return errors.Newf("keys must not be negative, got %d", c.Keys)
	}
	if c.EraseEvery < 0 {
		return errors.Newf("erase_every must not be negative, got %d", c.EraseEvery)
	}
	switch c.Hasher {
	case "default", "constant":
	default:
		return errors.Newf("unknown hasher %q", c.Hasher)
	}
	return nil
}

// newLogger builds a zap logger at the configured level
func (c *config) newLogger() (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, errors.Wrapf(err, "log level %q", c.LogLevel)
	}
	zc := zap.NewProductionConfig()
	if c.Dev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
