package rpq

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config holds the solver settings. It can be read from a YAML file, the
// solver flags override single values.
type Config struct {
	Resolver    string `yaml:"resolver"`
	Strategy    string `yaml:"strategy"`
	Engine      string `yaml:"engine"`
	MaxNodes    int    `yaml:"max_nodes"`
	Verify      bool   `yaml:"verify"`
	LogLevel    int    `yaml:"log"`
	Parallelism int    `yaml:"parallelism"`
}

func DefaultConfig() Config {
	return Config{
		Resolver:    RESOLVER_CARLIER,
		Strategy:    STRAT_DFS,
		Engine:      ENGINE_LOGN,
		MaxNodes:    0,
		Verify:      true,
		LogLevel:    2,
		Parallelism: 1,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.UnmarshalStrict(raw, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Resolver {
	case RESOLVER_SCHRAGE, RESOLVER_SCHRAGE_PMTN, RESOLVER_CARLIER, RESOLVER_BRUTEFORCE:
	default:
		return errors.Wrapf(ErrUnknownOption, "resolver %q", c.Resolver)
	}
	if c.LogLevel < 1 || c.LogLevel > 4 {
		return errors.Wrapf(ErrInvalidOption, "log level must be in 1-4 (got %d)", c.LogLevel)
	}
	if c.Parallelism < 1 {
		return errors.Wrapf(ErrInvalidOption, "parallelism must be > 0 (got %d)", c.Parallelism)
	}
	return c.CarlierOptions().Validate()
}

func (c Config) CarlierOptions() CarlierOptions {
	return CarlierOptions{
		Strategy: c.Strategy,
		Engine:   c.Engine,
		MaxNodes: c.MaxNodes,
	}
}
