package config

import (
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"github.com/rlaau/pmsort/internal/bench"
	"github.com/rlaau/pmsort/internal/logutil"
	"github.com/rlaau/pmsort/msort"
)

var ErrInvalidConfig = errors.New("invalid config")

// SortConfig 병렬 머지소트 설정
type SortConfig struct {
	// Cutoff 병렬 분할 최대 깊이. 음수면 GOMAXPROCS 기반 기본값
	Cutoff int `toml:"cutoff"`
	// MaxGoroutines 동시에 살아있는 자식 고루틴 수 제한. 0이면 제한 없음
	MaxGoroutines int `toml:"max_goroutines"`
}

type BenchConfig struct {
	Sizes      []int    `toml:"sizes"`
	Runs       int      `toml:"runs"`
	Seed       int64    `toml:"seed"`
	Algorithms []string `toml:"algorithms"`
}

type StoreConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

type Config struct {
	Sort  SortConfig        `toml:"sort"`
	Bench BenchConfig       `toml:"bench"`
	Store StoreConfig       `toml:"store"`
	Log   logutil.LogConfig `toml:"log"`
}

func Default() *Config {
	return &Config{
		Sort: SortConfig{Cutoff: -1},
		Bench: BenchConfig{
			Sizes:      []int{1000, 10000, 100000},
			Runs:       3,
			Seed:       42,
			Algorithms: bench.Algorithms(),
		},
		Store: StoreConfig{Backend: "bbolt", Path: "sortbench.db"},
		Log:   logutil.LogConfig{Level: "info", Format: "console"},
	}
}

// Load 기본값 위에 TOML 파일을 덮어쓴다. path가 비어 있으면 기본값만 사용
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, errors.Wrapf(err, "decode config %s", path)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Bench.Sizes) == 0 {
		return errors.Wrap(ErrInvalidConfig, "bench.sizes is empty")
	}
	for _, n := range c.Bench.Sizes {
		if n < 0 {
			return errors.Wrapf(ErrInvalidConfig, "negative size %d", n)
		}
	}
	if c.Bench.Runs <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "bench.runs must be positive, got %d", c.Bench.Runs)
	}
	if len(c.Bench.Algorithms) == 0 {
		return errors.Wrap(ErrInvalidConfig, "bench.algorithms is empty")
	}
	for _, algo := range c.Bench.Algorithms {
		if !slices.Contains(bench.Algorithms(), algo) {
			return errors.Wrapf(ErrInvalidConfig, "unknown algorithm %q", algo)
		}
	}
	if c.Sort.MaxGoroutines < 0 {
		return errors.Wrapf(ErrInvalidConfig, "sort.max_goroutines must not be negative, got %d", c.Sort.MaxGoroutines)
	}
	switch c.Store.Backend {
	case "bbolt", "badger", "pebble":
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	if c.Store.Path == "" {
		return errors.Wrap(ErrInvalidConfig, "store.path is empty")
	}
	return nil
}

// SorterOptions 설정을 msort 옵션으로 변환
func (c *Config) SorterOptions() []msort.Option {
	var opts []msort.Option
	if c.Sort.Cutoff >= 0 {
		opts = append(opts, msort.WithCutoff(c.Sort.Cutoff))
	}
	if c.Sort.MaxGoroutines > 0 {
		opts = append(opts, msort.WithSpawner(msort.NewLimiter(c.Sort.MaxGoroutines)))
	}
	return opts
}
