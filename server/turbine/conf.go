package turbine

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dm-vev/turbine/server/turbine/rotor"
	"github.com/dm-vev/turbine/server/world"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a UserConfig holds values that cannot be
// used to create a Host.
var ErrInvalidConfig = errors.New("turbine: invalid config")

// Config contains options for creating a Host.
type Config struct {
	// Log is the Logger to use for logging information. If nil, Log is set to
	// slog.Default().
	Log *slog.Logger
	// Grid is the block grid rotor components are placed in. If nil, a new
	// empty grid is created.
	Grid *world.Grid
	// Variants maps every rotor variant to its block identities. If left as
	// the zero value, rotor.DefaultVariantTable is used.
	Variants rotor.VariantTable
	// MaxBladeChain is the maximum number of blades walked past when a blade
	// is connected to its shaft through other blades. If 0 or lower,
	// rotor.DefaultMaxBladeChain is used.
	MaxBladeChain int
	// Metrics receives counters about render updates and state computations.
	// If nil, a new Metrics is created.
	Metrics *Metrics
}

// New creates a Host using the fields of conf.
func (conf Config) New() *Host {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Grid == nil {
		conf.Grid = world.NewGrid(nil)
	}
	if conf.Variants == (rotor.VariantTable{}) {
		conf.Variants = rotor.DefaultVariantTable()
	}
	if conf.MaxBladeChain <= 0 {
		conf.MaxBladeChain = rotor.DefaultMaxBladeChain
	}
	if conf.Metrics == nil {
		conf.Metrics = NewMetrics()
	}
	h := newHost(conf)
	h.resolver = rotor.Config{
		Log:           conf.Log,
		Source:        conf.Grid,
		Variants:      conf.Variants,
		Assembly:      h,
		MaxBladeChain: conf.MaxBladeChain,
	}.New()
	conf.Grid.Handle(h)
	return h
}

// UserConfig is the user configuration of the rotor host. It may be
// serialised to TOML or YAML and can be converted to a Config by calling
// UserConfig.Config().
type UserConfig struct {
	Log struct {
		// Level is the minimum level of messages logged: debug, info, warn or
		// error.
		Level string `yaml:"Level"`
	} `yaml:"Log"`
	Rotor struct {
		// MaxBladeChain is the maximum number of blades walked past when
		// looking for the shaft a blade is attached to.
		MaxBladeChain int `yaml:"MaxBladeChain"`
	} `yaml:"Rotor"`
	Variants struct {
		// Basic holds the block identities of basic rotor components.
		Basic VariantIdentities `yaml:"Basic"`
		// Reinforced holds the block identities of reinforced rotor
		// components.
		Reinforced VariantIdentities `yaml:"Reinforced"`
	} `yaml:"Variants"`
}

// VariantIdentities holds the shaft and blade identities of one variant in a
// UserConfig.
type VariantIdentities struct {
	Shaft string `yaml:"Shaft"`
	Blade string `yaml:"Blade"`
}

// DefaultConfig returns a configuration with the default values filled out.
func DefaultConfig() UserConfig {
	c := UserConfig{}
	c.Log.Level = "info"
	c.Rotor.MaxBladeChain = rotor.DefaultMaxBladeChain
	table := rotor.DefaultVariantTable()
	basic, reinforced := table.Lookup(rotor.VariantBasic), table.Lookup(rotor.VariantReinforced)
	c.Variants.Basic = VariantIdentities{Shaft: string(basic.Shaft), Blade: string(basic.Blade)}
	c.Variants.Reinforced = VariantIdentities{Shaft: string(reinforced.Shaft), Blade: string(reinforced.Blade)}
	return c
}

// LogLevel parses the configured log level.
func (uc UserConfig) LogLevel() (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(uc.Log.Level) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(uc.Log.Level))); err != nil {
		return level, fmt.Errorf("%w: log level: %w", ErrInvalidConfig, err)
	}
	return level, nil
}

// Config converts a UserConfig to a Config, so that it may be used for
// creating a Host. An error is returned if an identity is missing or used
// more than once, or if the blade chain limit is negative.
func (uc UserConfig) Config(log *slog.Logger) (Config, error) {
	if uc.Rotor.MaxBladeChain < 0 {
		return Config{}, fmt.Errorf("%w: max blade chain must not be negative, got %d", ErrInvalidConfig, uc.Rotor.MaxBladeChain)
	}
	var table rotor.VariantTable
	seen := make(map[world.Identity]string, 4)
	for _, entry := range []struct {
		variant rotor.Variant
		ids     VariantIdentities
	}{
		{rotor.VariantBasic, uc.Variants.Basic},
		{rotor.VariantReinforced, uc.Variants.Reinforced},
	} {
		for _, k := range []rotor.Kind{rotor.KindShaft, rotor.KindBlade} {
			raw := entry.ids.Shaft
			if k == rotor.KindBlade {
				raw = entry.ids.Blade
			}
			id := world.Identity(strings.TrimSpace(raw))
			name := entry.variant.String() + " " + k.String()
			if id == "" || id == world.Air {
				return Config{}, fmt.Errorf("%w: %v identity must be set", ErrInvalidConfig, name)
			}
			if other, ok := seen[id]; ok {
				return Config{}, fmt.Errorf("%w: identity %v used by both %v and %v", ErrInvalidConfig, id, other, name)
			}
			seen[id] = name
			if k == rotor.KindBlade {
				table[entry.variant].Blade = id
			} else {
				table[entry.variant].Shaft = id
			}
		}
	}
	return Config{
		Log:           log,
		Variants:      table,
		MaxBladeChain: uc.Rotor.MaxBladeChain,
	}, nil
}

// LoadConfig reads the UserConfig stored at path. Files ending in .yaml or
// .yml are decoded as YAML, all others as TOML. If the file does not exist
// yet, it is created holding DefaultConfig. An empty path returns
// DefaultConfig without touching the file system.
func LoadConfig(path string) (UserConfig, error) {
	c := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return c, fmt.Errorf("read config: %w", err)
		}
		if err := writeConfig(path, c); err != nil {
			return c, err
		}
		return c, nil
	}
	if err := decodeFile(path, data, &c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

func writeConfig(path string, c UserConfig) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = toml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// decodeFile decodes data read from path into v, picking YAML or TOML by the
// file extension.
func decodeFile(path string, data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if isYAML(path) {
		return yaml.Unmarshal(data, v)
	}
	return toml.Unmarshal(data, v)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
