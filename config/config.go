package config

import (
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug             = "debug"
	ConfigFile              = "config"
	ConfigBoardWidth        = "board-width"
	ConfigBoardHeight       = "board-height"
	ConfigRunLength         = "run-length"
	ConfigHoles             = "holes"
	ConfigWhiteFirst        = "white-first"
	ConfigTimeBudgetMs      = "time-budget-ms"
	ConfigLikelyMovesMax    = "likely-moves-max"
	ConfigLikelyMovesCutoff = "likely-moves-cutoff"
	ConfigNegamaxDepth      = "negamax-depth"
	ConfigNegamaxWidth      = "negamax-width"
	ConfigTTFractionOfMem   = "tt-fraction-of-mem"
	ConfigAggressiveness    = "aggressiveness"
	ConfigWeightsPath       = "weights-path"
	ConfigThreads           = "threads"
	ConfigNumGames          = "num-games"
	ConfigBlack             = "black"
	ConfigWhite             = "white"
	ConfigSavePath          = "save-path"
	ConfigLoadPath          = "load-path"
	ConfigMaxForfeits       = "max-forfeits"
)

// Config wraps a viper instance. Values come, in increasing priority, from
// defaults, an optional yaml file, GOMOKU_ environment variables and
// command-line flags.
type Config struct {
	*viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigBoardWidth, 15)
	v.SetDefault(ConfigBoardHeight, 15)
	v.SetDefault(ConfigRunLength, 5)
	v.SetDefault(ConfigHoles, 0)
	v.SetDefault(ConfigWhiteFirst, false)
	v.SetDefault(ConfigTimeBudgetMs, 2000)
	v.SetDefault(ConfigLikelyMovesMax, 15)
	v.SetDefault(ConfigLikelyMovesCutoff, 0.05)
	v.SetDefault(ConfigNegamaxDepth, 4)
	v.SetDefault(ConfigNegamaxWidth, 12)
	v.SetDefault(ConfigTTFractionOfMem, 0.02)
	v.SetDefault(ConfigAggressiveness, 0.0)
	v.SetDefault(ConfigWeightsPath, "")
	v.SetDefault(ConfigThreads, runtime.NumCPU())
	v.SetDefault(ConfigNumGames, 10)
	v.SetDefault(ConfigBlack, "beam")
	v.SetDefault(ConfigWhite, "greedy")
	v.SetDefault(ConfigSavePath, "")
	v.SetDefault(ConfigLoadPath, "")
	v.SetDefault(ConfigMaxForfeits, 3)
}

// DefaultConfig returns a config with only the default values set. It is
// mostly useful for tests.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	setDefaults(c.Viper)
	return c
}

// Copy returns an independent config holding the current values, so that
// callers can override keys without touching this one.
func (c *Config) Copy() *Config {
	nc := DefaultConfig()
	for _, key := range c.AllKeys() {
		nc.Set(key, c.Get(key))
	}
	return nc
}

// Load loads the config from the passed-in command-line arguments, the
// environment, and the config file named by --config, if any.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c.Viper)

	fs := pflag.NewFlagSet("gomoku", pflag.ContinueOnError)
	fs.String(ConfigFile, "", "path to a yaml config file")
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigBoardWidth, 15, "width of the board")
	fs.Int(ConfigBoardHeight, 15, "height of the board")
	fs.Int(ConfigRunLength, 5, "number of stones in a row needed to win")
	fs.Int(ConfigHoles, 0, "number of random walls carved into the board")
	fs.Bool(ConfigWhiteFirst, false, "let WHITE move first")
	fs.Int(ConfigTimeBudgetMs, 2000, "wall-clock budget per move for time-bounded agents")
	fs.Int(ConfigLikelyMovesMax, 15, "max candidates returned by likely-move ranking")
	fs.Float64(ConfigLikelyMovesCutoff, 0.05, "drop candidates below this fraction of the top weight")
	fs.Int(ConfigNegamaxDepth, 4, "negamax search depth in plies")
	fs.Int(ConfigNegamaxWidth, 12, "negamax candidate width at the root")
	fs.Float64(ConfigTTFractionOfMem, 0.02, "fraction of system memory for the transposition table")
	fs.Float64(ConfigAggressiveness, 0, "0 to 1; higher discounts the opponent's threats less")
	fs.String(ConfigWeightsPath, "", "yaml file with scorer weights")
	fs.Int(ConfigThreads, runtime.NumCPU(), "number of games to play in parallel")
	fs.Int(ConfigNumGames, 10, "number of games to play")
	fs.String(ConfigBlack, "beam", "agent playing BLACK")
	fs.String(ConfigWhite, "greedy", "agent playing WHITE")
	fs.String(ConfigSavePath, "", "file to save every position of a game to")
	fs.String(ConfigLoadPath, "", "file with an initial board (* = black; o = white; x = wall)")
	fs.Int(ConfigMaxForfeits, 3, "consecutive illegal moves before an agent is deemed to surrender")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.SetEnvPrefix("gomoku")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if path := c.GetString(ConfigFile); path != "" {
		c.SetConfigFile(path)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return err
		}
	}
	return nil
}

// Args returns the positional arguments left over after flags; viper
// does not keep them, so they are re-parsed here.
func Args(args []string) []string {
	out := []string{}
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") {
			out = append(out, a)
			continue
		}
		if strings.Contains(a, "=") {
			continue
		}
		// boolean flags take no value
		name := strings.TrimLeft(a, "-")
		if name == ConfigDebug || name == ConfigWhiteFirst {
			continue
		}
		i++
	}
	return out
}
