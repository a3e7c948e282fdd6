package config

import (
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug            = "debug"
	ConfigSearchDepth      = "search-depth"
	ConfigWhiteBot         = "white-bot"
	ConfigBlackBot         = "black-bot"
	ConfigTreePath         = "tree-path"
	ConfigNatsURL          = "nats-url"
	ConfigBotChannel       = "bot-channel"
	ConfigBotMaxDepth      = "bot-max-depth"
	ConfigAutoplayThreads  = "autoplay-threads"
	ConfigAutoplayMaxPlies = "autoplay-max-plies"
	ConfigResultsDB        = "results-db"
	ConfigSearchLogPath    = "search-log-path"
	ConfigCPUProfile       = "cpu-profile"
)

// Config wraps a viper instance. Values come from, in order of
// precedence: command-line flags, CHECKERS_* environment variables, and
// the defaults below.
type Config struct {
	*viper.Viper
	args []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigSearchDepth, 5)
	v.SetDefault(ConfigWhiteBot, "")
	v.SetDefault(ConfigBlackBot, "alphabeta")
	v.SetDefault(ConfigTreePath, "./data/trees")
	v.SetDefault(ConfigNatsURL, "nats://127.0.0.1:4222")
	v.SetDefault(ConfigBotChannel, "checkers.bot")
	v.SetDefault(ConfigBotMaxDepth, 8)
	v.SetDefault(ConfigAutoplayThreads, runtime.NumCPU())
	v.SetDefault(ConfigAutoplayMaxPlies, 400)
	v.SetDefault(ConfigResultsDB, "")
	v.SetDefault(ConfigSearchLogPath, "")
	v.SetDefault(ConfigCPUProfile, "")
}

// DefaultConfig returns a config with only the defaults set. It does not
// look at the environment.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{Viper: v}
}

func flagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigSearchDepth, 5, "depth of the game tree searched by the minimax bots")
	fs.String(ConfigWhiteBot, "", "bot playing white in the shell: random, minimax, alphabeta, or empty for a human")
	fs.String(ConfigBlackBot, "alphabeta", "bot playing black in the shell")
	fs.String(ConfigTreePath, "./data/trees", "directory for exported and imported game trees")
	fs.String(ConfigNatsURL, "nats://127.0.0.1:4222", "the NATS server the bot service connects to")
	fs.String(ConfigBotChannel, "checkers.bot", "the NATS subject bot requests are sent on")
	fs.Int(ConfigBotMaxDepth, 8, "the deepest search the bot service will run for a request")
	fs.Int(ConfigAutoplayThreads, runtime.NumCPU(), "number of games autoplay runs at once")
	fs.Int(ConfigAutoplayMaxPlies, 400, "an autoplay game that runs this long is scored as a draw")
	fs.String(ConfigResultsDB, "", "sqlite file autoplay results are stored in; empty to turn off")
	fs.String(ConfigSearchLogPath, "", "file the searching bots append their decisions to")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	return fs
}

// Load reads the command line and the environment.
func (c *Config) Load(args []string) error {
	if c.Viper == nil {
		c.Viper = viper.New()
	}
	setDefaults(c.Viper)
	fs := flagSet("checkers")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.SetEnvPrefix("checkers")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	return nil
}

// Args are the command-line arguments left over after the flags.
func (c *Config) Args() []string {
	return c.args
}
