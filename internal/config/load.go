package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hailam/compbench/internal/utils"
)

// EnvPrefix prefixes every environment variable read by Load, e.g.
// COMPBENCH_LIMIT or COMPBENCH_KEEP_GOING.
const EnvPrefix = "COMPBENCH"

// Config holds the settings of one invocation after flags, environment and
// config file have been merged, in that order of precedence.
type Config struct {
	Limit       string
	Quiet       bool
	Format      string
	History     string
	MetricsFile string
	KeepGoing   bool
	Verbose     bool
	Commands    []string
}

// flag name -> config key
var boundFlags = map[string]string{
	"quiet":        "quiet",
	"format":       "format",
	"history":      "history",
	"metrics-file": "metrics_file",
	"keep-going":   "keep_going",
	"verbose":      "verbose",
}

// Load merges cfgFile (or ./compbench.yaml when empty and present), a .env
// file, COMPBENCH_* environment variables and the changed flags in flags.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// A missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("compbench")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("limit", "5MiB")
	v.SetDefault("quiet", false)
	v.SetDefault("format", "text")
	v.SetDefault("keep_going", false)
	v.SetDefault("verbose", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range boundFlags {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	cfg := &Config{
		Limit:       v.GetString("limit"),
		Quiet:       v.GetBool("quiet"),
		Format:      v.GetString("format"),
		History:     v.GetString("history"),
		MetricsFile: v.GetString("metrics_file"),
		KeepGoing:   v.GetBool("keep_going"),
		Verbose:     v.GetBool("verbose"),
		Commands:    v.GetStringSlice("commands"),
	}

	// The limit flag holds an already parsed size whose String form is
	// rounded, so take its exact byte count instead of binding it.
	if flags != nil {
		if f := flags.Lookup("limit"); f != nil && f.Changed {
			if size, ok := f.Value.(*utils.ByteSize); ok {
				cfg.Limit = strconv.FormatInt(size.Bytes(), 10)
			} else {
				cfg.Limit = f.Value.String()
			}
		}
	}
	return cfg, nil
}
