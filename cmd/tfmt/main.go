// Command tfmt checks, inspects and runs TFMT scripts.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
		}
		os.Exit(1)
	}
}

// app holds the configuration shared by every command.
type app struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	cmd := &cobra.Command{
		Use:           "tfmt",
		Short:         "Rename audio files from their tags with TFMT scripts",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}
	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.tfmt.yaml)")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.Int("max-depth", 64, "maximum expression nesting depth")
	for _, name := range []string{"config", "no-color", "log-level", "max-depth"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	cmd.AddCommand(a.checkCmd(), a.astCmd(), a.runCmd())
	return cmd
}

// initConfig reads the config file, if any, and environment variables
// prefixed with TFMT_.
func (a *app) initConfig() error {
	a.v.SetEnvPrefix("tfmt")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return nil
		}
		a.v.AddConfigPath(home)
		a.v.SetConfigName(".tfmt")
		a.v.SetConfigType("yaml")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && a.v.GetString("config") == "" {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}
