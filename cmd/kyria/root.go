// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gitlab.com/greyxor/slogor"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kyria",
	Short: "Kyria keymap with OLED and RGB matrix",
	Long: `kyria drives the OLED and the per-key RGB lighting of a splitkb Kyria
from a host. Key events are read from the keyboard's serial debug log or stdin.

Settings may also be given in .kyria.toml (current or home directory) or as
KYRIA_* environment variables.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			slog.SetDefault(slog.New(
				slogor.NewHandler(os.Stderr, &slogor.Options{
					Level:      slog.LevelDebug,
					TimeFormat: time.DateTime,
					ShowSource: true,
				})),
			)
		}
		bindFlags(cmd, args)
	},
	SilenceUsage: true,
}

// Execute runs the command line. It exits the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .kyria.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigType("toml")
		viper.SetConfigName(".kyria")
	}
	viper.SetEnvPrefix("kyria")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			cobra.CheckErr(fmt.Errorf("reading config: %w", err))
		}
		slog.Debug("no config file")
		return
	}
	slog.Debug("using config file", "path", viper.ConfigFileUsed())
}

// bindFlags sets the flags that were not given on the command line from the
// config file and the environment.
func bindFlags(cmd *cobra.Command, _ []string) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || !viper.IsSet(f.Name) {
			return
		}
		val := viper.Get(f.Name)
		if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
			cobra.CheckErr(fmt.Errorf("config %s: %w", f.Name, err))
		}
		slog.Debug("flag set from config", "flag", f.Name, "value", val)
	})
}
