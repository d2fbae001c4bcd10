// Package cmd provides the CLI commands for Career OS.
//
// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/careeros/internal/config"
	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/logging"
	"github.com/manav03panchal/careeros/internal/output"
	"github.com/manav03panchal/careeros/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat  string
	flagColor   string
	flagDebug   bool
	flagAccount string
	flagConfig  string
	flagMock    bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// annotationSkipSeed marks commands that must not bootstrap the account on start.
const annotationSkipSeed = "careeros/skip-seed"

// skipInit lists commands that run without opening the store.
var skipInit = map[string]bool{
	"completion": true,
	"help":       true,
	"version":    true,
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "careeros",
	Short: "Career OS: KPIs, applications, schedule and daily checklist",
	Long: `Career OS tracks a career transition: phase KPIs, a company pipeline,
a weekly schedule and the daily non-negotiables that move the KPIs.

Data lives in a local key-value store unless CAREEROS_REMOTE_URL and
CAREEROS_REMOTE_KEY point at a remote database.

Examples:
  careeros
  careeros checklist toggle gym
  careeros kpi
  careeros company status jane Applied
  careeros schedule add mon 06:00-07:00 gym Gym`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipInit[cmd.Name()] {
			return nil
		}

		format, err := output.ParseFormat(flagFormat)
		if err != nil {
			return errs.NewUserErrorWithField("format", flagFormat, "Unknown output format", "Use cli, json or plain")
		}
		colorMode, err := output.ParseColorMode(flagColor)
		if err != nil {
			return errs.NewUserErrorWithField("color", flagColor, "Unknown color mode", "Use auto, always or never")
		}

		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug
		opts.Config = configOptions()
		opts.SkipSeed = cmd.Annotations[annotationSkipSeed] == "true"

		ctx, err = runtime.New(cmd.Context(), opts)
		if err != nil {
			return err
		}
		ctx.Formatter.Writer = cmd.OutOrStdout()
		ctx.Debugf("mode=%s account=%s", ctx.Mode(), ctx.Account())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			err := ctx.Close()
			ctx = nil
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show today's checklist
		return runChecklist(cmd, args)
	},
}

// configOptions turns the global flags into config overrides.
func configOptions() config.Options {
	opts := config.Options{
		ConfigFile: flagConfig,
		Overrides:  map[string]any{},
	}
	if flagAccount != "" {
		opts.Overrides[config.KeyAccount] = flagAccount
	}
	if flagMock {
		opts.Overrides[config.KeyUseMock] = "1"
	}
	return opts
}

// Execute runs the root command and reports any error in the active output format.
func Execute(c context.Context) error {
	err := rootCmd.ExecuteContext(logging.NewRequestContext(c))
	if err != nil {
		runtime.ReportError(ctx, err)
	}
	if ctx != nil {
		// PersistentPostRunE is skipped when RunE fails.
		ctx.Close()
		ctx = nil
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	rootCmd.PersistentFlags().StringVarP(&flagAccount, "account", "a", "",
		"Account to operate on (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Config file (default $XDG_CONFIG_HOME/careeros/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagMock, "mock", false,
		"Use the local store even when a remote database is configured")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("careeros %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
		cmd.Println("")
		cmd.Println("Based on Zeit (https://github.com/mrusme/zeit)")
		cmd.Println("Licensed under SEGV License v1.0")
	},
}
