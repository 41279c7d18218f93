// Command transly translates JSON, CSV and TXT files.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ZaguanLabs/transly"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// app carries the per-invocation state shared by the commands.
type app struct {
	v       *viper.Viper
	cfgFile string
	stdout  io.Writer
	stderr  io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{
		v:      viper.New(),
		stdout: stdout,
		stderr: stderr,
	}

	root := a.createRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// createRootCommand creates and configures the root cobra command.
func (a *app) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "transly",
		Short: "CLI for translating files",
		Long: `transly translates JSON, CSV and TXT files into another language.

Each distinct text is translated once and remembered in a local cache, so
re-running a file only translates what changed.

Examples:
  transly translate test.json -l fa
  transly translate test.csv -l es -s en
  transly cache list`,
		Version:       transly.FullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.transly.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Diagnostic log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("cache-file", transly.DefaultCacheFile, "Cache snapshot (.json, or .db/.sqlite for SQLite)")
	a.v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	a.v.BindPFlag("cache.file", rootCmd.PersistentFlags().Lookup("cache-file"))

	rootCmd.AddCommand(
		a.createStartCommand(),
		a.createTranslateCommand(),
		a.createCacheCommand(),
	)

	return rootCmd
}

func (a *app) createStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start Transly and display information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner(a.stdout)
			printWelcome(a.stdout)
			return nil
		},
	}
}
