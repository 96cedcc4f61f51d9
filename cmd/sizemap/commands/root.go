// Package commands implements the CLI commands for sizemap.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/sizemap/internal/app"
	"go.trai.ch/sizemap/internal/build"
)

// CLI represents the command line interface for sizemap.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Size(ctx context.Context, args []string, opts app.Options) error
	Tree(ctx context.Context, args []string, opts app.Options) error
	Watch(ctx context.Context, args []string, opts app.Options) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "sizemap",
		Short:         "Measure how much content each asset pulls in",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("dir", "C", "", "Run as if started in this directory")
	flags.StringP("manifest", "m", "", "Path to sizemap.yaml (default: search upwards)")
	flags.StringP("kind", "k", "", "Size kind to measure, e.g. disk or memory")
	flags.Bool("json-log", false, "Write log records as JSON")
	flags.Bool("trace", false, "Log how long each engine phase takes")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newSizeCmd())
	rootCmd.AddCommand(c.newTreeCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// options reads the flags shared by every command.
func options(cmd *cobra.Command) app.Options {
	dir, _ := cmd.Flags().GetString("dir")
	manifest, _ := cmd.Flags().GetString("manifest")
	kind, _ := cmd.Flags().GetString("kind")
	jsonLog, _ := cmd.Flags().GetBool("json-log")
	trace, _ := cmd.Flags().GetBool("trace")

	return app.Options{
		Dir:      dir,
		Manifest: manifest,
		Kind:     kind,
		JSONLog:  jsonLog,
		Trace:    trace,
	}
}
