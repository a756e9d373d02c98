// Package commands implements the CLI commands for coil.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/coil/internal/app"
	"go.trai.ch/coil/internal/build"
)

// CLI represents the command line interface for coil.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
	opts    app.Options
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "coil [file] [args...]",
		Short: "Run TypeScript and other compile-to-JS modules with a content-addressed compile cache",
		Long: `coil compiles modules on first load and caches the output under a hash of
the source, so unchanged files are never compiled twice.

Running "coil <file>" is the same as "coil run <file>". Flags after the file
are passed to the script.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			c.app.Configure(c.opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return c.app.Run(cmd.Context(), args[0], args[1:])
		},
	}
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringSliceVar(&c.opts.Extensions, "ext", nil, "Additional extension compiled by the TypeScript loader (repeatable)")
	flags.BoolVarP(&c.opts.NoCache, "no-cache", "n", false, "Bypass cache reads and recompile every module")
	flags.StringVar(&c.opts.CacheDir, "cache-dir", "", "Cache directory (default .coil/cache)")
	flags.BoolVar(&c.opts.JSON, "json", false, "Write logs as JSON")
	flags.BoolVarP(&c.opts.Verbose, "verbose", "v", false, "Log cache hits and compilations")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newCompileCmd())
	rootCmd.AddCommand(c.newWarmCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newStatsCmd())
	rootCmd.AddCommand(c.newCleanCmd())
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

// SetOutput redirects cobra's output. Used for testing.
func (c *CLI) SetOutput(stdout, stderr io.Writer) {
	c.rootCmd.SetOut(stdout)
	c.rootCmd.SetErr(stderr)
}
