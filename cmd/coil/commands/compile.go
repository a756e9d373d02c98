package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/coil/internal/app"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	var opts app.CompileOptions
	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Print the compiled output of a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Compile(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.MapFile, "map", "", "Write an external source map to this file")
	cmd.Flags().BoolVar(&opts.NoBare, "no-bare", false, "Keep the module wrapper around the output")
	return cmd
}
