package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/oastubs"
)

// RootFlags holds flags shared by every command.
type RootFlags struct {
	Verbose bool
}

// NewRootCommand builds the oastubs command tree.
func NewRootCommand() *cobra.Command {
	flags := &RootFlags{}
	root := &cobra.Command{
		Use:   "oastubs",
		Short: "Map OpenAPI documents and derive Go HTTP test stubs",
		Long: `oastubs reads an OpenAPI 3.x document (JSON or YAML), maps it into a typed
object graph, and derives one Go HTTP test per operation from it.`,
		Version:       oastubs.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&flags.Verbose, "verbose", false, "log mapping progress to stderr at debug level")

	root.AddCommand(
		newMapCommand(flags),
		newStubsCommand(flags),
		newMCPCommand(),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			Writef(cmd.OutOrStdout(), "oastubs\n%s\n", oastubs.BuildInfo())
		},
	}
}
