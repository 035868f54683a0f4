package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ranchsync/cmd/ranchsync/handlers"
)

// Init returns the command for interactively creating a desired-state document.
//
// Flags:
//
//	--out, -o: Path to output file (default "ranchsync.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a desired-state document",
		Long: `Interactively create a desired-state document.

The wizard asks for the kind, name and state of the resource and, when it
should be present, for the attributes of that kind. The result is validated
before it is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "out", "o", "ranchsync.yaml", "Output file path")

	return cmd
}
