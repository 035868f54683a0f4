package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ranchsync/cmd/ranchsync/handlers"
)

// Apply returns the command reconciling one desired-state document.
//
// Optional flags:
//
//	--file, -f: Path to the desired-state YAML file (default: ranchsync.yaml)
func Apply(opts *handlers.Options) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Reconcile one resource against its desired state",
		Long: `Reconcile one Rancher resource against a desired-state document.

The resource is looked up by name. A missing resource that should be present
is created, an existing resource that should be absent is deleted, anything
else is left alone. Existing resources are never updated.

Examples:
  # Create the cluster described in demo.yaml
  ranchsync apply -f demo.yaml

  # Same document with "state: absent" deletes it
  ranchsync apply -f demo.yaml --output pretty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), opts, path)
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "Path to the desired-state file (default: ranchsync.yaml)")

	return cmd
}
