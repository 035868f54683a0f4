package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ranchsync/cmd/ranchsync/handlers"
)

// RegistrationToken returns the command listing a cluster's registration tokens.
func RegistrationToken(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "registration-token NAME",
		Short: "Show the registration tokens of a cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.RegistrationToken(cmd.Context(), opts, args[0])
		},
	}
}

// ClusterInfo returns the command printing the cluster lookup.
func ClusterInfo(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "cluster-info NAME",
		Short: "Show a cluster as Rancher reports it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.ClusterInfo(cmd.Context(), opts, args[0])
		},
	}
}
