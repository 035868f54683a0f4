package handlers

import (
	"context"

	"github.com/imamik/ranchsync/internal/reconcile"
	"github.com/imamik/ranchsync/internal/resources"
)

// RegistrationToken prints the registration tokens of a cluster.
func RegistrationToken(ctx context.Context, opts *Options, clusterName string) error {
	return run(ctx, opts, "registration-token "+clusterName, func(ctx context.Context, api resources.ActionAPI) (*reconcile.Result, error) {
		return resources.RegistrationTokens(ctx, api, clusterName)
	})
}

// ClusterInfo prints the cluster lookup.
func ClusterInfo(ctx context.Context, opts *Options, clusterName string) error {
	return run(ctx, opts, "cluster-info "+clusterName, func(ctx context.Context, api resources.ActionAPI) (*reconcile.Result, error) {
		return resources.ClusterInfo(ctx, api, clusterName)
	})
}
