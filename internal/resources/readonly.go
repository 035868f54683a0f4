package resources

import (
	"context"
	"net/url"

	"github.com/go-logr/logr"

	"github.com/imamik/ranchsync/internal/platform/rancher"
	"github.com/imamik/ranchsync/internal/reconcile"
)

// Kind names of the read-only operations.
const (
	KindRegistrationToken = "cluster registration token"
	KindKubeconfig        = "kubeconfig"
)

// ActionAPI is a reconcile.API that can also invoke resource actions.
type ActionAPI interface {
	reconcile.API
	Action(ctx context.Context, collection, id, action string) (*rancher.Response, error)
}

// ClusterInfo reports the cluster lookup as is. It never changes anything.
func ClusterInfo(ctx context.Context, api reconcile.API, name string) (*reconcile.Result, error) {
	if name == "" {
		return nil, reconcile.ConfigurationError(KindCluster, name, "%s name is required", KindCluster)
	}

	_, resp, err := api.Lookup(ctx, rancher.CollectionCluster, rancher.NameQuery(name))
	if err != nil {
		return nil, err
	}
	return reconcile.ResultFromResponse(false, resp)
}

// RegistrationTokens resolves the cluster id and lists the cluster's
// registration tokens.
func RegistrationTokens(ctx context.Context, api reconcile.API, clusterName string) (*reconcile.Result, error) {
	cluster, err := reconcile.ResolveOne(ctx, api, KindCluster, rancher.CollectionCluster, clusterName)
	if err != nil {
		return nil, err
	}

	logr.FromContextOrDiscard(ctx).V(1).Info("listing registration tokens", "cluster", clusterName, "clusterId", cluster.ID)
	query := url.Values{"clusterId": []string{cluster.ID}}
	_, resp, err := api.Lookup(ctx, rancher.CollectionClusterRegistrationToken, query)
	if err != nil {
		return nil, err
	}
	return reconcile.ResultFromResponse(false, resp)
}

// GenerateKubeconfig invokes generateKubeconfig on an active cluster. The
// action creates nothing, so the result is never changed.
func GenerateKubeconfig(ctx context.Context, api ActionAPI, clusterName string) (*reconcile.Result, error) {
	cluster, err := reconcile.ResolveOne(ctx, api, KindCluster, rancher.CollectionCluster, clusterName)
	if err != nil {
		return nil, err
	}
	if cluster.State != "active" {
		return nil, reconcile.PreconditionError(KindKubeconfig, clusterName,
			"the cluster state is not active, but %s.", cluster.State)
	}

	logr.FromContextOrDiscard(ctx).Info("generating kubeconfig", "cluster", clusterName, "clusterId", cluster.ID)
	resp, err := api.Action(ctx, rancher.CollectionCluster, cluster.ID, rancher.ActionGenerateKubeconfig)
	if err != nil {
		return nil, err
	}
	return reconcile.ResultFromResponse(false, resp)
}
