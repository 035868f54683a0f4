package resources

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/ranchsync/internal/platform/rancher"
	"github.com/imamik/ranchsync/internal/reconcile"
)

func TestGenerateKubeconfig(t *testing.T) {
	fake := newFakeRancher(t)
	fake.seed(rancher.CollectionCluster, "c-abc12", "demo", "active", nil)

	result, err := GenerateKubeconfig(context.Background(), fake.client(t), "demo")
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, 200, result.Status)
	assert.Equal(t, "OK", result.Reason)

	var out map[string]any
	require.NoError(t, json.Unmarshal(result.Resource, &out))
	assert.Equal(t, "generateKubeconfigOutput", out["type"])
	assert.Contains(t, out["config"], "c-abc12")

	assert.Equal(t, []string{
		"GET /v3/cluster?name=demo",
		"POST /v3/cluster/c-abc12?action=generateKubeconfig",
	}, fake.requestLog())
}

func TestGenerateKubeconfig_InactiveCluster(t *testing.T) {
	fake := newFakeRancher(t)
	fake.seed(rancher.CollectionCluster, "c-abc12", "demo", "provisioning", nil)

	_, err := GenerateKubeconfig(context.Background(), fake.client(t), "demo")
	require.Error(t, err)
	assert.EqualError(t, err, "the cluster state is not active, but provisioning.")
	assert.True(t, reconcile.IsType(err, reconcile.ErrorTypePrecondition))
	assert.Equal(t, 0, fake.countPrefix("POST "))
}

func TestGenerateKubeconfig_MissingCluster(t *testing.T) {
	fake := newFakeRancher(t)

	_, err := GenerateKubeconfig(context.Background(), fake.client(t), "demo")
	require.Error(t, err)
	assert.True(t, reconcile.IsType(err, reconcile.ErrorTypeAmbiguousState))
	assert.Equal(t, 0, fake.countPrefix("POST "))
}

func TestRegistrationTokens(t *testing.T) {
	fake := newFakeRancher(t)
	fake.seed(rancher.CollectionCluster, "c-abc12", "demo", "active", nil)
	fake.seed(rancher.CollectionClusterRegistrationToken, "c-abc12:default-token", "default-token", "active",
		map[string]any{"clusterId": "c-abc12", "command": "kubectl apply -f https://rancher.example.com/v3/import/abc.yaml"})
	fake.seed(rancher.CollectionClusterRegistrationToken, "c-other:default-token", "default-token", "active",
		map[string]any{"clusterId": "c-other"})

	result, err := RegistrationTokens(context.Background(), fake.client(t), "demo")
	require.NoError(t, err)
	assert.False(t, result.Changed)

	var coll rancher.Collection
	require.NoError(t, json.Unmarshal(result.Resource, &coll))
	require.Len(t, coll.Data, 1)
	assert.Equal(t, "c-abc12:default-token", coll.Data[0].ID)
	assert.Equal(t, "GET /v3/clusterregistrationtoken?clusterId=c-abc12", fake.requestLog()[1])
}

func TestClusterInfo(t *testing.T) {
	fake := newFakeRancher(t)
	fake.seed(rancher.CollectionCluster, "c-abc12", "demo", "active", nil)

	result, err := ClusterInfo(context.Background(), fake.client(t), "demo")
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, 200, result.Status)
	assert.Contains(t, string(result.Resource), `"c-abc12"`)
	assert.Len(t, fake.requestLog(), 1)

	_, err = ClusterInfo(context.Background(), fake.client(t), "")
	assert.True(t, reconcile.IsType(err, reconcile.ErrorTypeConfiguration))
}
