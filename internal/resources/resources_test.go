package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	hcloudapi "github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/ranchsync/internal/config"
	"github.com/imamik/ranchsync/internal/platform/hcloud"
	"github.com/imamik/ranchsync/internal/platform/rancher"
	"github.com/imamik/ranchsync/internal/reconcile"
)

const demoCluster = `
kind: cluster
name: demo
cluster:
  kubernetesVersion: v1.14.5
  cniProvider: calico
  ingressProvider: nginx
`

const workerPool = `
kind: nodePool
name: workers
nodePool:
  cluster: demo
  nodeTemplate: small
  hostnamePrefix: demo-worker-
  quantity: 3
  worker: true
`

const eportalTemplate = `
kind: nodeTemplate
name: small
nodeTemplate:
  eportal:
    server: https://eportal.example.com
    token: t0ken
    region: eu-1
    network: vlan-42
    cpu: 2
    memory: 4096
    disk: 40
    image: ubuntu-18.04
  engineInstallURL: https://releases.rancher.com/install-docker/18.09.sh
  engineStorageDriver: overlay2
  engineOptions:
    log-driver: json-file
`

const hetznerTemplate = `
kind: nodeTemplate
name: hcloud-small
nodeTemplate:
  driver: hetzner
  hetzner:
    apiToken: hc-token
    serverType: cx22
    serverLocation: nbg1
    image: ubuntu-24.04
    networks: [rancher]
    usePrivateNetwork: true
    verify: true
  engineInstallURL: https://releases.rancher.com/install-docker/24.0.sh
  engineStorageDriver: overlay2
`

func TestApply_ClusterCreate(t *testing.T) {
	fake := newFakeRancher(t)

	result, err := Apply(context.Background(), fake.client(t), loadDocument(t, demoCluster))
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, http.StatusCreated, result.Status)

	posts := fake.postsTo(rancher.CollectionCluster)
	require.Len(t, posts, 1)
	rke, ok := posts[0]["rancherKubernetesEngineConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "calico", rke["network"].(map[string]any)["plugin"])
	assert.Equal(t, "nginx", rke["ingress"].(map[string]any)["provider"])
	assert.Equal(t, "v1.14.5", rke["kubernetesVersion"])
	assert.NotContains(t, rke, "cloudProvider")
	assert.Equal(t, "/var/lib/docker", posts[0]["dockerRootDir"])

	again, err := Apply(context.Background(), fake.client(t), loadDocument(t, demoCluster))
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Len(t, fake.postsTo(rancher.CollectionCluster), 1)
}

func TestNewClusterPayload_DVP(t *testing.T) {
	doc := loadDocument(t, `
kind: cluster
name: storage
cluster:
  kubernetesVersion: v1.14.5
  cniProvider: canal
  ingressProvider: nginx
  enableDVP: true
  region: dc-west
  vcenter:
    host: vcenter.example.com
    user: svc-rancher
    password: pw
    machineFolder: /dc-west/vm/k8s
    datastore: ds-01
  etcdBackup:
    intervalHours: 6
`)

	p := NewClusterPayload(doc.Name, doc.Cluster)
	cp := p.RancherKubernetesEngineConfig.CloudProvider
	require.NotNil(t, cp)
	assert.Equal(t, "vsphere", cp.Name)
	assert.Equal(t, VirtualCenter{Datacenters: "dc-west", User: "svc-rancher", Password: "pw"},
		cp.VsphereCloudProvider.VirtualCenter["vcenter.example.com"])
	assert.Equal(t, "ds-01", cp.VsphereCloudProvider.Workspace.DefaultDatastore)
	assert.Equal(t, "/dc-west/vm/k8s", cp.VsphereCloudProvider.Workspace.Folder)
	assert.Equal(t, EtcdBackupConfig{Enabled: true, IntervalHours: 6, Retention: 6},
		p.RancherKubernetesEngineConfig.Services.Etcd.BackupConfig)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"default-datastore":"ds-01"`)
	assert.Contains(t, string(raw), `"insecure-flag":true`)
}

func TestApply_NodeDriver(t *testing.T) {
	fake := newFakeRancher(t)
	doc := loadDocument(t, `
kind: nodeDriver
name: eportal
nodeDriver:
  url: https://drivers.example.com/docker-machine-driver-eportal
  whitelistDomains: [drivers.example.com]
`)

	result, err := Apply(context.Background(), fake.client(t), doc)
	require.NoError(t, err)
	assert.True(t, result.Changed)

	posts := fake.postsTo(rancher.CollectionNodeDriver)
	require.Len(t, posts, 1)
	assert.Equal(t, true, posts[0]["active"])
	assert.Equal(t, false, posts[0]["builtin"])
	assert.Equal(t, "https://drivers.example.com/docker-machine-driver-eportal", posts[0]["url"])
	assert.NotContains(t, posts[0], "checksum")
}

func TestApply_NodePoolResolvesDependencies(t *testing.T) {
	fake := newFakeRancher(t)
	fake.seed(rancher.CollectionCluster, "c-abc12", "demo", "active", nil)
	fake.seed(rancher.CollectionNodeTemplate, "cattle-global-nt:nt-xyz", "small", "active", nil)

	result, err := Apply(context.Background(), fake.client(t), loadDocument(t, workerPool))
	require.NoError(t, err)
	assert.True(t, result.Changed)

	posts := fake.postsTo(rancher.CollectionNodePool)
	require.Len(t, posts, 1)
	assert.Equal(t, "c-abc12", posts[0]["clusterId"])
	assert.Equal(t, "cattle-global-nt:nt-xyz", posts[0]["nodeTemplateId"])
	assert.Equal(t, "demo-worker-", posts[0]["hostnamePrefix"])
	assert.EqualValues(t, 3, posts[0]["quantity"])
	assert.Equal(t, true, posts[0]["worker"])
	assert.Equal(t, false, posts[0]["etcd"])

	assert.Equal(t, []string{
		"GET /v3/nodepool?name=workers",
		"GET /v3/cluster?name=demo",
		"GET /v3/nodetemplate?name=small",
		"POST /v3/nodepool",
	}, fake.requestLog())
}

func TestApply_NodePoolMissingClusterFailsBeforePost(t *testing.T) {
	fake := newFakeRancher(t)
	fake.seed(rancher.CollectionNodeTemplate, "nt-1", "small", "active", nil)

	_, err := Apply(context.Background(), fake.client(t), loadDocument(t, workerPool))
	require.Error(t, err)
	assert.True(t, reconcile.IsType(err, reconcile.ErrorTypeAmbiguousState))
	assert.Contains(t, err.Error(), `no cluster named "demo" was found`)
	assert.Equal(t, 0, fake.countPrefix("POST "))
}

func TestApply_NodePoolAbsentNeedsNoDependencies(t *testing.T) {
	fake := newFakeRancher(t)
	fake.seed(rancher.CollectionNodePool, "np-1", "workers", "active", nil)

	result, err := Apply(context.Background(), fake.client(t), loadDocument(t, `
kind: nodePool
name: workers
state: absent
`))
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, []string{
		"GET /v3/nodepool?name=workers",
		"DELETE /v3/nodepool/np-1",
	}, fake.requestLog())
}

func TestApply_EportalTemplate(t *testing.T) {
	fake := newFakeRancher(t)

	result, err := Apply(context.Background(), fake.client(t), loadDocument(t, eportalTemplate))
	require.NoError(t, err)
	assert.True(t, result.Changed)

	posts := fake.postsTo(rancher.CollectionNodeTemplate)
	require.Len(t, posts, 1)
	eportal := posts[0]["eportalConfig"].(map[string]any)
	assert.Equal(t, "eu-1", eportal["location"])
	assert.Equal(t, "ubuntu-18.04", eportal["os"])
	assert.Equal(t, "vlan-42", eportal["vlan"])
	assert.EqualValues(t, 4096, eportal["memory"])
	assert.NotContains(t, eportal, "sshUser")
	assert.NotContains(t, posts[0], "hetznerConfig")
	assert.Equal(t, map[string]any{"log-driver": "json-file"}, posts[0]["engineOpt"])
	assert.Equal(t, "overlay2", posts[0]["engineStorageDriver"])
}

func TestApply_NodeTemplateBareDelete(t *testing.T) {
	fake := newFakeRancher(t)
	fake.seed(rancher.CollectionNodeTemplate, "nt-1", "small", "active", nil)

	result, err := Apply(context.Background(), fake.client(t), loadDocument(t, `
kind: nodeTemplate
name: small
state: absent
`))
	require.NoError(t, err)
	assert.Equal(t, &reconcile.Result{Changed: true, Status: http.StatusOK, Reason: "OK"}, result)
	assert.Nil(t, result.Resource)
	assert.Equal(t, 1, fake.countPrefix("DELETE /v3/nodetemplate/nt-1"))
}

func TestApply_ClusterNameTakenAsGiven(t *testing.T) {
	fake := newFakeRancher(t)

	result, err := Apply(context.Background(), fake.client(t), loadDocument(t, `
kind: cluster
name: Demo_Cluster
cluster:
  kubernetesVersion: v1.14.5
  cniProvider: calico
  ingressProvider: nginx
`))
	require.NoError(t, err)
	assert.True(t, result.Changed)

	posts := fake.postsTo("cluster")
	require.Len(t, posts, 1)
	assert.Equal(t, "Demo_Cluster", posts[0]["name"])
}

type stubVerifier struct {
	token string
	spec  hcloud.Spec
	err   error
}

func (s *stubVerifier) Verify(_ context.Context, spec hcloud.Spec) (*hcloud.Resolution, error) {
	s.spec = spec
	if s.err != nil {
		return nil, s.err
	}
	return &hcloud.Resolution{}, nil
}

func TestApply_HetznerTemplateVerified(t *testing.T) {
	fake := newFakeRancher(t)
	stub := &stubVerifier{}
	withStub := WithHetznerVerifier(func(token string) HetznerVerifier {
		stub.token = token
		return stub
	})

	result, err := Apply(context.Background(), fake.client(t), loadDocument(t, hetznerTemplate), withStub)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, "hc-token", stub.token)
	assert.Equal(t, hcloud.Spec{ServerType: "cx22", Location: "nbg1", Image: "ubuntu-24.04", Networks: []string{"rancher"}}, stub.spec)

	posts := fake.postsTo(rancher.CollectionNodeTemplate)
	require.Len(t, posts, 1)
	hz := posts[0]["hetznerConfig"].(map[string]any)
	assert.Equal(t, "cx22", hz["serverType"])
	assert.Equal(t, "rancher", hz["networks"])
	assert.Equal(t, true, hz["usePrivateNetwork"])
	assert.NotContains(t, posts[0], "eportalConfig")
}

func TestApply_HetznerVerificationFailureStopsCreate(t *testing.T) {
	fake := newFakeRancher(t)
	stub := &stubVerifier{err: errors.New(`server type "cx22": not found in Hetzner Cloud`)}

	_, err := Apply(context.Background(), fake.client(t), loadDocument(t, hetznerTemplate),
		WithHetznerVerifier(func(string) HetznerVerifier { return stub }))
	require.Error(t, err)
	assert.True(t, reconcile.IsType(err, reconcile.ErrorTypePrecondition))
	assert.Contains(t, err.Error(), "not found in Hetzner Cloud")
	assert.Equal(t, 0, fake.countPrefix("POST "))
}

func TestApply_HetznerVerificationFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "token rejected",
			err:  hcloudapi.Error{Code: hcloudapi.ErrorCodeUnauthorized, Message: "unable to authenticate"},
			want: `hetzner api token of node template "hcloud-small" was rejected`,
		},
		{
			name: "rate limited",
			err:  hcloudapi.Error{Code: hcloudapi.ErrorCodeRateLimitExceeded, Message: "limit reached"},
			want: `hetzner rate limit exceeded while verifying node template "hcloud-small"`,
		},
		{
			name: "name not resolved",
			err:  fmt.Errorf("image %q: %w", "ubuntu-24.04", hcloud.ErrNotResolved),
			want: `node template "hcloud-small" refers to hetzner resources that do not exist`,
		},
		{
			name: "other failure",
			err:  errors.New("connection refused"),
			want: `hetzner settings of node template "hcloud-small" could not be verified`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeRancher(t)
			stub := &stubVerifier{err: tt.err}

			_, err := Apply(context.Background(), fake.client(t), loadDocument(t, hetznerTemplate),
				WithHetznerVerifier(func(string) HetznerVerifier { return stub }))
			require.Error(t, err)
			assert.True(t, reconcile.IsType(err, reconcile.ErrorTypePrecondition))
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, 0, fake.countPrefix("POST "))
		})
	}
}

func TestApply_ConfigurationErrors(t *testing.T) {
	fake := newFakeRancher(t)

	tests := []struct {
		name string
		doc  *config.Document
		want string
	}{
		{
			name: "nil document",
			doc:  nil,
			want: "no document given",
		},
		{
			name: "unknown kind",
			doc:  &config.Document{Kind: "project", Name: "p"},
			want: `unsupported kind "project"`,
		},
		{
			name: "invalid state",
			doc:  &config.Document{Kind: config.KindNodeDriver, Name: "d", State: "latest"},
			want: "invalid nodeDriver",
		},
		{
			name: "missing block",
			doc:  &config.Document{Kind: config.KindCluster, Name: "demo"},
			want: "cluster block is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(context.Background(), fake.client(t), tt.doc)
			require.Error(t, err)
			assert.True(t, reconcile.IsType(err, reconcile.ErrorTypeConfiguration))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	assert.Empty(t, fake.requestLog())
}

func TestOperation_KindMismatch(t *testing.T) {
	_, err := ClusterOperation(loadDocument(t, workerPool))
	require.Error(t, err)
	assert.True(t, reconcile.IsType(err, reconcile.ErrorTypeConfiguration))
	assert.Contains(t, err.Error(), "cannot be reconciled as cluster")
}
