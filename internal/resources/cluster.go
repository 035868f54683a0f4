package resources

import (
	"github.com/imamik/ranchsync/internal/config"
	"github.com/imamik/ranchsync/internal/platform/rancher"
	"github.com/imamik/ranchsync/internal/reconcile"
)

// KindCluster is the kind name used in logs, metrics and errors.
const KindCluster = "cluster"

// ClusterPayload is the create body of an RKE cluster.
type ClusterPayload struct {
	Name                          string                   `json:"name"`
	DockerRootDir                 string                   `json:"dockerRootDir"`
	EnableClusterAlerting         bool                     `json:"enableClusterAlerting"`
	EnableClusterMonitoring       bool                     `json:"enableClusterMonitoring"`
	EnableNetworkPolicy           bool                     `json:"enableNetworkPolicy"`
	RancherKubernetesEngineConfig RKEConfig                `json:"rancherKubernetesEngineConfig"`
	LocalClusterAuthEndpoint      LocalClusterAuthEndpoint `json:"localClusterAuthEndpoint"`
}

// RKEConfig is the rancherKubernetesEngineConfig section.
type RKEConfig struct {
	AddonJobTimeout     int            `json:"addonJobTimeout"`
	IgnoreDockerVersion bool           `json:"ignoreDockerVersion"`
	SSHAgentAuth        bool           `json:"sshAgentAuth"`
	KubernetesVersion   string         `json:"kubernetesVersion"`
	Authentication      Authentication `json:"authentication"`
	Network             Network        `json:"network"`
	Ingress             Ingress        `json:"ingress"`
	Monitoring          Monitoring     `json:"monitoring"`
	Services            Services       `json:"services"`

	// CloudProvider is only sent with dynamic volume provisioning.
	CloudProvider *CloudProvider `json:"cloudProvider,omitempty"`
}

type Authentication struct {
	Strategy string `json:"strategy"`
}

type Network struct {
	Plugin string `json:"plugin"`
}

type Ingress struct {
	Provider string `json:"provider"`
}

type Monitoring struct {
	Provider string `json:"provider"`
}

type Services struct {
	KubeAPI KubeAPI `json:"kubeApi"`
	Etcd    Etcd    `json:"etcd"`
}

type KubeAPI struct {
	AlwaysPullImages     bool   `json:"alwaysPullImages"`
	PodSecurityPolicy    bool   `json:"podSecurityPolicy"`
	ServiceNodePortRange string `json:"serviceNodePortRange"`
}

type Etcd struct {
	Creation     string           `json:"creation"`
	ExtraArgs    map[string]int   `json:"extraArgs"`
	Retention    string           `json:"retention"`
	Snapshot     bool             `json:"snapshot"`
	BackupConfig EtcdBackupConfig `json:"backupConfig"`
}

type EtcdBackupConfig struct {
	Enabled       bool `json:"enabled"`
	IntervalHours int  `json:"intervalHours"`
	Retention     int  `json:"retention"`
}

type LocalClusterAuthEndpoint struct {
	Enabled bool `json:"enabled"`
}

// CloudProvider configures the vSphere cloud provider.
type CloudProvider struct {
	Name                 string                `json:"name"`
	VsphereCloudProvider *VsphereCloudProvider `json:"vsphereCloudProvider"`
}

type VsphereCloudProvider struct {
	Global        VsphereGlobal            `json:"global"`
	VirtualCenter map[string]VirtualCenter `json:"virtualCenter"`
	Workspace     VsphereWorkspace         `json:"workspace"`
}

type VsphereGlobal struct {
	InsecureFlag       bool `json:"insecure-flag"`
	SoapRoundtripCount int  `json:"soap-roundtrip-count"`
}

type VirtualCenter struct {
	Datacenters string `json:"datacenters"`
	User        string `json:"user"`
	Password    string `json:"password"`
}

type VsphereWorkspace struct {
	Datacenter       string `json:"datacenter"`
	DefaultDatastore string `json:"default-datastore"`
	// Folder holds the dummy VMs used for volume provisioning.
	Folder string `json:"folder"`
	Server string `json:"server"`
}

// NewClusterPayload builds the create body from a cluster block.
func NewClusterPayload(name string, c *config.Cluster) ClusterPayload {
	p := ClusterPayload{
		Name:                name,
		DockerRootDir:       c.DockerRootDir,
		EnableNetworkPolicy: c.EnableNetworkPolicy,
		RancherKubernetesEngineConfig: RKEConfig{
			AddonJobTimeout:     30,
			IgnoreDockerVersion: true,
			KubernetesVersion:   c.KubernetesVersion,
			Authentication:      Authentication{Strategy: "x509"},
			Network:             Network{Plugin: c.CNIProvider},
			Ingress:             Ingress{Provider: c.IngressProvider},
			Monitoring:          Monitoring{Provider: "metrics-server"},
			Services: Services{
				KubeAPI: KubeAPI{ServiceNodePortRange: "30000-32767"},
				Etcd: Etcd{
					Creation: "12h",
					ExtraArgs: map[string]int{
						"heartbeat-interval": 500,
						"election-timeout":   5000,
					},
					Retention: "72h",
					BackupConfig: EtcdBackupConfig{
						Enabled:       true,
						IntervalHours: c.EtcdBackup.IntervalHours,
						Retention:     c.EtcdBackup.Retention,
					},
				},
			},
		},
		LocalClusterAuthEndpoint: LocalClusterAuthEndpoint{Enabled: true},
	}

	if c.EnableDVP && c.VCenter != nil {
		p.RancherKubernetesEngineConfig.CloudProvider = vsphereCloudProvider(c.Region, c.VCenter)
	}
	return p
}

func vsphereCloudProvider(region string, vc *config.VCenter) *CloudProvider {
	return &CloudProvider{
		Name: "vsphere",
		VsphereCloudProvider: &VsphereCloudProvider{
			Global: VsphereGlobal{InsecureFlag: true},
			VirtualCenter: map[string]VirtualCenter{
				vc.Host: {Datacenters: region, User: vc.User, Password: vc.Password},
			},
			Workspace: VsphereWorkspace{
				Datacenter:       region,
				DefaultDatastore: vc.Datastore,
				Folder:           vc.MachineFolder,
				Server:           vc.Host,
			},
		},
	}
}

// ClusterOperation returns the reconcile operation for a cluster document.
func ClusterOperation(doc *config.Document) (*reconcile.Operation[ClusterPayload], error) {
	presence, err := checkDocument(doc, config.KindCluster)
	if err != nil {
		return nil, err
	}

	return &reconcile.Operation[ClusterPayload]{
		Kind:       KindCluster,
		Collection: rancher.CollectionCluster,
		Name:       doc.Name,
		Presence:   presence,
		Payload: func(reconcile.Resolved) (ClusterPayload, error) {
			if doc.Cluster == nil {
				return ClusterPayload{}, missingBlock(KindCluster, doc)
			}
			return NewClusterPayload(doc.Name, doc.Cluster), nil
		},
	}, nil
}
