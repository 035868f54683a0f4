package config

import (
	"github.com/imamik/ranchsync/internal/reconcile"
)

// Kind is the type of resource a document describes.
type Kind string

const (
	KindCluster      Kind = "cluster"
	KindNodeDriver   Kind = "nodeDriver"
	KindNodePool     Kind = "nodePool"
	KindNodeTemplate Kind = "nodeTemplate"
)

// ValidKinds returns all kinds a document may declare.
func ValidKinds() []Kind {
	return []Kind{KindCluster, KindNodeDriver, KindNodePool, KindNodeTemplate}
}

// IsValid returns true if the kind is known.
func (k Kind) IsValid() bool {
	switch k {
	case KindCluster, KindNodeDriver, KindNodePool, KindNodeTemplate:
		return true
	default:
		return false
	}
}

// Document is the desired state of one named resource.
type Document struct {
	Kind Kind   `yaml:"kind"`
	Name string `yaml:"name"`

	// State is "present" or "absent". Empty means present.
	State string `yaml:"state,omitempty"`

	// Exactly the block matching Kind is read; it may be omitted when State is absent.
	Cluster      *Cluster      `yaml:"cluster,omitempty"`
	NodeDriver   *NodeDriver   `yaml:"nodeDriver,omitempty"`
	NodePool     *NodePool     `yaml:"nodePool,omitempty"`
	NodeTemplate *NodeTemplate `yaml:"nodeTemplate,omitempty"`
}

// Presence parses State.
func (d *Document) Presence() (reconcile.Presence, error) {
	return reconcile.ParsePresence(d.State)
}

// Cluster describes an RKE cluster.
type Cluster struct {
	KubernetesVersion string `yaml:"kubernetesVersion"`
	CNIProvider       string `yaml:"cniProvider"`
	IngressProvider   string `yaml:"ingressProvider"`

	// EnableDVP adds a vSphere cloud provider for dynamic volume provisioning.
	// Region and VCenter are required with it.
	EnableDVP bool     `yaml:"enableDVP,omitempty"`
	Region    string   `yaml:"region,omitempty"`
	VCenter   *VCenter `yaml:"vcenter,omitempty"`

	DockerRootDir       string     `yaml:"dockerRootDir,omitempty"`
	EnableNetworkPolicy bool       `yaml:"enableNetworkPolicy,omitempty"`
	EtcdBackup          EtcdBackup `yaml:"etcdBackup,omitempty"`
}

// VCenter holds the vSphere endpoint used for volume provisioning.
type VCenter struct {
	Host          string `yaml:"host"`
	User          string `yaml:"user"`
	Password      string `yaml:"password"`
	MachineFolder string `yaml:"machineFolder"`
	Datastore     string `yaml:"datastore"`
}

// EtcdBackup configures recurring etcd snapshots.
type EtcdBackup struct {
	IntervalHours int `yaml:"intervalHours,omitempty"`
	Retention     int `yaml:"retention,omitempty"`
}

// NodeDriver describes a custom node driver.
type NodeDriver struct {
	URL              string   `yaml:"url"`
	UIURL            string   `yaml:"uiUrl,omitempty"`
	Checksum         string   `yaml:"checksum,omitempty"`
	WhitelistDomains []string `yaml:"whitelistDomains,omitempty"`
}

// NodePool describes a pool of nodes attached to a cluster.
type NodePool struct {
	Cluster string `yaml:"cluster"`

	// NodeTemplate defaults to the pool name.
	NodeTemplate string `yaml:"nodeTemplate,omitempty"`

	HostnamePrefix string `yaml:"hostnamePrefix"`
	Quantity       int    `yaml:"quantity"`
	ControlPlane   bool   `yaml:"controlPlane,omitempty"`
	Etcd           bool   `yaml:"etcd,omitempty"`
	Worker         bool   `yaml:"worker,omitempty"`
}

// TemplateDriver selects the provider block of a node template.
type TemplateDriver string

const (
	DriverEportal TemplateDriver = "eportal"
	DriverHetzner TemplateDriver = "hetzner"
)

// IsValid returns true if the driver is supported.
func (d TemplateDriver) IsValid() bool {
	return d == DriverEportal || d == DriverHetzner
}

// NodeTemplate describes how nodes of a pool are provisioned.
type NodeTemplate struct {
	Driver  TemplateDriver `yaml:"driver,omitempty"`
	Eportal *Eportal       `yaml:"eportal,omitempty"`
	Hetzner *Hetzner       `yaml:"hetzner,omitempty"`

	EngineInstallURL    string            `yaml:"engineInstallURL"`
	EngineStorageDriver string            `yaml:"engineStorageDriver"`
	EngineOptions       map[string]string `yaml:"engineOptions,omitempty"`
	Labels              map[string]string `yaml:"labels,omitempty"`
}

// Eportal is the configuration of the eportal node driver.
type Eportal struct {
	Server  string `yaml:"server"`
	Token   string `yaml:"token"`
	Region  string `yaml:"region"`
	Network string `yaml:"network"`
	CPU     int    `yaml:"cpu"`
	Memory  int    `yaml:"memory"`
	Disk    int    `yaml:"disk"`
	Image   string `yaml:"image"`
	SSHUser string `yaml:"sshUser,omitempty"`
}

// Hetzner is the configuration of the Hetzner Cloud node driver.
type Hetzner struct {
	APIToken          string   `yaml:"apiToken"`
	ServerType        string   `yaml:"serverType"`
	ServerLocation    string   `yaml:"serverLocation"`
	Image             string   `yaml:"image"`
	Networks          []string `yaml:"networks,omitempty"`
	UsePrivateNetwork bool     `yaml:"usePrivateNetwork,omitempty"`
	UserData          string   `yaml:"userData,omitempty"`
	AdditionalKeys    []string `yaml:"additionalKeys,omitempty"`

	// Verify resolves server type, location and image against the Hetzner API before create.
	Verify bool `yaml:"verify,omitempty"`
}
