package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"
	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/imamik/ranchsync/internal/reconcile"
)

// Validate checks the document. Required attributes are only enforced when
// the resource should be present; deleting needs no more than kind and name.
// The returned error is a configuration *reconcile.Error.
func (d *Document) Validate() error {
	var errs []error

	if !d.Kind.IsValid() {
		errs = append(errs, fmt.Errorf("kind must be one of: %v", ValidKinds()))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}

	presence, err := d.Presence()
	if err != nil {
		errs = append(errs, err)
	}

	errs = append(errs, d.validateBlocks()...)

	if err == nil && presence == reconcile.PresencePresent && d.Kind.IsValid() {
		errs = append(errs, d.validatePresent()...)
	}

	if len(errs) == 0 {
		return nil
	}
	return &reconcile.Error{
		Type:    reconcile.ErrorTypeConfiguration,
		Kind:    string(d.Kind),
		Name:    d.Name,
		Message: fmt.Sprintf("invalid %s %q", d.Kind, d.Name),
		Cause:   errors.Join(errs...),
	}
}

// validateBlocks rejects attribute blocks of a different kind.
func (d *Document) validateBlocks() []error {
	var errs []error
	blocks := map[Kind]bool{
		KindCluster:      d.Cluster != nil,
		KindNodeDriver:   d.NodeDriver != nil,
		KindNodePool:     d.NodePool != nil,
		KindNodeTemplate: d.NodeTemplate != nil,
	}
	for _, k := range ValidKinds() {
		if blocks[k] && k != d.Kind {
			errs = append(errs, fmt.Errorf("%s block is not allowed for kind %s", k, d.Kind))
		}
	}
	return errs
}

func (d *Document) validatePresent() []error {
	switch d.Kind {
	case KindCluster:
		if d.Cluster == nil {
			return []error{errors.New("cluster block is required")}
		}
		return d.Cluster.validate()
	case KindNodeDriver:
		if d.NodeDriver == nil {
			return []error{errors.New("nodeDriver block is required")}
		}
		return d.NodeDriver.validate()
	case KindNodePool:
		if d.NodePool == nil {
			return []error{errors.New("nodePool block is required")}
		}
		return d.NodePool.validate()
	case KindNodeTemplate:
		if d.NodeTemplate == nil {
			return []error{errors.New("nodeTemplate block is required")}
		}
		return d.NodeTemplate.validate()
	}
	return nil
}

func (c *Cluster) validate() []error {
	var errs []error
	errs = append(errs, required("cluster.kubernetesVersion", c.KubernetesVersion)...)
	errs = append(errs, required("cluster.cniProvider", c.CNIProvider)...)
	errs = append(errs, required("cluster.ingressProvider", c.IngressProvider)...)

	if c.EtcdBackup.IntervalHours < 0 || c.EtcdBackup.Retention < 0 {
		errs = append(errs, errors.New("cluster.etcdBackup values must not be negative"))
	}

	if !c.EnableDVP {
		return errs
	}
	errs = append(errs, required("cluster.region", c.Region)...)
	if c.VCenter == nil {
		return append(errs, errors.New("cluster.vcenter is required when enableDVP is set"))
	}
	errs = append(errs, required("cluster.vcenter.host", c.VCenter.Host)...)
	errs = append(errs, required("cluster.vcenter.user", c.VCenter.User)...)
	errs = append(errs, required("cluster.vcenter.password", c.VCenter.Password)...)
	errs = append(errs, required("cluster.vcenter.machineFolder", c.VCenter.MachineFolder)...)
	errs = append(errs, required("cluster.vcenter.datastore", c.VCenter.Datastore)...)
	return errs
}

func (n *NodeDriver) validate() []error {
	var errs []error
	errs = append(errs, required("nodeDriver.url", n.URL)...)
	for i, domain := range n.WhitelistDomains {
		if strings.TrimSpace(domain) == "" {
			errs = append(errs, fmt.Errorf("nodeDriver.whitelistDomains[%d] is empty", i))
		}
	}
	return errs
}

func (p *NodePool) validate() []error {
	var errs []error
	errs = append(errs, required("nodePool.cluster", p.Cluster)...)
	errs = append(errs, required("nodePool.nodeTemplate", p.NodeTemplate)...)

	if p.HostnamePrefix == "" {
		errs = append(errs, errors.New("nodePool.hostnamePrefix is required"))
	} else {
		// Rancher appends a sequence number to the prefix.
		errs = append(errs, validateDNSLabel("nodePool.hostnamePrefix", p.HostnamePrefix+"1")...)
	}

	if p.Quantity < 0 {
		errs = append(errs, errors.New("nodePool.quantity must not be negative"))
	}
	if !p.ControlPlane && !p.Etcd && !p.Worker {
		errs = append(errs, errors.New("nodePool needs at least one of controlPlane, etcd or worker"))
	}
	return errs
}

func (t *NodeTemplate) validate() []error {
	var errs []error
	errs = append(errs, required("nodeTemplate.engineInstallURL", t.EngineInstallURL)...)
	errs = append(errs, required("nodeTemplate.engineStorageDriver", t.EngineStorageDriver)...)

	switch t.Driver {
	case DriverEportal:
		if t.Hetzner != nil {
			errs = append(errs, errors.New("nodeTemplate.hetzner is not allowed with driver eportal"))
		}
		if t.Eportal == nil {
			return append(errs, errors.New("nodeTemplate.eportal is required with driver eportal"))
		}
		errs = append(errs, t.Eportal.validate()...)
	case DriverHetzner:
		if t.Eportal != nil {
			errs = append(errs, errors.New("nodeTemplate.eportal is not allowed with driver hetzner"))
		}
		if t.Hetzner == nil {
			return append(errs, errors.New("nodeTemplate.hetzner is required with driver hetzner"))
		}
		errs = append(errs, t.Hetzner.validate()...)
	default:
		errs = append(errs, fmt.Errorf("nodeTemplate.driver must be one of: %v", []TemplateDriver{DriverEportal, DriverHetzner}))
	}
	return errs
}

func (e *Eportal) validate() []error {
	var errs []error
	errs = append(errs, required("nodeTemplate.eportal.server", e.Server)...)
	errs = append(errs, required("nodeTemplate.eportal.token", e.Token)...)
	errs = append(errs, required("nodeTemplate.eportal.region", e.Region)...)
	errs = append(errs, required("nodeTemplate.eportal.network", e.Network)...)
	errs = append(errs, required("nodeTemplate.eportal.image", e.Image)...)
	errs = append(errs, positive("nodeTemplate.eportal.cpu", e.CPU)...)
	errs = append(errs, positive("nodeTemplate.eportal.memory", e.Memory)...)
	errs = append(errs, positive("nodeTemplate.eportal.disk", e.Disk)...)
	return errs
}

func (h *Hetzner) validate() []error {
	var errs []error
	errs = append(errs, required("nodeTemplate.hetzner.apiToken", h.APIToken)...)
	errs = append(errs, required("nodeTemplate.hetzner.serverType", h.ServerType)...)
	errs = append(errs, required("nodeTemplate.hetzner.serverLocation", h.ServerLocation)...)
	errs = append(errs, required("nodeTemplate.hetzner.image", h.Image)...)

	if h.UsePrivateNetwork && len(h.Networks) == 0 {
		errs = append(errs, errors.New("nodeTemplate.hetzner.networks is required with usePrivateNetwork"))
	}
	for i, key := range h.AdditionalKeys {
		if _, _, _, _, err := ssh.ParseAuthorizedKey([]byte(key)); err != nil {
			errs = append(errs, fmt.Errorf("nodeTemplate.hetzner.additionalKeys[%d] is not an authorized_keys entry: %w", i, err))
		}
	}
	return errs
}

func required(field, value string) []error {
	if strings.TrimSpace(value) == "" {
		return []error{fmt.Errorf("%s is required", field)}
	}
	return nil
}

func positive(field string, value int) []error {
	if value <= 0 {
		return []error{fmt.Errorf("%s must be greater than zero", field)}
	}
	return nil
}

func validateDNSLabel(field, value string) []error {
	var errs []error
	for _, msg := range validation.IsDNS1123Label(value) {
		errs = append(errs, fmt.Errorf("%s %q is invalid: %s", field, value, msg))
	}
	return errs
}
