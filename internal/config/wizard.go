package config

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"k8s.io/apimachinery/pkg/util/validation"
)

// WizardResult holds the answers of the init wizard.
type WizardResult struct {
	Kind  Kind
	Name  string
	State string

	// cluster
	KubernetesVersion string
	CNIProvider       string
	IngressProvider   string

	// node driver
	DriverURL   string
	DriverUIURL string

	// node pool
	PoolCluster    string
	PoolTemplate   string
	HostnamePrefix string
	Quantity       string
	Roles          []string

	// node template
	TemplateDriver      TemplateDriver
	EngineInstallURL    string
	EngineStorageDriver string
	HetznerToken        string
	HetznerServerType   string
	HetznerLocation     string
	HetznerImage        string
}

// Node pool roles offered by the wizard.
const (
	RoleControlPlane = "controlPlane"
	RoleEtcd         = "etcd"
	RoleWorker       = "worker"
)

// RunWizard asks for a document interactively.
func RunWizard(ctx context.Context) (*Document, error) {
	result := &WizardResult{
		Kind:                KindCluster,
		State:               "present",
		CNIProvider:         "calico",
		IngressProvider:     "nginx",
		Quantity:            "1",
		Roles:               []string{RoleWorker},
		TemplateDriver:      DriverHetzner,
		EngineInstallURL:    "https://releases.rancher.com/install-docker/20.10.sh",
		EngineStorageDriver: "overlay2",
	}

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	if result.State == "present" {
		if err := runKindGroup(ctx, result); err != nil {
			return nil, fmt.Errorf("wizard canceled: %w", err)
		}
	}

	return result.ToDocument()
}

// runIdentityGroup prompts for kind, name and state.
func runIdentityGroup(ctx context.Context, result *WizardResult) error {
	kinds := make([]huh.Option[Kind], 0, len(ValidKinds()))
	for _, k := range ValidKinds() {
		kinds = append(kinds, huh.NewOption(string(k), k))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Kind]().
				Title("Kind").
				Options(kinds...).
				Value(&result.Kind),
			huh.NewInput().
				Title("Name").
				Description("Name of the Rancher resource").
				Value(&result.Name).
				Validate(validateName),
			huh.NewSelect[string]().
				Title("State").
				Options(
					huh.NewOption("present", "present"),
					huh.NewOption("absent", "absent"),
				).
				Value(&result.State),
		).Title("Resource"),
	).RunWithContext(ctx)
}

// runKindGroup prompts for the attributes of the chosen kind.
func runKindGroup(ctx context.Context, result *WizardResult) error {
	var group *huh.Group

	switch result.Kind {
	case KindCluster:
		group = huh.NewGroup(
			huh.NewInput().
				Title("Kubernetes version").
				Placeholder("v1.14.5-rancher1-1").
				Value(&result.KubernetesVersion).
				Validate(validateRequired),
			huh.NewSelect[string]().
				Title("CNI provider").
				Options(huh.NewOptions("calico", "canal", "flannel", "weave")...).
				Value(&result.CNIProvider),
			huh.NewSelect[string]().
				Title("Ingress provider").
				Options(huh.NewOptions("nginx", "none")...).
				Value(&result.IngressProvider),
		).Title("Cluster")

	case KindNodeDriver:
		group = huh.NewGroup(
			huh.NewInput().
				Title("Driver URL").
				Description("Location of the docker-machine driver binary").
				Value(&result.DriverURL).
				Validate(validateRequired),
			huh.NewInput().
				Title("UI URL (Optional)").
				Value(&result.DriverUIURL),
		).Title("Node Driver")

	case KindNodePool:
		group = huh.NewGroup(
			huh.NewInput().
				Title("Cluster").
				Value(&result.PoolCluster).
				Validate(validateRequired),
			huh.NewInput().
				Title("Node template (Optional)").
				Description("Defaults to the pool name").
				Value(&result.PoolTemplate),
			huh.NewInput().
				Title("Hostname prefix").
				Placeholder("demo-worker-").
				Value(&result.HostnamePrefix).
				Validate(validateHostnamePrefix),
			huh.NewInput().
				Title("Quantity").
				Value(&result.Quantity).
				Validate(validateQuantity),
			huh.NewMultiSelect[string]().
				Title("Roles").
				Options(huh.NewOptions(RoleControlPlane, RoleEtcd, RoleWorker)...).
				Value(&result.Roles),
		).Title("Node Pool")

	case KindNodeTemplate:
		group = huh.NewGroup(
			huh.NewInput().
				Title("Hetzner API token").
				EchoMode(huh.EchoModePassword).
				Value(&result.HetznerToken).
				Validate(validateRequired),
			huh.NewInput().
				Title("Server type").
				Placeholder("cx22").
				Value(&result.HetznerServerType).
				Validate(validateRequired),
			huh.NewInput().
				Title("Location").
				Placeholder("fsn1").
				Value(&result.HetznerLocation).
				Validate(validateRequired),
			huh.NewInput().
				Title("Image").
				Placeholder("ubuntu-22.04").
				Value(&result.HetznerImage).
				Validate(validateRequired),
			huh.NewInput().
				Title("Engine install URL").
				Value(&result.EngineInstallURL).
				Validate(validateRequired),
			huh.NewInput().
				Title("Engine storage driver").
				Value(&result.EngineStorageDriver).
				Validate(validateRequired),
		).Title("Node Template (Hetzner)")

	default:
		return fmt.Errorf("unknown kind %q", result.Kind)
	}

	return huh.NewForm(group).RunWithContext(ctx)
}

// ToDocument converts the answers to a defaulted, validated document.
func (r *WizardResult) ToDocument() (*Document, error) {
	doc := &Document{Kind: r.Kind, Name: strings.TrimSpace(r.Name), State: r.State}

	if r.State == "present" {
		switch r.Kind {
		case KindCluster:
			doc.Cluster = &Cluster{
				KubernetesVersion: r.KubernetesVersion,
				CNIProvider:       r.CNIProvider,
				IngressProvider:   r.IngressProvider,
			}
		case KindNodeDriver:
			doc.NodeDriver = &NodeDriver{URL: r.DriverURL, UIURL: r.DriverUIURL}
		case KindNodePool:
			quantity, err := strconv.Atoi(strings.TrimSpace(r.Quantity))
			if err != nil {
				return nil, fmt.Errorf("invalid quantity %q: %w", r.Quantity, err)
			}
			doc.NodePool = &NodePool{
				Cluster:        r.PoolCluster,
				NodeTemplate:   r.PoolTemplate,
				HostnamePrefix: r.HostnamePrefix,
				Quantity:       quantity,
				ControlPlane:   slices.Contains(r.Roles, RoleControlPlane),
				Etcd:           slices.Contains(r.Roles, RoleEtcd),
				Worker:         slices.Contains(r.Roles, RoleWorker),
			}
		case KindNodeTemplate:
			doc.NodeTemplate = &NodeTemplate{
				Driver: r.TemplateDriver,
				Hetzner: &Hetzner{
					APIToken:       r.HetznerToken,
					ServerType:     r.HetznerServerType,
					ServerLocation: r.HetznerLocation,
					Image:          r.HetznerImage,
					Verify:         true,
				},
				EngineInstallURL:    r.EngineInstallURL,
				EngineStorageDriver: r.EngineStorageDriver,
			}
		}
	}

	doc.ApplyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a value is required")
	}
	return nil
}

func validateName(s string) error {
	return validateRequired(s)
}

func validateHostnamePrefix(s string) error {
	if err := validateRequired(s); err != nil {
		return err
	}
	if msgs := validation.IsDNS1123Label(s + "1"); len(msgs) > 0 {
		return errors.New(msgs[0])
	}
	return nil
}

func validateQuantity(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("quantity must be a number")
	}
	if n < 0 {
		return errors.New("quantity must not be negative")
	}
	return nil
}
