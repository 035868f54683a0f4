package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/imamik/ranchsync/internal/config"
	"github.com/imamik/ranchsync/internal/platform/hcloud"
	"github.com/imamik/ranchsync/internal/platform/rancher"
	"github.com/imamik/ranchsync/internal/reconcile"
)

// KindNodeTemplate is the kind name used in logs, metrics and errors.
const KindNodeTemplate = "node template"

// NodeTemplatePayload is the create body of a node template.
// Exactly one of the driver configs is set.
type NodeTemplatePayload struct {
	Name                string            `json:"name"`
	EportalConfig       *EportalConfig    `json:"eportalConfig,omitempty"`
	HetznerConfig       *HetznerConfig    `json:"hetznerConfig,omitempty"`
	EngineInstallURL    string            `json:"engineInstallURL"`
	EngineStorageDriver string            `json:"engineStorageDriver"`
	EngineOpt           map[string]string `json:"engineOpt"`
	Labels              map[string]string `json:"labels,omitempty"`
}

// EportalConfig is the eportal node driver section.
type EportalConfig struct {
	CPU      int    `json:"cpu"`
	Memory   int    `json:"memory"`
	Disk     int    `json:"disk"`
	Location string `json:"location"`
	OS       string `json:"os"`
	Server   string `json:"server"`
	Token    string `json:"token"`
	VLAN     string `json:"vlan"`
	SSHUser  string `json:"sshUser,omitempty"`
}

// HetznerConfig is the Hetzner Cloud node driver section. The driver takes
// list values as comma separated strings.
type HetznerConfig struct {
	APIToken          string `json:"apiToken"`
	ServerType        string `json:"serverType"`
	ServerLocation    string `json:"serverLocation"`
	Image             string `json:"image"`
	Networks          string `json:"networks,omitempty"`
	UsePrivateNetwork bool   `json:"usePrivateNetwork"`
	UserData          string `json:"userData,omitempty"`
	AdditionalKey     string `json:"additionalKey,omitempty"`
}

// HetznerVerifier resolves node template settings against Hetzner Cloud.
type HetznerVerifier interface {
	Verify(ctx context.Context, spec hcloud.Spec) (*hcloud.Resolution, error)
}

func defaultHetznerVerifier(token string) HetznerVerifier {
	return hcloud.NewVerifier(token)
}

// NewNodeTemplatePayload builds the create body from a node template block.
func NewNodeTemplatePayload(name string, t *config.NodeTemplate) NodeTemplatePayload {
	p := NodeTemplatePayload{
		Name:                name,
		EngineInstallURL:    t.EngineInstallURL,
		EngineStorageDriver: t.EngineStorageDriver,
		EngineOpt:           t.EngineOptions,
		Labels:              t.Labels,
	}
	if p.EngineOpt == nil {
		p.EngineOpt = map[string]string{}
	}

	switch {
	case t.Driver == config.DriverHetzner && t.Hetzner != nil:
		h := t.Hetzner
		p.HetznerConfig = &HetznerConfig{
			APIToken:          h.APIToken,
			ServerType:        h.ServerType,
			ServerLocation:    h.ServerLocation,
			Image:             h.Image,
			Networks:          strings.Join(h.Networks, ","),
			UsePrivateNetwork: h.UsePrivateNetwork,
			UserData:          h.UserData,
			AdditionalKey:     strings.Join(h.AdditionalKeys, ","),
		}
	case t.Eportal != nil:
		e := t.Eportal
		p.EportalConfig = &EportalConfig{
			CPU:      e.CPU,
			Memory:   e.Memory,
			Disk:     e.Disk,
			Location: e.Region,
			OS:       e.Image,
			Server:   e.Server,
			Token:    e.Token,
			VLAN:     e.Network,
			SSHUser:  e.SSHUser,
		}
	}
	return p
}

// NodeTemplateOperation returns the reconcile operation for a node template
// document. Deletes are reported with their status but without a resource body.
func NodeTemplateOperation(doc *config.Document, opts ...Option) (*reconcile.Operation[NodeTemplatePayload], error) {
	presence, err := checkDocument(doc, config.KindNodeTemplate)
	if err != nil {
		return nil, err
	}
	o := newOptions(opts)

	op := &reconcile.Operation[NodeTemplatePayload]{
		Kind:       KindNodeTemplate,
		Collection: rancher.CollectionNodeTemplate,
		Name:       doc.Name,
		Presence:   presence,
		BareDelete: true,
		Payload: func(reconcile.Resolved) (NodeTemplatePayload, error) {
			if doc.NodeTemplate == nil {
				return NodeTemplatePayload{}, missingBlock(KindNodeTemplate, doc)
			}
			return NewNodeTemplatePayload(doc.Name, doc.NodeTemplate), nil
		},
	}

	if t := doc.NodeTemplate; t != nil && t.Driver == config.DriverHetzner && t.Hetzner != nil && t.Hetzner.Verify {
		h := t.Hetzner
		op.Precondition = func(ctx context.Context) error {
			spec := hcloud.Spec{
				ServerType: h.ServerType,
				Location:   h.ServerLocation,
				Image:      h.Image,
				Networks:   h.Networks,
			}
			if _, err := o.newVerifier(h.APIToken).Verify(ctx, spec); err != nil {
				return &reconcile.Error{
					Type:    reconcile.ErrorTypePrecondition,
					Kind:    KindNodeTemplate,
					Name:    doc.Name,
					Message: verificationFailure(doc.Name, err),
					Cause:   err,
				}
			}
			return nil
		}
	}
	return op, nil
}

// verificationFailure describes why the Hetzner settings of a node template
// were not accepted.
func verificationFailure(name string, err error) string {
	switch {
	case hcloud.IsUnauthorized(err):
		return fmt.Sprintf("hetzner api token of node template %q was rejected", name)
	case hcloud.IsRateLimited(err):
		return fmt.Sprintf("hetzner rate limit exceeded while verifying node template %q", name)
	case hcloud.IsNotFound(err), errors.Is(err, hcloud.ErrNotResolved):
		return fmt.Sprintf("node template %q refers to hetzner resources that do not exist", name)
	}
	return fmt.Sprintf("hetzner settings of node template %q could not be verified", name)
}
