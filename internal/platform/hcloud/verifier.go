package hcloud

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// ErrNotResolved is wrapped by every lookup that found nothing.
var ErrNotResolved = errors.New("not found in Hetzner Cloud")

// Spec lists the names a node template refers to.
type Spec struct {
	ServerType string
	Location   string
	Image      string

	// Networks are network IDs or names.
	Networks []string
}

// Resolution holds the resolved objects.
type Resolution struct {
	ServerType *hcloud.ServerType
	Location   *hcloud.Location
	Image      *hcloud.Image
	Networks   []*hcloud.Network
}

// Verifier resolves node template settings against the Hetzner Cloud API.
type Verifier struct {
	client *hcloud.Client
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithHCloudClient sets a custom hcloud client (useful for testing).
func WithHCloudClient(hc *hcloud.Client) VerifierOption {
	return func(v *Verifier) {
		v.client = hc
	}
}

// NewVerifier creates a Verifier authenticated with token.
func NewVerifier(token string, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		client: hcloud.NewClient(
			hcloud.WithToken(token),
			hcloud.WithApplication("ranchsync", ""),
		),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify resolves every name in spec. It stops at the first name that does not resolve.
func (v *Verifier) Verify(ctx context.Context, spec Spec) (*Resolution, error) {
	log := logr.FromContextOrDiscard(ctx)
	res := &Resolution{}

	serverType, _, err := v.client.ServerType.GetByName(ctx, spec.ServerType)
	if err != nil {
		return nil, fmt.Errorf("failed to get server type %s: %w", spec.ServerType, err)
	}
	if serverType == nil {
		return nil, fmt.Errorf("server type %q: %w", spec.ServerType, ErrNotResolved)
	}
	res.ServerType = serverType

	location, _, err := v.client.Location.GetByName(ctx, spec.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to get location %s: %w", spec.Location, err)
	}
	if location == nil {
		return nil, fmt.Errorf("location %q: %w", spec.Location, ErrNotResolved)
	}
	res.Location = location

	image, _, err := v.client.Image.GetByNameAndArchitecture(ctx, spec.Image, serverType.Architecture)
	if err != nil {
		return nil, fmt.Errorf("failed to get image %s: %w", spec.Image, err)
	}
	if image == nil {
		return nil, fmt.Errorf("image %q for architecture %s: %w", spec.Image, serverType.Architecture, ErrNotResolved)
	}
	res.Image = image

	for _, idOrName := range spec.Networks {
		network, _, err := v.client.Network.Get(ctx, idOrName)
		if err != nil {
			return nil, fmt.Errorf("failed to get network %s: %w", idOrName, err)
		}
		if network == nil {
			return nil, fmt.Errorf("network %q: %w", idOrName, ErrNotResolved)
		}
		res.Networks = append(res.Networks, network)
	}

	log.V(1).Info("hetzner settings resolved",
		"serverType", serverType.Name,
		"architecture", string(serverType.Architecture),
		"location", location.Name,
		"imageID", image.ID,
	)
	return res, nil
}
