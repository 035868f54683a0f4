package resources

import (
	"context"

	"github.com/imamik/ranchsync/internal/config"
	"github.com/imamik/ranchsync/internal/reconcile"
)

// Option configures Apply.
type Option func(*options)

type options struct {
	newVerifier func(token string) HetznerVerifier
}

// WithHetznerVerifier replaces the verifier used for hetzner node templates.
func WithHetznerVerifier(f func(token string) HetznerVerifier) Option {
	return func(o *options) {
		o.newVerifier = f
	}
}

func newOptions(opts []Option) *options {
	o := &options{newVerifier: defaultHetznerVerifier}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Apply reconciles one desired-state document against Rancher.
func Apply(ctx context.Context, api reconcile.API, doc *config.Document, opts ...Option) (*reconcile.Result, error) {
	if doc == nil {
		return nil, reconcile.ConfigurationError("", "", "no document given")
	}

	switch doc.Kind {
	case config.KindCluster:
		op, err := ClusterOperation(doc)
		if err != nil {
			return nil, err
		}
		return op.Execute(ctx, api)
	case config.KindNodeDriver:
		op, err := NodeDriverOperation(doc)
		if err != nil {
			return nil, err
		}
		return op.Execute(ctx, api)
	case config.KindNodePool:
		op, err := NodePoolOperation(doc)
		if err != nil {
			return nil, err
		}
		return op.Execute(ctx, api)
	case config.KindNodeTemplate:
		op, err := NodeTemplateOperation(doc, opts...)
		if err != nil {
			return nil, err
		}
		return op.Execute(ctx, api)
	default:
		return nil, reconcile.ConfigurationError(string(doc.Kind), doc.Name,
			"unsupported kind %q (valid: %v)", doc.Kind, config.ValidKinds())
	}
}
