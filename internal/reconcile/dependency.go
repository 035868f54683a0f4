package reconcile

import (
	"context"

	"github.com/imamik/ranchsync/internal/platform/rancher"
)

// Dependency is a record another resource refers to by id.
type Dependency struct {
	// Key names the dependency in Resolved.
	Key        string
	Kind       string
	Collection string
	Name       string
}

// Resolved maps dependency keys to their records.
type Resolved map[string]rancher.Resource

// ID returns the id of a resolved dependency.
func (r Resolved) ID(key string) string {
	return r[key].ID
}

// ResolveAll resolves dependencies one after another and stops at the first failure.
func ResolveAll(ctx context.Context, api API, deps []Dependency) (Resolved, error) {
	resolved := make(Resolved, len(deps))
	for _, dep := range deps {
		res, err := ResolveOne(ctx, api, dep.Kind, dep.Collection, dep.Name)
		if err != nil {
			return nil, err
		}
		resolved[dep.Key] = res
	}
	return resolved, nil
}

// ResolveOne looks a record up by name and requires exactly one match.
func ResolveOne(ctx context.Context, api API, kind, collection, name string) (rancher.Resource, error) {
	if name == "" {
		return rancher.Resource{}, ConfigurationError(kind, name, "a %s name is required for the dependency lookup", kind)
	}

	coll, _, err := api.Lookup(ctx, collection, rancher.NameQuery(name))
	if err != nil {
		return rancher.Resource{}, err
	}

	matches := coll.Named(name)
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return rancher.Resource{}, AmbiguousStateError(kind, name, "no %s named %q was found", kind, name)
	default:
		return rancher.Resource{}, AmbiguousStateError(kind, name, "%d records of %s named %q were found", len(matches), kind, name)
	}
}
