package rancher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Collections used by the reconcilers.
const (
	CollectionCluster                  = "cluster"
	CollectionNodeDriver               = "nodedriver"
	CollectionNodePool                 = "nodepool"
	CollectionNodeTemplate             = "nodetemplate"
	CollectionClusterRegistrationToken = "clusterregistrationtoken"
)

// ActionGenerateKubeconfig is the cluster action returning a kubeconfig.
const ActionGenerateKubeconfig = "generateKubeconfig"

// NameQuery returns the query that filters a collection by name.
func NameQuery(name string) url.Values {
	return url.Values{"name": []string{name}}
}

// Lookup lists a collection filtered by query and decodes the first page.
func (c *Client) Lookup(ctx context.Context, collection string, query url.Values) (*Collection, *Response, error) {
	resp, err := c.Do(ctx, http.MethodGet, c.URL(collection, query), nil)
	if err != nil {
		return nil, resp, err
	}

	var coll Collection
	if err := json.Unmarshal(resp.Body, &coll); err != nil {
		return nil, resp, fmt.Errorf("parse %s collection: %w (status %d)", collection, err, resp.StatusCode)
	}
	return &coll, resp, nil
}

// Create posts payload to a collection.
func (c *Client) Create(ctx context.Context, collection string, payload any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, c.URL(collection, nil), payload)
}

// Delete sends a DELETE to a resource's remove link.
func (c *Client) Delete(ctx context.Context, link string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, link, nil)
}

// Action invokes a resource action, e.g. generateKubeconfig on a cluster.
func (c *Client) Action(ctx context.Context, collection, id, action string) (*Response, error) {
	path := collection + "/" + url.PathEscape(id)
	return c.Do(ctx, http.MethodPost, c.URL(path, url.Values{"action": []string{action}}), nil)
}
