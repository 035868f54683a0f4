package rancher

import (
	"encoding/json"
	"fmt"
)

// LinkRemove is the link Rancher publishes on resources the caller may delete.
const LinkRemove = "remove"

// Resource is the part of a v3 record the reconcilers read.
type Resource struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	State string            `json:"state"`
	Links map[string]string `json:"links"`
}

// RemoveLink returns the record's remove link, if any.
func (r Resource) RemoveLink() (string, bool) {
	link, ok := r.Links[LinkRemove]
	return link, ok && link != ""
}

// Collection is a single page of a v3 list response.
type Collection struct {
	Data []Resource `json:"data"`
}

// Named returns every record in the page whose name equals name.
func (c *Collection) Named(name string) []Resource {
	if c == nil {
		return nil
	}
	var out []Resource
	for _, r := range c.Data {
		if r.Name == name {
			out = append(out, r)
		}
	}
	return out
}

// Response is a raw API response.
type Response struct {
	StatusCode int
	Reason     string
	Body       []byte
}

// JSON returns the body as raw JSON. An empty body yields nil.
func (r *Response) JSON() (json.RawMessage, error) {
	if r == nil || len(r.Body) == 0 {
		return nil, nil
	}
	if !json.Valid(r.Body) {
		return nil, fmt.Errorf("response body is not valid JSON (status %d)", r.StatusCode)
	}
	return json.RawMessage(r.Body), nil
}
