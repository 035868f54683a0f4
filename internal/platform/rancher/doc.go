// Package rancher is a small client for the Rancher v3 management API.
//
// Every request goes through [Client.Do], which applies HTTP basic
// authentication, JSON content negotiation and the configured TLS policy.
// The typed helpers build on it:
//
//   - Lookup: GET /v3/{collection}?name={name}
//   - Create: POST /v3/{collection}
//   - Delete: DELETE on a resource's "remove" link
//   - Action: POST /v3/{collection}/{id}?action={action}
//
// Each helper issues exactly one HTTP request. Nothing is retried and only
// the first page of a collection is read.
//
// # Errors
//
// Transport failures are returned wrapped with the method and URL. A non-2xx
// status is returned as *[APIError], whose Error method yields the response
// body exactly as the server sent it, so callers can surface Rancher's own
// diagnostics.
//
// # TLS
//
// Certificate verification is enabled unless [Options.Insecure] is set.
// [Options.CACertFile] adds a PEM bundle on top of the system pool.
package rancher
