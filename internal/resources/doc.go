// Package resources describes every Rancher kind ranchsync manages.
//
// Each kind contributes a typed create payload and a constructor that turns
// a desired-state document into a reconcile.Operation:
//
//	cluster       POST /v3/cluster        RKE config, optional vSphere provider
//	node driver   POST /v3/nodedriver     active, non-builtin driver
//	node pool     POST /v3/nodepool       needs a cluster and a node template
//	node template POST /v3/nodetemplate   eportal or hetzner config, bare delete
//
// Apply dispatches a document to the operation of its kind. The read-only
// operations (ClusterInfo, RegistrationTokens, GenerateKubeconfig) never
// change anything and always report changed=false.
package resources
