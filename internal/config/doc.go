// Package config holds the inputs of a ranchsync run.
//
// A run needs two things: a [Connection] to the Rancher server, read from
// RANCHER_* environment variables and overridden by CLI flags, and a
// desired-state [Document] loaded from YAML. The document names one
// resource, its kind and whether it should be present or absent.
//
// Example document:
//
//	kind: nodePool
//	name: workers
//	state: present
//	nodePool:
//	  cluster: demo
//	  hostnamePrefix: demo-worker-
//	  quantity: 3
//	  worker: true
//
// [RunWizard] builds a document interactively for the init command.
package config
