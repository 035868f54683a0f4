// Package kubeconfig handles the kubeconfig Rancher generates for a cluster:
// extraction from the action response, validation, writing to disk,
// upload to object storage and an optional probe of the API server.
package kubeconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
)

// ContentType is used when the kubeconfig is stored as an object.
const ContentType = "application/yaml"

// actionOutput is the body of the generateKubeconfig action.
type actionOutput struct {
	Type   string `json:"type"`
	Config string `json:"config"`
}

// Kubeconfig is a parsed and validated kubeconfig.
type Kubeconfig struct {
	Raw    []byte
	Config *clientcmdapi.Config
}

// FromActionResponse extracts the kubeconfig from a generateKubeconfig response body.
func FromActionResponse(body []byte) (*Kubeconfig, error) {
	var out actionOutput
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode generateKubeconfig response: %w", err)
	}
	if out.Config == "" {
		return nil, errors.New("generateKubeconfig response has no config")
	}
	return Parse([]byte(out.Config))
}

// Parse loads and validates kubeconfig data.
func Parse(data []byte) (*Kubeconfig, error) {
	cfg, err := clientcmd.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse kubeconfig: %w", err)
	}
	if err := clientcmd.Validate(*cfg); err != nil {
		return nil, fmt.Errorf("invalid kubeconfig: %w", err)
	}
	return &Kubeconfig{Raw: data, Config: cfg}, nil
}

// CurrentServer returns the API server URL of the current context.
func (k *Kubeconfig) CurrentServer() string {
	ctx, ok := k.Config.Contexts[k.Config.CurrentContext]
	if !ok {
		return ""
	}
	cluster, ok := k.Config.Clusters[ctx.Cluster]
	if !ok {
		return ""
	}
	return cluster.Server
}

// ContextNames returns all context names, sorted.
func (k *Kubeconfig) ContextNames() []string {
	names := make([]string, 0, len(k.Config.Contexts))
	for name := range k.Config.Contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFile writes the kubeconfig to path with mode 0600, creating parent directories.
func (k *Kubeconfig) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := clientcmd.WriteToFile(*k.Config, path); err != nil {
		return fmt.Errorf("failed to write kubeconfig: %w", err)
	}
	return nil
}
