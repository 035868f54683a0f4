package kubeconfig

import (
	"context"
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// ProbeResult summarizes what the API server reported.
type ProbeResult struct {
	ServerVersion string `json:"serverVersion"`
	Nodes         int    `json:"nodes"`
	ReadyNodes    int    `json:"readyNodes"`
}

// Probe connects with the kubeconfig and reports server version and node readiness.
func (k *Kubeconfig) Probe(ctx context.Context, timeout time.Duration) (*ProbeResult, error) {
	restConfig, err := clientcmd.NewDefaultClientConfig(*k.Config, &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build client config: %w", err)
	}
	restConfig.Timeout = timeout

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	info, err := clientset.Discovery().ServerVersion()
	if err != nil {
		return nil, fmt.Errorf("failed to get server version: %w", err)
	}

	nodes, err := clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	result := &ProbeResult{ServerVersion: info.GitVersion, Nodes: len(nodes.Items)}
	for i := range nodes.Items {
		if isNodeReady(&nodes.Items[i]) {
			result.ReadyNodes++
		}
	}
	return result, nil
}

func isNodeReady(node *corev1.Node) bool {
	for _, cond := range node.Status.Conditions {
		if cond.Type == corev1.NodeReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}
