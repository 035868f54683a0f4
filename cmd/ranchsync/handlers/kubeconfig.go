package handlers

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/ranchsync/internal/kubeconfig"
	"github.com/imamik/ranchsync/internal/platform/s3"
	"github.com/imamik/ranchsync/internal/reconcile"
	"github.com/imamik/ranchsync/internal/resources"
)

// KubeconfigOptions are the flags of the kubeconfig command.
type KubeconfigOptions struct {
	// OutputPath receives the kubeconfig (mode 0600) when set.
	OutputPath string

	S3Bucket    string
	S3Key       string
	S3Endpoint  string
	S3Region    string
	S3PathStyle bool

	// Probe connects to the cluster with the generated kubeconfig.
	Probe        bool
	ProbeTimeout time.Duration
}

var (
	// generateKubeconfig calls the generateKubeconfig action (for testing injection).
	generateKubeconfig = resources.GenerateKubeconfig

	// newObjectStore creates the S3 client used for uploads.
	newObjectStore = func(ctx context.Context, opts s3.Options) (kubeconfig.ObjectStore, error) {
		return s3.NewClient(ctx, opts)
	}

	// probeCluster checks the generated kubeconfig against the API server.
	probeCluster = func(ctx context.Context, kc *kubeconfig.Kubeconfig, timeout time.Duration) (*kubeconfig.ProbeResult, error) {
		return kc.Probe(ctx, timeout)
	}
)

// Kubeconfig generates the kubeconfig of an active cluster. The action
// result is written to stdout; the kubeconfig itself is optionally written to
// a file, uploaded to S3 and probed.
func Kubeconfig(ctx context.Context, opts *Options, clusterName string, kopts KubeconfigOptions) error {
	return run(ctx, opts, "kubeconfig "+clusterName, func(ctx context.Context, api resources.ActionAPI) (*reconcile.Result, error) {
		result, err := generateKubeconfig(ctx, api, clusterName)
		if err != nil {
			return nil, err
		}
		if kopts.OutputPath == "" && kopts.S3Bucket == "" && !kopts.Probe {
			return result, nil
		}

		kc, err := kubeconfig.FromActionResponse(result.Resource)
		if err != nil {
			return nil, err
		}
		if err := deliverKubeconfig(ctx, kc, kopts); err != nil {
			return nil, err
		}
		return result, nil
	})
}

func deliverKubeconfig(ctx context.Context, kc *kubeconfig.Kubeconfig, kopts KubeconfigOptions) error {
	log := logr.FromContextOrDiscard(ctx)
	log.Info("kubeconfig generated", "contexts", kc.ContextNames(), "server", kc.CurrentServer())

	if kopts.OutputPath != "" {
		if err := kc.WriteFile(kopts.OutputPath); err != nil {
			return err
		}
		log.Info("kubeconfig written", "path", kopts.OutputPath, "server", kc.CurrentServer())
	}

	if kopts.S3Bucket != "" {
		store, err := newObjectStore(ctx, s3.Options{
			Endpoint:  kopts.S3Endpoint,
			Region:    kopts.S3Region,
			PathStyle: kopts.S3PathStyle,
		})
		if err != nil {
			return err
		}
		if err := kc.Upload(ctx, store, kopts.S3Bucket, kopts.S3Key); err != nil {
			return err
		}
	}

	if kopts.Probe {
		probe, err := probeCluster(ctx, kc, kopts.ProbeTimeout)
		if err != nil {
			return err
		}
		log.Info("cluster reachable",
			"serverVersion", probe.ServerVersion,
			"nodes", probe.Nodes,
			"readyNodes", probe.ReadyNodes,
		)
	}
	return nil
}
