package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/imamik/ranchsync/cmd/ranchsync/handlers"
)

// Kubeconfig returns the command generating a cluster's kubeconfig.
//
// Optional flags:
//
//	--kubeconfig-output, -o: Write the kubeconfig to this file
//	--s3-bucket, --s3-key: Upload the kubeconfig to object storage
//	--probe: Connect to the cluster with the generated kubeconfig
func Kubeconfig(opts *handlers.Options) *cobra.Command {
	var kopts handlers.KubeconfigOptions

	cmd := &cobra.Command{
		Use:   "kubeconfig NAME",
		Short: "Generate the kubeconfig of an active cluster",
		Long: `Generate the kubeconfig of an active cluster.

The cluster must be in state "active". The action result is printed; use
--kubeconfig-output to store the kubeconfig itself, or --s3-bucket and
--s3-key to upload it. S3 credentials come from the AWS environment
(AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY or a profile).

Examples:
  ranchsync kubeconfig demo -o ~/.kube/demo.yaml --probe
  ranchsync kubeconfig demo --s3-bucket kubeconfigs --s3-key demo.yaml \
    --s3-endpoint https://fsn1.your-objectstorage.com --s3-path-style`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Kubeconfig(cmd.Context(), opts, args[0], kopts)
		},
	}

	cmd.Flags().StringVarP(&kopts.OutputPath, "kubeconfig-output", "o", "", "Write the kubeconfig to this file")
	cmd.Flags().StringVar(&kopts.S3Bucket, "s3-bucket", "", "Upload the kubeconfig to this bucket")
	cmd.Flags().StringVar(&kopts.S3Key, "s3-key", "", "Object key of the uploaded kubeconfig")
	cmd.Flags().StringVar(&kopts.S3Endpoint, "s3-endpoint", "", "S3-compatible endpoint URL")
	cmd.Flags().StringVar(&kopts.S3Region, "s3-region", "", "S3 region (default us-east-1)")
	cmd.Flags().BoolVar(&kopts.S3PathStyle, "s3-path-style", false, "Use path-style bucket addressing")
	cmd.Flags().BoolVar(&kopts.Probe, "probe", false, "Check the API server with the generated kubeconfig")
	cmd.Flags().DurationVar(&kopts.ProbeTimeout, "probe-timeout", 30*time.Second, "Timeout of the probe requests")
	cmd.MarkFlagsRequiredTogether("s3-bucket", "s3-key")

	return cmd
}
