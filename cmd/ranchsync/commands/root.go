// Package commands defines the CLI command structure and flag bindings.
//
// Command execution is delegated to handler functions in the handlers
// package.
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imamik/ranchsync/cmd/ranchsync/handlers"
)

// Root returns the root command for the ranchsync CLI.
//
// Global flags override the RANCHER_* environment variables.
func Root() *cobra.Command {
	opts := &handlers.Options{}

	cmd := &cobra.Command{
		Use:           "ranchsync",
		Short:         "Reconcile Rancher resources against a desired state",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			markChangedFlags(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.Host, "host", "", "Rancher host or URL (env RANCHER_HOST)")
	flags.StringVar(&opts.User, "user", "", "Rancher user (env RANCHER_USER)")
	flags.StringVar(&opts.Password, "password", "", "Rancher password (env RANCHER_PASSWORD, prompted on a terminal)")
	flags.BoolVar(&opts.Insecure, "insecure", false, "Skip TLS certificate verification (env RANCHER_INSECURE)")
	flags.StringVar(&opts.CACert, "ca-cert", "", "PEM bundle of additional trusted CAs (env RANCHER_CA_CERT)")
	flags.DurationVar(&opts.Timeout, "timeout", 0, "Timeout per API request, 0 for none (env RANCHER_TIMEOUT)")
	flags.StringVar(&opts.Output, "output", handlers.OutputJSON,
		fmt.Sprintf("Result format: %s", strings.Join(handlers.OutputFormats, ", ")))
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Log debug messages to stderr")
	flags.StringVar(&opts.Pushgateway, "pushgateway", "", "Push metrics to this Prometheus Pushgateway URL")

	cmd.AddCommand(Apply(opts))
	cmd.AddCommand(Kubeconfig(opts))
	cmd.AddCommand(RegistrationToken(opts))
	cmd.AddCommand(ClusterInfo(opts))
	cmd.AddCommand(Init())
	cmd.AddCommand(Version())

	return cmd
}

// markChangedFlags records boolean flags that were given explicitly.
func markChangedFlags(cmd *cobra.Command, opts *handlers.Options) {
	opts.InsecureSet = cmd.Flags().Changed("insecure")
}
