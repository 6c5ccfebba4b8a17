// Package cli implements accountsctl, a command-line client for the accounts gRPC service.
package cli

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// DialFunc opens a client connection to addr.
type DialFunc func(ctx context.Context, addr string) (*grpc.ClientConn, error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Addr    string
	Output  string // "json" | "yaml"
	Timeout time.Duration

	dial DialFunc
}

// ValidOutputs defines the allowed output formats.
var ValidOutputs = []string{"json", "yaml"}

// DefaultDial connects over an insecure transport.
func DefaultDial(_ context.Context, addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

// NewRootCommand creates the root command for accountsctl.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithDialer(DefaultDial)
}

// NewRootCommandWithDialer is NewRootCommand with a custom connection factory.
func NewRootCommandWithDialer(dial DialFunc) *cobra.Command {
	opts := &RootOptions{dial: dial}

	cmd := &cobra.Command{
		Use:           "accountsctl",
		Short:         "Command-line client for the accounts registry",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidOutputs, opts.Output) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid output %q: must be one of %v", opts.Output, ValidOutputs))
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Addr, "addr", "localhost:50051", "accounts gRPC address (host:port)")
	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", "json", "output format (json|yaml)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 10*time.Second, "per-call timeout")

	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))

	return cmd
}
