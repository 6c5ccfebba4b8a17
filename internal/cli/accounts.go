package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/tinoosan/accounts/internal/api/grpc/accountsv1"
)

// withClient dials opts.Addr, runs fn with a per-call timeout and closes the connection.
func withClient(cmd *cobra.Command, opts *RootOptions, fn func(context.Context, accountsv1.AccountsServiceClient) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
	defer cancel()
	conn, err := opts.dial(ctx, opts.Addr)
	if err != nil {
		return WrapExitError(ExitCommandError, "dial "+opts.Addr, err)
	}
	defer conn.Close()
	return fn(ctx, accountsv1.NewAccountsServiceClient(conn))
}

// parseData decodes a --data JSON object into a Struct.
func parseData(raw string) (*structpb.Struct, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, NewExitError(ExitCommandError, "--data is required")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, WrapExitError(ExitCommandError, "--data must be a JSON object", err)
	}
	if m == nil {
		return nil, NewExitError(ExitCommandError, "--data must be a JSON object")
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "encode --data", err)
	}
	return s, nil
}

func NewCreateCommand(opts *RootOptions) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create an account",
		Example: `  accountsctl create --data '{"id":"1","name":"Alice"}'`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := parseData(data)
			if err != nil {
				return err
			}
			return withClient(cmd, opts, func(ctx context.Context, c accountsv1.AccountsServiceClient) error {
				out, err := c.CreateAccount(ctx, in)
				if err != nil {
					return rpcError("create", err)
				}
				return printValue(cmd.OutOrStdout(), opts.Output, out.AsMap())
			})
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "account as a JSON object (must contain id)")
	return cmd
}

func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c accountsv1.AccountsServiceClient) error {
				out, err := c.ListAccounts(ctx, &emptypb.Empty{})
				if err != nil {
					return rpcError("list", err)
				}
				items := out.AsSlice()
				if items == nil {
					items = []any{}
				}
				return printValue(cmd.OutOrStdout(), opts.Output, items)
			})
		},
	}
}

func NewGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c accountsv1.AccountsServiceClient) error {
				out, err := c.GetAccount(ctx, wrapperspb.String(args[0]))
				if err != nil {
					return rpcError("get", err)
				}
				return printValue(cmd.OutOrStdout(), opts.Output, out.AsMap())
			})
		},
	}
}

func NewUpdateCommand(opts *RootOptions) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace an account",
		Long:  "Replace the whole record stored under <id>. A replacement without an id keeps <id>.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := parseData(data)
			if err != nil {
				return err
			}
			return withClient(cmd, opts, func(ctx context.Context, c accountsv1.AccountsServiceClient) error {
				out, err := c.UpdateAccount(ctx, accountsv1.NewUpdateRequest(args[0], in))
				if err != nil {
					return rpcError("update", err)
				}
				return printValue(cmd.OutOrStdout(), opts.Output, out.AsMap())
			})
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "replacement account as a JSON object")
	return cmd
}

func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c accountsv1.AccountsServiceClient) error {
				if _, err := c.DeleteAccount(ctx, wrapperspb.String(args[0])); err != nil {
					return rpcError("delete", err)
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return err
			})
		},
	}
}
