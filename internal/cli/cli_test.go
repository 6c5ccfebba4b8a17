package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
	"gopkg.in/yaml.v3"

	"github.com/tinoosan/accounts/internal/api/grpc/accountsv1"
	"github.com/tinoosan/accounts/internal/grpcapi"
	"github.com/tinoosan/accounts/internal/service/account"
	"github.com/tinoosan/accounts/internal/storage/memory"
)

func startServer(t *testing.T) DialFunc {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	store := memory.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := grpc.NewServer()
	accountsv1.RegisterAccountsServiceServer(srv, grpcapi.New(account.New(store, store, nil, logger)))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	return func(ctx context.Context, _ string) (*grpc.ClientConn, error) {
		return grpc.NewClient("passthrough:///bufnet",
			grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
	}
}

func run(t *testing.T, dial DialFunc, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommandWithDialer(dial)
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestCLIRoundTrip(t *testing.T) {
	dial := startServer(t)

	out, err := run(t, dial, "create", "--data", `{"id":1,"name":"Alice"}`)
	require.NoError(t, err)
	var created map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, "1", created["id"])
	assert.Equal(t, "Alice", created["name"])

	_, err = run(t, dial, "create", "--data", `{"id":"2","name":"Bob"}`)
	require.NoError(t, err)

	out, err = run(t, dial, "update", "1", "--data", `{"name":"Alicia"}`)
	require.NoError(t, err)
	var updated map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, "1", updated["id"])
	assert.Equal(t, "Alicia", updated["name"])

	out, err = run(t, dial, "delete", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted 2")

	out, err = run(t, dial, "list", "-o", "yaml")
	require.NoError(t, err)
	var listed []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Alicia", listed[0]["name"])

	out, err = run(t, dial, "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"Alicia"`)
}

func TestCLIEmptyListPrintsArray(t *testing.T) {
	dial := startServer(t)
	out, err := run(t, dial, "list")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestCLIServerErrors(t *testing.T) {
	dial := startServer(t)

	_, err := run(t, dial, "get", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "NotFound")

	_, err = run(t, dial, "create", "--data", `{"name":"no id"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidArgument")
}

func TestCLIInputErrors(t *testing.T) {
	dial := startServer(t)

	_, err := run(t, dial, "create")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = run(t, dial, "create", "--data", `[1,2]`)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = run(t, dial, "list", "--output", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = run(t, dial, "get")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}
