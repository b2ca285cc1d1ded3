package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "memory")
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "ALICE@EXAMPLE.COM", normalize("  alice@example.com "))
}

func TestCLI_UserCreate(t *testing.T) {
	require.NoError(t, run(t, "user", "create", "alice", "--email", "alice@example.com", "--password", "s3cret"))
}

func TestCLI_MissingUserAndRole(t *testing.T) {
	// el adapter memory arranca vacío en cada invocación
	require.ErrorContains(t, run(t, "user", "get", "ghost"), `user "ghost" not found`)
	require.ErrorContains(t, run(t, "role", "delete", "Nope"), `role "Nope" not found`)
}

func TestCLI_RoleListAndPing(t *testing.T) {
	require.NoError(t, run(t, "role", "list"))
	require.NoError(t, run(t, "ping"))
	require.NoError(t, run(t, "--out", "json", "role", "members", "Admin"))
}

func TestCLI_BadOutput(t *testing.T) {
	require.ErrorContains(t, run(t, "--out", "xml", "ping"), "--out")
}

func TestCLI_UnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	cmd := newRootCmd()
	cmd.SetArgs([]string{"ping"})
	require.ErrorContains(t, cmd.ExecuteContext(context.Background()), "unknown storage driver")
}

func TestRootHelp_DocumentsMemoryDriver(t *testing.T) {
	long := newRootCmd().Long
	require.Contains(t, long, `"memory"`)
	require.Contains(t, long, "STORAGE_DRIVER=mongo")
}
