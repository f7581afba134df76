package executor

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecute(t *testing.T) {
	requireShell(t)
	out, err := New().Execute(context.Background(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestExecuteStderr(t *testing.T) {
	requireShell(t)
	out, err := New().ExecuteStderr(context.Background(), "sh", "-c", "echo report >&2")
	require.NoError(t, err)
	assert.Equal(t, "report\n", out)
}

func TestExecuteFailureIncludesStderr(t *testing.T) {
	requireShell(t)
	_, err := New().Execute(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestTail(t *testing.T) {
	assert.Equal(t, "abc", tail("abc", 5))
	assert.Equal(t, "...de", tail("abcde", 2))
}
