package runtime

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestRuntimes_AgainstDocker exercises both runtimes against a real daemon.
// Containers and networks are created by testcontainers so they are reaped
// even when the test fails.
func TestRuntimes_AgainstDocker(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping docker integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	net, err := network.New(ctx)
	require.NoError(t, err)
	testcontainers.CleanupNetwork(t, net)

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:      "alpine:3.20",
			Cmd:        []string{"sh", "-c", "echo ready && tail -f /dev/null"},
			Networks:   []string{net.Name},
			WaitingFor: wait.ForLog("ready"),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	// Container IDs are accepted wherever a name is.
	name := ctr.GetContainerID()

	runtimes := map[string]func(t *testing.T) Runtime{
		KindDocker: func(t *testing.T) Runtime {
			d, err := NewDocker(nil)
			require.NoError(t, err)
			t.Cleanup(func() { _ = d.Close() })
			return d
		},
		KindCLI: func(t *testing.T) Runtime {
			if _, err := exec.LookPath("docker"); err != nil {
				t.Skip("docker CLI not installed")
			}
			return NewCLI()
		},
	}

	for kind, open := range runtimes {
		t.Run(kind, func(t *testing.T) {
			rt := open(t)

			ok, err := rt.NetworkExists(ctx, net.Name)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = rt.NetworkExists(ctx, net.Name+"-missing")
			require.NoError(t, err)
			assert.False(t, ok)

			st, err := rt.Inspect(ctx, name)
			require.NoError(t, err)
			assert.Equal(t, StatusRunning, st.Status)
			assert.True(t, st.Running)

			logs, err := rt.Logs(ctx, name, 5)
			require.NoError(t, err)
			assert.Contains(t, logs, "ready")

			_, err = rt.Inspect(ctx, "soapmock-absent-container")
			require.ErrorIs(t, err, ErrNotFound)
			require.ErrorIs(t, rt.Stop(ctx, "soapmock-absent-container"), ErrNotFound)
		})
	}
}
