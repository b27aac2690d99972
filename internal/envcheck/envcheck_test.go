package envcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yolodolo42/checkback/internal/testutil"
)

func clearDetectionEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"SSH_CONNECTION", "SSH_CLIENT", "SSH_TTY",
		"REMOTE_CONTAINERS", "CODESPACES",
		"WSL_DISTRO_NAME", "WSL_INTEROP", "WSLENV",
	} {
		testutil.UnsetEnv(t, v)
	}
}

func TestIsWSL(t *testing.T) {
	t.Run("wsl env var forces detection", func(t *testing.T) {
		clearDetectionEnv(t)
		testutil.SetEnv(t, "WSL_DISTRO_NAME", "Ubuntu")
		assert.True(t, IsWSL())
	})

	t.Run("interop env var forces detection", func(t *testing.T) {
		clearDetectionEnv(t)
		testutil.SetEnv(t, "WSL_INTEROP", "/run/WSL/1_interop")
		assert.True(t, IsWSL())
	})
}

func TestIsRemote(t *testing.T) {
	t.Run("ssh session counts as remote", func(t *testing.T) {
		clearDetectionEnv(t)
		testutil.SetEnv(t, "SSH_CONNECTION", "10.0.0.1 22 10.0.0.2 22")

		if IsWSL() {
			t.Skip("host looks like WSL; WSL overrides remote detection")
		}
		assert.True(t, IsRemote())
	})

	t.Run("wsl never counts as remote", func(t *testing.T) {
		clearDetectionEnv(t)
		testutil.SetEnv(t, "WSL_DISTRO_NAME", "Ubuntu")
		testutil.SetEnv(t, "SSH_CONNECTION", "10.0.0.1 22 10.0.0.2 22")

		assert.False(t, IsRemote())
	})

	t.Run("codespaces counts as remote", func(t *testing.T) {
		clearDetectionEnv(t)
		testutil.SetEnv(t, "CODESPACES", "true")

		if IsWSL() {
			t.Skip("host looks like WSL; WSL overrides remote detection")
		}
		assert.True(t, IsRemote())
	})
}
