// Package envcheck detects the runtime environment the server was
// launched in: WSL, remote sessions (SSH, containers, RDP), and whether
// an interactive terminal is available for the feedback form.
package envcheck

import (
	"os"
	"runtime"
	"strings"

	"golang.org/x/term"
)

var (
	sshEnvVars    = []string{"SSH_CONNECTION", "SSH_CLIENT", "SSH_TTY"}
	remoteEnvVars = []string{"REMOTE_CONTAINERS", "CODESPACES"}
	wslEnvVars    = []string{"WSL_DISTRO_NAME", "WSL_INTEROP", "WSLENV"}
	wslPaths      = []string{"/mnt/c", "/mnt/d", "/proc/sys/fs/binfmt_misc/WSLInterop"}
)

// IsWSL reports whether we are running inside Windows Subsystem for Linux.
func IsWSL() bool {
	if raw, err := os.ReadFile("/proc/version"); err == nil {
		version := strings.ToLower(string(raw))
		if strings.Contains(version, "microsoft") || strings.Contains(version, "wsl") {
			return true
		}
	}

	for _, v := range wslEnvVars {
		if os.Getenv(v) != "" {
			return true
		}
	}

	for _, p := range wslPaths {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}

	return false
}

// IsRemote reports whether we are running in a remote session. WSL does
// not count as remote: it can reach the local Windows desktop.
func IsRemote() bool {
	if IsWSL() {
		return false
	}

	for _, v := range sshEnvVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	for _, v := range remoteEnvVars {
		if os.Getenv(v) != "" {
			return true
		}
	}

	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}

	if runtime.GOOS == "windows" {
		if session := os.Getenv("SESSIONNAME"); strings.Contains(session, "RDP") {
			return true
		}
	}

	if runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" {
		return true
	}

	return false
}

// IsInteractive reports whether a terminal is attached for the feedback
// form. stdin/stdout carry the MCP protocol, so the form runs on the tty
// behind stderr.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
