package server

import (
	"context"
	"encoding/json"
	"os"
	"runtime"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/yolodolo42/checkback/internal/envcheck"
)

func systemInfoTool() mcp.Tool {
	return mcp.NewTool("get_system_info",
		mcp.WithDescription("Report the server's runtime environment: platform, WSL/remote detection, and the relevant environment variables."),
		mcp.WithTitleAnnotation("Get System Info"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)
}

type systemInfo struct {
	Platform      string            `json:"platform"`
	GoVersion     string            `json:"go_version"`
	WSL           bool              `json:"wsl"`
	Remote        bool              `json:"remote"`
	InterfaceType string            `json:"interface_type"`
	EnvVars       map[string]string `json:"env_vars"`
}

func (s *Server) handleSystemInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info := systemInfo{
		Platform:      runtime.GOOS,
		GoVersion:     runtime.Version(),
		WSL:           envcheck.IsWSL(),
		Remote:        envcheck.IsRemote(),
		InterfaceType: "terminal",
		EnvVars:       map[string]string{},
	}

	for _, v := range []string{
		"SSH_CONNECTION", "SSH_CLIENT", "DISPLAY", "SESSIONNAME",
		"WSL_DISTRO_NAME", "WSL_INTEROP", "WSLENV",
	} {
		info.EnvVars[v] = os.Getenv(v)
	}

	raw, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}
