package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yolodolo42/checkback/internal/envcheck"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the detected runtime environment",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("platform:     %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Printf("go version:   %s\n", runtime.Version())
		fmt.Printf("wsl:          %v\n", envcheck.IsWSL())
		fmt.Printf("remote:       %v\n", envcheck.IsRemote())
		fmt.Printf("interactive:  %v\n", envcheck.IsInteractive())

		if dataDir, err := DataDir(); err == nil {
			fmt.Printf("data dir:     %s\n", dataDir)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the checkback version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("checkback " + Version)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(versionCmd)
}
