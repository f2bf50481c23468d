package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/pmanager/pm/cmd.Version=...".
var Version = "dev"

var versionBanner bool

func init() {
	versionCmd.Flags().BoolVar(&versionBanner, "banner", false, "print the banner too")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if versionBanner {
			banner := figure.NewFigure("pm", "alligator2", true)
			fmt.Fprintln(cmd.OutOrStdout(), banner.String())
		}
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}
