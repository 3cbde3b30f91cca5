package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HalmaiErik/utcn-imp/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the imp version",
	Run:   runVersion,
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Fprint(os.Stdout, version.String())
}
