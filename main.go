package main

import (
	"os"

	"github.com/pmanager/pm/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		if cmd.Reported(err) {
			os.Exit(1)
		}
		cmd.Logger.Fatalf("%v", err)
	}
}
