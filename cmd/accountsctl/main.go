package main

import (
	"fmt"
	"os"

	"github.com/tinoosan/accounts/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "accountsctl:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
