package main

import (
	"fmt"
	"os"

	"github.com/mwantia/taskfilter/cmd/taskfilter/cli"
	"github.com/mwantia/taskfilter/cmd/taskfilter/cli/client"
	"github.com/mwantia/taskfilter/cmd/taskfilter/cli/server"

	_ "time/tzdata"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	root := cli.NewRootCommand(cli.VersionInfo{
		Version: version,
		Commit:  commit,
	})

	root.AddCommand(cli.NewVersionCommand())

	root.AddCommand(server.NewServerCommand())
	root.AddCommand(client.NewFilterCommand())

	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
