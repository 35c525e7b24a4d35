package main

import (
	"fmt"
	"os"

	corecmd "github.com/m3rciful/sneakerbot/core/cmd"
	"github.com/m3rciful/sneakerbot/internal/app"
	"github.com/m3rciful/sneakerbot/internal/catalog"
)

func main() {
	root := corecmd.NewRootCommand(corecmd.App{
		Name:         "sneakerbot",
		ConfigEnvVar: "CONFIG_PATH",
		Migrations:   catalog.Migrations,
		Run: corecmd.Options{
			Bootstrap: app.Bootstrap,
		},
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
