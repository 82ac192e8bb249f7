package main

import (
	"context"
	"log"
	"os"

	"github.com/r-k-jonynas/chparse/pkg/cmd"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

func main() {
	err := cmd.Run(context.Background(), os.Args, cmd.Version{
		Version:   version,
		Commit:    commit,
		Timestamp: date,
	})
	if err != nil {
		log.Fatal(err)
	}
}
