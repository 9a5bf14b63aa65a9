package main

import (
	"os"

	"bennypowers.dev/sass2ts/internal/cli"
	"bennypowers.dev/sass2ts/internal/log"
)

func main() {
	streams := cli.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
	if err := cli.Run(streams, os.Exit, os.Args[1:]...); err != nil {
		log.Error("%v", err)
		log.Sync()
		os.Exit(1)
	}
}
