package main

import (
	"os"

	"github.com/PixPMusic/gopher-midi/cmd"
)

func main() {
	if err := cmd.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
