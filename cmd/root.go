package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/PixPMusic/gopher-midi/internal/config"
	"github.com/PixPMusic/gopher-midi/internal/log"
	"github.com/spf13/cobra"
)

// configPath stores the --config flag; empty means the user config directory
var configPath string

// RootCmd returns the root cobra command of the tool
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "gopher-midi",
		Short:        "Parse, inspect and route MIDI byte streams",
		SilenceUsage: true,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	cmd.AddCommand(ParseCmd())
	cmd.AddCommand(NoteCmd())
	cmd.AddCommand(PortsCmd())
	cmd.AddCommand(ListenCmd())
	cmd.AddCommand(SendCmd())
	return cmd
}

// loadConfig reads the config and initializes the default logger from it
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	log.Init(cfg.Log)
	return cfg, nil
}

// term returns a channel notified on interrupt or termination
func term() chan os.Signal {
	termCh := make(chan os.Signal, 1)
	signal.Notify(termCh, os.Interrupt, syscall.SIGTERM)
	return termCh
}
