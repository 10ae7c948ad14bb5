package cmd

import (
	"fmt"

	"github.com/PixPMusic/gopher-midi/internal/log"
	"github.com/PixPMusic/gopher-midi/internal/port"
	"github.com/spf13/cobra"
)

// PortsCmd lists the MIDI ports the driver sees
func PortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List MIDI input and output ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}
			m := port.NewManager(log.DefaultLogger)
			defer m.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "in:")
			for _, name := range m.ListInPorts() {
				fmt.Fprintf(out, "  %s\n", name)
			}
			fmt.Fprintln(out, "out:")
			for _, name := range m.ListOutPorts() {
				fmt.Fprintf(out, "  %s\n", name)
			}
			return nil
		},
	}
}
