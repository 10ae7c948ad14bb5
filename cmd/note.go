package cmd

import (
	"fmt"

	"github.com/PixPMusic/gopher-midi/midi"
	"github.com/spf13/cobra"
)

// NoteCmd resolves note names to pitch numbers
func NoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "note NAME...",
		Short: "Print the MIDI pitch of note names such as C4 or F#2",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				n, err := midi.NoteNumber(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", name, n)
			}
			return nil
		},
	}
}
