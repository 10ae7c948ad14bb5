package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/PixPMusic/gopher-midi/midi"
	"github.com/spf13/cobra"
)

// ParseCmd runs the parser over bytes given as hex arguments or read from a file
func ParseCmd() *cobra.Command {
	var (
		channel int
		types   []string
		file    string
	)
	cmd := &cobra.Command{
		Use:   "parse [HEX...]",
		Short: "Parse MIDI bytes and print every outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			if file != "" {
				b, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", file, err)
				}
				data = b
			} else {
				b, err := midi.ParseHex(strings.Join(args, " "))
				if err != nil {
					return err
				}
				data = b
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(types) > 0 {
				cfg.Types = types
			}
			registry, err := cfg.Registry()
			if err != nil {
				return err
			}

			want := cfg.Channel
			if cmd.Flags().Changed("channel") {
				want = channel
			}
			ch, err := midi.ParseChannel(want)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for {
				res := registry.Parse(data, ch)
				if res.Consumed == 0 {
					break
				}
				text := "-"
				if res.Message != nil {
					text = res.Message.String()
				}
				fmt.Fprintf(out, "consumed=%d skipped=%d %s\n", res.Consumed, res.Skipped, text)
				data = data[res.Consumed:]
			}
			if len(data) > 0 {
				fmt.Fprintf(out, "waiting on %s\n", midi.FormatHex(data))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&channel, "channel", 0, "Channel to parse for, -1 for any (default from config)")
	cmd.Flags().StringSliceVar(&types, "types", nil, "Message types to register, e.g. note_on,control_change (default from config)")
	cmd.Flags().StringVar(&file, "file", "", "Read raw bytes from a file instead of hex arguments")
	return cmd
}
