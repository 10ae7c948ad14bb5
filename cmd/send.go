package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PixPMusic/gopher-midi/internal/log"
	"github.com/PixPMusic/gopher-midi/internal/port"
	"github.com/PixPMusic/gopher-midi/midi"
	"github.com/spf13/cobra"
)

// SendCmd builds one message and writes it to the output port
func SendCmd() *cobra.Command {
	var (
		channel int
		outPort string
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "send TYPE [ARGS...]",
		Short: "Send a message, e.g. `send note_on C4 100` or `send system_exclusive 42 01 02`",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			want := cfg.OutChannel
			if cmd.Flags().Changed("channel") {
				want = channel
			}
			ch, err := midi.ParseChannel(want)
			if err != nil {
				return err
			}

			msg, err := buildMessage(args[0], args[1:], ch)
			if err != nil {
				return err
			}
			b, err := msg.Encode(ch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), midi.FormatHex(b))
			if dryRun {
				return nil
			}

			if outPort == "" {
				outPort = cfg.OutPort
			}
			m := port.NewManager(log.DefaultLogger)
			defer m.Close()
			sender, err := m.Sender(outPort, ch)
			if err != nil {
				return err
			}
			return sender.Send(msg)
		},
	}
	cmd.Flags().IntVar(&channel, "channel", 0, "Channel 0-15 for channel messages (default from config)")
	cmd.Flags().StringVar(&outPort, "port", "", "Output port (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the encoded bytes without sending")
	return cmd
}

// buildMessage constructs a message of the named kind from string arguments.
// Note arguments accept names such as C#4 as well as numbers.
func buildMessage(kind string, args []string, ch midi.Channel) (midi.Message, error) {
	opt := midi.WithChannel(ch)
	need := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d arguments, got %d", kind, n, len(args))
		}
		return nil
	}

	switch kind {
	case "note_on", "note_off", "poly_key_pressure":
		// velocity may be left out of note messages
		v := midi.DefaultNoteOnVelocity
		if kind == "note_off" {
			v = midi.DefaultNoteOffVelocity
		}
		if kind == "poly_key_pressure" || len(args) != 1 {
			if err := need(2); err != nil {
				return nil, err
			}
		}
		note, err := noteArg(args[0])
		if err != nil {
			return nil, err
		}
		if len(args) == 2 {
			if v, err = intArg(args[1]); err != nil {
				return nil, err
			}
		}
		switch kind {
		case "note_on":
			return midi.NewNoteOn(note, v, opt)
		case "note_off":
			return midi.NewNoteOff(note, v, opt)
		}
		return midi.NewPolyKeyPressure(note, v, opt)
	case "control_change":
		vals, err := intArgs(kind, args, 2)
		if err != nil {
			return nil, err
		}
		return midi.NewControlChange(vals[0], vals[1], opt)
	case "program_change":
		vals, err := intArgs(kind, args, 1)
		if err != nil {
			return nil, err
		}
		return midi.NewProgramChange(vals[0], opt)
	case "channel_pressure":
		vals, err := intArgs(kind, args, 1)
		if err != nil {
			return nil, err
		}
		return midi.NewChannelPressure(vals[0], opt)
	case "pitch_bend":
		vals, err := intArgs(kind, args, 1)
		if err != nil {
			return nil, err
		}
		return midi.NewPitchBend(vals[0], opt)
	case "mtc_quarter_frame":
		vals, err := intArgs(kind, args, 2)
		if err != nil {
			return nil, err
		}
		return midi.NewMTCQuarterFrame(vals[0], vals[1])
	case "system_exclusive":
		payload, err := midi.ParseHex(strings.Join(args, " "))
		if err != nil {
			return nil, err
		}
		idLen := 1
		if len(payload) > 0 && payload[0] == 0x00 {
			idLen = 3
		}
		if len(payload) < idLen {
			return nil, fmt.Errorf("%s needs a manufacturer id", kind)
		}
		return midi.NewSystemExclusive(payload[:idLen], payload[idLen:])
	case "timing_clock":
		return midi.TimingClock{}, need(0)
	case "start":
		return midi.Start{}, need(0)
	case "continue":
		return midi.Continue{}, need(0)
	case "stop":
		return midi.Stop{}, need(0)
	}
	return nil, fmt.Errorf("unknown message type %q", kind)
}

func noteArg(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	n, err := midi.NoteNumber(s)
	return int(n), err
}

func intArg(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return n, nil
}

func intArgs(kind string, args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s takes %d arguments, got %d", kind, n, len(args))
	}
	vals := make([]int, n)
	for i, a := range args {
		v, err := intArg(a)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}
