package cmd

import (
	"fmt"

	"github.com/PixPMusic/gopher-midi/internal/config"
	"github.com/PixPMusic/gopher-midi/internal/log"
	"github.com/PixPMusic/gopher-midi/internal/monitor"
	"github.com/PixPMusic/gopher-midi/internal/port"
	"github.com/PixPMusic/gopher-midi/internal/router"
	"github.com/PixPMusic/gopher-midi/midi"
	"github.com/spf13/cobra"
)

// ListenCmd parses the configured input port until interrupted, logging
// messages, applying routes and optionally serving the monitor API
func ListenCmd() *cobra.Command {
	var (
		inPort      string
		monitorAddr string
	)
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Parse messages arriving on an input port",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			termCh := term()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer log.Destroy()
			if inPort != "" {
				cfg.InPort = inPort
			}
			if monitorAddr != "" {
				cfg.MonitorAddr = monitorAddr
			}

			l, err := newListener(cfg, log.DefaultLogger)
			if err != nil {
				return err
			}
			m := port.NewManager(log.DefaultLogger)
			defer m.Close()

			if len(cfg.Routes) > 0 {
				sender, err := m.Sender(cfg.OutPort, midi.Channel(cfg.OutChannel))
				if err != nil {
					return fmt.Errorf("routes need an output port: %w", err)
				}
				l.route(sender)
			}
			if cfg.MonitorAddr != "" {
				l.serve(cfg.MonitorAddr)
				defer l.monitor.Stop()
			}

			stop, err := m.Listen(cfg.InPort, l.stream, l.handle)
			if err != nil {
				return err
			}
			<-termCh
			stop()

			st := l.stream.Stats()
			log.With(log.LogParams{
				"received": st.Received,
				"messages": st.Messages,
				"unknown":  st.Unknown,
				"skipped":  st.Skipped,
				"dropped":  st.Dropped,
			}).Info("stopped listening")
			return nil
		},
	}
	cmd.Flags().StringVar(&inPort, "port", "", "Input port (default from config)")
	cmd.Flags().StringVar(&monitorAddr, "monitor", "", "Serve the monitor API on this address (default from config)")
	return cmd
}

// listener ties a stream to its consumers
type listener struct {
	routes   []config.Route
	registry *midi.Registry
	stream   *midi.Stream
	router   *router.Router
	monitor  *monitor.Server
	history  *monitor.History
	logger   *log.Logger
}

func newListener(cfg *config.Config, logger *log.Logger) (*listener, error) {
	registry, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	return &listener{
		routes:   cfg.Routes,
		registry: registry,
		stream: midi.NewStream(midi.Channel(cfg.Channel),
			midi.WithRegistry(registry),
			midi.WithMaxBuffer(cfg.MaxBuffer)),
		history: monitor.NewHistory(cfg.HistorySize),
		logger:  logger,
	}, nil
}

func (l *listener) route(target router.Target) {
	l.router = router.New(l.routes, target, l.logger)
}

func (l *listener) serve(addr string) {
	var opts []monitor.Option
	if l.router != nil {
		opts = append(opts, monitor.WithRouteCounts(l.router.Counts))
	}
	l.monitor = monitor.NewServer(addr, l.registry, l.stream, l.history, l.logger, opts...)
	l.monitor.Start()
}

// handle is the port.Handler for every decoded message
func (l *listener) handle(portName string, msg midi.Message) {
	l.logger.With(log.LogParams{
		"port": portName,
		"kind": msg.Kind().String(),
	}).Info(msg.String())

	l.history.Add(portName, msg)
	if l.router != nil {
		l.router.Handle(portName, msg)
	}
}
