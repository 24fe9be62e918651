package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"gestured/internal/gesture"
	"gestured/internal/ipc"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the gesture daemon",
	Long: `Reads the touchpad and keyboards, recognizes gestures and runs their bound
commands. Requires read access to the input devices (run as root or add the
user to the 'input' group).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := newConfigSource(cmd)
		if err != nil {
			return err
		}
		cfg, err := src.load()
		if err != nil {
			return err
		}
		logger := loggerFor(cfg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("starting gestured", "version", version, "config", src.path)
		if err := runGestured(ctx, src, cfg, logger); err != nil {
			logger.Error("gestured stopped", "error", err)
			return err
		}
		logger.Info("gestured stopped")
		return nil
	},
}

func init() {
	runCmd.Flags().String("touchpad", "", "Touchpad input device (overrides touchpad.device)")
	runCmd.Flags().StringSlice("keyboard", nil, "Keyboard input devices (overrides keyboards.devices)")
	runCmd.Flags().String("ipc-socket", "", "Unix domain socket path for control events")
	runCmd.Flags().String("http-listen", "", "Listen address for the HUD and metrics endpoints")
	rootCmd.AddCommand(runCmd)
}

// runGestured wires the devices, engine and servers and blocks until ctx is
// cancelled or one of them fails.
func runGestured(ctx context.Context, src *configSource, cfg Config, logger *slog.Logger) error {
	pad, err := os.Open(ExpandPath(cfg.Touchpad.Device))
	if err != nil {
		return fmt.Errorf("open touchpad %s (run as root or add user to 'input' group): %w", cfg.Touchpad.Device, err)
	}
	defer pad.Close()

	xr, yr, err := probeAxes(pad)
	if err != nil {
		return err
	}

	keyboards, err := openDevices(cfg.Keyboards.Devices)
	if err != nil {
		return err
	}
	defer closeAll(keyboards)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := newMetrics(reg)

	var hub *Hub
	if cfg.HUD.Enabled {
		hub = NewHub(logger.With("component", "hud"), HubConfig{})
	}

	exec := newCommandExecutor(cfg.Commands(), m, logger.With("component", "executor"))

	var slot gesture.Slot
	slot.Store(gesture.New(gesture.Config{
		Settings:       cfg.EngineSettings(),
		Executor:       exec,
		Feedback:       newHUDFeedback(hub, logger),
		Logger:         logger.With("component", "engine"),
		TypingCooldown: cfg.TypingCooldown(),
	}))
	// Producers see a nil engine once teardown starts.
	defer slot.Clear()

	rl := newReloader(src, cfg, &slot, exec, logger)

	d := &daemon{
		logger:  logger,
		slot:    &slot,
		exec:    exec,
		metrics: m,
		decoder: newMTDecoder(xr, yr, cfg.Touchpad.SizeScale),
		clock:   monotonicClock(),
		reload:  rl.reload,
	}

	padEvents := make(chan inputEvent, 256)
	keyEvents := make(chan inputEvent, 64)
	control := make(chan ipc.Event, 16)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return readInputEvents(ctx, pad, padEvents) })
	if len(keyboards) > 0 {
		g.Go(func() error { return readKeyboardEvents(ctx, keyboards, keyEvents) })
	}
	g.Go(func() error { return ipc.Serve(ctx, ExpandPath(cfg.IPC.SocketPath), control, logger) })

	if cfg.HUD.Enabled || cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		if hub != nil {
			mux.Handle(cfg.HUD.Path, hudHandler(hub, logger))
			g.Go(func() error {
				hub.Run(ctx)
				return nil
			})
		}
		if cfg.Metrics.Enabled {
			mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		}
		g.Go(func() error { return runHTTPServer(ctx, cfg.HTTP.Listen, mux, logger) })
	}

	if src.watchable() {
		g.Go(func() error { return watchConfig(ctx, src.path, rl.reload, logger) })
	}

	g.Go(func() error { return d.run(ctx, padEvents, keyEvents, control) })

	logger.Info("listening",
		"touchpad", cfg.Touchpad.Device,
		"keyboards", len(keyboards),
		"ipc", cfg.IPC.SocketPath,
		"http", cfg.HTTP.Listen,
		"x_range", fmt.Sprintf("%d..%d", xr.min, xr.max),
		"y_range", fmt.Sprintf("%d..%d", yr.min, yr.max))

	return g.Wait()
}
