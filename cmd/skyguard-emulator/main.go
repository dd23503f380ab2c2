// Command skyguard-emulator runs the SkyGuard wallet firmware on a desktop.
//
// The emulator listens for one host at a time on TCP, renders the device
// screen as text and takes the two physical buttons from an interactive
// console or from a headless button script.
//
// Usage:
//
//	skyguard-emulator [flags]
//
// Flags:
//
//	-config string        YAML configuration file
//	-address string       Listen address (default "127.0.0.1:21325")
//	-storage string       Credential storage file (default "skyguard-storage.json")
//	-protocol-log string  Write protocol events to a .glog file
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-tick duration        Countdown tick interval (default 1s)
//	-debug-link           Accept DebugLink messages
//	-interactive          Read buttons from the console (default true)
//	-buttons string       Headless button script, e.g. "y,y,n"
//	-label string         Device label for a fresh storage file
//	-mdns                 Advertise the host port over mDNS
//	-mdns-interface       Network interface for mDNS (default: all)
//
// Examples:
//
//	# Interactive emulator with debug link for automated host tests
//	skyguard-emulator -debug-link -protocol-log session.glog
//
//	# Headless run confirming the first two prompts and denying the third
//	skyguard-emulator -interactive=false -buttons y,y,n
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/skyguard-wallet/skyguard-go/cmd/skyguard-emulator/interactive"
	"github.com/skyguard-wallet/skyguard-go/pkg/device"
	"github.com/skyguard-wallet/skyguard-go/pkg/discovery"
	"github.com/skyguard-wallet/skyguard-go/pkg/display"
	"github.com/skyguard-wallet/skyguard-go/pkg/fsm"
	"github.com/skyguard-wallet/skyguard-go/pkg/input"
	"github.com/skyguard-wallet/skyguard-go/pkg/lockout"
	"github.com/skyguard-wallet/skyguard-go/pkg/log"
	"github.com/skyguard-wallet/skyguard-go/pkg/protect"
	"github.com/skyguard-wallet/skyguard-go/pkg/session"
	"github.com/skyguard-wallet/skyguard-go/pkg/storage"
	"github.com/skyguard-wallet/skyguard-go/pkg/transport"
	"github.com/skyguard-wallet/skyguard-go/pkg/version"
	"github.com/skyguard-wallet/skyguard-go/pkg/wallet"
)

var config Config

func init() {
	flag.StringVar(&config.ConfigFile, "config", "", "YAML configuration file")
	flag.StringVar(&config.Address, "address", transport.DefaultAddress, "Listen address")
	flag.StringVar(&config.StoragePath, "storage", "skyguard-storage.json", "Credential storage file")
	flag.StringVar(&config.ProtocolLog, "protocol-log", "", "Write protocol events to a .glog file")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.DurationVar(&config.TickInterval, "tick", input.DefaultTickInterval, "Countdown tick interval")
	flag.BoolVar(&config.DebugLink, "debug-link", false, "Accept DebugLink messages")
	flag.BoolVar(&config.Interactive, "interactive", true, "Read buttons from the console")
	flag.StringVar(&config.Buttons, "buttons", "", "Headless button script, e.g. \"y,y,n\"")
	flag.StringVar(&config.Label, "label", "", "Device label for a fresh storage file")
	flag.BoolVar(&config.MDNS.Enabled, "mdns", false, "Advertise the host port over mDNS")
	flag.StringVar(&config.MDNS.Interface, "mdns-interface", "", "Network interface for mDNS (default: all)")
}

func main() {
	flag.Parse()

	if config.ConfigFile != "" {
		if err := loadConfigFile(config.ConfigFile, &config); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	applyDefaults(&config)
	if err := validateConfig(&config); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cancel); err != nil {
		fmt.Fprintf(os.Stderr, "skyguard-emulator: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cancel context.CancelFunc) error {
	level, _ := parseLevel(config.LogLevel)

	store, err := storage.NewFileStore(config.StoragePath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	if config.Label != "" && store.Label() == "" {
		if err := store.SetLabel(config.Label); err != nil {
			return fmt.Errorf("set label: %w", err)
		}
	}

	buttons := make(chan input.Button, 4)
	bridge := newHostBridge()

	var (
		out     io.Writer = os.Stdout
		console *interactive.Console
		dev     *device.Device
	)
	if config.Interactive {
		console, err = interactive.New(buttons, func() []string {
			return statusLines(store, bridge, dev)
		})
		if err != nil {
			return err
		}
		out = console.Stdout()
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

	eventLog, closeLog, err := setupEventLog(logger, level, store.DeviceID())
	if err != nil {
		return err
	}
	defer closeLog()

	var screen display.Display = display.NewConsole(out, store.Label)
	if config.Buttons != "" {
		presses, _ := parseButtons(config.Buttons)
		screen = newScriptedButtons(screen, presses, buttons)
	}

	src := input.NewMux(bridge.Messages(), buttons, input.MuxConfig{TickInterval: config.TickInterval})
	defer src.Close()

	sess := session.New()
	gates := protect.New(protect.Config{
		Logger:    logger,
		EventLog:  eventLog,
		DebugLink: config.DebugLink,
	}, protect.Deps{
		Source:  src,
		Sender:  bridge,
		Display: screen,
		Store:   store,
		Session: sess,
		Halt: func(ctx context.Context) {
			logger.Error("too many wrong PINs: storage wiped, waiting for shutdown")
			<-ctx.Done()
		},
	})
	switch {
	case gates.DebugLinkEnabled():
		logger.Warn("debug link enabled: the host can answer button prompts")
	case config.DebugLink:
		logger.Warn("debug link requested but this is a production build; ignoring")
	}

	fsmConfig := fsm.DefaultConfig()
	fsmConfig.Logger = logger
	fsmConfig.EventLog = eventLog
	dispatcher := fsm.New(fsmConfig, fsm.Deps{
		Sender:  bridge,
		Gates:   gates,
		Store:   store,
		Session: sess,
		Signer:  wallet.New(),
	})

	server, err := transport.NewServer(transport.ServerConfig{
		Address: config.Address,
		Logger:  eventLog,
		OnLink:  bridge.serve,
		OnError: func(err error) {
			logger.Warn("host link error", "error", err)
		},
	})
	if err != nil {
		return err
	}
	if err := server.Start(ctx); err != nil {
		return err
	}
	defer server.Stop()
	logger.Info("listening for host", "address", server.Addr().String(), "firmware", version.Current)

	var handler device.Handler = dispatcher
	if config.MDNS.Enabled {
		ann, err := startAnnouncer(ctx, server.Addr(), store, logger)
		if err != nil {
			return err
		}
		defer ann.Stop()
		handler = ann.Wrap(dispatcher)
	}

	dev = device.New(device.Config{Logger: logger, EventLog: eventLog}, device.Deps{
		Source:  src,
		Handler: handler,
		Aborts:  gates,
		Display: gates.Display(),
	})

	if console != nil {
		go console.Run(ctx, cancel)
	}

	err = dev.Run(ctx)
	switch {
	case errors.Is(err, protect.ErrHalted):
		return err
	case err != nil && ctx.Err() == nil:
		return err
	}
	logger.Info("shutting down")
	return nil
}

func setupEventLog(logger *slog.Logger, level slog.Level, deviceID string) (log.Logger, func(), error) {
	var file log.Logger
	closeLog := func() {}

	if config.ProtocolLog != "" {
		fl, err := log.NewFileLogger(config.ProtocolLog, log.WithDeviceID(deviceID), log.WithGateSync())
		if err != nil {
			return nil, nil, fmt.Errorf("open protocol log: %w", err)
		}
		file = fl
		closeLog = func() {
			if err := fl.Err(); err != nil {
				logger.Warn("protocol log write failed", "error", err, "written", fl.Written())
			}
			fl.Close()
		}
	}
	var console log.Logger
	if level <= slog.LevelDebug {
		console = log.NewSlogAdapter(logger)
	}

	multi := log.NewMultiLogger(file, console)
	if multi.Len() == 0 {
		return nil, closeLog, nil
	}
	return multi, closeLog, nil
}

func startAnnouncer(ctx context.Context, addr net.Addr, store *storage.Store, logger *slog.Logger) (*announcer, error) {
	advConfig := discovery.DefaultAdvertiserConfig()
	advConfig.Interface = config.MDNS.Interface
	adv, err := discovery.NewMDNSAdvertiser(advConfig)
	if err != nil {
		return nil, err
	}

	port := uint16(discovery.DefaultPort)
	if tcp, ok := addr.(*net.TCPAddr); ok {
		port = uint16(tcp.Port)
	}

	ann := newAnnouncer(adv, store, port, logger)
	if err := ann.Start(ctx); err != nil {
		return nil, fmt.Errorf("mDNS: %w", err)
	}
	logger.Info("advertising over mDNS", "service", discovery.ServiceType, "port", port)
	return ann, nil
}

func statusLines(store *storage.Store, bridge *hostBridge, dev *device.Device) []string {
	state := device.StateIdle
	if dev != nil {
		state = dev.State()
	}
	label := store.Label()
	if label == "" {
		label = "(none)"
	}
	return []string{
		fmt.Sprintf("  Device state:   %s", state),
		fmt.Sprintf("  Host connected: %t", bridge.Connected()),
		fmt.Sprintf("  Label:          %s", label),
		fmt.Sprintf("  Device ID:      %s", store.DeviceID()),
		fmt.Sprintf("  Initialized:    %t", store.HasMnemonic()),
		fmt.Sprintf("  PIN set:        %t", store.HasPin()),
		fmt.Sprintf("  Wrong PINs:     %d", store.PinFails()),
		fmt.Sprintf("  Attempts left:  %d", lockout.Remaining(store.PinFails())),
	}
}
