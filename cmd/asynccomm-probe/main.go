// Command asynccomm-probe keeps a connection to one endpoint alive and
// reports on it.
//
// The probe starts a connection manager for the target, optionally waits for
// the first connection, and then runs until interrupted. In interactive mode
// the connection can be inspected, awaited and dropped from a prompt.
//
// Usage:
//
//	asynccomm-probe [flags]
//
// Flags:
//
//	-config string           Configuration file path (YAML)
//	-addr string             Target address host:port (overrides config)
//	-retry-interval duration Minimum spacing between connect attempts
//	-connect-timeout duration Timeout for a single connect attempt
//	-wait int                Seconds to wait for the first connection
//	-check                   Exit after -wait with status 0 if connected, 1 if not
//	-log-level string        Log level: debug, info, warn, error
//	-event-log string        Write connection events to this CBOR file
//	-metrics string          Serve Prometheus metrics on this address
//	-tls                     Use TLS on top of TCP
//	-interactive             Enable interactive command mode
//
// Examples:
//
//	# Probe a database port, waiting up to 30s for it
//	asynccomm-probe -addr db.internal:5432 -wait 30 -check
//
//	# Run from a config file with metrics and an event log
//	asynccomm-probe -config /etc/asynccomm/probe.yaml -metrics :9464 -event-log events.alog
package main

import (
	"context"
	"crypto/tls"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asynccomm/asynccomm-go/cmd/asynccomm-probe/interactive"
	"github.com/asynccomm/asynccomm-go/pkg/config"
	"github.com/asynccomm/asynccomm-go/pkg/connection"
	protolog "github.com/asynccomm/asynccomm-go/pkg/log"
	"github.com/asynccomm/asynccomm-go/pkg/metrics"
	"github.com/asynccomm/asynccomm-go/pkg/transport"
)

// Flags holds the command-line settings. Values given explicitly override
// the configuration file.
type Flags struct {
	ConfigFile     string
	Addr           string
	RetryInterval  time.Duration
	ConnectTimeout time.Duration
	WaitSecs       int
	Check          bool
	LogLevel       string
	EventLog       string
	MetricsListen  string
	TLS            bool
	Interactive    bool
}

var flags Flags

func init() {
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path (YAML)")
	flag.StringVar(&flags.Addr, "addr", "", "Target address host:port (overrides config)")
	flag.DurationVar(&flags.RetryInterval, "retry-interval", connection.DefaultRetryInterval, "Minimum spacing between connect attempts")
	flag.DurationVar(&flags.ConnectTimeout, "connect-timeout", connection.DefaultConnectTimeout, "Timeout for a single connect attempt")
	flag.IntVar(&flags.WaitSecs, "wait", 0, "Seconds to wait for the first connection")
	flag.BoolVar(&flags.Check, "check", false, "Exit after -wait with status 0 if connected, 1 if not")
	flag.StringVar(&flags.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&flags.EventLog, "event-log", "", "Write connection events to this CBOR file")
	flag.StringVar(&flags.MetricsListen, "metrics", "", "Serve Prometheus metrics on this address")
	flag.BoolVar(&flags.TLS, "tls", false, "Use TLS on top of TCP")
	flag.BoolVar(&flags.Interactive, "interactive", false, "Enable interactive command mode")
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	target, err := cfg.ToTarget()
	if err != nil {
		log.Fatalf("Invalid target: %v", err)
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	setupLogging(cfg.Log.Level)
	logger := slog.New(slog.NewTextHandler(stdLogWriter{}, &slog.HandlerOptions{Level: level}))

	log.Println("asynccomm probe")
	log.Println("===============")
	log.Printf("Target:          %s", target.Address)
	log.Printf("Retry interval:  %s", target.RetryInterval)
	log.Printf("Connect timeout: %s", target.ConnectTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Protocol event capture
	var fileLogger *protolog.FileLogger
	if cfg.Log.EventFile != "" {
		fileLogger, err = protolog.NewFileLogger(cfg.Log.EventFile)
		if err != nil {
			log.Fatalf("Failed to open event log: %v", err)
		}
		defer fileLogger.Close()
		log.Printf("Event log:       %s", cfg.Log.EventFile)
	}
	var debugEvents protolog.Logger
	if level <= slog.LevelDebug {
		debugEvents = protolog.NewSlogAdapter(logger)
	}
	var events protolog.Logger = protolog.NewMultiLogger(nilIfEmpty(fileLogger), debugEvents)

	mgrConfig := connection.Config{
		Logger:         logger,
		ProtocolLogger: events,
	}

	if cfg.Metrics.Enabled {
		m := metrics.New(logger)
		if err := m.Start(ctx, cfg.Metrics.Listen); err != nil {
			log.Fatalf("Failed to start metrics: %v", err)
		}
		defer m.Stop()
		mgrConfig.Observer = m
		log.Printf("Metrics:         http://%s/metrics", cfg.Metrics.Listen)
	}

	commConfig := transport.CommConfig{
		Logger:         logger,
		ProtocolLogger: events,
	}
	if flags.TLS {
		commConfig.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	comm := transport.NewComm(commConfig)
	defer comm.Close()

	mgr := connection.NewManager(mgrConfig)
	mgr.OnPhaseChange(func(oldPhase, newPhase connection.Phase) {
		log.Printf("[PHASE] %s -> %s", oldPhase, newPhase)
	})
	if err := mgr.Start(comm, target); err != nil {
		log.Fatalf("Failed to start connection manager: %v", err)
	}
	defer mgr.Close()

	if flags.WaitSecs > 0 {
		log.Printf("Waiting up to %ds for connection...", flags.WaitSecs)
		connected := mgr.WaitForConnection(ctx, time.Duration(flags.WaitSecs)*time.Second)
		if connected {
			log.Printf("Connected to %s", target.Address)
		} else {
			log.Printf("Not connected to %s (last error: %v)", target.Address, mgr.LastError())
		}
		if flags.Check {
			mgr.Close()
			comm.Close()
			if fileLogger != nil {
				fileLogger.Close()
			}
			if !connected {
				os.Exit(1)
			}
			return
		}
	}

	// Run interactive mode or wait for signal
	if flags.Interactive {
		ip, err := interactive.New(mgr, func() error {
			return comm.Disconnect(target.Address)
		})
		if err != nil {
			log.Fatalf("Failed to create interactive probe: %v", err)
		}
		// Redirect log output through readline to avoid interfering with input
		log.SetOutput(ip.Stdout())
		go ip.Run(ctx, cancel)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal: %v", sig)
	case <-ctx.Done():
		// Context was cancelled (e.g., by interactive quit command)
	}

	log.Println("Shutting down...")
	cancel()
	log.Printf("Attempts made: %d", mgr.Attempts())
	log.Println("Goodbye!")
}

// loadConfig reads the configuration file, if any, and applies the flags
// that were set explicitly.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if flags.ConfigFile != "" {
		loaded, err := config.Load(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Target.Address = flags.Addr
		case "retry-interval":
			cfg.Target.RetryInterval = config.Duration(flags.RetryInterval)
		case "connect-timeout":
			cfg.Target.ConnectTimeout = config.Duration(flags.ConnectTimeout)
		case "log-level":
			cfg.Log.Level = flags.LogLevel
		case "event-log":
			cfg.Log.EventFile = flags.EventLog
		case "metrics":
			cfg.Metrics.Enabled = flags.MetricsListen != ""
			cfg.Metrics.Listen = flags.MetricsListen
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(level string) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	switch level {
	case "debug":
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	case "warn", "error":
		log.SetFlags(log.Ltime)
	}
}

// stdLogWriter forwards to the current output of the standard logger, so
// slog output follows log.SetOutput.
type stdLogWriter struct{}

func (stdLogWriter) Write(p []byte) (int, error) {
	return log.Writer().Write(p)
}

// nilIfEmpty avoids wrapping a nil *FileLogger in a non-nil interface.
func nilIfEmpty(l *protolog.FileLogger) protolog.Logger {
	if l == nil {
		return nil
	}
	return l
}
