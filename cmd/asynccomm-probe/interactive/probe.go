// Package interactive provides the interactive command-line interface
// for asynccomm-probe.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/asynccomm/asynccomm-go/pkg/connection"
)

// Connection is the part of connection.Manager the probe drives.
type Connection interface {
	WaitForConnection(ctx context.Context, maxWait time.Duration) bool
	IsConnected() bool
	Phase() connection.Phase
	Attempts() uint64
	LastError() error
	Target() connection.Target
}

// Probe handles interactive mode for asynccomm-probe.
type Probe struct {
	conn Connection
	drop func() error
	rl   *readline.Instance
	out  io.Writer
}

// New creates a new interactive probe. drop closes the live connection so
// the manager has to re-establish it.
func New(conn Connection, drop func() error) (*Probe, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "probe> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("status"),
			readline.PcItem("wait"),
			readline.PcItem("drop"),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Probe{
		conn: conn,
		drop: drop,
		rl:   rl,
		out:  rl.Stdout(),
	}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (p *Probe) Stdout() io.Writer {
	return p.rl.Stdout()
}

// Run starts the interactive command loop.
func (p *Probe) Run(ctx context.Context, cancel context.CancelFunc) {
	defer p.rl.Close()

	p.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := p.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(p.out, "Exiting...")
			cancel()
			return
		}

		if !p.Execute(ctx, line) {
			cancel()
			return
		}
	}
}

// Execute runs one command line. It returns false when the user asked to quit.
func (p *Probe) Execute(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		p.printHelp()

	case "status", "s":
		p.cmdStatus()

	case "wait", "w":
		p.cmdWait(ctx, args)

	case "drop", "d":
		p.cmdDrop()

	case "quit", "exit", "q":
		fmt.Fprintln(p.out, "Exiting...")
		return false

	default:
		fmt.Fprintf(p.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (p *Probe) printHelp() {
	fmt.Fprintln(p.out, `
Probe Commands:
  status             - Show connection status
  wait <seconds>     - Block until connected or the time is up
  drop               - Close the live connection (it will be re-established)
  help               - Show this help
  quit               - Exit probe`)
}

func (p *Probe) cmdStatus() {
	target := p.conn.Target()

	fmt.Fprintln(p.out, "\nConnection Status")
	fmt.Fprintln(p.out, "-------------------------------------------")
	fmt.Fprintf(p.out, "  Target:         %s\n", target.Address)
	fmt.Fprintf(p.out, "  Retry Interval: %s\n", target.RetryInterval)
	fmt.Fprintf(p.out, "  Phase:          %s\n", p.conn.Phase())
	fmt.Fprintf(p.out, "  Connected:      %t\n", p.conn.IsConnected())
	fmt.Fprintf(p.out, "  Attempts:       %d\n", p.conn.Attempts())
	if err := p.conn.LastError(); err != nil {
		fmt.Fprintf(p.out, "  Last Error:     %v\n", err)
	}
	fmt.Fprintln(p.out)
}

func (p *Probe) cmdWait(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(p.out, "Usage: wait <seconds>")
		return
	}
	secs, err := strconv.Atoi(args[0])
	if err != nil || secs < 0 {
		fmt.Fprintf(p.out, "Invalid seconds: %s\n", args[0])
		return
	}

	start := time.Now()
	fmt.Fprintf(p.out, "Waiting up to %ds for %s...\n", secs, p.conn.Target().Address)
	if p.conn.WaitForConnection(ctx, time.Duration(secs)*time.Second) {
		fmt.Fprintf(p.out, "Connected after %s\n", time.Since(start).Round(time.Millisecond))
	} else {
		fmt.Fprintf(p.out, "Not connected after %s\n", time.Since(start).Round(time.Millisecond))
	}
}

func (p *Probe) cmdDrop() {
	if p.drop == nil {
		fmt.Fprintln(p.out, "Drop not supported")
		return
	}
	if err := p.drop(); err != nil {
		fmt.Fprintf(p.out, "Drop failed: %v\n", err)
		return
	}
	fmt.Fprintln(p.out, "Connection dropped")
}
