// Package script runs user-supplied shell commands used as visibility
// predicates and as click, scroll and hover handlers.
package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// DefaultInterval is the polling interval used when none is given.
const DefaultInterval = 5 * time.Second

// ErrPredicateFailed is returned when a command could not be run at all.
// A command that runs and exits non-zero is a false result, not an error.
var ErrPredicateFailed = errors.New("script could not be run")

// Mode selects how a script is driven.
type Mode int

const (
	// Poll re-runs the command every Interval.
	Poll Mode = iota
	// Oneshot runs the command once per trigger.
	Oneshot
)

func (m Mode) String() string {
	switch m {
	case Oneshot:
		return "oneshot"
	default:
		return "poll"
	}
}

// Script is a parsed command with its scheduling mode.
type Script struct {
	Mode     Mode
	Interval time.Duration
	Cmd      string
}

// Parse reads "[mode:][interval:]command". The interval is either a
// number of milliseconds or a Go duration such as "2s".
func Parse(s string) (Script, error) {
	sc := Script{Mode: Poll, Interval: DefaultInterval}
	rest := strings.TrimSpace(s)

	if head, tail, ok := strings.Cut(rest, ":"); ok {
		switch head {
		case "poll":
			rest = tail
		case "oneshot":
			sc.Mode = Oneshot
			rest = tail
		}
	}
	if head, tail, ok := strings.Cut(rest, ":"); ok {
		if d, ok := parseInterval(head); ok {
			sc.Interval = d
			rest = tail
		}
	}

	sc.Cmd = strings.TrimSpace(rest)
	if sc.Cmd == "" {
		return Script{}, fmt.Errorf("script %q has no command", s)
	}
	return sc, nil
}

func parseInterval(s string) (time.Duration, bool) {
	if ms, err := strconv.Atoi(s); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond, true
	}
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d, true
	}
	return 0, false
}

// Once runs the command through sh and reports whether it exited zero.
func (s Script) Once(ctx context.Context) (bool, error) {
	_, ok, err := s.output(ctx)
	return ok, err
}

// Output runs the command and returns its trimmed stdout.
func (s Script) Output(ctx context.Context) (string, error) {
	out, ok, err := s.output(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return out, fmt.Errorf("script %q exited non-zero", s.Cmd)
	}
	return out, nil
}

func (s Script) output(ctx context.Context) (string, bool, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", s.Cmd)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	err := cmd.Run()
	out := strings.TrimSpace(stdout.String())
	if err == nil {
		return out, true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return out, false, nil
	}
	return out, false, fmt.Errorf("%w: %q: %v", ErrPredicateFailed, s.Cmd, err)
}

// Evaluate lets a Script serve as a visibility predicate.
func (s Script) Evaluate(ctx context.Context) (bool, error) { return s.Once(ctx) }

// Period is the re-evaluation interval of a polling script.
func (s Script) Period() time.Duration {
	if s.Mode == Oneshot {
		return 0
	}
	return s.Interval
}

// RunOneshot starts cmd in the background and logs its outcome.
// An empty command is ignored.
func RunOneshot(ctx context.Context, cmd string, logger *slog.Logger) {
	if strings.TrimSpace(cmd) == "" {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	sc := Script{Mode: Oneshot, Cmd: cmd}
	go func() {
		ok, err := sc.Once(ctx)
		switch {
		case err != nil:
			logger.Warn("script failed", "cmd", cmd, "error", err)
		case !ok:
			logger.Debug("script exited non-zero", "cmd", cmd)
		}
	}()
}
