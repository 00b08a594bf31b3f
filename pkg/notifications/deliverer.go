package notifications

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/dmitrymomot/socialkit/pkg/sanitizer"
)

// Notification text arrives from the server; it is cleaned before it becomes
// a command argument.
var (
	desktopTitle = sanitizer.Compose(
		sanitizer.StripHTML,
		sanitizer.RemoveControlChars,
		sanitizer.SingleLine,
		sanitizer.MaxLength(120),
	)
	desktopBody = sanitizer.Compose(
		sanitizer.StripHTML,
		sanitizer.RemoveControlChars,
		sanitizer.SingleLine,
		sanitizer.MaxLength(500),
	)
)

// DesktopNotifier shows OS-level notifications. RequestPermission is only
// called on explicit user request.
type DesktopNotifier interface {
	RequestPermission(ctx context.Context) (granted bool, err error)
	Show(ctx context.Context, n Notification) error
}

// SoundPlayer plays an alert for a notification.
type SoundPlayer interface {
	Play(ctx context.Context, n Notification) error
}

// NoOpDesktop never grants permission and shows nothing.
type NoOpDesktop struct{}

func (NoOpDesktop) RequestPermission(ctx context.Context) (bool, error) { return false, nil }
func (NoOpDesktop) Show(ctx context.Context, n Notification) error      { return nil }

// NoOpSound plays nothing.
type NoOpSound struct{}

func (NoOpSound) Play(ctx context.Context, n Notification) error { return nil }

// CommandDesktop shows notifications through the platform notification
// command: osascript on macOS, notify-send elsewhere. Permission is granted
// when the command is installed.
type CommandDesktop struct {
	AppName string

	// LookPath and Run default to exec.LookPath and exec.CommandContext(...).Run.
	LookPath func(file string) (string, error)
	Run      func(ctx context.Context, name string, args ...string) error
}

func (d CommandDesktop) command() string {
	if runtime.GOOS == "darwin" {
		return "osascript"
	}
	return "notify-send"
}

func (d CommandDesktop) RequestPermission(ctx context.Context) (bool, error) {
	lookPath := d.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if _, err := lookPath(d.command()); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (d CommandDesktop) Show(ctx context.Context, n Notification) error {
	run := d.Run
	if run == nil {
		run = func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		}
	}

	name := d.command()
	title, body := desktopTitle(n.Title), desktopBody(n.Message)
	var args []string
	if name == "osascript" {
		args = []string{"-e", fmt.Sprintf("display notification %q with title %q", body, title)}
	} else {
		app := d.AppName
		if app == "" {
			app = "socialkit"
		}
		args = []string{"--app-name", app, "--urgency", urgency(n.Priority), title, body}
	}

	if err := run(ctx, name, args...); err != nil {
		return errors.Join(ErrDesktopUnavailable, err)
	}
	return nil
}

func urgency(p Priority) string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityHigh, PriorityUrgent:
		return "critical"
	default:
		return "normal"
	}
}

// BellSound rings the terminal bell, twice for urgent notifications.
type BellSound struct {
	Out io.Writer // defaults to os.Stdout
}

func (b BellSound) Play(ctx context.Context, n Notification) error {
	out := b.Out
	if out == nil {
		out = os.Stdout
	}
	bell := "\a"
	if n.Priority == PriorityUrgent {
		bell = "\a\a"
	}
	_, err := io.WriteString(out, bell)
	return err
}
