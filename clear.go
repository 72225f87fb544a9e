package csvsearch

import (
	"context"
	"io"
	"os/exec"
	"runtime"
)

// ScreenClearer clears the terminal.
type ScreenClearer interface {
	Clear(ctx context.Context) error
}

// commandClearer runs the platform clear command with its output sent to w.
type commandClearer struct {
	w io.Writer
}

// NewScreenClearer returns a ScreenClearer that runs "clear", or "cls" on
// Windows, writing to w.
func NewScreenClearer(w io.Writer) ScreenClearer {
	return &commandClearer{w: w}
}

// Clear implements ScreenClearer.
func (c *commandClearer) Clear(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "clear")
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/c", "cls")
	}
	cmd.Stdout = c.w
	return cmd.Run()
}
