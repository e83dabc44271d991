package uploader

import (
	"github.com/fatih/color"

	"github.com/imagekit-tools/cli/pkg/model"
)

// Notifier surfaces transient user-facing notices. Every error kind ends up
// here rather than propagating to the caller.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// consoleNotifier prints themed notices to the terminal.
type consoleNotifier struct {
	success *color.Color
	failure *color.Color
}

// NewConsoleNotifier returns a Notifier styled for the given theme.
func NewConsoleNotifier(theme model.Theme) Notifier {
	if theme == model.ThemeLight {
		return &consoleNotifier{
			success: color.New(color.FgGreen),
			failure: color.New(color.FgRed),
		}
	}
	return &consoleNotifier{
		success: color.New(color.FgHiGreen, color.Bold),
		failure: color.New(color.FgHiRed, color.Bold),
	}
}

func (n *consoleNotifier) Success(msg string) {
	n.success.Println(msg)
}

func (n *consoleNotifier) Failure(msg string) {
	n.failure.Println(msg)
}
