// Package notify renders typed, symbol-prefixed console messages.
//
// Every line guestctl prints goes through this package so that the output
// contract stays in one place: scripts parse these lines, so symbols and
// phrasing must remain stable.
package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/devantler-tech/guestctl/pkg/ui/timer"
	fcolor "github.com/fatih/color"
)

// MessageType selects the styling (color and symbol) of a message.
type MessageType int

const (
	// ErrorType is a failure message (red, ✗).
	ErrorType MessageType = iota
	// WarningType is a warning message (yellow, ⚠).
	WarningType
	// ActivityType is a progress/action message (default color, ►).
	ActivityType
	// SuccessType is a completion message (green, ✔).
	SuccessType
	// InfoType is an informational report line (blue, ℹ).
	InfoType
)

// Message is a single console notification.
type Message struct {
	// Type determines color and symbol.
	Type MessageType
	// Content is the message text, optionally a format string for Args.
	Content string
	// Args are format arguments applied to Content when present.
	Args []any
	// Timer, when set on a SuccessType message, appends a timing block.
	Timer timer.Timer
	// Writer is the destination; os.Stdout when nil.
	Writer io.Writer
}

// Errorf writes an error message.
func Errorf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: ErrorType, Content: format, Args: args, Writer: writer})
}

// Warningf writes a warning message.
func Warningf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: WarningType, Content: format, Args: args, Writer: writer})
}

// Activityf writes an activity message.
func Activityf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: ActivityType, Content: format, Args: args, Writer: writer})
}

// Successf writes a success message.
func Successf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: SuccessType, Content: format, Args: args, Writer: writer})
}

// SuccessWithTimerf writes a success message followed by timing information.
func SuccessWithTimerf(writer io.Writer, tmr timer.Timer, format string, args ...any) {
	WriteMessage(Message{Type: SuccessType, Content: format, Args: args, Timer: tmr, Writer: writer})
}

// Infof writes an informational report line.
func Infof(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: InfoType, Content: format, Args: args, Writer: writer})
}

// WriteMessage writes a message according to its configuration. Prefer the
// convenience functions above for the common cases.
func WriteMessage(msg Message) {
	if msg.Writer == nil {
		msg.Writer = os.Stdout
	}

	content := msg.Content
	if len(msg.Args) > 0 {
		content = fmt.Sprintf(msg.Content, msg.Args...)
	}

	style := styleFor(msg.Type)

	_, err := style.color.Fprintf(msg.Writer, "%s%s\n", style.symbol, content)
	handlePrintError(err)

	if msg.Type == SuccessType && msg.Timer != nil {
		total, stage := msg.Timer.GetTiming()

		_, err = style.color.Fprintf(msg.Writer, "⏲ stage: %s\n", stage.String())
		handlePrintError(err)
		_, err = style.color.Fprintf(msg.Writer, "  total: %s\n", total.String())
		handlePrintError(err)
	}
}

type messageStyle struct {
	symbol string
	color  *fcolor.Color
}

func styleFor(msgType MessageType) messageStyle {
	switch msgType {
	case ErrorType:
		return messageStyle{symbol: "✗ ", color: fcolor.New(fcolor.FgRed)}
	case WarningType:
		return messageStyle{symbol: "⚠ ", color: fcolor.New(fcolor.FgYellow)}
	case ActivityType:
		return messageStyle{symbol: "► ", color: fcolor.New(fcolor.Reset)}
	case SuccessType:
		return messageStyle{symbol: "✔ ", color: fcolor.New(fcolor.FgGreen)}
	case InfoType:
		return messageStyle{symbol: "ℹ ", color: fcolor.New(fcolor.FgBlue)}
	default:
		return messageStyle{symbol: "", color: fcolor.New(fcolor.Reset)}
	}
}

// handlePrintError reports print failures on stderr instead of returning them;
// notification output must never abort a run.
func handlePrintError(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "notify: failed to print message: %v\n", err)
	}
}
