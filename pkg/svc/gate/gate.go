// Package gate implements the execution mode controller: every mutating
// action passes through a single decision point that applies, dry-runs, or
// interactively confirms it.
package gate

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/devantler-tech/guestctl/pkg/ui/notify"
	"golang.org/x/term"
)

// Options configures a Controller.
type Options struct {
	// DryRun logs intended actions without executing them.
	DryRun bool
	// Confirm prompts [y/N] before each action. The prompt is skipped when
	// input is not a terminal, so unattended runs never block.
	Confirm bool
	// In is the confirmation input; defaults to os.Stdin.
	In io.Reader
	// Out is the destination for prompts and action output; defaults to
	// os.Stdout.
	Out io.Writer
}

// Controller gates mutating actions behind an explicit apply/dry-run/confirm
// decision.
type Controller struct {
	dryRun  bool
	confirm bool
	reader  *bufio.Reader
	out     io.Writer
}

// New constructs a Controller.
func New(options Options) *Controller {
	if options.In == nil {
		options.In = os.Stdin
	}

	if options.Out == nil {
		options.Out = os.Stdout
	}

	confirm := options.Confirm
	if file, ok := options.In.(*os.File); ok && !term.IsTerminal(int(file.Fd())) {
		confirm = false
	}

	return &Controller{
		dryRun:  options.DryRun,
		confirm: confirm,
		reader:  bufio.NewReader(options.In),
		out:     options.Out,
	}
}

// Run gates a single mutating action described in imperative form, e.g.
// `disable account "Guest"`. It returns whether the action was actually
// executed: false in dry-run mode, false when the operator declines the
// confirmation prompt, and false when the action itself fails. Declining is
// not an error; the action is reported as skipped and the run continues.
func (c *Controller) Run(description string, action func() error) (bool, error) {
	if c.dryRun {
		notify.Warningf(c.out, "dry-run: would %s", description)

		return false, nil
	}

	if c.confirm && !c.prompt(description) {
		notify.Activityf(c.out, "skipped: %s", description)

		return false, nil
	}

	err := action()
	if err != nil {
		return false, err
	}

	return true, nil
}

// prompt asks the operator to approve the action. Anything other than an
// explicit yes declines.
func (c *Controller) prompt(description string) bool {
	_, _ = fmt.Fprintf(c.out, "%s? [y/N]: ", description)

	line, err := c.reader.ReadString('\n')
	if err != nil {
		return false
	}

	input := strings.TrimSpace(strings.ToLower(line))

	return input == "y" || input == "yes"
}
