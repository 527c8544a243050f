package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/medreport/internal/client/display"
)

// Consent sets the HIPAA consent box: "on"/"off", or a toggle with no argument.
func (a *App) Consent(_ context.Context, arg string) error {
	switch strings.ToLower(arg) {
	case "":
		a.workflow.SetConsent(!a.workflow.Consent())
	case "on", "yes", "y", "true":
		a.workflow.SetConsent(true)
	case "off", "no", "n", "false":
		a.workflow.SetConsent(false)
	default:
		fmt.Fprintln(a.out, "Usage: consent [on|off]")
		return nil
	}

	if a.workflow.Consent() {
		fmt.Fprintln(a.out, "[x] Consent given.")
	} else {
		fmt.Fprintln(a.out, "[ ] Consent withdrawn.")
	}
	return nil
}

// Select chooses path through the picker.
func (a *App) Select(ctx context.Context, path string) error {
	if err := a.workflow.Pick(ctx, path); err != nil {
		return err
	}
	display.Uploader(a.out, display.ViewOf(a.workflow))
	return nil
}

// Drop drags path over the drop zone and releases it there.
func (a *App) Drop(ctx context.Context, path string) error {
	a.workflow.Drag(true)
	if err := a.workflow.Drop(ctx, path); err != nil {
		return err
	}
	display.Uploader(a.out, display.ViewOf(a.workflow))
	return nil
}

// Upload sends the selected report. The summary panel prints itself when
// the summary arrives.
func (a *App) Upload(ctx context.Context) error {
	_, err := a.workflow.Upload(ctx)
	if errors.Is(err, ErrBusy) {
		fmt.Fprintln(a.out, "An upload is already in progress.")
	}
	return err
}

func (a *App) Summary(context.Context) error {
	return a.panel.Render(a.out)
}

// Save writes the summary HTML to path, or into the download directory.
func (a *App) Save(_ context.Context, path string) error {
	written, err := a.panel.Save(path)
	if err != nil {
		if errors.Is(err, display.ErrNoSummary) {
			a.Error("No summary yet. Upload a report first.")
		} else {
			a.Error(fmt.Sprintf("Could not save the summary: %v", err))
		}
		return err
	}
	a.Success("Summary saved to " + written)
	return nil
}
