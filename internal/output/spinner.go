package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner runs action under a spinner titled title when stdout is a
// terminal, and directly otherwise. Cancelling ctx stops the spinner and
// returns ctx.Err(); action is expected to observe ctx itself.
func RunWithSpinner(ctx context.Context, title string, action func(context.Context) error) error {
	if !IsTTY() {
		return action(ctx)
	}

	errCh := make(chan error, 1)
	err := spinner.New().
		Type(spinner.Dots).
		Title(title).
		Context(ctx).
		Action(func() {
			errCh <- action(ctx)
		}).
		Run()

	select {
	case actionErr := <-errCh:
		return actionErr
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if err != nil {
		return fmt.Errorf("spinner: %w", err)
	}
	return nil
}
