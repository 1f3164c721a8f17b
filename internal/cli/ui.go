package cli

import (
	"fmt"

	"github.com/Makepad-fr/tasks/internal/tui"
)

func runUI(a *app) error {
	s, err := a.openStore(true)
	if err != nil {
		return err
	}
	if err := tui.Run(s); err != nil {
		return failure(fmt.Errorf("tui: %w", err))
	}
	return nil
}
