package port

import "github.com/bnema/consent/internal/domain/entity"

// PromptHarness drives the prompt surface without a person at the keyboard.
// Every method must be called from the goroutine that owns the UI loop.
type PromptHarness interface {
	OpenWindow(id string) (entity.WindowRef, error)
	CloseWindow(id string) bool
	SetBackground(scope entity.ModalScope, background bool)

	// Press and DismissByUser act on the dialog on screen.
	Press(button entity.DialogButton) error
	DismissByUser(cause entity.DismissalCause) error
	VisibleRequestID() (string, bool)

	// Settle runs all pending UI work and returns how many tasks ran.
	Settle() int
}
