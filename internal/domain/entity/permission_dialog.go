package entity

// EmbeddedPromptVariant selects which screen an embedded permission prompt presents.
type EmbeddedPromptVariant string

const (
	// PromptVariantNone is the classic application dialog.
	PromptVariantNone EmbeddedPromptVariant = "none"
	// PromptVariantAsk asks the user, negative answer is "not now".
	PromptVariantAsk EmbeddedPromptVariant = "ask"
	// PromptVariantOSPrompt skips the application dialog and goes to the OS prompt.
	PromptVariantOSPrompt EmbeddedPromptVariant = "os_prompt"
	// PromptVariantOSSystemSettings redirects the user to the system settings screen.
	PromptVariantOSSystemSettings EmbeddedPromptVariant = "os_system_settings"
	// PromptVariantPreviouslyGranted acknowledges an earlier grant.
	PromptVariantPreviouslyGranted EmbeddedPromptVariant = "previously_granted"
	// PromptVariantPreviouslyDenied acknowledges an earlier denial.
	PromptVariantPreviouslyDenied EmbeddedPromptVariant = "previously_denied"
	// PromptVariantAdministratorGranted explains a grant enforced by an administrator.
	PromptVariantAdministratorGranted EmbeddedPromptVariant = "administrator_granted"
	// PromptVariantAdministratorDenied explains a denial enforced by an administrator.
	PromptVariantAdministratorDenied EmbeddedPromptVariant = "administrator_denied"
)

// PromptVariants lists every variant.
func PromptVariants() []EmbeddedPromptVariant {
	return []EmbeddedPromptVariant{
		PromptVariantNone,
		PromptVariantAsk,
		PromptVariantOSPrompt,
		PromptVariantOSSystemSettings,
		PromptVariantPreviouslyGranted,
		PromptVariantPreviouslyDenied,
		PromptVariantAdministratorGranted,
		PromptVariantAdministratorDenied,
	}
}

// IsEmbedded returns true when the variant selects the embedded state machine.
// The empty string is treated as PromptVariantNone.
func (v EmbeddedPromptVariant) IsEmbedded() bool {
	return v != "" && v != PromptVariantNone
}

// IsValid reports whether v is a known variant (or empty).
func (v EmbeddedPromptVariant) IsValid() bool {
	if v == "" {
		return true
	}
	for _, known := range PromptVariants() {
		if v == known {
			return true
		}
	}
	return false
}

// IsAdministratorControlled returns true for the administrator variants.
func (v EmbeddedPromptVariant) IsAdministratorControlled() bool {
	return v == PromptVariantAdministratorGranted || v == PromptVariantAdministratorDenied
}

// DismissalCause explains why a dialog went away. Diagnostic only.
type DismissalCause string

const (
	DismissalCauseUnspecified                DismissalCause = "unspecified"
	DismissalCausePositiveButton             DismissalCause = "positive_button"
	DismissalCauseNegativeButton             DismissalCause = "negative_button"
	DismissalCauseNavigateBack               DismissalCause = "navigate_back"
	DismissalCauseTouchOutside               DismissalCause = "touch_outside"
	DismissalCauseAutodismissNoContext       DismissalCause = "autodismiss_no_context"
	DismissalCauseAutodismissNoDialogManager DismissalCause = "autodismiss_no_dialog_manager"
	DismissalCauseAutodismissOSDenied        DismissalCause = "autodismiss_os_denied"
)

// IsButton returns true for the causes the core uses when it closes the
// dialog itself after a click.
func (c DismissalCause) IsButton() bool {
	return c == DismissalCausePositiveButton || c == DismissalCauseNegativeButton
}

// DialogState is the phase of one in-flight request.
type DialogState string

const (
	DialogStateNotShowing                     DialogState = "not_showing"
	DialogStatePromptOpen                     DialogState = "prompt_open"
	DialogStatePromptPositiveClicked          DialogState = "prompt_positive_clicked"
	DialogStatePromptPositiveEphemeralClicked DialogState = "prompt_positive_ephemeral_clicked"
	DialogStatePromptNegativeClicked          DialogState = "prompt_negative_clicked"
	DialogStateRequestOSPermissionPersistent  DialogState = "request_os_permission_persistent"
	DialogStateRequestOSPermissionEphemeral   DialogState = "request_os_permission_ephemeral"
	DialogStateShowSystemPrompt               DialogState = "show_system_prompt"
	DialogStateEnded                          DialogState = "ended"
)

// IsActive returns true for states that count towards the one-active-dialog limit.
func (s DialogState) IsActive() bool {
	return s != DialogStateNotShowing && s != DialogStateEnded && s != ""
}

// IsClicked returns true for the three post-click states waiting on the dismiss callback.
func (s DialogState) IsClicked() bool {
	switch s {
	case DialogStatePromptPositiveClicked,
		DialogStatePromptPositiveEphemeralClicked,
		DialogStatePromptNegativeClicked:
		return true
	default:
		return false
	}
}

// IsRequestingOSPermission returns true while waiting on the OS permission callback.
func (s DialogState) IsRequestingOSPermission() bool {
	switch s {
	case DialogStateRequestOSPermissionPersistent,
		DialogStateRequestOSPermissionEphemeral,
		DialogStateShowSystemPrompt:
		return true
	default:
		return false
	}
}

// DialogButton identifies which dialog button was pressed.
type DialogButton string

const (
	DialogButtonPositive          DialogButton = "positive"
	DialogButtonPositiveEphemeral DialogButton = "positive_ephemeral"
	DialogButtonNegative          DialogButton = "negative"
)

// ModalScope is the modality of the consent dialog.
type ModalScope string

const (
	// ModalScopeTab blocks only the owning tab.
	ModalScopeTab ModalScope = "tab"
	// ModalScopeApp blocks the whole application window.
	ModalScopeApp ModalScope = "app"
)
