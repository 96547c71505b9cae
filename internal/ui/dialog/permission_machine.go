package dialog

import (
	"errors"
	"fmt"

	"github.com/bnema/consent/internal/domain/entity"
)

// errInvalidTransition marks a (state, event) pair the dialog contract forbids.
var errInvalidTransition = errors.New("invalid permission dialog transition")

type dialogEventKind int

const (
	eventShow dialogEventKind = iota
	eventButtonClicked
	eventDialogDismissed
	eventOSPermissionResult
	eventForcedDismissal
	eventContextInvalidated
	eventSurfaceResumed
	eventUpdate
)

func (k dialogEventKind) String() string {
	switch k {
	case eventShow:
		return "show"
	case eventButtonClicked:
		return "button_clicked"
	case eventDialogDismissed:
		return "dialog_dismissed"
	case eventOSPermissionResult:
		return "os_permission_result"
	case eventForcedDismissal:
		return "forced_dismissal"
	case eventContextInvalidated:
		return "context_invalidated"
	case eventSurfaceResumed:
		return "surface_resumed"
	case eventUpdate:
		return "update"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// dialogEvent is one input to the state machine. Only the fields relevant to
// kind are set.
type dialogEvent struct {
	kind    dialogEventKind
	button  entity.DialogButton
	cause   entity.DismissalCause
	granted bool
	variant entity.EmbeddedPromptVariant
}

type effectKind int

const (
	effectPresentDialog effectKind = iota
	effectUpdateDialog
	effectDismissDialog
	effectRequestOSPermission
	effectAbandonOSPermission
	effectOpenSettings
	effectNotifyResumed
	effectFinish
)

type effect struct {
	kind    effectKind
	cause   entity.DismissalCause // effectDismissDialog
	outcome outcome               // effectFinish
}

type outcomeKind int

const (
	outcomeAccept outcomeKind = iota
	outcomeAcceptThisTime
	outcomeDeny
	outcomeDismiss
	outcomeAcknowledge
	outcomeSystemResolved
	outcomeForced
)

// outcome is how a request ended, before it is turned into delegate calls.
type outcome struct {
	kind    outcomeKind
	cause   entity.DismissalCause
	granted bool // outcomeSystemResolved
}

func (o outcome) decision() entity.PermissionDecision {
	switch o.kind {
	case outcomeAccept, outcomeAcceptThisTime:
		return entity.PermissionAllow
	case outcomeDeny:
		return entity.PermissionBlock
	case outcomeSystemResolved:
		if o.granted {
			return entity.PermissionAllow
		}
		return entity.PermissionDefault
	default:
		return entity.PermissionDefault
	}
}

func (o outcome) String() string {
	switch o.kind {
	case outcomeAccept:
		return "accept"
	case outcomeAcceptThisTime:
		return "accept_this_time"
	case outcomeDeny:
		return "deny"
	case outcomeDismiss:
		return "dismiss"
	case outcomeAcknowledge:
		return "acknowledge"
	case outcomeSystemResolved:
		return "system_resolved"
	case outcomeForced:
		return "forced"
	default:
		return "unknown"
	}
}

func dismissedWith(cause entity.DismissalCause) outcome {
	return outcome{kind: outcomeDismiss, cause: cause}
}

// buttonAction is what a button does once the application dialog is gone.
type buttonAction int

const (
	actionRequestPersistent buttonAction = iota
	actionRequestEphemeral
	actionDeny
	actionAcknowledge
	actionOpenSettings
)

// variantStrategy is the per-variant behaviour of the three buttons.
type variantStrategy struct {
	skipsDialog       bool
	positive          buttonAction
	positiveEphemeral buttonAction
	negative          buttonAction
}

var variantStrategies = map[entity.EmbeddedPromptVariant]variantStrategy{
	entity.PromptVariantNone: {
		positive:          actionRequestPersistent,
		positiveEphemeral: actionRequestEphemeral,
		negative:          actionDeny,
	},
	entity.PromptVariantAsk: {
		positive:          actionRequestPersistent,
		positiveEphemeral: actionRequestEphemeral,
		negative:          actionAcknowledge,
	},
	entity.PromptVariantOSPrompt: {
		skipsDialog:       true,
		positive:          actionRequestPersistent,
		positiveEphemeral: actionRequestEphemeral,
		negative:          actionAcknowledge,
	},
	entity.PromptVariantOSSystemSettings: {
		positive:          actionOpenSettings,
		positiveEphemeral: actionOpenSettings,
		negative:          actionAcknowledge,
	},
	entity.PromptVariantPreviouslyGranted: {
		positive:          actionAcknowledge,
		positiveEphemeral: actionAcknowledge,
		negative:          actionDeny,
	},
	entity.PromptVariantPreviouslyDenied: {
		positive:          actionRequestEphemeral,
		positiveEphemeral: actionRequestEphemeral,
		negative:          actionAcknowledge,
	},
	entity.PromptVariantAdministratorGranted: {
		positive:          actionAcknowledge,
		positiveEphemeral: actionAcknowledge,
		negative:          actionAcknowledge,
	},
	entity.PromptVariantAdministratorDenied: {
		positive:          actionAcknowledge,
		positiveEphemeral: actionAcknowledge,
		negative:          actionAcknowledge,
	},
}

func strategyFor(variant entity.EmbeddedPromptVariant) variantStrategy {
	if s, ok := variantStrategies[variant]; ok {
		return s
	}
	return variantStrategies[entity.PromptVariantNone]
}

// machine is the state of one request's dialog. The base and embedded
// machines only differ in the embedded flag and the variant.
type machine struct {
	state              entity.DialogState
	variant            entity.EmbeddedPromptVariant
	embedded           bool
	ephemeralRequested bool
}

func newMachine(variant entity.EmbeddedPromptVariant, ephemeralRequested bool) machine {
	if variant == "" {
		variant = entity.PromptVariantNone
	}
	return machine{
		state:              entity.DialogStateNotShowing,
		variant:            variant,
		embedded:           variant.IsEmbedded(),
		ephemeralRequested: ephemeralRequested,
	}
}

func (m machine) offersEphemeral() bool {
	return m.ephemeralRequested && variantOffersEphemeral(m.variant)
}

// variantOffersEphemeral reports whether the screen for variant has an
// "allow this time" button next to the regular allow.
func variantOffersEphemeral(variant entity.EmbeddedPromptVariant) bool {
	switch variant {
	case "", entity.PromptVariantNone, entity.PromptVariantAsk, entity.PromptVariantOSPrompt:
		return true
	default:
		return false
	}
}

// transitionInput is an event plus the facts the reducer may not look up itself.
type transitionInput struct {
	event        dialogEvent
	contextValid bool
}

func invalidTransition(m machine, ev dialogEvent) error {
	return fmt.Errorf("%w: %s in state %s", errInvalidTransition, ev.kind, m.state)
}

// reduce is the transition table. It never touches collaborators: the caller
// runs the returned effects in order.
func reduce(m machine, in transitionInput) (machine, []effect, error) {
	ev := in.event

	if m.state == entity.DialogStateEnded {
		// Late callbacks after the end are expected and dropped.
		return m, nil, nil
	}

	switch ev.kind {
	case eventForcedDismissal:
		return endWith(m, outcome{kind: outcomeForced, cause: entity.DismissalCauseUnspecified}, entity.DismissalCauseUnspecified)
	case eventContextInvalidated:
		cause := entity.DismissalCauseAutodismissNoContext
		return endWith(m, dismissedWith(cause), cause)
	case eventSurfaceResumed:
		return reduceSurfaceResumed(m)
	case eventUpdate:
		return reduceUpdate(m, ev)
	}

	switch m.state {
	case entity.DialogStateNotShowing:
		if ev.kind != eventShow {
			return m, nil, invalidTransition(m, ev)
		}
		if !in.contextValid {
			return endWith(m, dismissedWith(entity.DismissalCauseAutodismissNoContext), "")
		}
		if strategyFor(m.variant).skipsDialog {
			m.state = entity.DialogStateShowSystemPrompt
			return m, []effect{{kind: effectRequestOSPermission}}, nil
		}
		m.state = entity.DialogStatePromptOpen
		return m, []effect{{kind: effectAbandonOSPermission}, {kind: effectPresentDialog}}, nil

	case entity.DialogStatePromptOpen:
		switch ev.kind {
		case eventButtonClicked:
			return reduceClick(m, ev)
		case eventDialogDismissed:
			return endWith(m, dismissedWith(classifyDismissal(ev.cause)), "")
		}
		return m, nil, invalidTransition(m, ev)

	case entity.DialogStatePromptPositiveClicked,
		entity.DialogStatePromptPositiveEphemeralClicked,
		entity.DialogStatePromptNegativeClicked:
		if ev.kind != eventDialogDismissed {
			return m, nil, invalidTransition(m, ev)
		}
		if !in.contextValid {
			return endWith(m, dismissedWith(entity.DismissalCauseAutodismissNoContext), "")
		}
		return reducePostDismiss(m)

	case entity.DialogStateRequestOSPermissionPersistent,
		entity.DialogStateRequestOSPermissionEphemeral,
		entity.DialogStateShowSystemPrompt:
		if ev.kind != eventOSPermissionResult {
			return m, nil, invalidTransition(m, ev)
		}
		if !in.contextValid {
			return endWith(m, dismissedWith(entity.DismissalCauseAutodismissNoContext), "")
		}
		return reduceOSResult(m, ev.granted)
	}

	return m, nil, invalidTransition(m, ev)
}

// endWith moves to ENDED. closeCause, when set and the dialog is on screen,
// also closes the dialog.
func endWith(m machine, o outcome, closeCause entity.DismissalCause) (machine, []effect, error) {
	var effects []effect
	if closeCause != "" && m.state == entity.DialogStatePromptOpen {
		effects = append(effects, effect{kind: effectDismissDialog, cause: closeCause})
	}
	m.state = entity.DialogStateEnded
	effects = append(effects, effect{kind: effectFinish, outcome: o})
	return m, effects, nil
}

func reduceClick(m machine, ev dialogEvent) (machine, []effect, error) {
	switch ev.button {
	case entity.DialogButtonPositive:
		m.state = entity.DialogStatePromptPositiveClicked
		return m, []effect{{kind: effectDismissDialog, cause: entity.DismissalCausePositiveButton}}, nil
	case entity.DialogButtonPositiveEphemeral:
		if !m.offersEphemeral() {
			return m, nil, invalidTransition(m, ev)
		}
		m.state = entity.DialogStatePromptPositiveEphemeralClicked
		return m, []effect{{kind: effectDismissDialog, cause: entity.DismissalCausePositiveButton}}, nil
	case entity.DialogButtonNegative:
		m.state = entity.DialogStatePromptNegativeClicked
		return m, []effect{{kind: effectDismissDialog, cause: entity.DismissalCauseNegativeButton}}, nil
	}
	return m, nil, invalidTransition(m, ev)
}

func reducePostDismiss(m machine) (machine, []effect, error) {
	strategy := strategyFor(m.variant)

	var action buttonAction
	cause := entity.DismissalCausePositiveButton
	switch m.state {
	case entity.DialogStatePromptPositiveClicked:
		action = strategy.positive
	case entity.DialogStatePromptPositiveEphemeralClicked:
		action = strategy.positiveEphemeral
	default:
		action = strategy.negative
		cause = entity.DismissalCauseNegativeButton
	}

	switch action {
	case actionRequestPersistent:
		m.state = entity.DialogStateRequestOSPermissionPersistent
		return m, []effect{{kind: effectRequestOSPermission}}, nil
	case actionRequestEphemeral:
		m.state = entity.DialogStateRequestOSPermissionEphemeral
		return m, []effect{{kind: effectRequestOSPermission}}, nil
	case actionDeny:
		return endWith(m, outcome{kind: outcomeDeny, cause: cause}, "")
	case actionOpenSettings:
		m.state = entity.DialogStateEnded
		return m, []effect{
			{kind: effectOpenSettings},
			{kind: effectFinish, outcome: outcome{kind: outcomeAcknowledge, cause: cause}},
		}, nil
	default:
		return endWith(m, outcome{kind: outcomeAcknowledge, cause: cause}, "")
	}
}

func reduceOSResult(m machine, granted bool) (machine, []effect, error) {
	if m.state == entity.DialogStateShowSystemPrompt {
		cause := entity.DismissalCauseUnspecified
		if !granted {
			cause = entity.DismissalCauseAutodismissOSDenied
		}
		return endWith(m, outcome{kind: outcomeSystemResolved, cause: cause, granted: granted}, "")
	}

	if !granted {
		return endWith(m, dismissedWith(entity.DismissalCauseAutodismissOSDenied), "")
	}
	if m.state == entity.DialogStateRequestOSPermissionEphemeral {
		return endWith(m, outcome{kind: outcomeAcceptThisTime, cause: entity.DismissalCausePositiveButton}, "")
	}
	return endWith(m, outcome{kind: outcomeAccept, cause: entity.DismissalCausePositiveButton}, "")
}

func reduceSurfaceResumed(m machine) (machine, []effect, error) {
	if !m.embedded || !m.state.IsActive() {
		return m, nil, nil
	}
	effects := []effect{{kind: effectNotifyResumed}}
	if m.state == entity.DialogStatePromptOpen {
		effects = append(effects, effect{kind: effectUpdateDialog})
	}
	return m, effects, nil
}

func reduceUpdate(m machine, ev dialogEvent) (machine, []effect, error) {
	if ev.variant != "" {
		if !ev.variant.IsValid() {
			return m, nil, invalidTransition(m, ev)
		}
		m.variant = ev.variant
		m.embedded = m.embedded || ev.variant.IsEmbedded()
	}

	switch m.state {
	case entity.DialogStatePromptOpen:
		return m, []effect{{kind: effectUpdateDialog}}, nil
	case entity.DialogStateShowSystemPrompt:
		if strategyFor(m.variant).skipsDialog {
			return m, []effect{{kind: effectRequestOSPermission}}, nil
		}
		m.state = entity.DialogStatePromptOpen
		return m, []effect{{kind: effectPresentDialog}}, nil
	default:
		// Not on screen yet, or already past the dialog: nothing to redraw.
		return m, nil, nil
	}
}

// classifyDismissal maps the presenter's cause for a user-initiated close.
// Button causes are reserved for closes the dialog itself triggers.
func classifyDismissal(cause entity.DismissalCause) entity.DismissalCause {
	switch cause {
	case entity.DismissalCauseNavigateBack,
		entity.DismissalCauseTouchOutside,
		entity.DismissalCauseAutodismissNoContext,
		entity.DismissalCauseAutodismissNoDialogManager,
		entity.DismissalCauseAutodismissOSDenied:
		return cause
	default:
		return entity.DismissalCauseUnspecified
	}
}
