package dialog

import (
	"fmt"
	"strings"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/domain/entity"
)

var permissionNames = map[entity.PermissionType]string{
	entity.PermissionTypeGeolocation:    "Location",
	entity.PermissionTypeCamera:         "Camera",
	entity.PermissionTypeMicrophone:     "Microphone",
	entity.PermissionTypeNearbyDevices:  "Nearby Devices",
	entity.PermissionTypeNotification:   "Notifications",
	entity.PermissionTypeClipboard:      "Clipboard",
	entity.PermissionTypeDisplay:        "Screen Sharing",
	entity.PermissionTypeMIDI:           "MIDI Devices",
	entity.PermissionTypeAR:             "Augmented Reality",
	entity.PermissionTypeVR:             "Virtual Reality",
	entity.PermissionTypeIdleDetection:  "Idle Detection",
	entity.PermissionTypeStorageAccess:  "Cross-site Data",
	entity.PermissionTypeDeviceInfo:     "Device List",
	entity.PermissionTypePointerLock:    "Pointer Lock",
	entity.PermissionTypeMediaKeySystem: "Protected Content",
}

var permissionActions = map[entity.PermissionType]string{
	entity.PermissionTypeGeolocation:    "know your location",
	entity.PermissionTypeCamera:         "use your camera",
	entity.PermissionTypeMicrophone:     "use your microphone",
	entity.PermissionTypeNearbyDevices:  "find and connect to nearby devices",
	entity.PermissionTypeNotification:   "show notifications",
	entity.PermissionTypeClipboard:      "see your clipboard",
	entity.PermissionTypeDisplay:        "share your screen",
	entity.PermissionTypeMIDI:           "fully control your MIDI devices",
	entity.PermissionTypeAR:             "create a 3D map of your surroundings",
	entity.PermissionTypeVR:             "use your virtual reality devices",
	entity.PermissionTypeIdleDetection:  "know when you're actively using this device",
	entity.PermissionTypeStorageAccess:  "use cookies and site data",
	entity.PermissionTypeDeviceInfo:     "list your media devices",
	entity.PermissionTypePointerLock:    "lock and use your pointer",
	entity.PermissionTypeMediaKeySystem: "play protected content",
}

func permissionName(t entity.PermissionType) string {
	if name, ok := permissionNames[t]; ok {
		return name
	}
	return string(t)
}

func permissionAction(t entity.PermissionType) string {
	if action, ok := permissionActions[t]; ok {
		return action
	}
	return "access your device"
}

// joinEnglish joins items as "a", "a and b" or "a, b, and c".
func joinEnglish(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

func uniqueTypes(types []entity.PermissionType) []entity.PermissionType {
	seen := make(map[entity.PermissionType]bool, len(types))
	out := make([]entity.PermissionType, 0, len(types))
	for _, t := range types {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// buildSubject creates "Microphone and Camera" style text for the capability set.
func buildSubject(types []entity.PermissionType) string {
	types = uniqueTypes(types)
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = permissionName(t)
	}
	if len(names) == 0 {
		return "Permission"
	}
	return joinEnglish(names)
}

// buildHeading creates the dialog heading for the classic ask.
func buildHeading(types []entity.PermissionType) string {
	types = uniqueTypes(types)
	if len(types) == 1 {
		return fmt.Sprintf("Allow %s Access?", permissionName(types[0]))
	}
	return fmt.Sprintf("Allow %s?", buildSubject(types))
}

// buildBody creates the "<origin> wants to ..." dialog body.
func buildBody(origin string, types []entity.PermissionType) string {
	types = uniqueTypes(types)
	actions := make([]string, len(types))
	for i, t := range types {
		actions[i] = permissionAction(t)
	}
	action := joinEnglish(actions)
	if action == "" {
		action = "access your device"
	}
	if origin == "" {
		origin = "This site"
	}
	return fmt.Sprintf("%s wants to %s.", origin, action)
}

type variantText struct {
	title             string
	message           string
	positive          string
	positiveEphemeral string
	negative          string
}

func defaultVariantText(req *entity.PermissionRequest, variant entity.EmbeddedPromptVariant) variantText {
	subject := buildSubject(req.Types)
	origin := req.Origin
	if origin == "" {
		origin = "this site"
	}

	switch variant {
	case entity.PromptVariantOSSystemSettings:
		return variantText{
			title:    fmt.Sprintf("%s is turned off for this device", subject),
			message:  fmt.Sprintf("To let %s use %s, turn it on in system settings.", origin, strings.ToLower(subject)),
			positive: "Open settings",
			negative: "Cancel",
		}
	case entity.PromptVariantPreviouslyGranted:
		return variantText{
			title:    fmt.Sprintf("You allowed %s", strings.ToLower(subject)),
			message:  fmt.Sprintf("%s can use %s while you're on the site.", origin, strings.ToLower(subject)),
			positive: "Continue allowing",
			negative: "Stop allowing",
		}
	case entity.PromptVariantPreviouslyDenied:
		return variantText{
			title:    fmt.Sprintf("You didn't allow %s", strings.ToLower(subject)),
			message:  fmt.Sprintf("%s can't use %s.", origin, strings.ToLower(subject)),
			positive: "Allow this time",
			negative: "Continue not allowing",
		}
	case entity.PromptVariantAdministratorGranted:
		return variantText{
			title:    fmt.Sprintf("Your administrator allowed %s", strings.ToLower(subject)),
			message:  fmt.Sprintf("%s can use %s. This setting is managed.", origin, strings.ToLower(subject)),
			positive: "Got it",
		}
	case entity.PromptVariantAdministratorDenied:
		return variantText{
			title:    fmt.Sprintf("Your administrator blocked %s", strings.ToLower(subject)),
			message:  fmt.Sprintf("%s can't use %s. This setting is managed.", origin, strings.ToLower(subject)),
			positive: "Got it",
		}
	case entity.PromptVariantAsk, entity.PromptVariantOSPrompt:
		text := askText(req, variant)
		text.negative = "Not now"
		return text
	default:
		return askText(req, variant)
	}
}

func askText(req *entity.PermissionRequest, variant entity.EmbeddedPromptVariant) variantText {
	text := variantText{
		title:    buildHeading(req.Types),
		message:  buildBody(req.Origin, req.Types),
		positive: "Allow",
		negative: "Don't allow",
	}
	if req.ShowEphemeral && variantOffersEphemeral(variant) {
		text.positive = "Allow while visiting the site"
		text.positiveEphemeral = "Allow this time"
	}
	return text
}

// buildDialogModel fills a view-model for req shown with variant. The
// request's own text wins over the defaults. Callbacks are left to the caller.
func buildDialogModel(req *entity.PermissionRequest, variant entity.EmbeddedPromptVariant) *port.PermissionDialogModel {
	model := &port.PermissionDialogModel{
		RequestID: req.ID,
		WindowID:  req.WindowID(),
		Scope:     req.EffectiveScope(),
	}
	fillDialogModel(model, req, variant)
	return model
}

// fillDialogModel rewrites the content fields of model in place so the
// presenter keeps the same dialog shell on update.
func fillDialogModel(model *port.PermissionDialogModel, req *entity.PermissionRequest, variant entity.EmbeddedPromptVariant) {
	if variant == "" {
		variant = entity.PromptVariantNone
	}
	text := defaultVariantText(req, variant)

	model.Variant = variant
	model.Icon = req.Icon
	model.Title = text.title
	model.Message = text.message
	model.PositiveLabel = text.positive
	model.PositiveEphemeralLabel = text.positiveEphemeral
	model.NegativeLabel = text.negative

	// Caller-provided text only describes the initial screen.
	if variant != req.EffectiveVariant() {
		return
	}
	if req.Message != "" {
		model.Message = req.Message
	}
	if req.PositiveLabel != "" {
		model.PositiveLabel = req.PositiveLabel
	}
	if req.PositiveEphemeralLabel != "" && model.PositiveEphemeralLabel != "" {
		model.PositiveEphemeralLabel = req.PositiveEphemeralLabel
	}
	if req.NegativeLabel != "" {
		model.NegativeLabel = req.NegativeLabel
	}
}
