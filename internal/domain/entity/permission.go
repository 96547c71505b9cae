// Package entity defines the permission request domain types.
package entity

// PermissionType represents one sensitive capability a page can ask for.
type PermissionType string

const (
	// PermissionTypeGeolocation represents geolocation permission.
	PermissionTypeGeolocation PermissionType = "geolocation"

	// PermissionTypeCamera represents camera access permission.
	PermissionTypeCamera PermissionType = "camera"

	// PermissionTypeMicrophone represents microphone access permission.
	PermissionTypeMicrophone PermissionType = "microphone"

	// PermissionTypeNearbyDevices represents Bluetooth / nearby device scanning permission.
	PermissionTypeNearbyDevices PermissionType = "nearby_devices"

	// PermissionTypeNotification represents notification permission.
	PermissionTypeNotification PermissionType = "notification"

	// PermissionTypeClipboard represents clipboard access permission.
	PermissionTypeClipboard PermissionType = "clipboard"

	// PermissionTypeDisplay represents screen sharing/display capture permission.
	PermissionTypeDisplay PermissionType = "display"

	// PermissionTypeMIDI represents MIDI sysex access permission.
	PermissionTypeMIDI PermissionType = "midi"

	// PermissionTypeAR represents augmented reality session permission.
	PermissionTypeAR PermissionType = "ar"

	// PermissionTypeVR represents virtual reality session permission.
	PermissionTypeVR PermissionType = "vr"

	// PermissionTypeIdleDetection represents idle detection permission.
	PermissionTypeIdleDetection PermissionType = "idle_detection"

	// PermissionTypeStorageAccess represents 3rd party cookie/data access permission.
	PermissionTypeStorageAccess PermissionType = "storage_access"

	// PermissionTypeDeviceInfo represents device enumeration permission.
	PermissionTypeDeviceInfo PermissionType = "device_info"

	// PermissionTypePointerLock represents pointer lock permission.
	PermissionTypePointerLock PermissionType = "pointer_lock"

	// PermissionTypeMediaKeySystem represents DRM/media key system permission.
	PermissionTypeMediaKeySystem PermissionType = "media_key_system"
)

// KnownPermissionTypes lists every capability the prompt understands, in display order.
func KnownPermissionTypes() []PermissionType {
	return []PermissionType{
		PermissionTypeGeolocation,
		PermissionTypeCamera,
		PermissionTypeMicrophone,
		PermissionTypeNearbyDevices,
		PermissionTypeNotification,
		PermissionTypeClipboard,
		PermissionTypeDisplay,
		PermissionTypeMIDI,
		PermissionTypeAR,
		PermissionTypeVR,
		PermissionTypeIdleDetection,
		PermissionTypeStorageAccess,
		PermissionTypeDeviceInfo,
		PermissionTypePointerLock,
		PermissionTypeMediaKeySystem,
	}
}

// IsKnown reports whether t is one of KnownPermissionTypes.
func (t PermissionType) IsKnown() bool {
	for _, known := range KnownPermissionTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// NeedsOSPermission returns true if the capability is also gated by an
// operating-system level grant (location services, camera, microphone, Bluetooth...).
func NeedsOSPermission(permType PermissionType) bool {
	switch permType {
	case PermissionTypeGeolocation,
		PermissionTypeCamera,
		PermissionTypeMicrophone,
		PermissionTypeNearbyDevices,
		PermissionTypeNotification,
		PermissionTypeAR,
		PermissionTypeVR:
		return true
	default:
		return false
	}
}

// PermissionDecision is the result a consent dialog reports back to the page.
type PermissionDecision string

const (
	// PermissionAllow means the user granted the request.
	PermissionAllow PermissionDecision = "allow"

	// PermissionBlock means the user explicitly blocked the request.
	PermissionBlock PermissionDecision = "block"

	// PermissionDefault means no decision was recorded (dismissed, OS denied, torn down).
	PermissionDefault PermissionDecision = "default"
)

// IsDecisive returns true for ALLOW and BLOCK. Observers only hear about decisive results.
func (d PermissionDecision) IsDecisive() bool {
	return d == PermissionAllow || d == PermissionBlock
}

// PermissionTypesToStrings converts permission types to strings for logging.
func PermissionTypesToStrings(types []PermissionType) []string {
	result := make([]string, len(types))
	for i, t := range types {
		result[i] = string(t)
	}
	return result
}

// PermissionTypesContain reports whether types includes want.
func PermissionTypesContain(types []PermissionType, want PermissionType) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
