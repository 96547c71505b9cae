package entity

// ScenarioAction is one kind of scripted step.
type ScenarioAction string

const (
	ScenarioOpenWindow    ScenarioAction = "open_window"
	ScenarioCloseWindow   ScenarioAction = "close_window"
	ScenarioRequest       ScenarioAction = "request"
	ScenarioClick         ScenarioAction = "click"
	ScenarioDismiss       ScenarioAction = "dismiss"
	ScenarioNativeDismiss ScenarioAction = "native_dismiss"
	ScenarioUpdate        ScenarioAction = "update"
	ScenarioBackground    ScenarioAction = "background"
	ScenarioForeground    ScenarioAction = "foreground"
	ScenarioExpect        ScenarioAction = "expect"
)

// ScenarioNoDialog is the Visible value asserting that nothing is on screen.
const ScenarioNoDialog = "none"

// Scenario is a scripted prompt session replayed without a person at the keyboard.
type Scenario struct {
	Name        string         `mapstructure:"name" yaml:"name" json:"name" validate:"required"`
	Description string         `mapstructure:"description" yaml:"description" json:"description,omitempty"`
	OS          ScenarioOS     `mapstructure:"os" yaml:"os" json:"os"`
	Windows     []string       `mapstructure:"windows" yaml:"windows" json:"windows,omitempty" validate:"dive,required"`
	Steps       []ScenarioStep `mapstructure:"steps" yaml:"steps" json:"steps" validate:"required,min=1,dive"`
}

// ScenarioOS scripts the operating system side.
type ScenarioOS struct {
	// Granted types need no system prompt.
	Granted []PermissionType `mapstructure:"granted" yaml:"granted" json:"granted,omitempty"`
	// Denied types are refused at the system prompt.
	Denied              []PermissionType `mapstructure:"denied" yaml:"denied" json:"denied,omitempty"`
	SettingsUnavailable bool             `mapstructure:"settings_unavailable" yaml:"settings_unavailable" json:"settings_unavailable,omitempty"`
}

// ScenarioStep is one scripted action. Which fields apply depends on Action.
type ScenarioStep struct {
	Action ScenarioAction `mapstructure:"action" yaml:"action" json:"action" validate:"required,oneof=open_window close_window request click dismiss native_dismiss update background foreground expect" jsonschema:"enum=open_window,enum=close_window,enum=request,enum=click,enum=dismiss,enum=native_dismiss,enum=update,enum=background,enum=foreground,enum=expect"`

	// Request names the request the step creates or targets.
	Request string `mapstructure:"request" yaml:"request" json:"request,omitempty"`
	Window  string `mapstructure:"window" yaml:"window" json:"window,omitempty"`

	Origin    string                `mapstructure:"origin" yaml:"origin" json:"origin,omitempty"`
	Types     []PermissionType      `mapstructure:"types" yaml:"types" json:"types,omitempty"`
	Variant   EmbeddedPromptVariant `mapstructure:"variant" yaml:"variant" json:"variant,omitempty"`
	Scope     ModalScope            `mapstructure:"scope" yaml:"scope" json:"scope,omitempty" validate:"omitempty,oneof=tab app"`
	Ephemeral bool                  `mapstructure:"ephemeral" yaml:"ephemeral" json:"ephemeral,omitempty"`
	Message   string                `mapstructure:"message" yaml:"message" json:"message,omitempty"`

	Button DialogButton   `mapstructure:"button" yaml:"button" json:"button,omitempty" validate:"omitempty,oneof=positive positive_ephemeral negative"`
	Cause  DismissalCause `mapstructure:"cause" yaml:"cause" json:"cause,omitempty"`

	// Calls is the exact delegate call log expected for Request so far.
	Calls []string `mapstructure:"calls" yaml:"calls" json:"calls,omitempty"`
	// Visible names the request expected on screen, or "none".
	Visible string `mapstructure:"visible" yaml:"visible" json:"visible,omitempty"`
	// Pending is the expected number of requests not yet ended, when set.
	Pending *int `mapstructure:"pending" yaml:"pending" json:"pending,omitempty"`
}
