package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/domain/entity"
	"github.com/bnema/consent/internal/logging"
)

// ErrNilScenario is returned when Execute is called without a scenario.
var ErrNilScenario = errors.New("scenario is nil")

// ErrExpectationFailed wraps every failed expect step.
var ErrExpectationFailed = errors.New("expectation failed")

// Delegate call names as they appear in a scenario's expected call log.
const (
	CallAccept         = "accept"
	CallAcceptThisTime = "accept_this_time"
	CallDeny           = "deny"
	CallAcknowledge    = "acknowledge"
	CallResumed        = "resumed"
	CallRelease        = "release"
)

// CallDismiss formats the call log entry of Dismiss(cause).
func CallDismiss(cause entity.DismissalCause) string {
	return "dismiss(" + string(cause) + ")"
}

// CallSystemPermissionResolved formats the call log entry of SystemPermissionResolved(granted).
func CallSystemPermissionResolved(granted bool) string {
	return fmt.Sprintf("system_permission_resolved(%t)", granted)
}

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Index  int                   `json:"index"`
	Action entity.ScenarioAction `json:"action"`
	Tasks  int                   `json:"tasks"`
	Error  string                `json:"error,omitempty"`
}

// RequestReport is the delegate call log of one scripted request.
type RequestReport struct {
	Name  string   `json:"name"`
	Calls []string `json:"calls"`
}

// ScenarioReport summarizes a scenario run.
type ScenarioReport struct {
	Name     string          `json:"name"`
	Passed   bool            `json:"passed"`
	Steps    []StepResult    `json:"steps"`
	Requests []RequestReport `json:"requests"`
}

// FailedStep returns the first failed step, if any.
func (r *ScenarioReport) FailedStep() (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Error != "" {
			return s, true
		}
	}
	return StepResult{}, false
}

// RunScenarioUseCase replays a scripted session against the prompt queue.
type RunScenarioUseCase struct {
	harness port.PromptHarness
	prompts *ManagePermissionPromptsUseCase
}

// NewRunScenarioUseCase creates the use case.
func NewRunScenarioUseCase(harness port.PromptHarness, prompts *ManagePermissionPromptsUseCase) *RunScenarioUseCase {
	return &RunScenarioUseCase{harness: harness, prompts: prompts}
}

type scenarioRun struct {
	uc      *RunScenarioUseCase
	windows map[string]entity.WindowRef
	handles map[string]RequestHandle
	logs    map[string]*callLog
	order   []string
}

// Execute runs every step in order and stops at the first failure.
// A failed step is reported, not returned: the error is reserved for
// a scenario that cannot run at all.
func (uc *RunScenarioUseCase) Execute(ctx context.Context, scenario *entity.Scenario) (*ScenarioReport, error) {
	if scenario == nil {
		return nil, ErrNilScenario
	}

	ctx = logging.WithComponent(ctx, "scenario")
	log := logging.FromContext(ctx).With().
		Str("scenario", scenario.Name).
		Logger()

	run := &scenarioRun{
		uc:      uc,
		windows: make(map[string]entity.WindowRef),
		handles: make(map[string]RequestHandle),
		logs:    make(map[string]*callLog),
	}
	report := &ScenarioReport{Name: scenario.Name, Passed: true}

	for _, id := range scenario.Windows {
		if err := run.openWindow(id); err != nil {
			return nil, err
		}
	}
	uc.harness.Settle()

	for i, step := range scenario.Steps {
		err := run.step(ctx, step)
		result := StepResult{Index: i, Action: step.Action, Tasks: uc.harness.Settle()}
		if err != nil {
			result.Error = err.Error()
			report.Passed = false
		}
		report.Steps = append(report.Steps, result)

		if err != nil {
			log.Warn().Err(err).Int("step", i).Str("action", string(step.Action)).Msg("scenario step failed")
			break
		}
		log.Debug().Int("step", i).Str("action", string(step.Action)).Int("tasks", result.Tasks).Msg("scenario step done")
	}

	for _, name := range run.order {
		report.Requests = append(report.Requests, RequestReport{Name: name, Calls: run.logs[name].snapshot()})
	}

	log.Info().Bool("passed", report.Passed).Int("steps", len(report.Steps)).Msg("scenario finished")
	return report, nil
}

func (r *scenarioRun) openWindow(id string) error {
	w, err := r.uc.harness.OpenWindow(id)
	if err != nil {
		return fmt.Errorf("open window %q: %w", id, err)
	}
	r.windows[id] = w
	return nil
}

func (r *scenarioRun) step(ctx context.Context, step entity.ScenarioStep) error {
	h := r.uc.harness

	switch step.Action {
	case entity.ScenarioOpenWindow:
		return r.openWindow(step.Window)

	case entity.ScenarioCloseWindow:
		if !h.CloseWindow(step.Window) {
			return fmt.Errorf("window %q is not open", step.Window)
		}
		return nil

	case entity.ScenarioRequest:
		return r.request(ctx, step)

	case entity.ScenarioClick:
		return h.Press(step.Button)

	case entity.ScenarioDismiss:
		cause := step.Cause
		if cause == "" {
			cause = entity.DismissalCauseNavigateBack
		}
		return h.DismissByUser(cause)

	case entity.ScenarioNativeDismiss:
		handle, err := r.handle(step.Request)
		if err != nil {
			return err
		}
		r.uc.prompts.DismissFromNative(ctx, handle)
		return nil

	case entity.ScenarioUpdate:
		handle, err := r.handle(step.Request)
		if err != nil {
			return err
		}
		return r.uc.prompts.UpdateDialog(ctx, handle, step.Variant)

	case entity.ScenarioBackground, entity.ScenarioForeground:
		scope := step.Scope
		if scope == "" {
			scope = entity.ModalScopeTab
		}
		h.SetBackground(scope, step.Action == entity.ScenarioBackground)
		return nil

	case entity.ScenarioExpect:
		return r.expect(step)

	default:
		return fmt.Errorf("unknown scenario action %q", step.Action)
	}
}

func (r *scenarioRun) request(ctx context.Context, step entity.ScenarioStep) error {
	if _, ok := r.logs[step.Request]; ok {
		return fmt.Errorf("request %q already created", step.Request)
	}
	w, ok := r.windows[step.Window]
	if !ok {
		return fmt.Errorf("window %q was never opened", step.Window)
	}

	calls := &callLog{}
	r.logs[step.Request] = calls
	r.order = append(r.order, step.Request)

	handle, err := r.uc.prompts.CreateRequest(ctx, CreateRequestInput{
		ID:            step.Request,
		Origin:        step.Origin,
		Types:         step.Types,
		Message:       step.Message,
		Variant:       step.Variant,
		Scope:         step.Scope,
		Window:        w,
		ShowEphemeral: step.Ephemeral,
		Delegate:      calls,
	})
	if err != nil {
		return err
	}
	r.handles[step.Request] = handle
	return nil
}

func (r *scenarioRun) handle(name string) (RequestHandle, error) {
	handle, ok := r.handles[name]
	if !ok {
		return RequestHandle{}, fmt.Errorf("request %q was never created", name)
	}
	return handle, nil
}

func (r *scenarioRun) expect(step entity.ScenarioStep) error {
	var failures []string

	if step.Request != "" {
		calls, ok := r.logs[step.Request]
		if !ok {
			return fmt.Errorf("request %q was never created", step.Request)
		}
		if step.Calls != nil {
			got := calls.snapshot()
			if !slices.Equal(got, step.Calls) {
				failures = append(failures, fmt.Sprintf("request %q calls: want [%s], got [%s]",
					step.Request, strings.Join(step.Calls, " "), strings.Join(got, " ")))
			}
		}
	}

	if step.Visible != "" {
		got, ok := r.uc.harness.VisibleRequestID()
		if !ok {
			got = entity.ScenarioNoDialog
		}
		if got != step.Visible {
			failures = append(failures, fmt.Sprintf("visible: want %q, got %q", step.Visible, got))
		}
	}

	if step.Pending != nil {
		if got := r.uc.prompts.Pending(); got != *step.Pending {
			failures = append(failures, fmt.Sprintf("pending: want %d, got %d", *step.Pending, got))
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("%w: %s", ErrExpectationFailed, strings.Join(failures, "; "))
	}
	return nil
}

// callLog is a delegate that only records what it is told.
type callLog struct {
	calls []string
}

var _ port.PermissionRequestDelegate = (*callLog)(nil)

func (c *callLog) Accept()         { c.calls = append(c.calls, CallAccept) }
func (c *callLog) AcceptThisTime() { c.calls = append(c.calls, CallAcceptThisTime) }
func (c *callLog) Deny()           { c.calls = append(c.calls, CallDeny) }
func (c *callLog) Acknowledge()    { c.calls = append(c.calls, CallAcknowledge) }
func (c *callLog) Resumed()        { c.calls = append(c.calls, CallResumed) }
func (c *callLog) Release()        { c.calls = append(c.calls, CallRelease) }

func (c *callLog) Dismiss(cause entity.DismissalCause) {
	c.calls = append(c.calls, CallDismiss(cause))
}

func (c *callLog) SystemPermissionResolved(granted bool) {
	c.calls = append(c.calls, CallSystemPermissionResolved(granted))
}

func (c *callLog) snapshot() []string {
	out := make([]string, len(c.calls))
	copy(out, c.calls)
	return out
}
