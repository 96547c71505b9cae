// Package scenario loads scripted prompt sessions from YAML, TOML or JSON files.
package scenario

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/spf13/viper"

	"github.com/bnema/consent/internal/domain/entity"
)

// ErrInvalidScenario wraps every validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

var validate = validator.New()

// Load reads and validates the scenario at path. The format follows the
// file extension.
func Load(path string) (*entity.Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "yml" {
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}

	var sc entity.Scenario
	if err := v.Unmarshal(&sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if err := Validate(&sc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &sc, nil
}

// Validate checks struct tags first, then the fields each action needs.
func Validate(sc *entity.Scenario) error {
	var problems []string

	if err := validate.Struct(sc); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			problems = append(problems, fmt.Sprintf("%s failed %s validation", fe.Namespace(), fe.Tag()))
		}
	}

	for i, step := range sc.Steps {
		for _, p := range checkStep(step) {
			problems = append(problems, fmt.Sprintf("steps[%d] (%s): %s", i, step.Action, p))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalidScenario, strings.Join(problems, "\n  - "))
	}
	return nil
}

func checkStep(step entity.ScenarioStep) []string {
	var problems []string
	need := func(ok bool, field string) {
		if !ok {
			problems = append(problems, field+" is required")
		}
	}

	switch step.Action {
	case entity.ScenarioOpenWindow, entity.ScenarioCloseWindow:
		need(step.Window != "", "window")

	case entity.ScenarioRequest:
		need(step.Request != "", "request")
		need(step.Window != "", "window")
		need(len(step.Types) > 0, "types")
		if !step.Variant.IsValid() {
			problems = append(problems, fmt.Sprintf("unknown variant %q", step.Variant))
		}

	case entity.ScenarioClick:
		need(step.Button != "", "button")

	case entity.ScenarioDismiss:
		switch step.Cause {
		case "", entity.DismissalCauseNavigateBack, entity.DismissalCauseTouchOutside:
		default:
			problems = append(problems, fmt.Sprintf("cause must be navigate_back or touch_outside (got %q)", step.Cause))
		}

	case entity.ScenarioNativeDismiss:
		need(step.Request != "", "request")

	case entity.ScenarioUpdate:
		need(step.Request != "", "request")
		if !step.Variant.IsValid() {
			problems = append(problems, fmt.Sprintf("unknown variant %q", step.Variant))
		}

	case entity.ScenarioExpect:
		if step.Calls == nil && step.Visible == "" && step.Pending == nil {
			problems = append(problems, "expect needs calls, visible or pending")
		}
		if step.Calls != nil {
			need(step.Request != "", "request")
		}
	}
	return problems
}

// Schema returns the JSON schema describing scenario files.
func Schema() *jsonschema.Schema {
	r := new(jsonschema.Reflector)
	r.FieldNameTag = "yaml"
	schema := r.Reflect(&entity.Scenario{})

	schema.ID = "https://github.com/bnema/consent/scenario.schema.json"
	schema.Title = "Consent Scenario"
	schema.Description = "A scripted permission prompt session"
	return schema
}
