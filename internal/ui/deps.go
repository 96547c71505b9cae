// Package ui hosts the permission prompt: the UI loop, the popup presenter,
// the windows requests belong to, and the queue that ties them together.
package ui

import (
	"context"
	"errors"

	"github.com/bnema/consent/internal/application/port"
	"github.com/bnema/consent/internal/infrastructure/config"
	"github.com/bnema/consent/internal/ui/mainloop"
)

// Dependencies is what New needs to assemble an App.
type Dependencies struct {
	Ctx    context.Context
	Config *config.Config

	// Loop is the UI thread. OS answers must be posted to it.
	Loop *mainloop.Loop

	OSPerms  port.OSPermissionRequester
	Settings port.SettingsLauncher // nil: settings buttons only dismiss

	// Recorder receives every ended request. Optional.
	Recorder port.OutcomeRecorder
}

// DependencyError names one required dependency that was left nil.
type DependencyError struct {
	Name string
}

func (e DependencyError) Error() string {
	return "ui: " + e.Name + " is required"
}

// Validate reports every missing required dependency at once.
func (d *Dependencies) Validate() error {
	if d == nil {
		return DependencyError{Name: "Dependencies"}
	}
	required := []struct {
		name    string
		missing bool
	}{
		{"Ctx", d.Ctx == nil},
		{"Config", d.Config == nil},
		{"Loop", d.Loop == nil},
		{"OSPerms", d.OSPerms == nil},
	}
	var errs []error
	for _, r := range required {
		if r.missing {
			errs = append(errs, DependencyError{Name: r.name})
		}
	}
	return errors.Join(errs...)
}
