package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/consent/internal/domain/entity"
	"github.com/bnema/consent/internal/infrastructure/config"
)

func TestParsePermissionTypes(t *testing.T) {
	types, err := parsePermissionTypes([]string{"camera", "geolocation"})
	require.NoError(t, err)
	assert.Equal(t, []entity.PermissionType{entity.PermissionTypeCamera, entity.PermissionTypeGeolocation}, types)

	_, err = parsePermissionTypes([]string{"telepathy"})
	assert.ErrorContains(t, err, `"telepathy"`)
}

func TestSimulatorOptions(t *testing.T) {
	opts, err := simulatorOptions(config.DefaultConfig(), []string{"camera"}, []string{"microphone", "geolocation"})
	require.NoError(t, err)
	assert.Len(t, opts, 4)

	_, err = simulatorOptions(config.DefaultConfig(), nil, []string{"nope"})
	assert.ErrorContains(t, err, "--denied")
}
