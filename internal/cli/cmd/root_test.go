package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/consent/internal/domain/build"
)

func TestIsStandalone(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"version"}, true},
		{[]string{"gen-docs"}, true},
		{[]string{"prompt"}, false},
		{[]string{"journal", "list"}, false},
	}
	for _, tt := range tests {
		cmd, _, err := rootCmd.Find(tt.args)
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, isStandalone(cmd), tt.args)
	}

	parent := &cobra.Command{Use: "completion"}
	child := &cobra.Command{Use: "bash"}
	parent.AddCommand(child)
	assert.True(t, isStandalone(child))
}

func TestVersionCommand(t *testing.T) {
	SetBuildInfo(build.Info{Version: "0.3.0", Commit: "f00d", BuildDate: "2026-01-02"})
	t.Cleanup(func() { SetBuildInfo(build.Info{}) })

	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })
	versionCmd.Run(versionCmd, nil)

	assert.Equal(t, "consent 0.3.0 (f00d, 2026-01-02)\n", out.String())
}
