package main

import (
	"bytes"
	"context"
	"testing"

	"peds-aftercare/internal/platform/config"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCheck(t *testing.T) {
	color.NoColor = true

	cfg := config.Config{
		Port:          "0",
		AppName:       "test",
		LogLevel:      "error",
		NotifyConsole: false,
	}

	var out bytes.Buffer
	err := runCheck(context.Background(), cfg, []string{
		"Take Ibuprofen every 6 hours for 3 days",
		"Zyrtec twice a day",
		"Take Zyrtec every 12 hours",
	}, true, &out)
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "✓ Reminder set for Ibuprofen every 6 hours for 3 days.")
	assert.Contains(t, s, "✗ could not parse medication schedule")
	assert.Contains(t, s, "1. Ibuprofen - every 6 hours (for 3 days)")
	assert.Contains(t, s, "2. Zyrtec - every 12 hours")
	assert.Contains(t, s, `"Medication": "Zyrtec"`)
	assert.Contains(t, s, "Reminder for Ibuprofen has been cancelled.")
	assert.Contains(t, s, "Remaining active schedules: 1")
	assert.Contains(t, s, "Cancelled 1 medication reminder.")
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"serve", "mcp", "check"} {
		c, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
}
