// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tinytales/internal/platform/constants"
)

func TestRootCommand_Version(t *testing.T) {
	var out bytes.Buffer

	root := newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), constants.AppVersion)
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"serve", "migrate"} {
		command, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, command.Name())
	}
}

func TestMigrate_RequiresDatabase(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend.local")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/backend.pub")
	t.Setenv("DATABASE_URL", "")

	root := newRootCommand()
	root.SetArgs([]string{"migrate"})

	err := root.Execute()
	assert.ErrorContains(t, err, "DATABASE_URL")
}
