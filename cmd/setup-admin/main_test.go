package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArgs(t *testing.T) []string {
	dir := t.TempDir()
	return []string{
		"--config", filepath.Join(dir, "missing.yaml"),
		"--db.url", "sqlite:///" + filepath.Join(dir, "admin.db"),
	}
}

func TestRun(t *testing.T) {
	t.Run("Creates the admin once", func(t *testing.T) {
		args := testArgs(t)

		var out bytes.Buffer
		code := run("setup-admin", args, strings.NewReader("admin\npw\npw\n"), &out)
		require.Equal(t, 0, code, out.String())
		assert.Contains(t, out.String(), `Admin user "admin" created successfully.`)

		out.Reset()
		code = run("setup-admin", args, strings.NewReader("other\npw\npw\n"), &out)
		assert.Equal(t, 0, code)
		assert.Contains(t, out.String(), "An admin user already exists. Skipping.")
	})

	t.Run("Mismatched passwords abort", func(t *testing.T) {
		args := testArgs(t)

		var out bytes.Buffer
		code := run("setup-admin", args, strings.NewReader("admin\npw\nPW\n"), &out)
		assert.Equal(t, 0, code)
		assert.Contains(t, out.String(), "Passwords do not match. Aborting.")

		out.Reset()
		run("setup-admin", args, strings.NewReader("admin\npw\npw\n"), &out)
		assert.Contains(t, out.String(), "created successfully", "nothing was stored by the aborted run")
	})

	t.Run("Empty username aborts", func(t *testing.T) {
		var out bytes.Buffer
		code := run("setup-admin", testArgs(t), strings.NewReader("  \npw\npw\n"), &out)
		assert.Equal(t, 0, code)
		assert.Contains(t, out.String(), "Username and password cannot be empty. Aborting.")
	})

	t.Run("Bad flags", func(t *testing.T) {
		var out bytes.Buffer
		assert.Equal(t, 2, run("setup-admin", []string{"--no-such-flag"}, strings.NewReader(""), &out))
	})
}
