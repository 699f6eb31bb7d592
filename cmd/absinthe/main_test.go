package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T, fn func() error) (stdout, stderr string, err error) {
	t.Helper()
	oldOut, oldErr := os.Stdout, os.Stderr
	defer func() {
		os.Stdout, os.Stderr = oldOut, oldErr
	}()

	outR, outW, _ := os.Pipe()
	errR, errW, _ := os.Pipe()
	os.Stdout, os.Stderr = outW, errW

	doneOut := make(chan struct{})
	var bufOut bytes.Buffer
	go func() { io.Copy(&bufOut, outR); close(doneOut) }()

	doneErr := make(chan struct{})
	var bufErr bytes.Buffer
	go func() { io.Copy(&bufErr, errR); close(doneErr) }()

	err = fn()
	outW.Close()
	errW.Close()
	<-doneOut
	<-doneErr
	stdout, stderr = bufOut.String(), bufErr.String()
	return
}

const testSDL = `type Query {
  contacts(group: Group): [Contact!]
}

type Contact {
  id: ID!
  name: String!
  group: Group
}

enum Group {
  FRIENDS
  WORK
}
`

func writeSchemaFile(t *testing.T, sdl string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.graphql")
	require.NoError(t, os.WriteFile(path, []byte(sdl), 0644))
	return path
}

func TestHelp(t *testing.T) {
	out, _, err := captureOutput(t, func() error {
		return run([]string{"help", "serve"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "serve FLAGS")
}

func TestHelpRoot(t *testing.T) {
	out, _, err := captureOutput(t, func() error {
		return run([]string{"help"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "COMMANDS:")
}

func TestUnknownCommand(t *testing.T) {
	_, errOut, err := captureOutput(t, func() error {
		return run([]string{"frobnicate"})
	})
	require.Error(t, err)
	require.Contains(t, errOut, "COMMANDS:")
}

func TestMissingCommand(t *testing.T) {
	_, _, err := captureOutput(t, func() error {
		return run(nil)
	})
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	path := writeSchemaFile(t, testSDL)
	out, _, err := captureOutput(t, func() error {
		return run([]string{"check", "-schema", path})
	})
	require.NoError(t, err)
	require.Contains(t, out, "schema OK")
}

func TestCheckInvalidSchema(t *testing.T) {
	path := writeSchemaFile(t, `type Query { broken(: }`)
	_, _, err := captureOutput(t, func() error {
		return run([]string{"check", "-schema", path})
	})
	require.Error(t, err)
}

func TestCheckRequiresSchema(t *testing.T) {
	_, errOut, err := captureOutput(t, func() error {
		return run([]string{"check"})
	})
	require.Error(t, err)
	require.Contains(t, errOut, "check FLAGS")
}

func TestRender(t *testing.T) {
	path := writeSchemaFile(t, testSDL)
	out, _, err := captureOutput(t, func() error {
		return run([]string{"render", "-schema", path})
	})
	require.NoError(t, err)
	require.Contains(t, out, "type Query")
	require.Contains(t, out, "enum Group")

	// Rendering its own output reproduces it exactly.
	again := writeSchemaFile(t, out)
	out2, _, err := captureOutput(t, func() error {
		return run([]string{"render", "-schema", again})
	})
	require.NoError(t, err)
	require.Equal(t, out, out2)
}

func TestRenderToFile(t *testing.T) {
	path := writeSchemaFile(t, testSDL)
	outFile := filepath.Join(t.TempDir(), "schema.out.graphql")
	_, _, err := captureOutput(t, func() error {
		return run([]string{"render", "-schema", path, "-out", outFile})
	})
	require.NoError(t, err)
	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "type Contact")
}
