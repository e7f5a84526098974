package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.Contains(t, out, "scan-qa "+version)
}

func TestStructureCommand(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	dir := t.TempDir()

	raw := `{"text":["Widget","$9.99","TOTAL","$9.99"],"conf":[95,93,96,94],` +
		`"left":[10,80,10,80],"top":[50,52,100,102],"width":[60,40,50,40],"height":[14,14,14,14]}`
	path := filepath.Join(dir, "ocr.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	out := execute(t, "structure", path)
	assert.Contains(t, out, "y<20 conf>=0")
	assert.Contains(t, out, "Items (1)")
	assert.Contains(t, out, "  Widget $9.99")
	assert.Contains(t, out, "Summary (1)")
	assert.Contains(t, out, "  TOTAL $9.99")
	assert.NotContains(t, out, "Details")

	out = execute(t, "structure", "--json", path)
	assert.JSONEq(t, `{"header":[],"items":["Widget $9.99"],"totals":["TOTAL $9.99"]}`, out)
	structureJSON = false
}
