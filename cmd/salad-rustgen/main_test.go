package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
$graph:
  - name: pkg.Tool
    type: record
    documentRoot: true
    fields:
      - name: id
        type: string
        jsonldPredicate: "@id"
      - name: steps
        type:
          type: array
          items: [Step, string]
  - name: pkg.Step
    type: record
    fields:
      run: string
`

func writeSchema(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "tool.yml")
	require.NoError(t, os.WriteFile(path, []byte(testSchema), 0o644))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()

	return out.String(), err
}

func TestGen_WritesCrate(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir)
	target := filepath.Join(dir, "cwl")

	_, err := execute(t, "gen", "--base-uri", "https://example.com/", "--package", "pkg",
		"--salad-version", "v1.2", "-o", target, schemaPath)
	require.NoError(t, err)

	lib, err := os.ReadFile(filepath.Join(target, "src", "lib.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(lib), "pub mod core;")
	assert.Contains(t, string(lib), "pub struct Tool {")
	assert.Contains(t, string(lib), "pub enum Tool_steps_item {")
	assert.Contains(t, string(lib), "Tool(crate::Tool),")

	manifest, err := os.ReadFile(filepath.Join(target, "Cargo.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `name = "cwl"`)
	assert.Contains(t, string(manifest), `version = "0.1.0+salad1.2"`)

	assert.FileExists(t, filepath.Join(target, "src", "core", "mod.rs"))
}

func TestGen_Stdout(t *testing.T) {
	schemaPath := writeSchema(t, t.TempDir())

	out, err := execute(t, "gen", "--base-uri", "https://example.com/", "--package", "pkg",
		"--stdout", "--no-skeleton", schemaPath)
	require.NoError(t, err)

	assert.Contains(t, out, "// ==> "+filepath.Join("src", "lib.rs")+" <==")
	assert.Contains(t, out, "pub struct Step {")
	assert.NotContains(t, out, "Cargo.toml")
}

func TestGen_Dump(t *testing.T) {
	schemaPath := writeSchema(t, t.TempDir())

	out, err := execute(t, "gen", "--base-uri", "https://example.com/", "--package", "pkg",
		"--stdout", "--no-skeleton", "--dump", schemaPath)
	require.NoError(t, err)

	assert.Contains(t, out, "crate::Tool")
	assert.Contains(t, out, "[struct]  Tool (pkg.Tool)")
}

func TestGen_MissingBaseURI(t *testing.T) {
	schemaPath := writeSchema(t, t.TempDir())

	_, err := execute(t, "gen", "--stdout", schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_uri is required")
}

func TestGen_NoSchemas(t *testing.T) {
	_, err := execute(t, "gen", "--base-uri", "x", "--stdout")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema documents given")
}

func TestGen_ProjectFile(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir)

	configPath := filepath.Join(dir, "salad-rustgen.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
base_uri: https://example.com/
package: pkg
schemas: [tool.yml]
`), 0o644))

	out, err := execute(t, "gen", "-c", configPath, "--stdout", "--no-skeleton")
	require.NoError(t, err)
	assert.Contains(t, out, "pub struct Tool {")
}

func TestWatch_WritesToCommandOutput(t *testing.T) {
	schemaPath := writeSchema(t, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs([]string{"watch", "--base-uri", "https://example.com/", "--package", "pkg",
		"--stdout", "--no-skeleton", schemaPath})
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	require.NoError(t, cmd.ExecuteContext(ctx))

	assert.Contains(t, out.String(), "// ==> "+filepath.Join("src", "lib.rs")+" <==")
	assert.Contains(t, out.String(), "pub struct Tool {")
	assert.Contains(t, errOut.String(), "stopped watching")
}

func TestTree(t *testing.T) {
	schemaPath := writeSchema(t, t.TempDir())

	out, err := execute(t, "tree", "--base-uri", "https://example.com/", "--package", "pkg", schemaPath)
	require.NoError(t, err)

	assert.Contains(t, out, "crate")
	assert.Contains(t, out, "[struct]  Step (pkg.Step)")
	assert.Contains(t, out, "[enum]  DocumentRoot (DocumentRoot)")
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salad-rustgen.yaml")

	out, err := execute(t, "init", "-c", path, "--base-uri", "https://example.com/")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_uri: https://example.com/")

	_, err = execute(t, "init", "-c", path)
	require.Error(t, err)

	_, err = execute(t, "init", "-c", path, "--force")
	require.NoError(t, err)
}
