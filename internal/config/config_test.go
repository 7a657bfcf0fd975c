package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salad-rustgen/internal/codegen"
)

func TestParse(t *testing.T) {
	data := `
base_uri: https://w3id.org/cwl/cwl#
package: org.w3id.cwl.cwl
salad_version: v1.2
target: out
presets:
  org.w3id.cwl.cwl.Expression: crate::core::StrValue
macro_wrapper: salad_types
schemas:
  - cwl.yml
  - /abs/salad.yml
`

	f, err := Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "https://w3id.org/cwl/cwl#", f.BaseURI)
	assert.Equal(t, "org.w3id.cwl.cwl", f.Package)
	assert.Equal(t, "out", f.Target)
	assert.Equal(t, []string{codegen.DefaultExternalPrefix}, f.ExternalPrefixes)
	assert.Equal(t, []string{"core"}, f.RootModules)
	assert.Equal(t, "crate::core::StrValue", f.Presets["org.w3id.cwl.cwl.Expression"])

	assert.Equal(t, []string{filepath.Join("proj", "cwl.yml"), "/abs/salad.yml"}, f.SchemaPaths("proj"))

	config := f.Codegen()
	assert.Equal(t, "1.2", config.Version())
	assert.Equal(t, "salad_types", config.MacroWrapper)
	assert.Equal(t, "src", config.SourceDir)
	assert.Equal(t, "lib.rs", config.RootFile)
}

func TestParse_Defaults(t *testing.T) {
	f, err := Parse([]byte("base_uri: https://example.com/\n"))
	require.NoError(t, err)

	assert.Equal(t, ".", f.Target)
	assert.Equal(t, []string{codegen.DefaultExternalPrefix}, f.ExternalPrefixes)
	assert.Empty(t, f.Package)
}

func TestParse_ExplicitEmptyPrefixes(t *testing.T) {
	f, err := Parse([]byte("base_uri: x\nexternal_prefixes: []\n"))
	require.NoError(t, err)

	assert.Empty(t, f.ExternalPrefixes)
	assert.NotNil(t, f.ExternalPrefixes)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("base_uri: [unterminated"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	f := Default()
	f.Package = "org.w3id.cwl.salad"
	f.Presets = map[string]string{
		"pkg.Good": "crate::core::Good",
		"pkg.Bad":  "crate::",
	}

	diags := f.Validate()

	require.Len(t, diags.Errors, 2)
	assert.Equal(t, "base_uri", diags.Errors[0].Field)
	assert.Equal(t, "pkg.Bad", diags.Errors[1].Schema)
	assert.True(t, diags.HasWarning(CodeInvalidConfig))
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	f := Default()
	f.BaseURI = "https://example.com/"
	require.NoError(t, WriteFile(f, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f, loaded)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
