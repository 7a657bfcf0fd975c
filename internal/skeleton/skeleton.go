// Package skeleton holds the static Cargo project that generated sources are
// written into.
package skeleton

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"salad-rustgen/internal/module"
)

const templateRoot = "template"

// Placeholders substituted in the manifest.
const (
	PackageNamePlaceholder    = "{package_name}"
	PackageVersionPlaceholder = "{package_version}"
)

// manifestName is the only file placeholders are substituted in.
const manifestName = "Cargo.toml"

//go:embed all:template
var templateFS embed.FS

// Vars are the values substituted into the manifest.
type Vars struct {
	PackageName    string
	PackageVersion string
}

// NewVars derives the package name from the target directory and the
// package version from the schema language version.
func NewVars(target, saladVersion string) (Vars, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return Vars{}, fmt.Errorf("resolving target %s: %w", target, err)
	}

	return Vars{
		PackageName:    filepath.Base(abs),
		PackageVersion: "0.1.0+salad" + strings.TrimPrefix(saladVersion, "v"),
	}, nil
}

// Files returns the skeleton files with placeholders substituted, ready to be
// written next to the generated sources.
func Files(vars Vars) ([]module.GeneratedFile, error) {
	replacer := strings.NewReplacer(
		PackageNamePlaceholder, vars.PackageName,
		PackageVersionPlaceholder, vars.PackageVersion,
	)

	var files []module.GeneratedFile

	err := fs.WalkDir(templateFS, templateRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		content, err := templateFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		if d.Name() == manifestName {
			content = []byte(replacer.Replace(string(content)))
		}

		rel := strings.TrimPrefix(path, templateRoot+"/")
		files = append(files, module.GeneratedFile{Filename: filepath.FromSlash(rel), Content: content})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
