package module

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"text/template"

	"salad-rustgen/internal/rust"
)

// Layout defaults.
const (
	DefaultSourceDir = "src"
	DefaultRootFile  = "lib.rs"
	modFile          = "mod.rs"
	fileExt          = ".rs"
)

// ErrModuleConflict is returned when a generated module has the name of one of
// the root modules declared by Options.RootModules.
var ErrModuleConflict = errors.New("module conflicts with root module")

// Options control how the tree is laid out and rendered.
type Options struct {
	// SourceDir is prepended to every file name.
	SourceDir string
	// RootFile is the file name of the crate root module.
	RootFile string
	// RootModules are extra modules declared in the root file, such as the
	// hand-written "core" module of the skeleton.
	RootModules []string
	// MacroWrapper, when set, wraps every item in "<MacroWrapper>! { ... }".
	MacroWrapper string
}

// DefaultOptions returns the standard crate layout.
func DefaultOptions() Options {
	return Options{
		SourceDir: DefaultSourceDir,
		RootFile:  DefaultRootFile,
	}
}

// GeneratedFile represents a generated Rust source file.
type GeneratedFile struct {
	// Filename is relative to the output directory (e.g., "src/cwl/mod.rs").
	Filename string
	// Content is the rendered source.
	Content []byte
}

type moduleTemplateData struct {
	Modules []string
	Items   []string
}

var moduleTemplate = template.Must(template.New("module").Parse(`// Code generated by salad-rustgen. DO NOT EDIT.
{{if .Modules}}
{{range .Modules}}pub mod {{.}};
{{end}}{{end}}{{range .Items}}
{{.}}{{end}}`))

// Files lowers the tree under root into one file per module, in pre-order.
func Files(root *Module, opts Options) ([]GeneratedFile, error) {
	if opts.RootFile == "" {
		opts.RootFile = DefaultRootFile
	}

	var files []GeneratedFile

	err := root.Walk(func(mod *Module, _ int) error {
		content, err := renderModule(mod, opts)
		if err != nil {
			return fmt.Errorf("rendering module %s: %w", mod.PathFromRoot(), err)
		}

		files = append(files, GeneratedFile{
			Filename: fileName(mod, opts),
			Content:  content,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func renderModule(mod *Module, opts Options) ([]byte, error) {
	var data moduleTemplateData

	for _, child := range mod.Children() {
		data.Modules = append(data.Modules, child.Ident().String())
	}

	if mod.IsRoot() {
		for _, name := range opts.RootModules {
			ident := rust.SanitizeModuleIdent(name)
			if _, ok := mod.Child(ident); ok {
				return nil, fmt.Errorf("%w: %s", ErrModuleConflict, ident)
			}

			data.Modules = append(data.Modules, ident.String())
		}

		slices.Sort(data.Modules)
		data.Modules = slices.Compact(data.Modules)
	}

	for _, item := range mod.Items() {
		data.Items = append(data.Items, RenderItem(item, opts.MacroWrapper))
	}

	var buf bytes.Buffer
	if err := moduleTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderItem renders one top-level item, wrapped in a macro invocation when
// wrapper is set.
func RenderItem(item rust.Item, wrapper string) string {
	if wrapper == "" {
		return item.Render(0)
	}

	return wrapper + "! {\n" + item.Render(1) + "}\n"
}

// fileName returns the file a module is written to, relative to the output
// directory.
func fileName(mod *Module, opts Options) string {
	if mod.IsRoot() {
		return filepath.Join(opts.SourceDir, opts.RootFile)
	}

	var segments []string

	for cur := mod; !cur.IsRoot(); cur = cur.Parent() {
		segments = append(segments, cur.Ident().Bare())
	}

	slices.Reverse(segments)

	if mod.IsLeaf() {
		last := len(segments) - 1
		segments[last] += fileExt
	} else {
		segments = append(segments, modFile)
	}

	return filepath.Join(append([]string{opts.SourceDir}, segments...)...)
}
