package rust

import (
	"fmt"
	"slices"
	"strings"
)

const pathSep = "::"

// GenericArg is an argument of a generic segment: a Lifetime or a Path.
type GenericArg interface {
	fmt.Stringer
	isGenericArg()
}

// Lifetime is a lifetime marker such as 'a.
type Lifetime string

// NewLifetime returns the lifetime named value, adding the leading quote when
// it is missing.
func NewLifetime(value string) Lifetime {
	return Lifetime("'" + strings.TrimPrefix(value, "'"))
}

// String returns the lifetime with its leading quote.
func (l Lifetime) String() string {
	return string(l)
}

func (Lifetime) isGenericArg() {}

// PathSegment is one "::"-separated component of a path, optionally generic.
type PathSegment struct {
	Ident Ident
	Args  []GenericArg
}

// NewPathSegment builds a segment. Lifetime arguments are ordered before type
// arguments, keeping the relative order within each group.
func NewPathSegment(ident Ident, args ...GenericArg) PathSegment {
	return PathSegment{Ident: ident, Args: sortGenericArgs(args)}
}

// String renders the segment.
func (s PathSegment) String() string {
	if len(s.Args) == 0 {
		return s.Ident.String()
	}

	args := sortGenericArgs(s.Args)
	parts := make([]string, len(args))

	for i, arg := range args {
		parts[i] = arg.String()
	}

	return s.Ident.String() + "<" + strings.Join(parts, ", ") + ">"
}

// Equal reports structural equality.
func (s PathSegment) Equal(other PathSegment) bool {
	return s.Ident == other.Ident && slices.EqualFunc(s.Args, other.Args, genericArgEqual)
}

func sortGenericArgs(args []GenericArg) []GenericArg {
	if len(args) == 0 {
		return nil
	}

	sorted := slices.Clone(args)
	slices.SortStableFunc(sorted, func(a, b GenericArg) int {
		return lifetimeRank(a) - lifetimeRank(b)
	})

	return sorted
}

func lifetimeRank(arg GenericArg) int {
	if _, ok := arg.(Lifetime); ok {
		return 0
	}

	return 1
}

func genericArgEqual(a, b GenericArg) bool {
	switch a := a.(type) {
	case Lifetime:
		bl, ok := b.(Lifetime)
		return ok && a == bl
	case Path:
		bp, ok := b.(Path)
		return ok && a.Equal(bp)
	default:
		return false
	}
}

// Path is a Rust path such as crate::core::List<T>. At most one segment may
// carry generic arguments. Paths are values; methods return new paths.
type Path struct {
	Segments     []PathSegment
	LeadingColon bool
}

// NewPath validates and builds a path.
func NewPath(leadingColon bool, segments ...PathSegment) (Path, error) {
	if len(segments) == 0 {
		return Path{}, fmt.Errorf("%w: no segments", ErrMalformedPath)
	}

	generic := 0

	for _, seg := range segments {
		if seg.Ident == "" {
			return Path{}, fmt.Errorf("%w: empty segment", ErrMalformedPath)
		}

		if len(seg.Args) > 0 {
			generic++
		}
	}

	if generic > 1 {
		return Path{}, fmt.Errorf("%w: %d segments carry generic arguments", ErrMalformedPath, generic)
	}

	return Path{Segments: slices.Clone(segments), LeadingColon: leadingColon}, nil
}

// SimplePath builds a non-generic path from identifiers.
func SimplePath(idents ...Ident) Path {
	segments := make([]PathSegment, len(idents))
	for i, ident := range idents {
		segments[i] = PathSegment{Ident: ident}
	}

	return Path{Segments: segments}
}

// Join returns a new path with ident appended.
func (p Path) Join(ident Ident) Path {
	segments := append(slices.Clone(p.Segments), PathSegment{Ident: ident})
	return Path{Segments: segments, LeadingColon: p.LeadingColon}
}

// WithArgs returns a copy of p whose last segment carries args. Generic
// arguments on other segments are rejected.
func (p Path) WithArgs(args ...GenericArg) (Path, error) {
	if len(p.Segments) == 0 {
		return Path{}, fmt.Errorf("%w: no segments", ErrMalformedPath)
	}

	segments := slices.Clone(p.Segments)
	last := len(segments) - 1
	segments[last] = NewPathSegment(segments[last].Ident, args...)

	return NewPath(p.LeadingColon, segments...)
}

// Last returns the final segment of the path.
func (p Path) Last() PathSegment {
	if len(p.Segments) == 0 {
		return PathSegment{}
	}

	return p.Segments[len(p.Segments)-1]
}

// Parent returns the path without its final segment.
func (p Path) Parent() Path {
	if len(p.Segments) <= 1 {
		return Path{LeadingColon: p.LeadingColon}
	}

	return Path{Segments: slices.Clone(p.Segments[:len(p.Segments)-1]), LeadingColon: p.LeadingColon}
}

// IsEmpty reports whether the path has no segments.
func (p Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// Equal reports structural equality.
func (p Path) Equal(other Path) bool {
	return p.LeadingColon == other.LeadingColon &&
		slices.EqualFunc(p.Segments, other.Segments, PathSegment.Equal)
}

// String renders the path.
func (p Path) String() string {
	var sb strings.Builder

	if p.LeadingColon {
		sb.WriteString(pathSep)
	}

	for i, seg := range p.Segments {
		if i > 0 {
			sb.WriteString(pathSep)
		}

		sb.WriteString(seg.String())
	}

	return sb.String()
}

// Render renders the path; paths are single-line so depth is ignored.
func (p Path) Render(int) string {
	return p.String()
}

func (Path) isGenericArg() {}
func (Path) isType()       {}
