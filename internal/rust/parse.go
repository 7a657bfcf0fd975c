package rust

import (
	"fmt"
	"strings"
)

// ParsePath parses a textual path such as "::std::option::Option<T>" or
// "crate::core::List<'a, crate::Foo>".
//
// Grammar:
//
//	path     = [ "::" ] segment { "::" segment }
//	segment  = ident [ "<" arg { "," arg } ">" ]
//	arg      = lifetime | path
//	lifetime = "'" ident
//	ident    = [ "r#" ] ( letter | "_" ) { letter | digit | "_" }
func ParsePath(text string) (Path, error) {
	p := &pathParser{src: text}

	path, err := p.parsePath()
	if err != nil {
		return Path{}, fmt.Errorf("parsing %q: %w", text, err)
	}

	p.skipSpace()

	if !p.eof() {
		return Path{}, fmt.Errorf("parsing %q: %w: unexpected %q at offset %d",
			text, ErrMalformedPath, p.src[p.pos:], p.pos)
	}

	return path, nil
}

// MustParsePath is like ParsePath but panics on error. Intended for constant
// paths.
func MustParsePath(text string) Path {
	path, err := ParsePath(text)
	if err != nil {
		panic(err)
	}

	return path
}

type pathParser struct {
	src string
	pos int
}

func (p *pathParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *pathParser) skipSpace() {
	for !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *pathParser) consume(token string) bool {
	if strings.HasPrefix(p.src[p.pos:], token) {
		p.pos += len(token)
		return true
	}

	return false
}

func (p *pathParser) parsePath() (Path, error) {
	p.skipSpace()

	leading := p.consume(pathSep)

	var segments []PathSegment

	for {
		seg, err := p.parseSegment()
		if err != nil {
			return Path{}, err
		}

		segments = append(segments, seg)

		if !p.consume(pathSep) {
			break
		}
	}

	return NewPath(leading, segments...)
}

func (p *pathParser) parseSegment() (PathSegment, error) {
	ident, err := p.parseIdent()
	if err != nil {
		return PathSegment{}, err
	}

	if !p.consume("<") {
		return PathSegment{Ident: ident}, nil
	}

	var args []GenericArg

	for {
		p.skipSpace()

		if p.eof() {
			return PathSegment{}, fmt.Errorf("%w: unterminated argument list", ErrMalformedGenerics)
		}

		arg, err := p.parseGenericArg()
		if err != nil {
			return PathSegment{}, err
		}

		args = append(args, arg)

		p.skipSpace()

		if p.consume(",") {
			continue
		}

		if p.consume(">") {
			break
		}

		if p.eof() {
			return PathSegment{}, fmt.Errorf("%w: unterminated argument list", ErrMalformedGenerics)
		}

		return PathSegment{}, fmt.Errorf("%w: unexpected %q at offset %d",
			ErrMalformedGenerics, p.src[p.pos], p.pos)
	}

	return NewPathSegment(ident, args...), nil
}

func (p *pathParser) parseGenericArg() (GenericArg, error) {
	if p.src[p.pos] == '>' {
		return nil, fmt.Errorf("%w: empty argument at offset %d", ErrMalformedGenerics, p.pos)
	}

	if p.consume("'") {
		ident, err := p.parseIdent()
		if err != nil {
			return nil, fmt.Errorf("%w: bad lifetime: %w", ErrMalformedGenerics, err)
		}

		return NewLifetime(ident.String()), nil
	}

	return p.parsePath()
}

func (p *pathParser) parseIdent() (Ident, error) {
	start := p.pos
	p.consume(rawPrefix)

	identStart := p.pos

	for !p.eof() && isIdentByte(p.src[p.pos], p.pos == identStart) {
		p.pos++
	}

	if p.pos == identStart {
		if p.eof() {
			return "", fmt.Errorf("%w: expected identifier at end of input", ErrMalformedPath)
		}

		return "", fmt.Errorf("%w: expected identifier at offset %d, found %q",
			ErrMalformedPath, p.pos, p.src[p.pos])
	}

	return Ident(p.src[start:p.pos]), nil
}

func isIdentByte(c byte, first bool) bool {
	switch {
	case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	default:
		return false
	}
}
