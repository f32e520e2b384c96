package cpath

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Separator divides path segments.
const Separator = "/"

// Special segments understood when a path is resolved against a tree.
const (
	Current = "."
	Up      = ".."
)

// ErrMalformed is returned for text that is not a valid path.
var ErrMalformed = errors.New("malformed path")

// Path is an immutable hierarchical address with an explicit protocol.
// The zero value is the empty path.
type Path struct {
	proto    Protocol
	body     string // text after the protocol prefix, verbatim
	segments []string
	absolute bool
}

// Parse parses text of the form [scheme:][//]segment[/segment]*.
//
// The scheme is recognized only when it names a registered protocol; the
// match is case-insensitive. Text without a recognized scheme uses the
// default protocol and is kept verbatim.
func Parse(text string) (Path, error) {
	if strings.HasPrefix(text, ":") {
		return Path{}, fmt.Errorf("%w: %q: empty protocol prefix", ErrMalformed, text)
	}

	proto := Default
	body := text
	if i := strings.IndexByte(text, ':'); i > 0 {
		if p, ok := LookupProtocol(text[:i]); ok {
			proto = p
			body = text[i+1:]
		}
	}

	if err := validateBody(body); err != nil {
		return Path{}, fmt.Errorf("%w: %q: %v", ErrMalformed, text, err)
	}

	return newPath(proto, body), nil
}

// MustParse is like Parse but panics on malformed text. It is meant for
// constants and tests.
func MustParse(text string) Path {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

// New builds a path from a protocol and already separated segments.
func New(proto Protocol, absolute bool, segments ...string) (Path, error) {
	if proto == "" {
		proto = Default
	}
	for _, s := range segments {
		if s == "" || strings.Contains(s, Separator) {
			return Path{}, fmt.Errorf("%w: invalid segment %q", ErrMalformed, s)
		}
		if err := validateSegment(s); err != nil {
			return Path{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	body := strings.Join(segments, Separator)
	if absolute {
		body = Separator + body
	}
	return newPath(proto, body), nil
}

func newPath(proto Protocol, body string) Path {
	var segs []string
	for _, s := range strings.Split(body, Separator) {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return Path{
		proto:    proto,
		body:     body,
		segments: segs,
		absolute: strings.HasPrefix(body, Separator),
	}
}

// Protocol returns the path's protocol, the default one for the empty path.
func (p Path) Protocol() Protocol {
	if p.proto == "" {
		return Default
	}
	return p.proto
}

// Segments returns a copy of the path components.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segments) }

// Base returns the last segment, or "" when there is none.
func (p Path) Base() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

func (p Path) IsAbsolute() bool { return p.absolute }
func (p Path) IsRelative() bool { return !p.absolute }
func (p Path) IsEmpty() bool    { return p.body == "" }

// Text serializes the path. With includeProtocol the canonical scheme is
// always prefixed; without it the stored text after the prefix is returned
// unchanged. The empty path of the default protocol serializes as "".
func (p Path) Text(includeProtocol bool) string {
	if !includeProtocol {
		return p.body
	}
	if p.body == "" && p.Protocol() == Default {
		return ""
	}
	return string(p.Protocol()) + ":" + p.body
}

// String returns the path with its protocol prefix.
func (p Path) String() string { return p.Text(true) }

// Join returns p followed by other. Protocol and absoluteness come from p;
// other's protocol is ignored. The empty path is the identity on both sides.
func (p Path) Join(other Path) Path {
	if p.IsEmpty() {
		return newPath(p.Protocol(), other.body)
	}
	if len(other.segments) == 0 {
		return p
	}
	head := strings.TrimRight(p.body, Separator)
	tail := strings.TrimLeft(other.body, Separator)
	return newPath(p.Protocol(), head+Separator+tail)
}

// JoinString parses text and joins it to p.
func (p Path) JoinString(text string) (Path, error) {
	other, err := Parse(text)
	if err != nil {
		return Path{}, err
	}
	return p.Join(other), nil
}

// Append joins other onto p in place.
func (p *Path) Append(other Path) {
	*p = p.Join(other)
}

// Parent returns p without its last segment. A path with no segments is
// returned unchanged.
func (p Path) Parent() Path {
	if len(p.segments) == 0 {
		return p
	}
	return p.rebuild(p.segments[:len(p.segments)-1])
}

// Clean removes "." segments and "name/.." pairs lexically. Leading ".."
// segments are kept; they are meaningful only against a tree.
func (p Path) Clean() Path {
	var out []string
	for _, s := range p.segments {
		switch {
		case s == Current:
		case s == Up && len(out) > 0 && out[len(out)-1] != Up:
			out = out[:len(out)-1]
		default:
			out = append(out, s)
		}
	}
	if len(out) == 0 && !p.absolute && !p.IsEmpty() {
		return newPath(p.Protocol(), Current)
	}
	return p.rebuild(out)
}

// rebuild keeps p's protocol and leading slashes around new segments.
func (p Path) rebuild(segs []string) Path {
	prefix := p.body[:len(p.body)-len(strings.TrimLeft(p.body, Separator))]
	return newPath(p.Protocol(), prefix+strings.Join(segs, Separator))
}

// Equal reports whether both paths serialize identically with protocol.
func (p Path) Equal(other Path) bool { return p.String() == other.String() }

// Compare orders paths by their serialized form with protocol.
func Compare(a, b Path) int { return strings.Compare(a.String(), b.String()) }

// MarshalText implements encoding.TextMarshaler.
func (p Path) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ValidSegment reports whether s can be used as a single path segment,
// which is what component names must be.
func ValidSegment(s string) bool {
	if s == "" || s == Current || s == Up || strings.Contains(s, Separator) {
		return false
	}
	return validateSegment(s) == nil
}

func validateBody(body string) error {
	for _, s := range strings.Split(body, Separator) {
		if err := validateSegment(s); err != nil {
			return err
		}
	}
	return nil
}

const segmentPunct = "-._~!$&'()*+,;=:@?#%[]"

func validateSegment(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("segment %q is not valid UTF-8", s)
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		if r < utf8.RuneSelf && strings.ContainsRune(segmentPunct, r) {
			continue
		}
		return fmt.Errorf("invalid character %q in segment %q", r, s)
	}
	return nil
}
