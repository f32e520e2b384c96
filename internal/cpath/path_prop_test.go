package cpath

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func segmentGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Za-z0-9_.\-]{1,8}`)
}

func bodyGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		segs := rapid.SliceOfN(segmentGen(), 0, 5).Draw(t, "segments")
		lead := rapid.SampledFrom([]string{"", "/", "//"}).Draw(t, "lead")
		trail := rapid.SampledFrom([]string{"", "/"}).Draw(t, "trail")
		if len(segs) == 0 {
			return lead
		}
		return lead + strings.Join(segs, "/") + trail
	})
}

func pathGen() *rapid.Generator[Path] {
	return rapid.Custom(func(t *rapid.T) Path {
		scheme := rapid.SampledFrom([]string{"", "cpath:", "file:", "http:", "https:"}).Draw(t, "scheme")
		return MustParse(scheme + bodyGen().Draw(t, "body"))
	})
}

func TestProperty_RoundTripWithoutProtocol(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		scheme := rapid.SampledFrom([]string{"", "cpath:", "file:", "http:", "https:"}).Draw(rt, "scheme")
		body := bodyGen().Draw(rt, "body")

		p, err := Parse(scheme + body)
		if err != nil {
			rt.Fatalf("Parse(%q): %v", scheme+body, err)
		}
		if got := p.Text(false); got != body {
			rt.Fatalf("Text(false) = %q, want %q", got, body)
		}

		again, err := Parse(p.String())
		if err != nil {
			rt.Fatalf("reparse %q: %v", p.String(), err)
		}
		if !again.Equal(p) {
			rt.Fatalf("reparse of %q gave %q", p.String(), again.String())
		}
	})
}

func TestProperty_JoinAssociative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := pathGen().Draw(rt, "a")
		b := pathGen().Draw(rt, "b")
		c := pathGen().Draw(rt, "c")

		left := a.Join(b).Join(c)
		right := a.Join(b.Join(c))
		if !left.Equal(right) {
			rt.Fatalf("(a/b)/c = %q, a/(b/c) = %q", left.String(), right.String())
		}
	})
}

func TestProperty_JoinKeepsReceiverProtocolAndAbsoluteness(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := pathGen().Draw(rt, "a")
		b := pathGen().Draw(rt, "b")
		if a.IsEmpty() {
			rt.Skip("the empty path is the identity of Join")
		}

		got := a.Join(b)
		if got.Protocol() != a.Protocol() {
			rt.Fatalf("Protocol() = %q, want %q", got.Protocol(), a.Protocol())
		}
		if got.IsAbsolute() != a.IsAbsolute() {
			rt.Fatalf("IsAbsolute() = %v, want %v", got.IsAbsolute(), a.IsAbsolute())
		}
	})
}
