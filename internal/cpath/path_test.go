package cpath

import (
	"errors"
	"sort"
	"testing"
)

func TestParse_Constructors(t *testing.T) {
	var p0 Path
	if !p0.IsEmpty() {
		t.Error("zero Path should be empty")
	}
	if !p0.IsRelative() {
		t.Error("zero Path should be relative")
	}
	if len(p0.String()) != 0 {
		t.Errorf("zero Path String() = %q, want empty", p0.String())
	}

	p1 := MustParse("lolo")
	if p1.IsEmpty() {
		t.Error("lolo should not be empty")
	}
	if got := p1.Text(false); got != "lolo" {
		t.Errorf("Text(false) = %q, want %q", got, "lolo")
	}
	if got := p1.String(); got != "cpath:lolo" {
		t.Errorf("String() = %q, want %q", got, "cpath:lolo")
	}

	p2 := MustParse("koko")
	p3 := p2
	if p2.String() != p3.String() {
		t.Errorf("copy differs: %q vs %q", p2.String(), p3.String())
	}

	abs := MustParse("cpath://hostname/root/component")
	if got := abs.String(); got != "cpath://hostname/root/component" {
		t.Errorf("String() = %q", got)
	}
	if !abs.IsAbsolute() {
		t.Error("cpath://hostname/root/component should be absolute")
	}

	rel := MustParse("../component")
	if got := rel.String(); got != "cpath:../component" {
		t.Errorf("String() = %q, want %q", got, "cpath:../component")
	}
	if !rel.IsRelative() {
		t.Error("../component should be relative")
	}
}

func TestParse_Protocols(t *testing.T) {
	tests := []struct {
		text      string
		proto     Protocol
		withProto string
		body      string
	}{
		{"//Root/Component", CPath, "cpath://Root/Component", "//Root/Component"},
		{"cpath://Root/Component", CPath, "cpath://Root/Component", "//Root/Component"},
		{"file:///etc/fstab", File, "file:///etc/fstab", "///etc/fstab"},
		{"http://coolfluidsrv.vki.ac.be", HTTP, "http://coolfluidsrv.vki.ac.be", "//coolfluidsrv.vki.ac.be"},
		{"https://coolfluidsrv.vki.ac.be", HTTPS, "https://coolfluidsrv.vki.ac.be", "//coolfluidsrv.vki.ac.be"},
		{
			"http://coolfluidsrv.vki.ac.be/redmine/projects/activity/coolfluid3?show_issues=1&show_changesets=1",
			HTTP,
			"http://coolfluidsrv.vki.ac.be/redmine/projects/activity/coolfluid3?show_issues=1&show_changesets=1",
			"//coolfluidsrv.vki.ac.be/redmine/projects/activity/coolfluid3?show_issues=1&show_changesets=1",
		},
		{"CPATH://Root", CPath, "cpath://Root", "//Root"},
		{"file:", File, "file:", ""},
		{"grid:nodes", CPath, "cpath:grid:nodes", "grid:nodes"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			p, err := Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.text, err)
			}
			if p.Protocol() != tt.proto {
				t.Errorf("Protocol() = %q, want %q", p.Protocol(), tt.proto)
			}
			if got := p.String(); got != tt.withProto {
				t.Errorf("String() = %q, want %q", got, tt.withProto)
			}
			if got := p.Text(false); got != tt.body {
				t.Errorf("Text(false) = %q, want %q", got, tt.body)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	cases := []string{
		":nothing",
		"root/with space",
		"root/<tag>",
		"back\\slash",
		"quote\"d",
		"tab\there",
	}

	for _, text := range cases {
		t.Run(text, func(t *testing.T) {
			_, err := Parse(text)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("Parse(%q) error = %v, want ErrMalformed", text, err)
			}
		})
	}
}

func TestParse_EmptyBodyIsEmptyAndRelative(t *testing.T) {
	p := MustParse("http:")
	if !p.IsEmpty() || !p.IsRelative() {
		t.Errorf("http: should be empty and relative, got empty=%v relative=%v", p.IsEmpty(), p.IsRelative())
	}
}

func TestText_EmptyPaths(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"", ""},
		{"cpath:", ""},
		{"CPATH:", ""},
		{"file:", "file:"},
		{"http:", "http:"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			p := MustParse(tt.text)
			if got := p.Text(true); got != tt.want {
				t.Errorf("Text(true) = %q, want %q", got, tt.want)
			}
			if got := p.Text(false); got != "" {
				t.Errorf("Text(false) = %q, want empty", got)
			}
			if !MustParse(p.Text(true)).Equal(p) {
				t.Errorf("%q does not parse back to the same path", p.Text(true))
			}
		})
	}
}

func TestSegments(t *testing.T) {
	p := MustParse("cpath://Root/Mesh/nodes")
	want := []string{"Root", "Mesh", "nodes"}
	got := p.Segments()
	if len(got) != len(want) {
		t.Fatalf("Segments() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Segments()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	got[0] = "changed"
	if p.Segments()[0] != "Root" {
		t.Error("Segments() must return a copy")
	}
	if p.Base() != "nodes" {
		t.Errorf("Base() = %q, want nodes", p.Base())
	}
}

func TestJoin_Concatenation(t *testing.T) {
	p0 := MustParse("/root/dir1")
	p1 := MustParse("dir2/dir3")

	p2 := p0.Join(p1)
	if got := p2.Text(false); got != "/root/dir1/dir2/dir3" {
		t.Errorf("p0/p1 = %q, want /root/dir1/dir2/dir3", got)
	}

	var p3 Path
	p3.Append(p0)
	if got := p3.Text(false); got != "/root/dir1" {
		t.Errorf("empty /= p0 = %q, want /root/dir1", got)
	}

	p5, err := p0.JoinString("dir5/dir55")
	if err != nil {
		t.Fatalf("JoinString: %v", err)
	}
	if got := p5.Text(false); got != "/root/dir1/dir5/dir55" {
		t.Errorf("p0/\"dir5/dir55\" = %q", got)
	}

	if got := p0.Text(false); got != "/root/dir1" {
		t.Errorf("Join mutated receiver: %q", got)
	}
}

func TestJoin_ReceiverProtocolWins(t *testing.T) {
	a := MustParse("cpath://Root")
	b := MustParse("http://example.org/x")

	got := a.Join(b)
	if got.Protocol() != CPath {
		t.Errorf("Protocol() = %q, want cpath", got.Protocol())
	}
	if !got.IsAbsolute() {
		t.Error("join of absolute receiver should be absolute")
	}
	if got.String() != "cpath://Root/example.org/x" {
		t.Errorf("String() = %q", got.String())
	}

	rel := MustParse("a").Join(MustParse("/b"))
	if rel.IsAbsolute() {
		t.Error("join of relative receiver should be relative")
	}
	if rel.Text(false) != "a/b" {
		t.Errorf("Text(false) = %q, want a/b", rel.Text(false))
	}
}

func TestAppend_MutatesOnlyReceiver(t *testing.T) {
	a := MustParse("/a")
	b := MustParse("b")
	alias := a

	a.Append(b)
	if a.Text(false) != "/a/b" {
		t.Errorf("a = %q, want /a/b", a.Text(false))
	}
	if alias.Text(false) != "/a" {
		t.Errorf("copy changed to %q", alias.Text(false))
	}
	if b.Text(false) != "b" {
		t.Errorf("argument changed to %q", b.Text(false))
	}
}

func TestCleanAndParent(t *testing.T) {
	tests := []struct {
		in     string
		clean  string
		parent string
	}{
		{"//Root/a/./b/../c", "cpath://Root/a/c", "cpath://Root/a/./b/.."},
		{"../x/..", "cpath:..", "cpath:../x"},
		{"a/..", "cpath:.", "cpath:a"},
		{"/", "cpath:/", "cpath:/"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p := MustParse(tt.in)
			if got := p.Clean().String(); got != tt.clean {
				t.Errorf("Clean() = %q, want %q", got, tt.clean)
			}
			if got := p.Parent().String(); got != tt.parent {
				t.Errorf("Parent() = %q, want %q", got, tt.parent)
			}
		})
	}
}

func TestEqualAndCompare(t *testing.T) {
	if !MustParse("lolo").Equal(MustParse("cpath:lolo")) {
		t.Error("lolo and cpath:lolo should be equal")
	}
	if MustParse("file:x").Equal(MustParse("x")) {
		t.Error("different protocols should not be equal")
	}

	paths := []Path{MustParse("http://b"), MustParse("//a"), MustParse("file:///c")}
	sort.Slice(paths, func(i, j int) bool { return Compare(paths[i], paths[j]) < 0 })
	want := []string{"cpath://a", "file:///c", "http://b"}
	for i, p := range paths {
		if p.String() != want[i] {
			t.Errorf("sorted[%d] = %q, want %q", i, p.String(), want[i])
		}
	}
}

func TestNew(t *testing.T) {
	p, err := New(CPath, true, "Root", "Mesh")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.String() != "cpath:/Root/Mesh" {
		t.Errorf("String() = %q", p.String())
	}

	if _, err := New(CPath, false, "a/b"); !errors.Is(err, ErrMalformed) {
		t.Errorf("New with slash in segment: err = %v, want ErrMalformed", err)
	}
}

func TestRegisterProtocol(t *testing.T) {
	p, err := RegisterProtocol("Mesh")
	if err != nil {
		t.Fatalf("RegisterProtocol: %v", err)
	}
	if p != "mesh" {
		t.Errorf("protocol = %q, want mesh", p)
	}

	parsed := MustParse("mesh://grid/nodes")
	if parsed.Protocol() != p {
		t.Errorf("Protocol() = %q, want %q", parsed.Protocol(), p)
	}
	if parsed.Text(false) != "//grid/nodes" {
		t.Errorf("Text(false) = %q", parsed.Text(false))
	}

	if _, err := RegisterProtocol("9lives"); !errors.Is(err, ErrMalformed) {
		t.Errorf("RegisterProtocol(9lives) err = %v, want ErrMalformed", err)
	}
}

func TestValidSegment(t *testing.T) {
	cases := map[string]bool{
		"Mesh":    true,
		"nodes-1": true,
		"":        false,
		".":       false,
		"..":      false,
		"a/b":     false,
		"a b":     false,
		"état":    true,
	}
	for in, want := range cases {
		if got := ValidSegment(in); got != want {
			t.Errorf("ValidSegment(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTextMarshaling(t *testing.T) {
	var p Path
	if err := p.UnmarshalText([]byte("//Root/Libraries")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	out, err := p.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(out) != "cpath://Root/Libraries" {
		t.Errorf("MarshalText = %q", out)
	}
	if err := p.UnmarshalText([]byte(":bad")); err == nil {
		t.Error("UnmarshalText(:bad) should fail")
	}
}
