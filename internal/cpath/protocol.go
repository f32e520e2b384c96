package cpath

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Protocol is the scheme a path is addressed with.
type Protocol string

const (
	CPath Protocol = "cpath" // component tree addressing (default)
	File  Protocol = "file"
	HTTP  Protocol = "http"
	HTTPS Protocol = "https"
)

// Default is the protocol assumed when the text names none.
const Default = CPath

var (
	protoMu   sync.RWMutex
	protocols = map[string]Protocol{
		string(CPath): CPath,
		string(File):  File,
		string(HTTP):  HTTP,
		string(HTTPS): HTTPS,
	}
)

// RegisterProtocol adds a scheme to the set recognized by Parse. Names are
// case-insensitive and stored lowercase. Registering a known name returns
// the existing protocol.
func RegisterProtocol(name string) (Protocol, error) {
	key := strings.ToLower(name)
	if !isSchemeToken(key) {
		return "", fmt.Errorf("%w: invalid protocol name %q", ErrMalformed, name)
	}

	protoMu.Lock()
	defer protoMu.Unlock()

	if p, ok := protocols[key]; ok {
		return p, nil
	}
	p := Protocol(key)
	protocols[key] = p
	return p, nil
}

// LookupProtocol returns the registered protocol for a scheme name.
func LookupProtocol(name string) (Protocol, bool) {
	protoMu.RLock()
	defer protoMu.RUnlock()
	p, ok := protocols[strings.ToLower(name)]
	return p, ok
}

// Protocols returns all registered protocols in name order.
func Protocols() []Protocol {
	protoMu.RLock()
	defer protoMu.RUnlock()

	result := make([]Protocol, 0, len(protocols))
	for _, p := range protocols {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func (p Protocol) String() string { return string(p) }

// isSchemeToken reports whether s is an RFC 3986 scheme: a letter followed by
// letters, digits, '+', '-' or '.'.
func isSchemeToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}
