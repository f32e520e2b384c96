package component

import "errors"

var (
	ErrConflictingRegistration = errors.New("conflicting type registration")
	ErrUnknownType             = errors.New("unknown component type")
	ErrDuplicateName           = errors.New("duplicate component name")
	ErrNotFound                = errors.New("component not found")
	ErrAmbiguousMatch          = errors.New("ambiguous component match")
	ErrAttached                = errors.New("component already has a parent")
	ErrCycle                   = errors.New("component would become its own ancestor")
	ErrAboveRoot               = errors.New("path steps above the tree root")
	ErrInvalidName             = errors.New("invalid component name")
	ErrUnsupportedProtocol     = errors.New("unsupported path protocol")
)
