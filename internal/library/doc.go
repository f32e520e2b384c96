// Package library manages library façades: one component per library type,
// created lazily under a Registry node the first time it is asked for and
// returned unchanged afterwards.
package library
