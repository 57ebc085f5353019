// Package runner produces the text a notification is about: either the
// combined output of a shell command or everything read from piped input.
package runner
