// Package collection implements the mutations applied to the ordered
// sub-collections embedded in profiles and posts (likes, comments,
// experience, education).
//
// Every function is pure: the input slice is never modified, entries are
// kept most-recent-first, and lookups stop at the first (lowest index)
// entry whose key matches.
package collection

import "errors"

var (
	// ErrAlreadyExists is returned when a unique-guarded insert finds an entry with the same key.
	ErrAlreadyExists = errors.New("entry already exists")
	// ErrNotFound is returned when no entry carries the requested key.
	ErrNotFound = errors.New("entry not found in collection")
)

// Keyed is an entry addressable by its identity key.
type Keyed interface {
	Key() string
}

// Prepend returns a new sequence with entry at index 0.
func Prepend[T any](seq []T, entry T) []T {
	out := make([]T, 0, len(seq)+1)
	out = append(out, entry)
	return append(out, seq...)
}

// PrependUnique prepends entry unless an entry with the same key is present,
// in which case seq is returned unchanged along with ErrAlreadyExists.
func PrependUnique[T Keyed](seq []T, entry T) ([]T, error) {
	if IndexOf(seq, entry.Key()) >= 0 {
		return seq, ErrAlreadyExists
	}
	return Prepend(seq, entry), nil
}

// RemoveByKey returns a new sequence without the first entry matching key.
// When nothing matches, seq is returned unchanged along with ErrNotFound.
func RemoveByKey[T Keyed](seq []T, key string) ([]T, error) {
	i := IndexOf(seq, key)
	if i < 0 {
		return seq, ErrNotFound
	}
	out := make([]T, 0, len(seq)-1)
	out = append(out, seq[:i]...)
	return append(out, seq[i+1:]...), nil
}

// IndexOf returns the index of the first entry matching key, or -1.
func IndexOf[T Keyed](seq []T, key string) int {
	for i, e := range seq {
		if e.Key() == key {
			return i
		}
	}
	return -1
}

// Contains reports whether an entry with key is present.
func Contains[T Keyed](seq []T, key string) bool {
	return IndexOf(seq, key) >= 0
}
