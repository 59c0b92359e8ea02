package domain

import (
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Environment maps variable names to values loaded from env files.
type Environment map[string]string

// Merge copies all variables of other into e, overriding existing keys.
func (e Environment) Merge(other Environment) {
	for k, v := range other {
		e[k] = v
	}
}

// Keys returns the variable names in sorted order.
func (e Environment) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Fingerprint returns a stable hex digest of the environment contents.
// Two environments with the same variables yield the same fingerprint regardless of map order.
// Keys and values are NUL-terminated, since neither can contain NUL.
func (e Environment) Fingerprint() string {
	d := xxhash.New()
	for _, k := range e.Keys() {
		_, _ = d.WriteString(k)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(e[k])
		_, _ = d.WriteString("\x00")
	}
	return strconv.FormatUint(d.Sum64(), 16)
}
