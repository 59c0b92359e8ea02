package domain

import "slices"

// Promote moves files to the front of list, keeping the order in which they were passed,
// removes duplicate occurrences and truncates the result to maxEntries.
//
// Files are applied in reverse so that files[0] ends up first.
func Promote(list, files []string, maxEntries int) []string {
	out := slices.Clone(list)
	for _, file := range slices.Backward(files) {
		out = slices.DeleteFunc(out, func(f string) bool { return f == file })
		out = slices.Insert(out, 0, file)
	}
	if maxEntries < 0 {
		maxEntries = 0
	}
	if len(out) > maxEntries {
		out = out[:maxEntries]
	}
	return out
}
