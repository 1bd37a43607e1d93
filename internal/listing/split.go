// Package listing turns a file listing into fingerprint lines.
//
// Each input line may contain a marker. The text left of the first marker
// is indexed and the text right of it replaces the line in the output.
// Lines without a marker are indexed and displayed as a whole.
package listing

import "bytes"

// Entry is one input line split at the marker.
type Entry struct {
	Indexed []byte
	Display []byte
	Tagged  bool
}

// Split separates line at the first occurrence of marker. The returned
// slices alias line.
func Split(line []byte, marker string) Entry {
	if marker != "" {
		if i := bytes.Index(line, []byte(marker)); i >= 0 {
			return Entry{
				Indexed: line[:i],
				Display: line[i+len(marker):],
				Tagged:  true,
			}
		}
	}
	return Entry{Indexed: line, Display: line}
}
