package fixedbind

import (
	"fmt"
	"strings"
)

// Dump walks a raw layout over one line and reports what each slot would
// see, one note per line. It never returns an error: truncated input and
// conversion failures become notes, and the walk stops at the first of
// either so the remainder of the line stays visible in the trailing note.
//
// Dump needs no shape and no plan. It is a debugging aid for malformed
// input; Decode remains the fail-fast path.
func Dump(layout *Layout, line string) string {
	runes := []rune(line)
	var notes []string
	consumed := 0
	for _, s := range layout.slots {
		name := s.name
		if s.skip {
			name = "skip"
		}
		if consumed+s.width > len(runes) {
			notes = append(notes, fmt.Sprintf("field %s width %d: insufficient input, line length %d", name, s.width, len(runes)))
			break
		}
		raw := string(runes[consumed : consumed+s.width])
		if s.skip {
			consumed += s.width
			notes = append(notes, fmt.Sprintf("skip width %d (%d characters consumed)", s.width, consumed))
			continue
		}
		val, err := s.convert(raw)
		if err != nil {
			notes = append(notes, fmt.Sprintf("field %s width %d: cannot parse %q: %v", s.name, s.width, raw, err))
			break
		}
		consumed += s.width
		notes = append(notes, fmt.Sprintf("field %s width %d: %v (%d characters consumed)", s.name, s.width, val, consumed))
	}
	if rem := len(runes) - consumed; rem > 0 {
		notes = append(notes, fmt.Sprintf("%d unconsumed characters remain: %q", rem, string(runes[consumed:])))
	} else {
		notes = append(notes, fmt.Sprintf("%d characters total", consumed))
	}
	return strings.Join(notes, "\n")
}
