package fixedbind

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ISODate is the layout for Date covering ISO-8601 calendar dates.
const ISODate = "2006-01-02"

// Trim returns the raw value with surrounding whitespace removed. It
// never fails.
func Trim(raw string) (any, error) {
	return strings.TrimSpace(raw), nil
}

// Integer parses the trimmed raw value as a base-10 int.
func Integer(raw string) (any, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, errors.Wrap(err, "not a valid integer")
	}
	return n, nil
}

// Float parses the trimmed raw value as a float64.
func Float(raw string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, errors.Wrap(err, "not a valid number")
	}
	return f, nil
}

// Date returns a converter that parses the trimmed raw value as a
// time.Time in the given reference layout.
func Date(layout string) Converter {
	return func(raw string) (any, error) {
		t, err := time.Parse(layout, strings.TrimSpace(raw))
		if err != nil {
			return nil, errors.Wrap(err, "not a valid date")
		}
		return t, nil
	}
}
