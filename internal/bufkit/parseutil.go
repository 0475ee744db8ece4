package bufkit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// missingValue is the sentinel Bufkit files use for absent data, written as
// -9999 or -9999.00 depending on the column.
const missingValue = -9999.0

var (
	errKeyNotFound  = errors.New("key not found")
	errTruncatedRow = errors.New("truncated row")
)

// checkMissing converts the -9999 sentinel to nil so missing values never
// leak into downstream JSON as real measurements.
func checkMissing(v float64) *float64 {
	if v == missingValue {
		return nil
	}
	return &v
}

// parseKV isolates the value of a "KEY = VALUE" pair inside src. startVal
// selects the first rune of the value (searched from the key onward) and
// endVal the first rune past it. It returns the trimmed value and the
// remainder of src after the value, so sequential calls can walk a block.
func parseKV(src, key string, startVal, endVal func(rune) bool) (value, rest string, err error) {
	idx := strings.Index(src, key)
	if idx < 0 {
		return "", "", fmt.Errorf("%w: %s", errKeyNotFound, key)
	}
	head := src[idx+len(key):]
	idx = strings.IndexFunc(head, startVal)
	if idx < 0 {
		return "", "", fmt.Errorf("%w: no value for %s", errKeyNotFound, key)
	}
	head = head[idx:]
	end := strings.IndexFunc(head, endVal)
	if end < 0 {
		end = len(head)
	}
	return strings.TrimSpace(head[:end]), head[end:], nil
}

// parseFloat parses the float value of key from src.
func parseFloat(src, key string) (float64, string, error) {
	value, rest, err := parseKV(src, key,
		func(r rune) bool { return unicode.IsDigit(r) || r == '-' },
		func(r rune) bool { return !unicode.IsDigit(r) && r != '.' && r != '-' },
	)
	if err != nil {
		return 0, "", err
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, "", fmt.Errorf("parse %s: %w", key, err)
	}
	return v, rest, nil
}

// parseInt parses the integer value of key from src.
func parseInt(src, key string) (int, string, error) {
	value, rest, err := parseKV(src, key,
		func(r rune) bool { return unicode.IsDigit(r) },
		func(r rune) bool { return !unicode.IsDigit(r) },
	)
	if err != nil {
		return 0, "", err
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, "", fmt.Errorf("parse %s: %w", key, err)
	}
	return v, rest, nil
}

// parseValidTime parses a "YYMMDD/HHMM" timestamp. The two-digit year maps
// into 2000-2099 and the result is always UTC.
func parseValidTime(src string) (time.Time, error) {
	s := strings.TrimSpace(src)
	if len(s) != 11 || s[6] != '/' {
		return time.Time{}, fmt.Errorf("invalid valid time %q", src)
	}

	fields := [5]int{}
	for i, span := range [5][2]int{{0, 2}, {2, 4}, {4, 6}, {7, 9}, {9, 11}} {
		v, err := strconv.Atoi(s[span[0]:span[1]])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid valid time %q: %w", src, err)
		}
		fields[i] = v
	}

	year, month, day, hour, minute := 2000+fields[0], fields[1], fields[2], fields[3], fields[4]
	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid valid time %q", src)
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), nil
}

// findBlankLine locates a blank line, or a line with no letters or digits,
// and returns the byte offset just past its trailing newline. Returns -1
// when no such line exists before the end of src.
func findBlankLine(src string) int {
	firstNewline := false
	for i, r := range src {
		switch {
		case r == '\n' && !firstNewline:
			firstNewline = true
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			firstNewline = false
		case r == '\n' && firstNewline:
			if i+1 >= len(src) {
				return -1
			}
			return i + 1
		}
	}
	return -1
}

// findNextNTokens finds the byte offset just past the next n whitespace
// delimited tokens in src. It returns -1 when src holds no further tokens
// and errTruncatedRow when tokens remain but fewer than n.
func findNextNTokens(src string, n int) (int, error) {
	if strings.TrimSpace(src) == "" {
		return -1, nil
	}

	tokenCount := 0
	first, _ := utf8.DecodeRuneInString(src)
	inWhitespace := unicode.IsSpace(first)

	for i, r := range src {
		if !inWhitespace && unicode.IsSpace(r) {
			tokenCount++
			inWhitespace = true
		} else if inWhitespace && !unicode.IsSpace(r) {
			inWhitespace = false
		}

		if tokenCount == n {
			return i, nil
		}
	}

	// The final token may run to the end of the string.
	if !inWhitespace && tokenCount == n-1 {
		return len(src), nil
	}
	if tokenCount > 0 {
		return 0, errTruncatedRow
	}
	return -1, nil
}
