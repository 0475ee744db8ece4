package bufkit

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrNoSurfaceRows reports a surface section with a header but no data rows.
var ErrNoSurfaceRows = errors.New("surface section has no data rows")

// surfaceSection is the surface half of a Bufkit file: one column header
// followed by rows of floats, one row per forecast hour.
type surfaceSection struct {
	rawText string
	cols    surfaceColumns
}

// newSurfaceSection splits the header off the section text and parses the
// column layout. The header ends where the first data token begins: the
// first digit that follows whitespace.
func newSurfaceSection(text string) (*surfaceSection, error) {
	headerEnd := -1
	previous := 'x'
	for i, r := range text {
		if unicode.IsSpace(previous) && unicode.IsDigit(r) {
			headerEnd = i
			break
		}
		previous = r
	}
	if headerEnd < 0 {
		return nil, ErrNoSurfaceRows
	}

	cols, err := parseSurfaceColumns(text[:headerEnd])
	if err != nil {
		return nil, err
	}

	return &surfaceSection{
		rawText: strings.TrimSpace(text[headerEnd:]),
		cols:    cols,
	}, nil
}

// validate makes a strict pass over every row and returns the first error.
func (s *surfaceSection) validate() error {
	sc := s.scan()
	for {
		chunk, err := sc.nextChunk()
		if err != nil {
			return fmt.Errorf("surface section: %w", err)
		}
		if chunk == "" {
			return nil
		}
		if _, err := parseSurfaceRow(chunk, s.cols); err != nil {
			return fmt.Errorf("surface section: %w", err)
		}
	}
}

func (s *surfaceSection) scan() *surfaceScanner {
	return &surfaceScanner{remaining: s.rawText, cols: s.cols}
}

// surfaceScanner yields surface rows one at a time. Rows that fail to parse
// are skipped; validate catches them when strictness matters.
type surfaceScanner struct {
	remaining string
	cols      surfaceColumns
	current   SurfaceData
}

// nextChunk slices off the text of the next row, or returns "" when the
// section is exhausted.
func (sc *surfaceScanner) nextChunk() (string, error) {
	brk, err := findNextNTokens(sc.remaining, sc.cols.numCols())
	if err != nil {
		return "", err
	}
	if brk < 0 {
		return "", nil
	}
	chunk := sc.remaining[:brk]
	sc.remaining = sc.remaining[brk:]
	return chunk, nil
}

// Next advances to the next parseable row, reporting false at end of section.
func (sc *surfaceScanner) Next() bool {
	for {
		chunk, err := sc.nextChunk()
		if err != nil || chunk == "" {
			return false
		}
		sd, err := parseSurfaceRow(chunk, sc.cols)
		if err != nil {
			continue
		}
		sc.current = sd
		return true
	}
}

// Record returns the row parsed by the last successful Next.
func (sc *surfaceScanner) Record() SurfaceData { return sc.current }
