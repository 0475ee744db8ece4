package bufkit

import (
	"fmt"
	"strings"
)

// upperAirSection is the upper-air half of a Bufkit file: a run of blocks,
// each opening with a "STID" station header.
type upperAirSection struct {
	rawText string
}

func newUpperAirSection(text string) *upperAirSection {
	return &upperAirSection{rawText: text}
}

// validate makes a strict pass over every block and returns the first
// parse or shape error.
func (s *upperAirSection) validate() error {
	sc := s.scan()
	for {
		chunk := sc.nextChunk()
		if chunk == "" {
			return nil
		}
		ua, err := ParseUpperAir(chunk)
		if err != nil {
			return fmt.Errorf("upper-air section: %w", err)
		}
		if err := ua.Validate(); err != nil {
			return fmt.Errorf("upper-air section: %w", err)
		}
	}
}

func (s *upperAirSection) scan() *upperAirScanner {
	return &upperAirScanner{remaining: s.rawText}
}

// upperAirScanner yields upper-air timesteps one at a time, skipping
// blocks that fail to parse.
type upperAirScanner struct {
	remaining string
	current   UpperAir
}

// nextChunk slices off the next STID-delimited block, or returns "" when
// the section is exhausted.
func (sc *upperAirScanner) nextChunk() string {
	start := strings.Index(sc.remaining, "STID")
	if start < 0 {
		sc.remaining = ""
		return ""
	}
	rest := sc.remaining[start+len("STID"):]
	end := strings.Index(rest, "STID")
	if end < 0 {
		chunk := sc.remaining[start:]
		sc.remaining = ""
		return chunk
	}
	chunk := sc.remaining[start : start+len("STID")+end]
	sc.remaining = rest[end:]
	return chunk
}

// Next advances to the next parseable block, reporting false at end of section.
func (sc *upperAirScanner) Next() bool {
	for {
		chunk := sc.nextChunk()
		if chunk == "" {
			return false
		}
		ua, err := ParseUpperAir(chunk)
		if err != nil || ua.Validate() != nil {
			continue
		}
		sc.current = ua
		return true
	}
}

// Record returns the block parsed by the last successful Next.
func (sc *upperAirScanner) Record() UpperAir { return sc.current }
