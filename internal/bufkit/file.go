// Package bufkit loads, parses, validates, and iterates over Bufkit files.
// A file splits at the surface header into an upper-air section (one block
// per forecast hour) and a surface section (one row per forecast hour);
// matching timesteps merge into domain soundings.
package bufkit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/bufkit-ingest-service/internal/domain"
)

// ErrNoBreakPoint reports text with no surface header, so the upper-air
// and surface sections cannot be told apart.
var ErrNoBreakPoint = errors.New("no break between upper-air and surface sections")

// surfaceBreakMarker opens the surface section header in every Bufkit
// file: the station number and valid time columns.
const surfaceBreakMarker = "STN YYMMDD/HHMM"

// File holds an entire Bufkit file in memory.
type File struct {
	text string
	name string
}

// Load reads a Bufkit file from disk.
func Load(path string) (*File, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load bufkit file: %w", err)
	}
	return &File{text: string(contents), name: filepath.Base(path)}, nil
}

// NewFile wraps raw Bufkit text, e.g. a payload received over Kafka.
func NewFile(text, name string) *File {
	return &File{text: text, name: name}
}

// Name returns the file's base name.
func (f *File) Name() string { return f.name }

// RawText returns the unparsed file contents.
func (f *File) RawText() string { return f.text }

// Data splits the file into its sections for iteration or validation.
func (f *File) Data() (*Data, error) {
	return newData(f.text, f.name)
}

// Validate parses the whole file strictly and returns the first problem:
// a missing section break, a malformed row or block, or a profile whose
// columns disagree on length.
func (f *File) Validate() error {
	data, err := f.Data()
	if err != nil {
		return err
	}
	return data.Validate()
}

// Data is a parsed view of the two sections of a Bufkit file.
type Data struct {
	upperAir *upperAirSection
	surface  *surfaceSection
	name     string
}

func newData(text, name string) (*Data, error) {
	brk := strings.Index(text, surfaceBreakMarker)
	if brk < 0 {
		return nil, ErrNoBreakPoint
	}

	surface, err := newSurfaceSection(text[brk:])
	if err != nil {
		return nil, err
	}

	return &Data{
		upperAir: newUpperAirSection(text[:brk]),
		surface:  surface,
		name:     name,
	}, nil
}

// Validate runs a strict pass over both sections.
func (d *Data) Validate() error {
	if err := d.upperAir.validate(); err != nil {
		return err
	}
	return d.surface.validate()
}

// Soundings returns a scanner over the merged soundings of the file.
func (d *Data) Soundings() *SoundingScanner {
	return &SoundingScanner{
		upperAir: d.upperAir.scan(),
		surface:  d.surface.scan(),
		source:   d.name,
	}
}

// SoundingScanner merges the upper-air and surface streams on equal valid
// times. When the streams skew, the side with the older valid time is
// advanced until they meet; timesteps present in only one stream are
// dropped.
type SoundingScanner struct {
	upperAir *upperAirScanner
	surface  *surfaceScanner
	source   string
	current  domain.Sounding
}

// Next advances to the next merged sounding, reporting false when either
// stream is exhausted.
func (s *SoundingScanner) Next() bool {
	if !s.upperAir.Next() || !s.surface.Next() {
		return false
	}
	ua := s.upperAir.Record()
	sd := s.surface.Record()

	for {
		for sd.ValidTime.Before(ua.ValidTime) {
			if !s.surface.Next() {
				return false
			}
			sd = s.surface.Record()
		}
		for ua.ValidTime.Before(sd.ValidTime) {
			if !s.upperAir.Next() {
				return false
			}
			ua = s.upperAir.Record()
		}
		if ua.ValidTime.Equal(sd.ValidTime) {
			s.current = domain.Finalize(combine(ua, sd), s.source)
			return true
		}
	}
}

// Sounding returns the sounding produced by the last successful Next.
func (s *SoundingScanner) Sounding() domain.Sounding { return s.current }
