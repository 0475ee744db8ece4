// Command validate runs a strict parse over Bufkit files and reports the
// result per file. It exits non-zero if any file fails, so it can gate a
// spool directory before the ingest service sees it.
//
// Usage:
//
//	go run ./cmd/validate [-v] file.buf dir/ ...
//
// Directory arguments are scanned for .buf files, non-recursively.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/bufkit-ingest-service/internal/bufkit"
)

func main() {
	verbose := flag.Bool("v", false, "print per-sounding details for passing files")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: validate [-v] file.buf dir/ ...")
		os.Exit(2)
	}

	paths, err := collectPaths(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "FATAL: no .buf files found")
		os.Exit(1)
	}

	failures := 0
	for _, path := range paths {
		if !validateFile(path, *verbose) {
			failures++
		}
	}

	fmt.Printf("\n%d file(s) checked, %d failed\n", len(paths), failures)
	if failures > 0 {
		os.Exit(1)
	}
}

// collectPaths expands directory arguments into their .buf files.
func collectPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".buf") {
				paths = append(paths, filepath.Join(arg, entry.Name()))
			}
		}
	}
	return paths, nil
}

// validateFile parses one file strictly and prints a PASS/FAIL line.
func validateFile(path string, verbose bool) bool {
	f, err := bufkit.Load(path)
	if err != nil {
		fmt.Printf("FAIL %s: %v\n", path, err)
		return false
	}

	data, err := f.Data()
	if err != nil {
		fmt.Printf("FAIL %s: %v\n", path, err)
		return false
	}
	if err := data.Validate(); err != nil {
		fmt.Printf("FAIL %s: %v\n", path, err)
		return false
	}

	count := 0
	sc := data.Soundings()
	for sc.Next() {
		if verbose {
			snd := sc.Sounding()
			fmt.Printf("  %s lead=%dh levels=%d\n",
				snd.ValidTime.Format("2006-01-02 15:04"), snd.LeadTime, len(snd.Levels))
		}
		count++
	}

	fmt.Printf("PASS %s: %d sounding(s)\n", path, count)
	return true
}
