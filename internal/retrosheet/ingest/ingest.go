// Package ingest discovers and reads Retrosheet play-by-play event files
// (.EVN/.EVA) off disk, splitting each file's comma-separated lines into
// per-game record runs on "id" boundaries and folding each run through the
// retrosheet package's state machine.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/chadwickbureau/retrosheet/internal/retrosheet"
)

// Options configures how an event file is split into games and folded.
type Options struct {
	// MaxEventsPerGame bounds EventID per game and seeds the EventKey
	// offset (GameNumber * MaxEventsPerGame) that keeps keys globally
	// unique across every game in a file.
	MaxEventsPerGame int64
	// StrictParsing aborts ReadEventFile on the first record that fails to
	// decode or apply (any error kind) instead of skipping the offending
	// record and continuing.
	StrictParsing bool
}

// ReadEventFile reads one event file at path and returns one ParsedGame per
// "id" record run found in it, in file order. When logger is non-nil, a
// non-strict parse's skipped records are logged rather than silently
// dropped, one line per skip with the game's file and number attached.
func ReadEventFile(path string, opts Options, logger *log.Logger) ([]retrosheet.ParsedGame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open event file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var games [][][]string
	var current [][]string
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "id" && len(current) > 0 {
			games = append(games, current)
			current = nil
		}
		current = append(current, fields)
	}
	if len(current) > 0 {
		games = append(games, current)
	}

	sourceFile := filepath.Base(path)
	results := make([]retrosheet.ParsedGame, 0, len(games))
	for i, lines := range games {
		gameNumber := i + 1
		fileInfo := retrosheet.FileInfo{SourceFile: sourceFile, GameNumber: gameNumber}
		offset := int64(gameNumber) * opts.MaxEventsPerGame

		parsed, err := retrosheet.ParseGameRecords(lines, fileInfo, offset, opts.StrictParsing)
		if err != nil {
			return results, fmt.Errorf("%s game %d: %w", sourceFile, gameNumber, err)
		}
		if logger != nil {
			for _, skipErr := range parsed.Skipped {
				logger.Warn("skipped malformed record", "file", sourceFile, "game", gameNumber, "err", skipErr)
			}
		}
		results = append(results, parsed)
	}
	return results, nil
}

// DiscoverEventFiles walks dir for files with a Retrosheet event-file
// extension (.EVN or .EVA, all upper-case or all lower-case), returning their paths sorted for
// deterministic ingest order.
func DiscoverEventFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch ext := filepath.Ext(path); len(ext) {
		case 4:
			switch ext[1:] {
			case "EVN", "EVA", "evn", "eva":
				paths = append(paths, path)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering event files under %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
