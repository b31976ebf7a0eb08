// Package ledger implements the append-only CSV log that is NutriMind's
// source of truth. Rows are never updated or deleted; the whole file is
// re-read on every query.
package ledger

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/hpungsan/nutrimind/internal/entry"
	"github.com/hpungsan/nutrimind/internal/errors"
)

// Columns is the ledger schema, order-sensitive. The header row written on
// file creation is validated on every read and append; a mismatch means the
// file was produced by a different schema version and must not be touched.
var Columns = []string{"date", "foods", "sleep_hours", "exercise", "mood"}

// Header is the canonical header line.
var Header = strings.Join(Columns, ",")

// utf8BOM is tolerated at the start of the file for spreadsheet-tool
// compatibility. We never write it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Store reads and appends ledger rows. Appends are serialized with a mutex;
// the design assumes a single writer process, the lock only guards against
// interleaved writes from concurrent sessions inside it.
type Store struct {
	path string
	mu   sync.Mutex
}

// Open prepares a Store at baseDir/filename, creating baseDir if needed.
// The ledger file itself is created lazily on first append.
func Open(baseDir, filename string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create base directory: %w", err))
	}
	return &Store{path: filepath.Join(baseDir, filename)}, nil
}

// Path returns the ledger file path.
func (s *Store) Path() string {
	return s.path
}

// Append adds one entry to the end of the ledger. A new file gets the header
// row first; an existing file has its header validated so we never append
// rows into a drifted schema.
func (s *Store) Append(e entry.DailyEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeHeader := false
	info, err := os.Stat(s.path)
	switch {
	case os.IsNotExist(err):
		writeHeader = true
	case err != nil:
		return errors.NewInternal(fmt.Errorf("failed to stat ledger: %w", err))
	case info.Size() == 0:
		writeHeader = true
	default:
		if err := s.checkHeader(); err != nil {
			return err
		}
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("failed to open ledger: %w", err))
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if writeHeader {
		if err := w.Write(Columns); err != nil {
			return errors.NewInternal(fmt.Errorf("failed to write header: %w", err))
		}
	}

	record := []string{
		e.Date.Format(entry.DateLayout),
		e.Foods,
		strconv.FormatFloat(e.SleepHours, 'f', -1, 64),
		e.Exercise,
		strconv.Itoa(e.Mood),
	}
	if err := w.Write(record); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to write row: %w", err))
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to flush ledger: %w", err))
	}
	return nil
}

// ReadAll parses every row of the ledger in file order. A missing file is an
// empty ledger, not an error. Malformed rows are skipped and reported as
// human-readable notices so aggregation can continue; only a header mismatch
// aborts the read.
func (s *Store) ReadAll() ([]entry.DailyEntry, []string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []entry.DailyEntry{}, nil, nil
		}
		return nil, nil, errors.NewInternal(fmt.Errorf("failed to read ledger: %w", err))
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return []entry.DailyEntry{}, nil, nil
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // column-count errors are handled per row

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, errors.NewInternal(fmt.Errorf("failed to parse ledger CSV: %w", err))
	}
	if len(records) == 0 {
		return []entry.DailyEntry{}, nil, nil
	}

	if err := validateHeader(records[0]); err != nil {
		return nil, nil, err
	}

	entries := make([]entry.DailyEntry, 0, len(records)-1)
	var notices []string
	for i, record := range records[1:] {
		line := i + 2 // 1-based, after the header
		e, err := parseRecord(record)
		if err != nil {
			notice := fmt.Sprintf("line %d: %v — row skipped", line, err)
			notices = append(notices, notice)
			logrus.WithField("ledger", s.path).Warn(notice)
			continue
		}
		entries = append(entries, e)
	}

	return entries, notices, nil
}

// checkHeader validates the header of an existing non-empty ledger file.
func (s *Store) checkHeader() error {
	file, err := os.Open(s.path)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("failed to open ledger: %w", err))
	}
	defer file.Close()

	buf := make([]byte, 256)
	n, _ := file.Read(buf)
	head := bytes.TrimPrefix(buf[:n], utf8BOM)
	if idx := bytes.IndexByte(head, '\n'); idx >= 0 {
		head = head[:idx]
	}

	r := csv.NewReader(bytes.NewReader(head))
	record, err := r.Read()
	if err != nil {
		return errors.NewSchemaDrift(Header, strings.TrimRight(string(head), "\r"))
	}
	return validateHeader(record)
}

// validateHeader checks the first record against the canonical columns.
// Extra trailing columns (legacy per-category flags) are tolerated; the
// first five must match by name and order.
func validateHeader(record []string) error {
	if len(record) < len(Columns) {
		return errors.NewSchemaDrift(Header, strings.Join(record, ","))
	}
	for i, col := range Columns {
		if strings.TrimSpace(record[i]) != col {
			return errors.NewSchemaDrift(Header, strings.Join(record, ","))
		}
	}
	return nil
}

// parseRecord converts one CSV record into a DailyEntry. Extra trailing
// columns are ignored.
func parseRecord(record []string) (entry.DailyEntry, error) {
	if len(record) < len(Columns) {
		return entry.DailyEntry{}, fmt.Errorf("expected %d columns, got %d", len(Columns), len(record))
	}

	date, err := entry.ParseDate(record[0])
	if err != nil {
		return entry.DailyEntry{}, fmt.Errorf("unparseable date %q", record[0])
	}

	sleep, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil {
		return entry.DailyEntry{}, fmt.Errorf("unparseable sleep_hours %q", record[2])
	}

	mood, err := strconv.Atoi(strings.TrimSpace(record[4]))
	if err != nil {
		return entry.DailyEntry{}, fmt.Errorf("unparseable mood %q", record[4])
	}

	return entry.DailyEntry{
		Date:       date,
		Foods:      record[1],
		SleepHours: sleep,
		Exercise:   record[3],
		Mood:       mood,
	}, nil
}
