// Package dataset reads node and edge CSV files into raw rows.
//
// Node files carry three columns (id, label, properties); edge files carry
// five (id, source, target, label, properties). Rows are yielded lazily
// through scanner types; a scanner is restarted only by reopening the file.
package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	apperrors "github.com/graphbench/graphbench-go/internal/errors"
)

const (
	nodeFieldCount = 3
	edgeFieldCount = 5
)

// NodeRow is one raw node CSV row, positionally meaningful, undecoded
type NodeRow struct {
	ID         string
	Label      string
	Properties string
	Line       int
}

// EdgeRow is one raw edge CSV row, positionally meaningful, undecoded
type EdgeRow struct {
	ID         string
	Source     string
	Target     string
	Label      string
	Properties string
	Line       int
}

type scanner struct {
	file   *os.File
	reader *csv.Reader
	record []string
	line   int
	err    error
	closed bool
}

func open(path string, header bool, fields int) (*scanner, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.FileAccessError(err, path)
	}

	r := csv.NewReader(file)
	r.FieldsPerRecord = fields

	s := &scanner{file: file, reader: r}
	if header {
		if _, err := r.Read(); err != nil && err != io.EOF {
			file.Close()
			return nil, wrapReadError(err, path)
		}
	}
	return s, nil
}

// next advances to the following row, closing the file on EOF or error so
// the handle is released on every exit path.
func (s *scanner) next(path string) bool {
	if s.err != nil || s.closed {
		return false
	}
	record, err := s.reader.Read()
	if err == io.EOF {
		s.Close()
		return false
	}
	if err != nil {
		s.err = wrapReadError(err, path)
		s.Close()
		return false
	}
	s.record = record
	// Physical line of the record start; quoted cells may span lines, so a
	// per-record counter would drift.
	s.line, _ = s.reader.FieldPos(0)
	return true
}

// Err returns the first error encountered during iteration
func (s *scanner) Err() error {
	return s.err
}

// Close releases the underlying file. Safe to call more than once.
func (s *scanner) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}

func wrapReadError(err error, path string) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return apperrors.MalformedRowError(err, path, perr.Line)
	}
	return apperrors.FileAccessError(err, path)
}

// NodeScanner yields NodeRow values from a node CSV file
type NodeScanner struct {
	s    *scanner
	path string
}

// OpenNodes opens a node CSV file, skipping the first line when header is set
func OpenNodes(path string, header bool) (*NodeScanner, error) {
	s, err := open(path, header, nodeFieldCount)
	if err != nil {
		return nil, err
	}
	return &NodeScanner{s: s, path: path}, nil
}

// Next advances to the next row, reporting false at EOF or on error
func (n *NodeScanner) Next() bool { return n.s.next(n.path) }

// Row returns the current row. Valid only after a true Next.
func (n *NodeScanner) Row() NodeRow {
	rec := n.s.record
	return NodeRow{ID: rec[0], Label: rec[1], Properties: rec[2], Line: n.s.line}
}

// Err returns the first error encountered during iteration
func (n *NodeScanner) Err() error { return n.s.Err() }

// Close releases the underlying file
func (n *NodeScanner) Close() error { return n.s.Close() }

// EdgeScanner yields EdgeRow values from an edge CSV file
type EdgeScanner struct {
	s    *scanner
	path string
}

// OpenEdges opens an edge CSV file, skipping the first line when header is set
func OpenEdges(path string, header bool) (*EdgeScanner, error) {
	s, err := open(path, header, edgeFieldCount)
	if err != nil {
		return nil, err
	}
	return &EdgeScanner{s: s, path: path}, nil
}

// Next advances to the next row, reporting false at EOF or on error
func (e *EdgeScanner) Next() bool { return e.s.next(e.path) }

// Row returns the current row. Valid only after a true Next.
func (e *EdgeScanner) Row() EdgeRow {
	rec := e.s.record
	return EdgeRow{ID: rec[0], Source: rec[1], Target: rec[2], Label: rec[3], Properties: rec[4], Line: e.s.line}
}

// Err returns the first error encountered during iteration
func (e *EdgeScanner) Err() error { return e.s.Err() }

// Close releases the underlying file
func (e *EdgeScanner) Close() error { return e.s.Close() }

// ReadAllNodes materializes every node row of a CSV file
func ReadAllNodes(path string, header bool) ([]NodeRow, error) {
	sc, err := OpenNodes(path, header)
	if err != nil {
		return nil, err
	}
	defer sc.Close()

	var rows []NodeRow
	for sc.Next() {
		rows = append(rows, sc.Row())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// ReadAllEdges materializes every edge row of a CSV file
func ReadAllEdges(path string, header bool) ([]EdgeRow, error) {
	sc, err := OpenEdges(path, header)
	if err != nil {
		return nil, err
	}
	defer sc.Close()

	var rows []EdgeRow
	for sc.Next() {
		rows = append(rows, sc.Row())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// CheckFiles verifies that both dataset files exist and are readable before
// the pipeline starts.
func CheckFiles(paths ...string) error {
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return apperrors.FileAccessError(err, p)
		}
		f.Close()
	}
	return nil
}
