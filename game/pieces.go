package game

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrMalformedShape marks shape data that cannot describe a valid piece.
var ErrMalformedShape = errors.New("malformed shape data")

//go:embed pieces.txt
var standardShapes string

var (
	standardPieces []*Piece
	piecesOnce     sync.Once
)

// StandardPieces returns the 21 standard templates. They are parsed once and
// shared read-only; broken embedded data is a build defect and panics.
func StandardPieces() []*Piece {
	piecesOnce.Do(func() {
		pieces, err := ParsePieces(strings.NewReader(standardShapes))
		if err != nil {
			panic(fmt.Sprintf("embedded piece data: %v", err))
		}
		standardPieces = pieces
	})
	return standardPieces
}

// ParsePieces reads shape text: rows of S/E/C/. markers per rotation, a line
// starting with '#' between rotations and a line starting with '/' closing
// each piece.
func ParsePieces(r io.Reader) ([]*Piece, error) {
	var (
		pieces []*Piece
		blocks [][]string
		rows   []string
		line   int
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line++
		s := strings.TrimRight(scanner.Text(), " \t\r")
		if s == "" {
			continue
		}
		switch s[0] {
		case '#':
			if len(rows) == 0 {
				return nil, fmt.Errorf("line %d: %w: empty rotation", line, ErrMalformedShape)
			}
			blocks = append(blocks, rows)
			rows = nil
		case '/':
			if len(rows) == 0 {
				return nil, fmt.Errorf("line %d: %w: empty rotation", line, ErrMalformedShape)
			}
			blocks = append(blocks, rows)
			p, err := newPiece(len(pieces), blocks)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			pieces = append(pieces, p)
			blocks, rows = nil, nil
		default:
			rows = append(rows, s)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shape data: %w", err)
	}
	if len(rows) > 0 || len(blocks) > 0 {
		return nil, fmt.Errorf("%w: piece %d is not terminated", ErrMalformedShape, len(pieces))
	}
	if len(pieces) == 0 {
		return nil, fmt.Errorf("%w: no pieces", ErrMalformedShape)
	}
	return pieces, nil
}
