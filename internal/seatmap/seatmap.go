// Package seatmap derives the stable seat-label layout of a trip from its
// seat count. Labels are never stored; every caller recomputes them, so two
// trips with the same capacity always expose identical label sequences.
package seatmap

import (
	"errors"
	"fmt"
	"strconv"
)

// SeatsPerRow is the fixed bus layout: two seats either side of the aisle.
const SeatsPerRow = 4

// MaxSeats caps a trip at 26 rows (A..Z).
const MaxSeats = 26 * SeatsPerRow

// ErrInvalidSeatCount reports a seat count that is not a positive multiple
// of SeatsPerRow. Trip creation must reject it; it is never tolerated here.
var ErrInvalidSeatCount = errors.New("total seats must be a positive multiple of 4")

const rowLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Validate checks that totalSeats describes a well-formed layout.
func Validate(totalSeats int) error {
	if totalSeats <= 0 || totalSeats%SeatsPerRow != 0 || totalSeats > MaxSeats {
		return fmt.Errorf("%w: got %d", ErrInvalidSeatCount, totalSeats)
	}
	return nil
}

// LabelsFor returns the ordered label sequence for a trip with totalSeats
// seats: A1..A4, B1..B4, and so on. The result is deterministic.
func LabelsFor(totalSeats int) ([]string, error) {
	if err := Validate(totalSeats); err != nil {
		return nil, err
	}

	labels := make([]string, totalSeats)
	for i := 0; i < totalSeats; i++ {
		labels[i] = fmt.Sprintf("%c%d", rowLetters[i/SeatsPerRow], i%SeatsPerRow+1)
	}
	return labels, nil
}

// Contains reports whether label names a seat on a trip with totalSeats
// seats. It rejects malformed labels rather than guessing.
func Contains(totalSeats int, label string) bool {
	idx, err := Index(totalSeats, label)
	return err == nil && idx >= 0
}

// Index returns the zero-based seat index for label, or an error if the
// label does not belong to the layout.
func Index(totalSeats int, label string) (int, error) {
	if err := Validate(totalSeats); err != nil {
		return 0, err
	}
	if len(label) < 2 {
		return 0, fmt.Errorf("malformed seat label %q", label)
	}

	row := int(label[0] - 'A')
	if row < 0 || row >= len(rowLetters) {
		return 0, fmt.Errorf("malformed seat label %q", label)
	}

	col, err := strconv.Atoi(label[1:])
	if err != nil {
		return 0, fmt.Errorf("malformed seat label %q", label)
	}
	if col < 1 || col > SeatsPerRow {
		return 0, fmt.Errorf("malformed seat label %q", label)
	}

	idx := row*SeatsPerRow + col - 1
	if idx >= totalSeats {
		return 0, fmt.Errorf("seat label %q out of range for %d seats", label, totalSeats)
	}
	return idx, nil
}
