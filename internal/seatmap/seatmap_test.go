package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelsForDeterministic(t *testing.T) {
	first, err := LabelsFor(40)
	require.NoError(t, err)
	second, err := LabelsFor(40)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 40)
	assert.Equal(t, "A1", first[0])
	assert.Equal(t, "A4", first[3])
	assert.Equal(t, "B1", first[4])
	assert.Equal(t, "J4", first[39])
}

func TestLabelsForNoDuplicates(t *testing.T) {
	labels, err := LabelsFor(104)
	require.NoError(t, err)

	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		assert.False(t, seen[label], "duplicate label %s", label)
		seen[label] = true
	}
}

func TestValidateRejectsBadCounts(t *testing.T) {
	for _, count := range []int{-4, 0, 1, 3, 5, 42, MaxSeats + 4} {
		err := Validate(count)
		assert.ErrorIs(t, err, ErrInvalidSeatCount, "count %d", count)
	}

	for _, count := range []int{4, 8, 40, MaxSeats} {
		assert.NoError(t, Validate(count), "count %d", count)
	}
}

func TestLabelsForInvalidCount(t *testing.T) {
	labels, err := LabelsFor(42)
	assert.ErrorIs(t, err, ErrInvalidSeatCount)
	assert.Nil(t, labels)
}

func TestIndex(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"A1", 0},
		{"A4", 3},
		{"B1", 4},
		{"E3", 18},
		{"J4", 39},
	}

	for _, tt := range tests {
		got, err := Index(40, tt.label)
		require.NoError(t, err, tt.label)
		assert.Equal(t, tt.want, got, tt.label)
	}
}

func TestIndexRejectsMalformedLabels(t *testing.T) {
	for _, label := range []string{"", "A", "1A", "A0", "A5", "a1", "A1x", "AA1", "Z9"} {
		_, err := Index(40, label)
		assert.Error(t, err, "label %q", label)
	}
}

func TestIndexRejectsOutOfRange(t *testing.T) {
	// K1 is seat 40 on a 40-seat bus, one past the end
	_, err := Index(40, "K1")
	assert.Error(t, err)

	assert.False(t, Contains(40, "K1"))
	assert.True(t, Contains(40, "J4"))
}
