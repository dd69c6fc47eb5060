package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSlot(t *testing.T) {
	tests := []struct {
		name       string
		house      string
		roomNumber string
		wantHouse  string
		wantRoom   string
	}{
		{"explicit house wins", "2", "3", "2", "3"},
		{"explicit house keeps room verbatim", "1", "102", "1", "102"},
		{"legacy multi-digit numeral splits", "", "102", "1", "2"},
		{"legacy leading zeros stripped", "", "203", "2", "3"},
		{"legacy all-zero remainder defaults to room 1", "", "100", "1", "1"},
		{"legacy two-digit", "", "21", "2", "1"},
		{"single digit stays verbatim under house 1", "", "3", "1", "3"},
		{"non-numeric stays verbatim under house 1", "", "attic", "1", "attic"},
		{"empty room", "", "", "1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			house, room := DeriveSlot(tt.house, tt.roomNumber)
			assert.Equal(t, tt.wantHouse, house)
			assert.Equal(t, tt.wantRoom, room)
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "1-2", Key("1", "2"))
}

func TestBedCount(t *testing.T) {
	assert.Equal(t, 4, BedCount("1", "1"))
	assert.Equal(t, 2, BedCount("1", "3"))
	assert.Equal(t, 0, BedCount("9", "9"))
}

func TestBedLetters(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, BedLetters(3))
	assert.Empty(t, BedLetters(0))
}
