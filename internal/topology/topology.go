// Package topology holds the static house/room layout and the slot address
// derivation shared by every bed view.
package topology

import "strings"

// Room describes one configured room: which house it belongs to and how many
// bed slots it nominally has.
type Room struct {
	House  string
	Number string
	Beds   int
}

// DefaultRooms is the display order for the property. Rooms that show up in
// storage but not here are still rendered after the configured ones.
var DefaultRooms = []Room{
	{House: "1", Number: "1", Beds: 4},
	{House: "1", Number: "2", Beds: 4},
	{House: "1", Number: "3", Beds: 2},
	{House: "2", Number: "1", Beds: 4},
	{House: "2", Number: "2", Beds: 4},
	{House: "2", Number: "3", Beds: 2},
}

// Key builds the canonical "house-room" grouping key.
func Key(house, room string) string {
	return house + "-" + room
}

// DeriveSlot resolves the house and room for a record, including the two
// legacy encodings: records written before the house field existed packed the
// house into the first digit of a multi-digit room numeral ("102" means house
// 1, room 2).
func DeriveSlot(house, roomNumber string) (string, string) {
	if house != "" {
		return house, roomNumber
	}
	if len(roomNumber) >= 2 && isDigits(roomNumber) {
		rest := strings.TrimLeft(roomNumber[1:], "0")
		if rest == "" {
			rest = "1"
		}
		return roomNumber[:1], rest
	}
	return "1", roomNumber
}

// BedCount returns the configured slot count for a room, zero when the room
// is not part of the static layout.
func BedCount(house, room string) int {
	for _, r := range DefaultRooms {
		if r.House == house && r.Number == room {
			return r.Beds
		}
	}
	return 0
}

// BedLetters yields the ordered bed letters for n slots: A, B, C, ...
func BedLetters(n int) []string {
	letters := make([]string, 0, n)
	for i := 0; i < n; i++ {
		letters = append(letters, string(rune('A'+i)))
	}
	return letters
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
