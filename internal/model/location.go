package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Location is a position on a map.
// Value type, passed by value (immutable).
type Location struct {
	MapID uuid.UUID
	X     byte
	Y     byte
}

// NewLocation creates a Location on the given map.
func NewLocation(mapID uuid.UUID, x, y byte) Location {
	return Location{MapID: mapID, X: x, Y: y}
}

// WithMap returns a copy of the location moved to another map, keeping the tile.
func (l Location) WithMap(mapID uuid.UUID) Location {
	l.MapID = mapID
	return l
}

// WithCoordinates returns a copy of the location with new tile coordinates.
func (l Location) WithCoordinates(x, y byte) Location {
	l.X = x
	l.Y = y
	return l
}

func (l Location) String() string {
	return fmt.Sprintf("%s (%d, %d)", l.MapID, l.X, l.Y)
}
