package models

import (
	"sort"
	"strings"
)

// ============================================================
// Floor Levels
// ============================================================

const (
	FloorBasement = "basement"
	FloorFirst    = "first"
	FloorSecond   = "second"
	FloorThird    = "third"
	FloorFourth   = "fourth"
	FloorFifth    = "fifth"
	FloorSixth    = "sixth"
	FloorSeventh  = "seventh"
	FloorEighth   = "eighth"
	FloorNinth    = "ninth"
	FloorTenth    = "tenth"
)

// Sentinels sent by older clients when a location is skipped.
const (
	UnknownFloor      = "unknown"
	UnknownBuilding   = "Unknown Building"
	UnknownFloorGroup = "Unknown Floor"
)

var floorRank = map[string]int{
	FloorBasement: 0,
	FloorFirst:    1,
	FloorSecond:   2,
	FloorThird:    3,
	FloorFourth:   4,
	FloorFifth:    5,
	FloorSixth:    6,
	FloorSeventh:  7,
	FloorEighth:   8,
	FloorNinth:    9,
	FloorTenth:    10,
}

// DefaultFloors is offered for buildings that have no floor plan at all.
func DefaultFloors() []string {
	return []string{FloorBasement, FloorFirst, FloorSecond, FloorThird, FloorFourth, FloorFifth}
}

// IsKnownFloor reports whether floor is one of the built-in level tokens.
func IsKnownFloor(floor string) bool {
	_, ok := floorRank[floor]
	return ok
}

// NormalizeFloor lowercases and trims a floor token.
func NormalizeFloor(floor string) string {
	return strings.ToLower(strings.TrimSpace(floor))
}

// FloorLess orders known levels bottom-up, then unknown tokens lexicographically.
func FloorLess(a, b string) bool {
	ra, okA := floorRank[a]
	rb, okB := floorRank[b]
	switch {
	case okA && okB:
		return ra < rb
	case okA:
		return true
	case okB:
		return false
	default:
		return a < b
	}
}

// SortFloors sorts floors in place using FloorLess.
func SortFloors(floors []string) {
	sort.SliceStable(floors, func(i, j int) bool {
		return FloorLess(floors[i], floors[j])
	})
}
