package models

import "time"

// Child represents a child profile owned by a parent account
type Child struct {
	ID           int64
	ParentID     int64
	Name         string
	Age          int
	CurrentLevel int
	Stars        int
	HighScore    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InitialLevelForAge returns the starting game level for a child of the
// given age: under 3 starts at level 1, ages 3-4 at level 2, 5 and up at
// level 3.
func InitialLevelForAge(age int) int {
	switch {
	case age >= 5:
		return 3
	case age >= 3:
		return 2
	default:
		return 1
	}
}
