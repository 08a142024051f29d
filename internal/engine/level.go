package engine

import "math"

// LevelCoef scales the level curve: XP_req = LevelCoef * Level^1.5.
const LevelCoef = 100.0

// XPRequiredForLevel returns the total XP threshold for the given level.
// Level 0 requires 0 XP.
func XPRequiredForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	// ceil so float rounding never makes a threshold easier
	return int(math.Ceil(LevelCoef * math.Pow(float64(level), 1.5)))
}

// LevelForXP returns the highest level L such that xp >= XPRequiredForLevel(L).
func LevelForXP(xp int) int {
	if xp <= 0 {
		return 0
	}

	low, high := 0, 1
	for XPRequiredForLevel(high) <= xp {
		low = high
		high *= 2
		if high > 1_000_000 {
			break
		}
	}
	for low+1 < high {
		mid := low + (high-low)/2
		if XPRequiredForLevel(mid) <= xp {
			low = mid
		} else {
			high = mid
		}
	}
	return low
}

// LevelProgress describes where xp sits between two level thresholds.
type LevelProgress struct {
	Level   int
	Current int // XP earned inside the current level
	Needed  int // XP span of the current level
}

func ProgressForXP(xp int) LevelProgress {
	lvl := LevelForXP(xp)
	lo := XPRequiredForLevel(lvl)
	hi := XPRequiredForLevel(lvl + 1)
	return LevelProgress{Level: lvl, Current: max(0, xp-lo), Needed: hi - lo}
}
