package engine

import (
	"fmt"
	"strings"
)

// ParseFrequency parses user input to a Frequency.
// Supported: daily, weekly, monthly and the short forms d/day, w/week, m/month.
func ParseFrequency(input string) (Frequency, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "daily", "day", "d":
		return FrequencyDaily, nil
	case "weekly", "week", "w":
		return FrequencyWeekly, nil
	case "monthly", "month", "m":
		return FrequencyMonthly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, input)
	}
}
