package engine

import "time"

const day = 24 * time.Hour

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

// Policy holds the thresholds that govern a frequency.
//
// Grace is how long a never-completed task stays alive after creation.
// Renewal is how long a streak survives after the last completion.
type Policy struct {
	Grace   time.Duration
	Renewal time.Duration
	Reward  int
}

var policies = map[Frequency]Policy{
	FrequencyDaily:   {Grace: day, Renewal: 2 * day, Reward: 10},
	FrequencyWeekly:  {Grace: 7 * day, Renewal: 8 * day, Reward: 30},
	FrequencyMonthly: {Grace: 30 * day, Renewal: 31 * day, Reward: 50},
}

// PolicyFor returns the policy for f. ok is false for unknown frequencies,
// which never expire and earn nothing.
func PolicyFor(f Frequency) (p Policy, ok bool) {
	p, ok = policies[f]
	return p, ok
}

// RewardFor returns the XP earned by one completion.
func RewardFor(f Frequency) int {
	return policies[f].Reward
}
