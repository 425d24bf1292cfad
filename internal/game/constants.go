package game

import "time"

const (
	// MinPlayers is the smallest table the role distribution supports
	MinPlayers = 4

	// MaxPlayers is the largest table the role distribution supports
	MaxPlayers = 8

	// TimerWarningSeconds is the remaining time at which the discussion warning fires
	TimerWarningSeconds = 30

	// TimerTickSeconds is the remaining time from which every second is announced
	TimerTickSeconds = 10

	// DefaultTimeUnit is how long one countdown second lasts
	DefaultTimeUnit = time.Second

	// Mixed difficulty rolls an integer in [0, MixedRollRange). Rolls below
	// MixedEasyBelow target easy, below MixedMediumBelow medium, the rest hard.
	MixedRollRange   = 100
	MixedEasyBelow   = 30
	MixedMediumBelow = 80
)
