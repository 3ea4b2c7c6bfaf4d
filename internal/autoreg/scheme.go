// Package autoreg holds the load autoregulation rules and the workout volume
// aggregation. Everything here is pure and safe for concurrent use.
package autoreg

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownRepScheme       = errors.New("unknown rep scheme")
	ErrUnknownAdjustmentLevel = errors.New("unknown adjustment level")
)

// RepScheme selects a target rep range: 3 (strength), 6 (hypertrophy), 10 (endurance).
type RepScheme int

const (
	SchemeStrength    RepScheme = 3
	SchemeHypertrophy RepScheme = 6
	SchemeEndurance   RepScheme = 10

	DefaultRepScheme = SchemeHypertrophy
)

// Threshold holds the rep-count boundaries of a scheme. Min < Mid < Max.
type Threshold struct {
	Min int `json:"min"`
	Mid int `json:"mid"`
	Max int `json:"max"`
}

var thresholds = map[RepScheme]Threshold{
	SchemeStrength:    {Min: 2, Mid: 4, Max: 6},
	SchemeHypertrophy: {Min: 2, Mid: 7, Max: 12},
	SchemeEndurance:   {Min: 6, Mid: 11, Max: 16},
}

// Threshold returns the boundaries for the scheme. Unknown schemes fall back
// to the default scheme's boundaries.
func (s RepScheme) Threshold() Threshold {
	if t, ok := thresholds[s]; ok {
		return t
	}
	return thresholds[DefaultRepScheme]
}

func (s RepScheme) Valid() bool {
	_, ok := thresholds[s]
	return ok
}

func ParseRepScheme(v int) (RepScheme, error) {
	s := RepScheme(v)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownRepScheme, v)
	}
	return s, nil
}

// AdjustmentLevel is the aggressiveness of a single load change.
type AdjustmentLevel string

const (
	LevelConservative AdjustmentLevel = "conservative"
	LevelMid          AdjustmentLevel = "mid"
	LevelProgressive  AdjustmentLevel = "progressive"

	DefaultAdjustmentLevel = LevelProgressive
)

var magnitudes = map[AdjustmentLevel]float64{
	LevelConservative: 2.5,
	LevelMid:          5,
	LevelProgressive:  10,
}

// Magnitude returns the weight increment of the level, the progressive one
// for unknown levels.
func (l AdjustmentLevel) Magnitude() float64 {
	if m, ok := magnitudes[l]; ok {
		return m
	}
	return magnitudes[DefaultAdjustmentLevel]
}

func (l AdjustmentLevel) Valid() bool {
	_, ok := magnitudes[l]
	return ok
}

// ParseAdjustmentLevel accepts level names case-insensitively, empty means default.
func ParseAdjustmentLevel(v string) (AdjustmentLevel, error) {
	if v == "" {
		return DefaultAdjustmentLevel, nil
	}
	l := AdjustmentLevel(strings.ToLower(strings.TrimSpace(v)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %s", ErrUnknownAdjustmentLevel, v)
	}
	return l, nil
}
