package autoreg

import (
	"fmt"
	"math"
	"strconv"
)

// ReportRow is one set of a workout together with its exercise name.
type ReportRow struct {
	Exercise string
	Weight   float64
	Reps     int
	RPE      float64
}

// Adjustment is the load recommendation derived from a single set.
type Adjustment struct {
	Exercise        string  `json:"exerciseName"`
	AvgRPE          float64 `json:"avgRpe"`
	OriginalWeight  float64 `json:"originalWeight"`
	Delta           float64 `json:"adjustment"`
	SuggestedWeight float64 `json:"adjustedWeight"`
	Rule            Rule    `json:"rule"`
	Message         string  `json:"message"`
}

// WorkoutSummary aggregates volume and adjustments of one workout.
type WorkoutSummary struct {
	TotalVolume        float64            `json:"totalVolume"`
	MuscleGroupVolumes map[string]float64 `json:"muscleGroupVolumes"`
	Adjustments        []Adjustment       `json:"adjustments"`
}

// BuildReport groups rows by exact exercise name, computes the mean RPE per
// exercise and evaluates every row with the progressive level.
// The result keeps the order of the input rows.
func BuildReport(rows []ReportRow, scheme RepScheme) []Adjustment {
	rpeSum := make(map[string]float64)
	rpeCount := make(map[string]int)
	for _, row := range rows {
		rpeSum[row.Exercise] += row.RPE
		rpeCount[row.Exercise]++
	}

	adjustments := make([]Adjustment, 0, len(rows))
	for _, row := range rows {
		suggested, rule := Decide(scheme, DefaultAdjustmentLevel, LiftSet{
			Weight: row.Weight,
			Reps:   row.Reps,
			RPE:    row.RPE,
		})
		delta := suggested - row.Weight
		adjustments = append(adjustments, Adjustment{
			Exercise:        row.Exercise,
			AvgRPE:          rpeSum[row.Exercise] / float64(rpeCount[row.Exercise]),
			OriginalWeight:  row.Weight,
			Delta:           delta,
			SuggestedWeight: suggested,
			Rule:            rule,
			Message:         adjustmentMessage(row.Weight, suggested),
		})
	}

	return adjustments
}

// BuildSummary assembles the workout summary out of the two joined row sets.
func BuildSummary(volumeRows []VolumeRow, reportRows []ReportRow, scheme RepScheme) WorkoutSummary {
	volume := AggregateVolume(volumeRows)
	return WorkoutSummary{
		TotalVolume:        volume.Total,
		MuscleGroupVolumes: volume.PerGroup,
		Adjustments:        BuildReport(reportRows, scheme),
	}
}

// zero delta is reported as a decrease of 0
func adjustmentMessage(original, suggested float64) string {
	delta := strconv.FormatFloat(math.Abs(suggested-original), 'f', -1, 64)
	if suggested > original {
		return fmt.Sprintf("Increase weight by %s", delta)
	}
	return fmt.Sprintf("Decrease weight by %s", delta)
}
