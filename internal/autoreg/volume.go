package autoreg

// VolumeRow is one set joined with the muscle group of its exercise.
type VolumeRow struct {
	MuscleGroup string
	Weight      float64
	Reps        int
}

// MuscleGroupVolume is the training volume (weight x reps) of a workout,
// in total and per muscle group.
type MuscleGroupVolume struct {
	Total    float64            `json:"totalVolume"`
	PerGroup map[string]float64 `json:"muscleGroupVolumes"`
}

// AggregateVolume sums weight x reps per muscle group and in total.
// Muscle group names are used as given, case-sensitive.
func AggregateVolume(rows []VolumeRow) MuscleGroupVolume {
	res := MuscleGroupVolume{
		PerGroup: make(map[string]float64),
	}
	for _, row := range rows {
		v := row.Weight * float64(row.Reps)
		res.PerGroup[row.MuscleGroup] += v
		res.Total += v
	}
	return res
}
