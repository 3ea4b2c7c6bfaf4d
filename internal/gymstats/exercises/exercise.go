package exercises

import "time"

// Exercise is a catalog entry (e.g. "Barbell Squat"), not a performed set.
type Exercise struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	ImageURL         string    `json:"image_url"`
	Description      string    `json:"description"`
	MuscleGroupID    int       `json:"muscle_group_id"`
	MuscleGroupName  string    `json:"muscle_group_name"`
	MovementTypeID   int       `json:"movement_type_id"`
	MovementTypeName string    `json:"movement_type_name"`
	IsSystemExercise bool      `json:"is_system_exercise"`
	CreatedAt        time.Time `json:"created_at"`
}

type NewExerciseRequest struct {
	Name             string `json:"name"`
	MuscleGroupName  string `json:"muscle_group_name"`
	MovementTypeName string `json:"movement_type_name"`
	ImageURL         string `json:"image_url"`
	Description      string `json:"description"`
}
