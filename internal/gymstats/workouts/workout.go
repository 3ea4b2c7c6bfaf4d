package workouts

import (
	"errors"
	"time"
)

var (
	ErrWorkoutNotFound         = errors.New("workout not found")
	ErrWorkoutExerciseNotFound = errors.New("workout exercise not found")
	ErrUnknownReference        = errors.New("unknown program or exercise")
	ErrInvalidRequest          = errors.New("invalid request")
)

type Workout struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	ProgramID *int      `json:"program_id"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkoutExercise is an exercise planned within a workout.
type WorkoutExercise struct {
	ID           int       `json:"id"`
	WorkoutID    int       `json:"workout_id"`
	ExerciseID   int       `json:"exercise_id"`
	Sets         int       `json:"sets"`
	RepsMin      *int      `json:"reps_min"`
	RepsMax      int       `json:"reps_max"`
	RestTimer    int       `json:"rest_timer"`
	TargetWeight float64   `json:"target_weight"`
	CreatedAt    time.Time `json:"created_at"`
}

// Set is one performed (or planned, when not completed) set.
type Set struct {
	ID                int       `json:"id"`
	WorkoutExerciseID int       `json:"workout_exercise_id"`
	SetNumber         int       `json:"set_number"`
	Weight            float64   `json:"weight"`
	Reps              int       `json:"reps"`
	RPE               *float64  `json:"rpe"`
	Completed         bool      `json:"completed"`
	CreatedAt         time.Time `json:"created_at"`
}

type ExerciseInfo struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	MuscleGroupID  int    `json:"muscle_group_id"`
	MovementTypeID int    `json:"movement_type_id"`
}

type WorkoutExerciseDetails struct {
	WorkoutExercise WorkoutExercise `json:"workout_exercise"`
	Exercise        ExerciseInfo    `json:"exercise"`
	Sets            []Set           `json:"sets"`
}

type WorkoutDetails struct {
	Workout
	WorkoutExercises []WorkoutExerciseDetails `json:"workout_exercises"`
}

type NewWorkout struct {
	Name      string     `json:"name"`
	Date      *time.Time `json:"date"`
	ProgramID *int       `json:"program_id"`
}

type NewWorkoutExercise struct {
	ExerciseID   int      `json:"exercise_id"`
	Sets         int      `json:"sets"`
	RepsMin      *int     `json:"reps_min"`
	RepsMax      int      `json:"reps_max"`
	RestTimer    int      `json:"rest_timer"`
	TargetWeight *float64 `json:"target_weight"`
}

// valid reports whether all fields needed to plan the sets are present.
func (e NewWorkoutExercise) valid() bool {
	return e.ExerciseID > 0 && e.Sets > 0 && e.RepsMax > 0 && e.TargetWeight != nil
}

type NewSet struct {
	// WorkoutExerciseIndex points into the workout exercises of the same request.
	WorkoutExerciseIndex int      `json:"workout_exercise_index"`
	Weight               *float64 `json:"weight"`
	Reps                 *int     `json:"reps"`
	RPE                  *float64 `json:"rpe"`
	Completed            bool     `json:"completed"`
}

type NewWorkoutRequest struct {
	Workout          NewWorkout           `json:"workout"`
	WorkoutExercises []NewWorkoutExercise `json:"workout_exercises"`
	Sets             []NewSet             `json:"sets"`
}

type CreatedWorkout struct {
	Workout          Workout           `json:"workout"`
	WorkoutExercises []WorkoutExercise `json:"workout_exercises"`
	Sets             []Set             `json:"sets"`
}
