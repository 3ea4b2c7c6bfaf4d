//go:build integration_test || all_tests

package test

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/2beens/liftlog/internal/autoreg"
	"github.com/2beens/liftlog/internal/gymstats/exercises"
	"github.com/2beens/liftlog/internal/gymstats/programs"
	"github.com/2beens/liftlog/internal/gymstats/workouts"
	"github.com/2beens/liftlog/internal/refdata"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func (s *IntegrationTestSuite) addExercise(ctx context.Context, token, name, muscleGroup, movementType string) exercises.Exercise {
	var added exercises.Exercise
	s.doJSON(ctx, http.MethodPost, "/exercises", token, exercises.NewExerciseRequest{
		Name:             name,
		MuscleGroupName:  muscleGroup,
		MovementTypeName: movementType,
	}, http.StatusCreated, &added)
	require.NotZero(s.T(), added.ID)
	return added
}

func (s *IntegrationTestSuite) TestReferenceData() {
	ctx := context.Background()

	var all refdata.MuscleGroupsAndMovementTypes
	s.doJSON(ctx, http.MethodGet, "/muscle-groups-and-movement-types", "", nil, http.StatusOK, &all)
	assert.Len(s.T(), all.MuscleGroups, 9)
	assert.Len(s.T(), all.MovementTypes, 7)
}

func (s *IntegrationTestSuite) TestExercises() {
	ctx := context.Background()
	token := s.registerAndLogin(ctx)
	suffix := gofakeit.LetterN(8)

	squat := s.addExercise(ctx, token, "Squat "+suffix, "Quads", "Squat")
	assert.Equal(s.T(), "Quads", squat.MuscleGroupName)
	assert.True(s.T(), squat.IsSystemExercise)

	s.addExercise(ctx, token, "Row "+suffix, "Back", "Pull")

	// reference names resolve case-insensitively
	var quads []exercises.Exercise
	s.doJSON(ctx, http.MethodGet, "/exercises?muscleGroupName=quads", token, nil, http.StatusOK, &quads)
	require.NotEmpty(s.T(), quads)
	for _, e := range quads {
		assert.Equal(s.T(), "Quads", e.MuscleGroupName)
	}

	// unknown filter names are ignored
	var unfiltered []exercises.Exercise
	s.doJSON(ctx, http.MethodGet, "/exercises?muscleGroupName=Tail", token, nil, http.StatusOK, &unfiltered)
	assert.GreaterOrEqual(s.T(), len(unfiltered), 2)

	var got exercises.Exercise
	s.doJSON(ctx, http.MethodGet, fmt.Sprintf("/exercises/%d", squat.ID), token, nil, http.StatusOK, &got)
	assert.Equal(s.T(), squat.Name, got.Name)

	status, body := s.doRequest(ctx, http.MethodPost, "/exercises", token, exercises.NewExerciseRequest{
		Name:             "Tail Wag",
		MuscleGroupName:  "Tail",
		MovementTypeName: "Pull",
	})
	assert.Equal(s.T(), http.StatusNotFound, status)
	assert.Contains(s.T(), string(body), "Muscle group 'Tail' does not exist.")

	status, _ = s.doRequest(ctx, http.MethodPost, "/exercises", token, exercises.NewExerciseRequest{Name: "No Group"})
	assert.Equal(s.T(), http.StatusBadRequest, status)

	s.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/exercises/%d", squat.ID), token, nil, http.StatusOK, nil)
	status, _ = s.doRequest(ctx, http.MethodGet, fmt.Sprintf("/exercises/%d", squat.ID), token, nil)
	assert.Equal(s.T(), http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestPrograms() {
	ctx := context.Background()
	token := s.registerAndLogin(ctx)

	var added programs.Program
	s.doJSON(ctx, http.MethodPost, "/programs", token, programs.NewProgramRequest{
		Name:          "Block " + gofakeit.LetterN(6),
		DurationWeeks: 6,
	}, http.StatusCreated, &added)
	assert.False(s.T(), added.DeloadWeek)

	var list []programs.Program
	s.doJSON(ctx, http.MethodGet, "/programs", token, nil, http.StatusOK, &list)
	require.NotEmpty(s.T(), list)
	assert.Equal(s.T(), added.ID, list[0].ID)
}

func (s *IntegrationTestSuite) TestWorkoutSummary() {
	ctx := context.Background()
	token := s.registerAndLogin(ctx)
	suffix := gofakeit.LetterN(8)

	squat := s.addExercise(ctx, token, "Squat "+suffix, "Quads", "Squat")
	pullUp := s.addExercise(ctx, token, "Pull-up "+suffix, "Back", "Pull")

	var created workouts.CreatedWorkout
	s.doJSON(ctx, http.MethodPost, "/workouts", token, workouts.NewWorkoutRequest{
		Workout: workouts.NewWorkout{Name: "Lower + pull"},
		WorkoutExercises: []workouts.NewWorkoutExercise{
			{ExerciseID: squat.ID, Sets: 2, RepsMax: 8, TargetWeight: ptr(100.0)},
			{ExerciseID: pullUp.ID, Sets: 1, RepsMax: 10, TargetWeight: ptr(20.0)},
		},
		Sets: []workouts.NewSet{
			{WorkoutExerciseIndex: 0, Weight: ptr(100.0), Reps: ptr(2), RPE: ptr(9.0), Completed: true},
			{WorkoutExerciseIndex: 0, Weight: ptr(100.0), Reps: ptr(7), RPE: ptr(8.0), Completed: true},
			{WorkoutExerciseIndex: 1, Weight: ptr(20.0), Reps: ptr(10), RPE: ptr(7.0), Completed: true},
		},
	}, http.StatusCreated, &created)
	require.Len(s.T(), created.WorkoutExercises, 2)
	require.Len(s.T(), created.Sets, 3)
	assert.Equal(s.T(), []int{1, 2, 1}, []int{created.Sets[0].SetNumber, created.Sets[1].SetNumber, created.Sets[2].SetNumber})

	workoutID := created.Workout.ID
	pullUpWE := created.WorkoutExercises[1]

	var volume autoreg.MuscleGroupVolume
	s.doJSON(ctx, http.MethodGet, fmt.Sprintf("/workouts/%d/volume", workoutID), token, nil, http.StatusOK, &volume)
	assert.Equal(s.T(), 1100.0, volume.Total)
	assert.Equal(s.T(), map[string]float64{"Quads": 900, "Back": 200}, volume.PerGroup)

	// a set without RPE counts for volume only
	var added workouts.Set
	s.doJSON(ctx, http.MethodPost, fmt.Sprintf("/workout-exercises/%d/sets", pullUpWE.ID), token, workouts.NewSet{
		Weight: ptr(20.0),
		Reps:   ptr(12),
	}, http.StatusCreated, &added)
	assert.Equal(s.T(), 2, added.SetNumber)
	assert.Nil(s.T(), added.RPE)

	var summary autoreg.WorkoutSummary
	s.doJSON(ctx, http.MethodGet, fmt.Sprintf("/workouts/%d/summary?scheme=6", workoutID), token, nil, http.StatusOK, &summary)
	assert.Equal(s.T(), 1340.0, summary.TotalVolume)
	assert.Equal(s.T(), map[string]float64{"Quads": 900, "Back": 440}, summary.MuscleGroupVolumes)
	require.Len(s.T(), summary.Adjustments, 3)

	assert.Equal(s.T(), autoreg.Adjustment{
		Exercise:        squat.Name,
		AvgRPE:          8.5,
		OriginalWeight:  100,
		Delta:           -10,
		SuggestedWeight: 90,
		Rule:            autoreg.RuleDecrease,
		Message:         "Decrease weight by 10",
	}, summary.Adjustments[0])
	assert.Equal(s.T(), 100.0, summary.Adjustments[1].SuggestedWeight)
	assert.Equal(s.T(), autoreg.RuleHold, summary.Adjustments[1].Rule)
	assert.Equal(s.T(), pullUp.Name, summary.Adjustments[2].Exercise)
	assert.Equal(s.T(), 30.0, summary.Adjustments[2].SuggestedWeight)
	assert.Equal(s.T(), "Increase weight by 10", summary.Adjustments[2].Message)

	var adjustments []autoreg.Adjustment
	s.doJSON(ctx, http.MethodGet, fmt.Sprintf("/workouts/%d/adjustments", workoutID), token, nil, http.StatusOK, &adjustments)
	assert.Equal(s.T(), summary.Adjustments, adjustments)

	status, _ := s.doRequest(ctx, http.MethodGet, fmt.Sprintf("/workouts/%d/summary?scheme=5", workoutID), token, nil)
	assert.Equal(s.T(), http.StatusBadRequest, status)
	status, _ = s.doRequest(ctx, http.MethodGet, "/workouts/999999/summary", token, nil)
	assert.Equal(s.T(), http.StatusNotFound, status)

	// exercises used by a workout cannot be removed
	status, _ = s.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/exercises/%d", squat.ID), token, nil)
	assert.Equal(s.T(), http.StatusConflict, status)

	var details workouts.WorkoutDetails
	s.doJSON(ctx, http.MethodGet, fmt.Sprintf("/workouts/%d", workoutID), token, nil, http.StatusOK, &details)
	assert.Equal(s.T(), workoutID, details.ID)
}

func (s *IntegrationTestSuite) TestWorkoutExercises_PlannedSets() {
	ctx := context.Background()
	token := s.registerAndLogin(ctx)

	bench := s.addExercise(ctx, token, "Bench "+gofakeit.LetterN(8), "Chest", "Push")

	var created workouts.CreatedWorkout
	s.doJSON(ctx, http.MethodPost, "/workouts", token, workouts.NewWorkoutRequest{
		Workout: workouts.NewWorkout{Name: "Push day"},
	}, http.StatusCreated, &created)

	var added []workouts.WorkoutExercise
	s.doJSON(ctx, http.MethodPost, fmt.Sprintf("/workouts/%d/exercises", created.Workout.ID), token, []workouts.NewWorkoutExercise{
		{ExerciseID: bench.ID, Sets: 3, RepsMax: 8, TargetWeight: ptr(80.0)},
		// incomplete, skipped
		{ExerciseID: bench.ID, Sets: 3},
	}, http.StatusCreated, &added)
	require.Len(s.T(), added, 1)

	var plannedSets, completedSets int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE completed) FROM sets WHERE workout_exercise_id = $1 AND weight = 80 AND reps = 8`,
		added[0].ID,
	).Scan(&plannedSets, &completedSets)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 3, plannedSets)
	assert.Equal(s.T(), 0, completedSets)

	var grouped []workouts.WorkoutExerciseDetails
	s.doJSON(ctx, http.MethodGet, fmt.Sprintf("/workouts/%d/exercises", created.Workout.ID), token, nil, http.StatusOK, &grouped)
	require.Len(s.T(), grouped, 1)
	assert.Len(s.T(), grouped[0].Sets, 3)
	assert.Equal(s.T(), bench.Name, grouped[0].Exercise.Name)
}

func (s *IntegrationTestSuite) TestAddSet_ConcurrentAppendsGetDistinctNumbers() {
	ctx := context.Background()
	token := s.registerAndLogin(ctx)

	row := s.addExercise(ctx, token, "Row "+gofakeit.LetterN(8), "Back", "Pull")

	var created workouts.CreatedWorkout
	s.doJSON(ctx, http.MethodPost, "/workouts", token, workouts.NewWorkoutRequest{
		Workout:          workouts.NewWorkout{Name: "Pull day"},
		WorkoutExercises: []workouts.NewWorkoutExercise{{ExerciseID: row.ID, Sets: 3, RepsMax: 8}},
	}, http.StatusCreated, &created)
	require.Len(s.T(), created.WorkoutExercises, 1)
	weID := created.WorkoutExercises[0].ID

	const setsCount = 10
	statuses := make([]int, setsCount)
	var wg sync.WaitGroup
	for i := 0; i < setsCount; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			statuses[i], _ = s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/workout-exercises/%d/sets", weID), token, workouts.NewSet{
				Weight: ptr(60.0 + float64(i)),
				Reps:   ptr(8),
			})
		}(i)
	}
	wg.Wait()

	for _, status := range statuses {
		assert.Equal(s.T(), http.StatusCreated, status)
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT set_number FROM sets WHERE workout_exercise_id = $1 ORDER BY set_number`, weID)
	require.NoError(s.T(), err)
	defer rows.Close()
	var setNumbers []int
	for rows.Next() {
		var n int
		require.NoError(s.T(), rows.Scan(&n))
		setNumbers = append(setNumbers, n)
	}
	require.NoError(s.T(), rows.Err())

	expected := make([]int, setsCount)
	for i := range expected {
		expected[i] = i + 1
	}
	assert.Equal(s.T(), expected, setNumbers)
}

func (s *IntegrationTestSuite) TestAdjust() {
	ctx := context.Background()
	token := s.registerAndLogin(ctx)

	var resp workouts.AdjustResponse
	s.doJSON(ctx, http.MethodPost, "/adjust", token, workouts.AdjustRequest{
		Scheme: 3,
		Level:  "conservative",
		Weight: 100,
		Reps:   2,
		RPE:    9,
	}, http.StatusOK, &resp)
	assert.Equal(s.T(), 97.5, resp.Weight)
	assert.Equal(s.T(), autoreg.RuleDecrease, resp.Rule)
}
