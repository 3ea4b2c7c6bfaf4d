package workouts

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/autoreg"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	return fn(tx)
}

// List returns workouts without their exercises, newest first.
func (r *Repo) List(ctx context.Context) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, date, program_id, created_at FROM workouts ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("workouts [query]: %w", err)
	}
	defer rows.Close()

	workouts := []Workout{}
	for rows.Next() {
		var w Workout
		if err := rows.Scan(&w.ID, &w.Name, &w.Date, &w.ProgramID, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("workouts [rows scan]: %w", err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("workouts [rows error]: %w", err)
	}

	return workouts, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var w Workout
	err = r.db.QueryRow(
		ctx,
		`SELECT id, name, date, program_id, created_at FROM workouts WHERE id = $1`,
		id,
	).Scan(&w.ID, &w.Name, &w.Date, &w.ProgramID, &w.CreatedAt)
	if err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrWorkoutNotFound
		}
		return nil, fmt.Errorf("workout [query row]: %w", err)
	}

	return &w, nil
}

// ListDetails returns all workouts with their exercises and sets.
func (r *Repo) ListDetails(ctx context.Context) (_ []WorkoutDetails, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.workouts.list_details")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.details(ctx, nil)
}

func (r *Repo) Details(ctx context.Context, id int) (_ *WorkoutDetails, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.workouts.details")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	details, err := r.details(ctx, &id)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrWorkoutNotFound
	}

	return &details[0], nil
}

// detailsRow is one row of the workout ⋈ workout exercise ⋈ set left join.
type detailsRow struct {
	workout Workout

	weID           *int
	weExerciseID   *int
	weSets         *int
	weRepsMin      *int
	weRepsMax      *int
	weRestTimer    *int
	weTargetWeight *float64
	weCreatedAt    *time.Time

	exerciseName   *string
	muscleGroupID  *int
	movementTypeID *int

	setID        *int
	setNumber    *int
	setWeight    *float64
	setReps      *int
	setRPE       *float64
	setCompleted *bool
	setCreatedAt *time.Time
}

func (r *Repo) details(ctx context.Context, workoutID *int) ([]WorkoutDetails, error) {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT
			    w.id, w.name, w.date, w.program_id, w.created_at,
			    we.id, we.exercise_id, we.sets, we.reps_min, we.reps_max, we.rest_timer, we.target_weight, we.created_at,
			    e.name, e.muscle_group_id, e.movement_type_id,
			    s.id, s.set_number, s.weight, s.reps, s.rpe, s.completed, s.created_at
			FROM workouts w
			LEFT JOIN workout_exercises we ON we.workout_id = w.id
			LEFT JOIN exercises e ON e.id = we.exercise_id
			LEFT JOIN sets s ON s.workout_exercise_id = we.id
			WHERE ($1::int IS NULL OR w.id = $1)
			ORDER BY w.created_at DESC, w.id DESC, we.id, s.set_number, s.id
		`,
		workoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("workout details [query]: %w", err)
	}
	defer rows.Close()

	details := []WorkoutDetails{}
	for rows.Next() {
		var row detailsRow
		err := rows.Scan(
			&row.workout.ID, &row.workout.Name, &row.workout.Date, &row.workout.ProgramID, &row.workout.CreatedAt,
			&row.weID, &row.weExerciseID, &row.weSets, &row.weRepsMin, &row.weRepsMax, &row.weRestTimer, &row.weTargetWeight, &row.weCreatedAt,
			&row.exerciseName, &row.muscleGroupID, &row.movementTypeID,
			&row.setID, &row.setNumber, &row.setWeight, &row.setReps, &row.setRPE, &row.setCompleted, &row.setCreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("workout details [rows scan]: %w", err)
		}
		details = appendDetailsRow(details, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("workout details [rows error]: %w", err)
	}

	return details, nil
}

// appendDetailsRow folds a row into the result. Rows must arrive grouped by
// workout and workout exercise.
func appendDetailsRow(details []WorkoutDetails, row detailsRow) []WorkoutDetails {
	if len(details) == 0 || details[len(details)-1].ID != row.workout.ID {
		details = append(details, WorkoutDetails{
			Workout:          row.workout,
			WorkoutExercises: []WorkoutExerciseDetails{},
		})
	}
	w := &details[len(details)-1]
	if row.weID == nil {
		return details
	}

	exercises := w.WorkoutExercises
	if len(exercises) == 0 || exercises[len(exercises)-1].WorkoutExercise.ID != *row.weID {
		we := WorkoutExercise{
			ID:         *row.weID,
			WorkoutID:  row.workout.ID,
			ExerciseID: deref(row.weExerciseID),
			Sets:       deref(row.weSets),
			RepsMin:    row.weRepsMin,
			RepsMax:    deref(row.weRepsMax),
			RestTimer:  deref(row.weRestTimer),
		}
		if row.weTargetWeight != nil {
			we.TargetWeight = *row.weTargetWeight
		}
		if row.weCreatedAt != nil {
			we.CreatedAt = *row.weCreatedAt
		}
		exercise := ExerciseInfo{
			ID:             we.ExerciseID,
			MuscleGroupID:  deref(row.muscleGroupID),
			MovementTypeID: deref(row.movementTypeID),
		}
		if row.exerciseName != nil {
			exercise.Name = *row.exerciseName
		}
		w.WorkoutExercises = append(w.WorkoutExercises, WorkoutExerciseDetails{
			WorkoutExercise: we,
			Exercise:        exercise,
			Sets:            []Set{},
		})
	}
	if row.setID == nil {
		return details
	}

	wed := &w.WorkoutExercises[len(w.WorkoutExercises)-1]
	set := Set{
		ID:                *row.setID,
		WorkoutExerciseID: *row.weID,
		SetNumber:         deref(row.setNumber),
		Reps:              deref(row.setReps),
		RPE:               row.setRPE,
	}
	if row.setWeight != nil {
		set.Weight = *row.setWeight
	}
	if row.setCompleted != nil {
		set.Completed = *row.setCompleted
	}
	if row.setCreatedAt != nil {
		set.CreatedAt = *row.setCreatedAt
	}
	wed.Sets = append(wed.Sets, set)

	return details
}

func deref(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

// Create stores the workout, its workout exercises and sets atomically.
// Set indexes must have been validated against the workout exercises.
func (r *Repo) Create(ctx context.Context, req NewWorkoutRequest) (_ *CreatedWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.workouts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	created := &CreatedWorkout{
		WorkoutExercises: []WorkoutExercise{},
		Sets:             []Set{},
	}
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		workout, err := insertWorkout(ctx, tx, req.Workout)
		if err != nil {
			return err
		}
		created.Workout = *workout

		for _, entry := range req.WorkoutExercises {
			we, err := insertWorkoutExercise(ctx, tx, workout.ID, entry)
			if err != nil {
				return err
			}
			created.WorkoutExercises = append(created.WorkoutExercises, *we)
		}

		setNumbers := make(map[int]int)
		for _, s := range req.Sets {
			we := created.WorkoutExercises[s.WorkoutExerciseIndex]
			setNumbers[we.ID]++
			set, err := insertSet(ctx, tx, Set{
				WorkoutExerciseID: we.ID,
				SetNumber:         setNumbers[we.ID],
				Weight:            *s.Weight,
				Reps:              *s.Reps,
				RPE:               s.RPE,
				Completed:         s.Completed,
			})
			if err != nil {
				return err
			}
			created.Sets = append(created.Sets, *set)
		}
		return nil
	})
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, fmt.Errorf("%w: %w", ErrUnknownReference, err)
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("workout.id", created.Workout.ID))
	return created, nil
}

// AddWorkoutExercises adds entries to an existing workout, each with its
// planned sets (target weight, max reps, not completed).
func (r *Repo) AddWorkoutExercises(ctx context.Context, workoutID int, entries []NewWorkoutExercise) (_ []WorkoutExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.workouts.add_exercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout.id", workoutID))

	created := []WorkoutExercise{}
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		for _, entry := range entries {
			we, err := insertWorkoutExercise(ctx, tx, workoutID, entry)
			if err != nil {
				return err
			}
			for i := 0; i < we.Sets; i++ {
				_, err := insertSet(ctx, tx, Set{
					WorkoutExerciseID: we.ID,
					SetNumber:         i + 1,
					Weight:            we.TargetWeight,
					Reps:              we.RepsMax,
				})
				if err != nil {
					return err
				}
			}
			created = append(created, *we)
		}
		return nil
	})
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, fmt.Errorf("%w: %w", ErrUnknownReference, err)
		}
		return nil, err
	}

	return created, nil
}

func (r *Repo) Sets(ctx context.Context, workoutExerciseID int) (_ []Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.workouts.sets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout_exercise.id", workoutExerciseID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, workout_exercise_id, set_number, weight, reps, rpe, completed, created_at
			FROM sets
			WHERE workout_exercise_id = $1
			ORDER BY set_number, id
		`,
		workoutExerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("sets [query]: %w", err)
	}
	defer rows.Close()

	sets := []Set{}
	for rows.Next() {
		var s Set
		if err := rows.Scan(&s.ID, &s.WorkoutExerciseID, &s.SetNumber, &s.Weight, &s.Reps, &s.RPE, &s.Completed, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("sets [rows scan]: %w", err)
		}
		sets = append(sets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sets [rows error]: %w", err)
	}

	return sets, nil
}

// AddSet appends a set after the last set of the workout exercise.
func (r *Repo) AddSet(ctx context.Context, workoutExerciseID int, newSet NewSet) (_ *Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.workouts.add_set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout_exercise.id", workoutExerciseID))

	set := Set{
		WorkoutExerciseID: workoutExerciseID,
		Weight:            *newSet.Weight,
		Reps:              *newSet.Reps,
		RPE:               newSet.RPE,
		Completed:         newSet.Completed,
		CreatedAt:         time.Now(),
	}
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		// concurrent appends to the same exercise serialize on its row
		var weID int
		if err := tx.QueryRow(
			ctx,
			`SELECT id FROM workout_exercises WHERE id = $1 FOR UPDATE`,
			set.WorkoutExerciseID,
		).Scan(&weID); err != nil {
			if pkg.IsNoRowsError(err) {
				return ErrWorkoutExerciseNotFound
			}
			return fmt.Errorf("lock workout exercise: %w", err)
		}

		if err := tx.QueryRow(
			ctx,
			`
				INSERT INTO sets (workout_exercise_id, set_number, weight, reps, rpe, completed, created_at)
				SELECT $1::int, COALESCE(MAX(set_number), 0) + 1, $2::numeric, $3::int, $4::numeric, $5::boolean, $6::timestamp
				FROM sets WHERE workout_exercise_id = $1
				RETURNING id, set_number
			`,
			set.WorkoutExerciseID, set.Weight, set.Reps, set.RPE, set.Completed, set.CreatedAt,
		).Scan(&set.ID, &set.SetNumber); err != nil {
			return fmt.Errorf("insert set: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &set, nil
}

// VolumeRows returns every set of the workout with the muscle group of its exercise.
func (r *Repo) VolumeRows(ctx context.Context, workoutID int) (_ []autoreg.VolumeRow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.workouts.volume_rows")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout.id", workoutID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT mg.name, s.weight, s.reps
			FROM sets s
			JOIN workout_exercises we ON s.workout_exercise_id = we.id
			JOIN exercises e ON we.exercise_id = e.id
			JOIN muscle_groups mg ON e.muscle_group_id = mg.id
			WHERE we.workout_id = $1
			ORDER BY s.id
		`,
		workoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("volume rows [query]: %w", err)
	}
	defer rows.Close()

	var volumeRows []autoreg.VolumeRow
	for rows.Next() {
		var row autoreg.VolumeRow
		if err := rows.Scan(&row.MuscleGroup, &row.Weight, &row.Reps); err != nil {
			return nil, fmt.Errorf("volume rows [rows scan]: %w", err)
		}
		volumeRows = append(volumeRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("volume rows [rows error]: %w", err)
	}

	return volumeRows, nil
}

// AdjustmentRows returns the sets of the workout that carry an RPE, in set order.
func (r *Repo) AdjustmentRows(ctx context.Context, workoutID int) (_ []autoreg.ReportRow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.workouts.adjustment_rows")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout.id", workoutID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT e.name, s.weight, s.reps, s.rpe
			FROM sets s
			JOIN workout_exercises we ON s.workout_exercise_id = we.id
			JOIN exercises e ON we.exercise_id = e.id
			WHERE we.workout_id = $1 AND s.rpe IS NOT NULL
			ORDER BY we.id, s.set_number, s.id
		`,
		workoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("adjustment rows [query]: %w", err)
	}
	defer rows.Close()

	var reportRows []autoreg.ReportRow
	for rows.Next() {
		var row autoreg.ReportRow
		if err := rows.Scan(&row.Exercise, &row.Weight, &row.Reps, &row.RPE); err != nil {
			return nil, fmt.Errorf("adjustment rows [rows scan]: %w", err)
		}
		reportRows = append(reportRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("adjustment rows [rows error]: %w", err)
	}

	return reportRows, nil
}

func insertWorkout(ctx context.Context, tx pgx.Tx, nw NewWorkout) (*Workout, error) {
	w := Workout{
		Name:      nw.Name,
		ProgramID: nw.ProgramID,
		CreatedAt: time.Now(),
	}
	w.Date = w.CreatedAt
	if nw.Date != nil {
		w.Date = *nw.Date
	}

	err := tx.QueryRow(
		ctx,
		`INSERT INTO workouts (name, date, program_id, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		w.Name, w.Date, w.ProgramID, w.CreatedAt,
	).Scan(&w.ID)
	if err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}

	return &w, nil
}

func insertWorkoutExercise(ctx context.Context, tx pgx.Tx, workoutID int, entry NewWorkoutExercise) (*WorkoutExercise, error) {
	we := WorkoutExercise{
		WorkoutID:  workoutID,
		ExerciseID: entry.ExerciseID,
		Sets:       entry.Sets,
		RepsMin:    entry.RepsMin,
		RepsMax:    entry.RepsMax,
		RestTimer:  entry.RestTimer,
		CreatedAt:  time.Now(),
	}
	if entry.TargetWeight != nil {
		we.TargetWeight = *entry.TargetWeight
	}

	err := tx.QueryRow(
		ctx,
		`
			INSERT INTO workout_exercises
			    (workout_id, exercise_id, sets, reps_min, reps_max, rest_timer, target_weight, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`,
		we.WorkoutID, we.ExerciseID, we.Sets, we.RepsMin, we.RepsMax, we.RestTimer, we.TargetWeight, we.CreatedAt,
	).Scan(&we.ID)
	if err != nil {
		return nil, fmt.Errorf("insert workout exercise: %w", err)
	}

	return &we, nil
}

func insertSet(ctx context.Context, tx pgx.Tx, set Set) (*Set, error) {
	set.CreatedAt = time.Now()
	err := tx.QueryRow(
		ctx,
		`
			INSERT INTO sets (workout_exercise_id, set_number, weight, reps, rpe, completed, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`,
		set.WorkoutExerciseID, set.SetNumber, set.Weight, set.Reps, set.RPE, set.Completed, set.CreatedAt,
	).Scan(&set.ID)
	if err != nil {
		return nil, fmt.Errorf("insert set: %w", err)
	}

	return &set, nil
}
