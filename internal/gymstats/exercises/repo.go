package exercises

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrExerciseInUse    = errors.New("exercise is used by workouts")
)

// ListParams filters the exercise list; nil means no filter.
type ListParams struct {
	MuscleGroupID  *int
	MovementTypeID *int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const selectExercise = `
	SELECT
	    e.id, e.name, e.image_url, e.description,
	    e.muscle_group_id, mg.name, e.movement_type_id, mt.name,
	    e.is_system_exercise, e.created_at
	FROM exercises e
	JOIN muscle_groups mg ON mg.id = e.muscle_group_id
	JOIN movement_types mt ON mt.id = e.movement_type_id
`

type scanner interface {
	Scan(dest ...any) error
}

func scanExercise(row scanner) (Exercise, error) {
	var e Exercise
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.ImageURL,
		&e.Description,
		&e.MuscleGroupID,
		&e.MuscleGroupName,
		&e.MovementTypeID,
		&e.MovementTypeName,
		&e.IsSystemExercise,
		&e.CreatedAt,
	)
	return e, err
}

// List returns system exercises, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	if params.MuscleGroupID != nil {
		span.SetAttributes(attribute.Int("params.muscleGroupId", *params.MuscleGroupID))
	}
	if params.MovementTypeID != nil {
		span.SetAttributes(attribute.Int("params.movementTypeId", *params.MovementTypeID))
	}

	rows, err := r.db.Query(
		ctx,
		selectExercise+`
			WHERE e.is_system_exercise
			  AND ($1::int IS NULL OR e.muscle_group_id = $1)
			  AND ($2::int IS NULL OR e.movement_type_id = $2)
			ORDER BY e.created_at DESC, e.id DESC
		`,
		params.MuscleGroupID,
		params.MovementTypeID,
	)
	if err != nil {
		return nil, fmt.Errorf("exercises [query]: %w", err)
	}
	defer rows.Close()

	exercises := []Exercise{}
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("exercises [rows scan]: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exercises [rows error]: %w", err)
	}

	return exercises, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	e, err := scanExercise(r.db.QueryRow(ctx, selectExercise+` WHERE e.id = $1`, id))
	if err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrExerciseNotFound
		}
		return nil, fmt.Errorf("exercise [query row]: %w", err)
	}

	return &e, nil
}

// Add inserts a new system exercise. Reference names are resolved by the caller.
func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = time.Now()
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercises
				(name, image_url, description, muscle_group_id, movement_type_id, is_system_exercise, created_at)
				VALUES ($1, $2, $3, $4, $5, TRUE, $6)
			RETURNING id;`,
		exercise.Name,
		exercise.ImageURL,
		exercise.Description,
		exercise.MuscleGroupID,
		exercise.MovementTypeID,
		exercise.CreatedAt,
	).Scan(&exercise.ID)
	if err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	span.SetAttributes(attribute.Int("exercise.id", exercise.ID))
	exercise.IsSystemExercise = true
	return &exercise, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrExerciseInUse
		}
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}

	return nil
}
