package refdata

import (
	"context"
	"fmt"

	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) MuscleGroups(ctx context.Context) (_ []MuscleGroup, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.refdata.muscle_groups")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, name FROM muscle_groups ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("muscle groups [query]: %w", err)
	}
	defer rows.Close()

	muscleGroups := []MuscleGroup{}
	for rows.Next() {
		var mg MuscleGroup
		if err := rows.Scan(&mg.ID, &mg.Name); err != nil {
			return nil, fmt.Errorf("muscle groups [rows scan]: %w", err)
		}
		muscleGroups = append(muscleGroups, mg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("muscle groups [rows error]: %w", err)
	}

	return muscleGroups, nil
}

func (r *Repo) MovementTypes(ctx context.Context) (_ []MovementType, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.refdata.movement_types")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, name FROM movement_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("movement types [query]: %w", err)
	}
	defer rows.Close()

	movementTypes := []MovementType{}
	for rows.Next() {
		var mt MovementType
		if err := rows.Scan(&mt.ID, &mt.Name); err != nil {
			return nil, fmt.Errorf("movement types [rows scan]: %w", err)
		}
		movementTypes = append(movementTypes, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("movement types [rows error]: %w", err)
	}

	return movementTypes, nil
}
