package workouts

import (
	"context"
	"fmt"

	"github.com/2beens/liftlog/internal/autoreg"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=workouts_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	List(ctx context.Context) ([]Workout, error)
	ListDetails(ctx context.Context) ([]WorkoutDetails, error)
	Get(ctx context.Context, id int) (*Workout, error)
	Details(ctx context.Context, id int) (*WorkoutDetails, error)
	Create(ctx context.Context, req NewWorkoutRequest) (*CreatedWorkout, error)
	AddWorkoutExercises(ctx context.Context, workoutID int, entries []NewWorkoutExercise) ([]WorkoutExercise, error)
	Sets(ctx context.Context, workoutExerciseID int) ([]Set, error)
	AddSet(ctx context.Context, workoutExerciseID int, set NewSet) (*Set, error)
	VolumeRows(ctx context.Context, workoutID int) ([]autoreg.VolumeRow, error)
	AdjustmentRows(ctx context.Context, workoutID int) ([]autoreg.ReportRow, error)
}

// Service validates workout input and runs the autoregulation engine over
// stored workouts.
type Service struct {
	repo          workoutsRepo
	metrics       *metrics.Manager
	defaultScheme autoreg.RepScheme
}

func NewService(repo workoutsRepo, metricsManager *metrics.Manager, defaultScheme autoreg.RepScheme) *Service {
	if !defaultScheme.Valid() {
		log.Warnf("invalid default rep scheme %d, using %d", defaultScheme, autoreg.DefaultRepScheme)
		defaultScheme = autoreg.DefaultRepScheme
	}
	return &Service{
		repo:          repo,
		metrics:       metricsManager,
		defaultScheme: defaultScheme,
	}
}

func (s *Service) DefaultScheme() autoreg.RepScheme {
	return s.defaultScheme
}

func (s *Service) Create(ctx context.Context, req NewWorkoutRequest) (_ *CreatedWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.workouts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if req.Workout.Name == "" {
		return nil, fmt.Errorf("%w: workout name is required", ErrInvalidRequest)
	}
	for i, entry := range req.WorkoutExercises {
		if entry.ExerciseID <= 0 || entry.RepsMax <= 0 || entry.Sets < 0 {
			return nil, fmt.Errorf("%w: workout exercise %d needs exercise_id, sets and reps_max", ErrInvalidRequest, i)
		}
	}
	for i, set := range req.Sets {
		if set.WorkoutExerciseIndex < 0 || set.WorkoutExerciseIndex >= len(req.WorkoutExercises) {
			return nil, fmt.Errorf("%w: set %d points to unknown workout exercise %d", ErrInvalidRequest, i, set.WorkoutExerciseIndex)
		}
		if set.Weight == nil || set.Reps == nil {
			return nil, fmt.Errorf("%w: set %d needs weight and reps", ErrInvalidRequest, i)
		}
	}

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}

	s.metrics.CounterSetsLogged.Add(float64(len(created.Sets)))
	span.SetAttributes(attribute.Int("workout.id", created.Workout.ID))
	return created, nil
}

// AddWorkoutExercises skips entries missing exercise_id, sets, reps_max or
// target_weight and stores the rest.
func (s *Service) AddWorkoutExercises(ctx context.Context, workoutID int, entries []NewWorkoutExercise) (_ []WorkoutExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.workouts.add_exercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.repo.Get(ctx, workoutID); err != nil {
		return nil, err
	}

	valid := make([]NewWorkoutExercise, 0, len(entries))
	for _, entry := range entries {
		if !entry.valid() {
			log.Debugf("workout %d: skipping incomplete workout exercise %+v", workoutID, entry)
			continue
		}
		valid = append(valid, entry)
	}
	if len(valid) == 0 {
		return []WorkoutExercise{}, nil
	}

	return s.repo.AddWorkoutExercises(ctx, workoutID, valid)
}

func (s *Service) AddSet(ctx context.Context, workoutExerciseID int, set NewSet) (_ *Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.workouts.add_set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if set.Weight == nil || set.Reps == nil {
		return nil, fmt.Errorf("%w: weight and reps are required", ErrInvalidRequest)
	}

	added, err := s.repo.AddSet(ctx, workoutExerciseID, set)
	if err != nil {
		return nil, err
	}

	s.metrics.CounterSetsLogged.Inc()
	return added, nil
}

func (s *Service) Volume(ctx context.Context, workoutID int) (_ autoreg.MuscleGroupVolume, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.workouts.volume")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.repo.Get(ctx, workoutID); err != nil {
		return autoreg.MuscleGroupVolume{}, err
	}

	rows, err := s.repo.VolumeRows(ctx, workoutID)
	if err != nil {
		return autoreg.MuscleGroupVolume{}, fmt.Errorf("volume rows: %w", err)
	}

	return autoreg.AggregateVolume(rows), nil
}

func (s *Service) Adjustments(ctx context.Context, workoutID int, scheme autoreg.RepScheme) (_ []autoreg.Adjustment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.workouts.adjustments")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("scheme", int(scheme)))

	if _, err := s.repo.Get(ctx, workoutID); err != nil {
		return nil, err
	}

	rows, err := s.repo.AdjustmentRows(ctx, workoutID)
	if err != nil {
		return nil, fmt.Errorf("adjustment rows: %w", err)
	}

	adjustments := autoreg.BuildReport(rows, scheme)
	s.countAdjustments(adjustments)
	return adjustments, nil
}

func (s *Service) Summary(ctx context.Context, workoutID int, scheme autoreg.RepScheme) (_ *autoreg.WorkoutSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.workouts.summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("scheme", int(scheme)))

	if _, err := s.repo.Get(ctx, workoutID); err != nil {
		return nil, err
	}

	volumeRows, err := s.repo.VolumeRows(ctx, workoutID)
	if err != nil {
		return nil, fmt.Errorf("volume rows: %w", err)
	}
	reportRows, err := s.repo.AdjustmentRows(ctx, workoutID)
	if err != nil {
		return nil, fmt.Errorf("adjustment rows: %w", err)
	}

	summary := autoreg.BuildSummary(volumeRows, reportRows, scheme)
	s.metrics.HistogramWorkoutVolume.Observe(summary.TotalVolume)
	s.countAdjustments(summary.Adjustments)
	return &summary, nil
}

// AdjustSet evaluates a single set, no storage involved.
func (s *Service) AdjustSet(scheme autoreg.RepScheme, level autoreg.AdjustmentLevel, set autoreg.LiftSet) (float64, autoreg.Rule) {
	weight, rule := autoreg.Decide(scheme, level, set)
	s.metrics.CounterAdjustments.WithLabelValues(string(rule)).Inc()
	return weight, rule
}

func (s *Service) countAdjustments(adjustments []autoreg.Adjustment) {
	for _, a := range adjustments {
		s.metrics.CounterAdjustments.WithLabelValues(string(a.Rule)).Inc()
	}
}
