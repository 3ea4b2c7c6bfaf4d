package workouts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	repo    workoutsRepo
	service *Service
}

func NewHandler(repo workoutsRepo, service *Service) *Handler {
	return &Handler{
		repo:    repo,
		service: service,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workouts.list")
	defer span.End()

	workouts, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list workouts: %s", err)
		http.Error(w, "list workouts failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, workouts, http.StatusOK)
}

func (handler *Handler) HandleListDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workouts.list_details")
	defer span.End()

	details, err := handler.repo.ListDetails(ctx)
	if err != nil {
		log.Errorf("list workout details: %s", err)
		http.Error(w, "list workouts failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, details, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workouts.get")
	defer span.End()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	details, err := handler.repo.Details(ctx, id)
	if err != nil {
		writeError(w, err, "get workout failed")
		return
	}

	pkg.WriteJSON(w, details, http.StatusOK)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workouts.create")
	defer span.End()

	var req NewWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		http.Error(w, "create workout failed", http.StatusBadRequest)
		return
	}

	created, err := handler.service.Create(ctx, req)
	if err != nil {
		writeError(w, err, "create workout failed")
		return
	}

	log.Debugf("new workout created: %d [%s]", created.Workout.ID, created.Workout.Name)
	pkg.WriteJSON(w, created, http.StatusCreated)
}

func (handler *Handler) HandleWorkoutExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workouts.exercises")
	defer span.End()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	details, err := handler.repo.Details(ctx, id)
	if err != nil {
		writeError(w, err, "get workout exercises failed")
		return
	}

	pkg.WriteJSON(w, details.WorkoutExercises, http.StatusOK)
}

func (handler *Handler) HandleAddWorkoutExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workouts.add_exercises")
	defer span.End()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var entries []NewWorkoutExercise
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		log.Tracef("add workout exercises, unmarshal json params: %s", err)
		http.Error(w, "add workout exercises failed", http.StatusBadRequest)
		return
	}

	created, err := handler.service.AddWorkoutExercises(ctx, id, entries)
	if err != nil {
		writeError(w, err, "add workout exercises failed")
		return
	}

	pkg.WriteJSON(w, created, http.StatusCreated)
}

func (handler *Handler) HandleSets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workouts.sets")
	defer span.End()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	sets, err := handler.repo.Sets(ctx, id)
	if err != nil {
		writeError(w, err, "get sets failed")
		return
	}

	pkg.WriteJSON(w, sets, http.StatusOK)
}

func (handler *Handler) HandleAddSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workouts.add_set")
	defer span.End()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var set NewSet
	if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
		log.Tracef("add set, unmarshal json params: %s", err)
		http.Error(w, "add set failed", http.StatusBadRequest)
		return
	}

	added, err := handler.service.AddSet(ctx, id, set)
	if err != nil {
		writeError(w, err, "add set failed")
		return
	}

	pkg.WriteJSON(w, added, http.StatusCreated)
}

func idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeError maps domain errors to status codes, anything else is a 500.
func writeError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUnknownReference):
		http.Error(w, ErrUnknownReference.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrWorkoutNotFound):
		http.Error(w, ErrWorkoutNotFound.Error(), http.StatusNotFound)
	case errors.Is(err, ErrWorkoutExerciseNotFound):
		http.Error(w, ErrWorkoutExerciseNotFound.Error(), http.StatusNotFound)
	default:
		log.Errorf("%s: %s", msg, err)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}
