package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftlog/internal/refdata"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=exercises_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	List(ctx context.Context, params ListParams) ([]Exercise, error)
	Get(ctx context.Context, id int) (*Exercise, error)
	Add(ctx context.Context, exercise Exercise) (*Exercise, error)
	Delete(ctx context.Context, id int) error
}

type referenceData interface {
	MuscleGroupID(ctx context.Context, name string) (int, error)
	MovementTypeID(ctx context.Context, name string) (int, error)
}

type DeleteExerciseResponse struct {
	DeletedID int `json:"deletedId"`
}

type Handler struct {
	repo    exercisesRepo
	refData referenceData
}

func NewHandler(repo exercisesRepo, refData referenceData) *Handler {
	return &Handler{
		repo:    repo,
		refData: refData,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercises.list")
	defer span.End()

	params := ListParams{}
	// unknown names are ignored rather than rejected
	if name := r.URL.Query().Get("muscleGroupName"); name != "" {
		if id, err := handler.refData.MuscleGroupID(ctx, name); err == nil {
			params.MuscleGroupID = &id
		} else if !errors.Is(err, refdata.ErrMuscleGroupNotFound) {
			log.Errorf("list exercises, resolve muscle group [%s]: %s", name, err)
			http.Error(w, "list exercises failed", http.StatusInternalServerError)
			return
		}
	}
	if name := r.URL.Query().Get("movementTypeName"); name != "" {
		if id, err := handler.refData.MovementTypeID(ctx, name); err == nil {
			params.MovementTypeID = &id
		} else if !errors.Is(err, refdata.ErrMovementTypeNotFound) {
			log.Errorf("list exercises, resolve movement type [%s]: %s", name, err)
			http.Error(w, "list exercises failed", http.StatusInternalServerError)
			return
		}
	}

	exercises, err := handler.repo.List(ctx, params)
	if err != nil {
		log.Errorf("list exercises: %s", err)
		http.Error(w, "list exercises failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, exercises, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercises.get")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	e, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("get exercise %d: %s", id, err)
		http.Error(w, "get exercise failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, e, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercises.add")
	defer span.End()

	var req NewExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.MuscleGroupName == "" || req.MovementTypeName == "" {
		http.Error(w, "error, name, muscle_group_name and movement_type_name are required", http.StatusBadRequest)
		return
	}

	muscleGroupID, err := handler.refData.MuscleGroupID(ctx, req.MuscleGroupName)
	if err != nil {
		if errors.Is(err, refdata.ErrMuscleGroupNotFound) {
			http.Error(w, "Muscle group '"+req.MuscleGroupName+"' does not exist.", http.StatusNotFound)
			return
		}
		log.Errorf("add exercise, resolve muscle group: %s", err)
		http.Error(w, "add exercise failed", http.StatusInternalServerError)
		return
	}
	movementTypeID, err := handler.refData.MovementTypeID(ctx, req.MovementTypeName)
	if err != nil {
		if errors.Is(err, refdata.ErrMovementTypeNotFound) {
			http.Error(w, "Movement type '"+req.MovementTypeName+"' does not exist.", http.StatusNotFound)
			return
		}
		log.Errorf("add exercise, resolve movement type: %s", err)
		http.Error(w, "add exercise failed", http.StatusInternalServerError)
		return
	}

	added, err := handler.repo.Add(ctx, Exercise{
		Name:             req.Name,
		ImageURL:         req.ImageURL,
		Description:      req.Description,
		MuscleGroupID:    muscleGroupID,
		MuscleGroupName:  req.MuscleGroupName,
		MovementTypeID:   movementTypeID,
		MovementTypeName: req.MovementTypeName,
	})
	if err != nil {
		log.Errorf("failed to add new exercise [%s]: %s", req.Name, err)
		http.Error(w, "error, failed to add new exercise", http.StatusInternalServerError)
		return
	}

	log.Debugf("new exercise added: %d [%s]", added.ID, added.Name)
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.exercises.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, ErrExerciseNotFound):
			http.Error(w, "exercise not found", http.StatusNotFound)
		case errors.Is(err, ErrExerciseInUse):
			http.Error(w, "exercise is used by workouts", http.StatusConflict)
		default:
			log.Errorf("delete exercise %d: %s", id, err)
			http.Error(w, "delete exercise failed", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteJSON(w, DeleteExerciseResponse{DeletedID: id}, http.StatusOK)
}
