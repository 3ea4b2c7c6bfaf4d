package refdata

import (
	"net/http"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	cache *Cache
}

func NewHandler(cache *Cache) *Handler {
	return &Handler{
		cache: cache,
	}
}

func (handler *Handler) HandleMuscleGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.refdata.muscle_groups")
	defer span.End()

	muscleGroups, err := handler.cache.MuscleGroups(ctx)
	if err != nil {
		log.Errorf("get muscle groups: %s", err)
		http.Error(w, "get muscle groups failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, muscleGroups, http.StatusOK)
}

func (handler *Handler) HandleMovementTypes(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.refdata.movement_types")
	defer span.End()

	movementTypes, err := handler.cache.MovementTypes(ctx)
	if err != nil {
		log.Errorf("get movement types: %s", err)
		http.Error(w, "get movement types failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, movementTypes, http.StatusOK)
}

type MuscleGroupsAndMovementTypes struct {
	MuscleGroups  []MuscleGroup  `json:"muscleGroups"`
	MovementTypes []MovementType `json:"movementTypes"`
}

func (handler *Handler) HandleAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.refdata.all")
	defer span.End()

	muscleGroups, err := handler.cache.MuscleGroups(ctx)
	if err != nil {
		log.Errorf("get muscle groups: %s", err)
		http.Error(w, "get muscle groups and movement types failed", http.StatusInternalServerError)
		return
	}
	movementTypes, err := handler.cache.MovementTypes(ctx)
	if err != nil {
		log.Errorf("get movement types: %s", err)
		http.Error(w, "get muscle groups and movement types failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, MuscleGroupsAndMovementTypes{
		MuscleGroups:  muscleGroups,
		MovementTypes: movementTypes,
	}, http.StatusOK)
}
