package programs

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	log "github.com/sirupsen/logrus"
)

type programsRepo interface {
	List(ctx context.Context) ([]Program, error)
	Add(ctx context.Context, program Program) (*Program, error)
}

type NewProgramRequest struct {
	Name          string `json:"name"`
	DurationWeeks int    `json:"duration_weeks"`
	DeloadWeek    *bool  `json:"deload_week"`
}

type Handler struct {
	repo programsRepo
}

func NewHandler(repo programsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.programs.list")
	defer span.End()

	programs, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list programs: %s", err)
		http.Error(w, "list programs failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, programs, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.programs.add")
	defer span.End()

	var req NewProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new program, unmarshal json params: %s", err)
		http.Error(w, "add program failed", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.DurationWeeks <= 0 {
		http.Error(w, "error, name and duration_weeks are required", http.StatusBadRequest)
		return
	}

	program := Program{
		Name:          req.Name,
		DurationWeeks: req.DurationWeeks,
	}
	if req.DeloadWeek != nil {
		program.DeloadWeek = *req.DeloadWeek
	}

	added, err := handler.repo.Add(ctx, program)
	if err != nil {
		log.Errorf("add program [%s]: %s", req.Name, err)
		http.Error(w, "add program failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, added, http.StatusCreated)
}
