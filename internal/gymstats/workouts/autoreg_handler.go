package workouts

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/2beens/liftlog/internal/autoreg"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	log "github.com/sirupsen/logrus"
)

type AdjustRequest struct {
	Scheme int     `json:"scheme"`
	Level  string  `json:"level"`
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	RPE    float64 `json:"rpe"`
}

type AdjustResponse struct {
	Weight float64      `json:"weight"`
	Rule   autoreg.Rule `json:"rule"`
}

func (handler *Handler) HandleVolume(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workouts.volume")
	defer span.End()

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	volume, err := handler.service.Volume(ctx, id)
	if err != nil {
		writeError(w, err, "get workout volume failed")
		return
	}

	pkg.WriteJSON(w, volume, http.StatusOK)
}

func (handler *Handler) HandleAdjustments(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workouts.adjustments")
	defer span.End()

	id, ok := idParam(w, r)
	if !ok {
		return
	}
	scheme, ok := handler.schemeParam(w, r)
	if !ok {
		return
	}

	adjustments, err := handler.service.Adjustments(ctx, id, scheme)
	if err != nil {
		writeError(w, err, "get workout adjustments failed")
		return
	}

	pkg.WriteJSON(w, adjustments, http.StatusOK)
}

func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.workouts.summary")
	defer span.End()

	id, ok := idParam(w, r)
	if !ok {
		return
	}
	scheme, ok := handler.schemeParam(w, r)
	if !ok {
		return
	}

	summary, err := handler.service.Summary(ctx, id, scheme)
	if err != nil {
		writeError(w, err, "get workout summary failed")
		return
	}

	pkg.WriteJSON(w, summary, http.StatusOK)
}

// HandleAdjust evaluates a single set without touching storage.
func (handler *Handler) HandleAdjust(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.adjust")
	defer span.End()

	var req AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("adjust, unmarshal json params: %s", err)
		http.Error(w, "adjust failed", http.StatusBadRequest)
		return
	}

	scheme := handler.service.DefaultScheme()
	if req.Scheme != 0 {
		var err error
		if scheme, err = autoreg.ParseRepScheme(req.Scheme); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	level, err := autoreg.ParseAdjustmentLevel(req.Level)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	weight, rule := handler.service.AdjustSet(scheme, level, autoreg.LiftSet{
		Weight: req.Weight,
		Reps:   req.Reps,
		RPE:    req.RPE,
	})

	pkg.WriteJSON(w, AdjustResponse{Weight: weight, Rule: rule}, http.StatusOK)
}

func (handler *Handler) schemeParam(w http.ResponseWriter, r *http.Request) (autoreg.RepScheme, bool) {
	schemeStr := r.URL.Query().Get("scheme")
	if schemeStr == "" {
		return handler.service.DefaultScheme(), true
	}
	schemeInt, err := strconv.Atoi(schemeStr)
	if err != nil {
		http.Error(w, "error, scheme NaN", http.StatusBadRequest)
		return 0, false
	}
	scheme, err := autoreg.ParseRepScheme(schemeInt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return scheme, true
}
