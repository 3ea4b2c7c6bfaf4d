package mcp

import (
	"context"
	"errors"

	"github.com/2beens/liftlog/internal/autoreg"
	"github.com/2beens/liftlog/internal/gymstats/workouts"

	"github.com/mark3labs/mcp-go/mcp"
	log "github.com/sirupsen/logrus"
)

type handlers struct {
	service workoutsService
}

type AdjustSetResult struct {
	Weight float64      `json:"weight"`
	Rule   autoreg.Rule `json:"rule"`
}

func (h *handlers) scheme(req mcp.CallToolRequest) (autoreg.RepScheme, error) {
	s := req.GetInt("scheme", 0)
	if s == 0 {
		return h.service.DefaultScheme(), nil
	}
	return autoreg.ParseRepScheme(s)
}

func (h *handlers) getWorkoutSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workoutID, err := req.RequireInt("workout_id")
	if err != nil {
		return mcp.NewToolResultError("workout_id parameter is required"), nil
	}
	scheme, err := h.scheme(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	summary, err := h.service.Summary(ctx, workoutID, scheme)
	if err != nil {
		if errors.Is(err, workouts.ErrWorkoutNotFound) {
			return mcp.NewToolResultError("workout not found"), nil
		}
		log.Errorf("mcp get_workout_summary [%d]: %s", workoutID, err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(summary)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) adjustSet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	reps, err := req.RequireInt("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}
	rpe, err := req.RequireFloat("rpe")
	if err != nil {
		return mcp.NewToolResultError("rpe parameter is required"), nil
	}
	scheme, err := h.scheme(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	level, err := autoreg.ParseAdjustmentLevel(req.GetString("level", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	suggested, rule := h.service.AdjustSet(scheme, level, autoreg.LiftSet{
		Weight: weight,
		Reps:   reps,
		RPE:    rpe,
	})

	result, err := mcp.NewToolResultJSON(AdjustSetResult{Weight: suggested, Rule: rule})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
