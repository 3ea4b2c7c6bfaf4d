// Package mcp exposes the autoregulation engine as MCP tools. The server is
// mounted on the backend at /mcp and can also run over stdio.
package mcp

import (
	"context"

	"github.com/2beens/liftlog/internal/autoreg"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type workoutsService interface {
	Summary(ctx context.Context, workoutID int, scheme autoreg.RepScheme) (*autoreg.WorkoutSummary, error)
	AdjustSet(scheme autoreg.RepScheme, level autoreg.AdjustmentLevel, set autoreg.LiftSet) (float64, autoreg.Rule)
	DefaultScheme() autoreg.RepScheme
}

func NewServer(service workoutsService, version string) *server.MCPServer {
	s := server.NewMCPServer("liftlog", version,
		server.WithToolCapabilities(false),
		server.WithInstructions("Liftlog training log. Summarize stored workouts (volume per muscle group and load adjustments) and compute the next load for a single set."),
	)

	h := &handlers{service: service}
	s.AddTools(
		server.ServerTool{Tool: toolGetWorkoutSummary, Handler: h.getWorkoutSummary},
		server.ServerTool{Tool: toolAdjustSet, Handler: h.adjustSet},
	)

	return s
}

var toolGetWorkoutSummary = mcp.NewTool("get_workout_summary",
	mcp.WithDescription("Total volume (weight x reps), volume per muscle group and a load adjustment for every set with an RPE, for one stored workout."),
	mcp.WithNumber("workout_id", mcp.Required(), mcp.Description("Workout id")),
	mcp.WithNumber("scheme", mcp.Description("Rep scheme: 3 (strength), 6 (hypertrophy) or 10 (endurance). Defaults to the server default.")),
)

var toolAdjustSet = mcp.NewTool("adjust_set",
	mcp.WithDescription("Suggest the next working weight for a set from its weight, reps and RPE."),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight lifted")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Reps performed")),
	mcp.WithNumber("rpe", mcp.Required(), mcp.Description("Rate of perceived exertion, 1 to 10")),
	mcp.WithNumber("scheme", mcp.Description("Rep scheme: 3, 6 or 10. Defaults to the server default.")),
	mcp.WithString("level", mcp.Description("Adjustment level. Defaults to progressive."), mcp.Enum("conservative", "mid", "progressive")),
)
