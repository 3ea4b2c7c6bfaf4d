// Package main runs the liftlog MCP server over stdio (for local editor use).
// The same MCP server is also mounted on the backend at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/2beens/liftlog/internal/autoreg"
	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/db"
	gymstatsmcp "github.com/2beens/liftlog/internal/gymstats/mcp"
	"github.com/2beens/liftlog/internal/gymstats/workouts"
	"github.com/2beens/liftlog/internal/logging"
	"github.com/2beens/liftlog/internal/telemetry/metrics"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	log.SetOutput(os.Stderr)
	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// stdout carries the protocol
	logging.Setup(logging.LoggerSetupParams{
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
		Console:       os.Stderr,
	})

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("LIFTLOG_POSTGRES_PASS"),
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	defaultScheme, err := autoreg.ParseRepScheme(cfg.DefaultRepScheme)
	if err != nil {
		log.Fatalf("default rep scheme: %v", err)
	}

	// metrics are not exported from the stdio process
	metricsManager := metrics.NewManager("mcp", "stdio", prometheus.NewRegistry())
	service := workouts.NewService(workouts.NewRepo(dbPool), metricsManager, defaultScheme)

	if err := server.ServeStdio(gymstatsmcp.NewServer(service, "stdio")); err != nil {
		log.Fatal(err)
	}
}
