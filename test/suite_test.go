//go:build integration_test || all_tests

package test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"testing"
	"time"

	"github.com/2beens/liftlog/internal"
	"github.com/2beens/liftlog/internal/config"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/suite"
)

const (
	serverPort = 9000
	serverHost = "127.0.0.1"
	testDBName = "liftlog"
)

var serverEndpoint = fmt.Sprintf("http://%s:%d", serverHost, serverPort)

// IntegrationTestSuite runs the whole backend against real postgres and
// redis containers.
type IntegrationTestSuite struct {
	suite.Suite

	DB         *sql.DB
	dockerPool *dockertest.Pool
	server     *internal.Server
	httpClient *http.Client
	teardown   []func()
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	fmt.Println("setting up test suite...")

	s.teardown = make([]func(), 0)
	s.httpClient = &http.Client{Timeout: 10 * time.Second}

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	var err error
	s.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not create new dockertest pool: %s", err)
	}

	if err = s.dockerPool.Client.Ping(); err != nil {
		log.Fatalf("could not ping dockertest pool: %s", err)
	}
	fmt.Println("dockertest pool ping successful")

	redisPort, err := s.redisSetup()
	if err != nil {
		s.cleanup()
		log.Fatalf("failed to setup redis: %s", err.Error())
	}
	fmt.Println("redis setup successful")

	pgPort, err := s.postgresSetup()
	if err != nil {
		s.cleanup()
		log.Fatalf("failed to setup postgres: %s", err)
	}
	fmt.Println("postgres setup successful")

	cfg := getTestConfig(redisPort, pgPort)
	s.server, err = internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             "test-version-info",
			HoneycombTracingEnabled: false,
		},
	)
	if err != nil {
		s.cleanup()
		log.Fatalf("new server: %s", err)
	}

	s.server.Serve(ctx, cfg.Host, cfg.Port)
	if err := s.dockerPool.Retry(func() error {
		resp, err := s.httpClient.Get(serverEndpoint + "/muscle-groups")
		if err != nil {
			return err
		}
		return resp.Body.Close()
	}); err != nil {
		s.cleanup()
		log.Fatalf("server not reachable: %s", err)
	}
	fmt.Println("server started")
}

func (s *IntegrationTestSuite) TearDownSuite() {
	s.cleanup()
}

func (s *IntegrationTestSuite) cleanup() {
	fmt.Println(" --> cleaning up test suite...")
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			fmt.Printf(" --> test suite db close error: %s\n", err)
		}
	}
	if s.server != nil {
		s.server.GracefulShutdown()
	}
	for _, teardown := range s.teardown {
		teardown()
	}
	fmt.Println(" --> test suite cleanup done")
}

func getTestConfig(redisPort, postgresPort string) *config.Config {
	return &config.Config{
		Environment:                 "test",
		Host:                        serverHost,
		Port:                        serverPort,
		LogLevel:                    "debug",
		RedisHost:                   "localhost",
		RedisPort:                   redisPort,
		PostgresHost:                "localhost",
		PostgresPort:                postgresPort,
		PostgresDBName:              testDBName,
		PostgresUser:                "postgres",
		MigrationsPath:              "../migrations",
		RunMigrations:               true,
		PrometheusMetricsHost:       "localhost",
		PrometheusMetricsPort:       "9002",
		CorsAllowedOrigins:          []string{"test"},
		SessionTTL:                  config.Duration{Duration: time.Hour},
		SessionCleanupSpec:          "@every 1h",
		LoginRateLimitAllowedPerMin: 100,
		DefaultRepScheme:            6,
		RefDataRefreshSpec:          "@every 1h",
		RefDataCacheSizeMB:          1,
		MCPEnabled:                  true,
	}
}

func (s *IntegrationTestSuite) redisSetup() (string, error) {
	redisResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return "", fmt.Errorf("run redis: %s", err)
	}

	s.teardown = append(s.teardown, func() {
		if err := redisResource.Close(); err != nil {
			fmt.Printf("redis teardown: %s\n", err)
		}
	})

	return redisResource.GetPort("6379/tcp"), nil
}

func (s *IntegrationTestSuite) postgresSetup() (string, error) {
	pgResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=" + testDBName,
			"POSTGRES_HOST_AUTH_METHOD=trust",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return "", fmt.Errorf("dockerpool run postgres: %s", err)
	}

	s.teardown = append(s.teardown, func() {
		if err := pgResource.Close(); err != nil {
			fmt.Printf("postgres teardown: %s\n", err)
		}
	})

	pgPort := pgResource.GetPort("5432/tcp")
	dsn := fmt.Sprintf("postgres://postgres@localhost:%s/%s?sslmode=disable", pgPort, testDBName)

	if err := s.dockerPool.Retry(func() error {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return err
		}
		s.DB = db
		return nil
	}); err != nil {
		return "", fmt.Errorf("connect to db: %s", err)
	}

	return pgPort, nil
}
