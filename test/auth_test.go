//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/2beens/liftlog/internal/auth"

	"github.com/stretchr/testify/assert"
)

func (s *IntegrationTestSuite) TestAuth_RegisterLoginLogout() {
	ctx := context.Background()

	status, _ := s.doRequest(ctx, http.MethodGet, "/workouts", "", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, status)

	token := s.registerAndLogin(ctx)

	status, _ = s.doRequest(ctx, http.MethodGet, "/workouts", token, nil)
	assert.Equal(s.T(), http.StatusOK, status)

	status, body := s.doRequest(ctx, http.MethodPost, "/a/logout", token, nil)
	assert.Equal(s.T(), http.StatusOK, status)
	assert.Equal(s.T(), "logged-out", string(body))

	status, _ = s.doRequest(ctx, http.MethodGet, "/workouts", token, nil)
	assert.Equal(s.T(), http.StatusUnauthorized, status)

	// second logout of the same token
	status, _ = s.doRequest(ctx, http.MethodPost, "/a/logout", token, nil)
	assert.Equal(s.T(), http.StatusUnauthorized, status)
}

func (s *IntegrationTestSuite) TestAuth_WrongCredentials() {
	ctx := context.Background()

	status, _ := s.doRequest(ctx, http.MethodPost, "/a/login", "", auth.Credentials{
		Email:    "nobody@liftlog.test",
		Password: "whatever",
	})
	assert.Equal(s.T(), http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestAuth_DuplicateRegistration() {
	ctx := context.Background()

	req := auth.NewUserRequest{Name: "dup", Email: "dup@liftlog.test", Password: "secret-pass"}
	status, _ := s.doRequest(ctx, http.MethodPost, "/a/register", "", req)
	assert.Equal(s.T(), http.StatusCreated, status)

	status, _ = s.doRequest(ctx, http.MethodPost, "/a/register", "", req)
	assert.Equal(s.T(), http.StatusConflict, status)
}
