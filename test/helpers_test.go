//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/liftlog/internal/auth"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

// doRequest sends a JSON request to the running server and returns the
// status code and the raw response body.
func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path, token string, body any) (int, []byte) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) doJSON(ctx context.Context, method, path, token string, body any, expectedStatus int, dst any) {
	status, respBytes := s.doRequest(ctx, method, path, token, body)
	require.Equal(s.T(), expectedStatus, status, string(respBytes))
	if dst != nil {
		require.NoError(s.T(), json.Unmarshal(respBytes, dst))
	}
}

// registerAndLogin creates a fresh user and returns a valid session token.
func (s *IntegrationTestSuite) registerAndLogin(ctx context.Context) string {
	email := fmt.Sprintf("%d-%s", gofakeit.Number(1, 1_000_000), gofakeit.Email())
	password := gofakeit.Password(true, true, true, false, false, 12)

	s.doJSON(ctx, http.MethodPost, "/a/register", "", auth.NewUserRequest{
		Name:     gofakeit.Name(),
		Email:    email,
		Password: password,
	}, http.StatusCreated, nil)

	var loginResp auth.LoginResponse
	s.doJSON(ctx, http.MethodPost, "/a/login", "", auth.Credentials{
		Email:    email,
		Password: password,
	}, http.StatusOK, &loginResp)
	require.NotEmpty(s.T(), loginResp.Token)

	return loginResp.Token
}
