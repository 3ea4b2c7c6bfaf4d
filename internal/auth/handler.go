package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	log "github.com/sirupsen/logrus"
)

type authService interface {
	Register(ctx context.Context, req NewUserRequest) (*User, error)
	Login(ctx context.Context, creds Credentials, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) error
}

type LoginResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	service        authService
	metricsManager *metrics.Manager
}

func NewHandler(service authService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.register")
	defer span.End()

	var req NewUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "error, invalid register request", http.StatusBadRequest)
		return
	}

	user, err := handler.service.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidUser):
			http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrUserExists):
			http.Error(w, "error, user already exists", http.StatusConflict)
		default:
			log.Errorf("register user [%s]: %s", req.Email, err)
			http.Error(w, "register failed", http.StatusInternalServerError)
		}
		return
	}

	log.Debugf("new user registered: %s", user.ID)
	pkg.WriteJSON(w, user, http.StatusCreated)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		handler.metricsManager.CounterLogins.WithLabelValues("invalid").Inc()
		http.Error(w, "error, invalid login request", http.StatusBadRequest)
		return
	}
	if creds.Email == "" || creds.Password == "" {
		handler.metricsManager.CounterLogins.WithLabelValues("invalid").Inc()
		http.Error(w, "error, email and password are required", http.StatusBadRequest)
		return
	}

	token, err := handler.service.Login(ctx, creds, time.Now())
	if err != nil {
		if errors.Is(err, ErrWrongCredentials) {
			log.Tracef("failed login attempt for user: %s", creds.Email)
			handler.metricsManager.CounterLogins.WithLabelValues("failed").Inc()
			http.Error(w, "error, wrong credentials", http.StatusBadRequest)
			return
		}
		log.Errorf("login failed for [%s]: %s", creds.Email, err)
		handler.metricsManager.CounterLogins.WithLabelValues("error").Inc()
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterLogins.WithLabelValues("success").Inc()
	log.Trace("new login success")
	pkg.WriteJSON(w, LoginResponse{Token: token}, http.StatusOK)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	authToken := TokenFromRequest(r)
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := handler.service.Logout(ctx, authToken); err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			log.Errorf("logout: %s", err)
		}
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	log.Trace("logout success")
	pkg.WriteTextResponseOK(w, "logged-out")
}
