package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/liftlog/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "liftlog-session||"
	tokensSetKey     = "liftlog-sessions"
	tokenLength      = 35
	minPasswordLen   = 6
)

var (
	ErrWrongCredentials = errors.New("wrong credentials")
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidUser      = errors.New("name, email and password are required")
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type NewUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type usersRepo interface {
	Add(ctx context.Context, user User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type Service struct {
	redisClient *redis.Client
	users       usersRepo
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(
	ttl time.Duration,
	redisClient *redis.Client,
	users usersRepo,
) *Service {
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		users:          users,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func (s *Service) Register(ctx context.Context, req NewUserRequest) (*User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Email == "" || len(req.Password) < minPasswordLen {
		return nil, ErrInvalidUser
	}

	hash, err := pkg.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.users.Add(ctx, User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})
}

// Login checks the credentials and opens a new session, returning its token.
func (s *Service) Login(ctx context.Context, creds Credentials, createdAt time.Time) (string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrWrongCredentials
		}
		return "", err
	}

	if !pkg.CheckPasswordHash(creds.Password, user.PasswordHash) {
		return "", ErrWrongCredentials
	}

	token, err := s.RandStringFunc(tokenLength)
	if err != nil {
		return "", err
	}

	sessionKey := sessionKeyPrefix + token
	if err := s.redisClient.Set(ctx, sessionKey, createdAt.Unix(), s.ttl).Err(); err != nil {
		return "", err
	}

	// add token to list of sessions
	if err := s.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", err
	}

	return token, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	sessionKey := sessionKeyPrefix + token
	deleted, err := s.redisClient.Del(ctx, sessionKey).Result()
	if err != nil {
		return err
	}

	// remove token from the list of sessions
	if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return err
	}

	if deleted == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (s *Service) ScanAndClean(ctx context.Context) {
	cmd := s.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	sessionTokens := cmd.Val()
	if len(sessionTokens) == 0 {
		log.Debugln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("=> auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		cmd := s.redisClient.Get(ctx, sessionKeyPrefix+token)
		if err := cmd.Err(); err != nil {
			if errors.Is(err, redis.Nil) {
				// expired by redis already, only the set entry is left
				toRemove = append(toRemove, token)
				continue
			}
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}

		createdAtUnix, err := strconv.ParseInt(cmd.Val(), 10, 64)
		if err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}

		if time.Since(time.Unix(createdAtUnix, 0)) > s.ttl {
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if err := s.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}

		if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}
	}

	log.Debugf("=> auth service, scan and clean done, removed %d sessions", len(toRemove))
}
