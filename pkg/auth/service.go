package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/intentlane-inc/intentlane-engine/pkg/models"
)

// AuthService resolves the acting org and user for a request.
type AuthService interface {
	// ValidateRequest authenticates the request and returns the actor.
	ValidateRequest(r *http.Request) (models.Actor, error)
}

type authService struct {
	secret             []byte
	enableVerification bool
}

// NewAuthService creates an AuthService. When enableVerification is false,
// bearer tokens are not required and identity is taken from the
// X-Org-ID / X-User-ID headers.
func NewAuthService(secret string, enableVerification bool) AuthService {
	return &authService{
		secret:             []byte(secret),
		enableVerification: enableVerification,
	}
}

var _ AuthService = (*authService)(nil)

func (s *authService) ValidateRequest(r *http.Request) (models.Actor, error) {
	if !s.enableVerification {
		return actorFromHeaders(r)
	}

	tokenString, err := extractBearerToken(r)
	if err != nil {
		return models.Actor{}, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return models.Actor{}, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return models.Actor{}, fmt.Errorf("invalid token")
	}

	orgID, userID, err := claims.Actor()
	if err != nil {
		return models.Actor{}, err
	}

	return models.Actor{OrgID: orgID, UserID: userID}, nil
}

func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("missing Authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("malformed Authorization header")
	}
	return parts[1], nil
}

func actorFromHeaders(r *http.Request) (models.Actor, error) {
	orgID, err := uuid.Parse(r.Header.Get("X-Org-ID"))
	if err != nil {
		return models.Actor{}, fmt.Errorf("invalid X-Org-ID header: %w", err)
	}
	userID, err := uuid.Parse(r.Header.Get("X-User-ID"))
	if err != nil {
		return models.Actor{}, fmt.Errorf("invalid X-User-ID header: %w", err)
	}
	return models.Actor{OrgID: orgID, UserID: userID}, nil
}
