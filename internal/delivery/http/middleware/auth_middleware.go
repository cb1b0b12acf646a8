package middleware

import (
	"context"
	"net/http"
	"strings"

	"nearest-blood-locator/internal/domain/entity"
	"nearest-blood-locator/internal/service"
	"nearest-blood-locator/pkg/jwt"
	"nearest-blood-locator/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
	RoleKey     contextKey = "role"
	TokenIDKey  contextKey = "token_id"
)

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	tokenStore service.TokenStore
	log        *logrus.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWTService, tokenStore service.TokenStore, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		tokenStore: tokenStore,
		log:        log,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		ctx, status, message := m.authenticate(r.Context(), authHeader)
		if status != http.StatusOK {
			response.Error(w, status, message, nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthenticate attaches the identity when a valid bearer token is sent and
// lets anonymous requests through unchanged. A token that is sent but invalid is
// still rejected.
func (m *AuthMiddleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx, status, message := m.authenticate(r.Context(), authHeader)
		if status != http.StatusOK {
			response.Error(w, status, message, nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) authenticate(ctx context.Context, authHeader string) (context.Context, int, string) {
	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ctx, http.StatusUnauthorized, "Invalid authorization header format"
	}

	claims, err := m.jwtService.ValidateToken(parts[1])
	if err != nil {
		return ctx, http.StatusUnauthorized, "Invalid or expired token"
	}

	role, err := entity.ParseRole(claims.Role)
	if err != nil {
		return ctx, http.StatusUnauthorized, "Token carries no valid role"
	}

	// Check if token exists in the whitelist (not revoked)
	exists, err := m.tokenStore.Exists(ctx, claims.UserID, claims.TokenID)
	if err != nil {
		m.log.Warnf("Failed to validate token: %+v", err)
		return ctx, http.StatusInternalServerError, "Failed to validate token"
	}
	if !exists {
		return ctx, http.StatusUnauthorized, "Token has been revoked"
	}

	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UsernameKey, claims.Username)
	ctx = context.WithValue(ctx, RoleKey, role)
	ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

	return ctx, http.StatusOK, ""
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}

func GetRoleFromContext(ctx context.Context) (entity.Role, bool) {
	role, ok := ctx.Value(RoleKey).(entity.Role)
	return role, ok
}
