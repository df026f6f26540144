package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"inkwell-backend/internal/auth"
	"inkwell-backend/internal/database"
	"inkwell-backend/internal/models"
)

var authService *auth.Service

// registerHandler handles POST /api/auth/register
func registerHandler(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	if req.Username == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "username is required",
		})
	}
	if req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "password is required",
		})
	}

	user, err := authService.Register(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, database.ErrUsernameTaken) {
			return c.JSON(http.StatusConflict, map[string]string{
				"error": "username already taken",
			})
		}
		c.Logger().Error("register error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to register",
		})
	}

	return c.JSON(http.StatusCreated, user)
}

// loginHandler handles POST /api/auth/login
func loginHandler(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "username and password are required",
		})
	}

	ipAddress := c.RealIP()
	userAgent := c.Request().UserAgent()

	resp, err := authService.Login(req, ipAddress, userAgent)
	if err != nil {
		// One message for unknown usernames and wrong passwords alike
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "invalid username or password",
			})
		}
		c.Logger().Error("login error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "authentication failed",
		})
	}

	auth.LoginRateLimiter.RecordSuccess(ipAddress)

	// Clear any session the client already held before binding the new one,
	// so nothing from a previous identity survives the login. A failed login
	// must not touch the existing session, so this only runs on success.
	if prior := getTokenFromRequest(c); prior != "" {
		_ = authService.Logout(prior)
	}

	// Set token in cookie (HttpOnly for security)
	cookie := &http.Cookie{
		Name:     "session_token",
		Value:    resp.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Request().TLS != nil, // Secure if HTTPS
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(time.Until(resp.ExpiresAt).Seconds()),
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":       resp.User,
		"token":      resp.Token,
		"expires_at": resp.ExpiresAt,
	})
}

// logoutHandler handles POST /api/auth/logout
func logoutHandler(c echo.Context) error {
	token := getTokenFromRequest(c)
	if token != "" {
		if err := authService.Logout(token); err != nil {
			if errors.Is(err, database.ErrSessionNotFound) {
				// Session already gone, that's fine
			} else {
				c.Logger().Error("logout error: ", err)
			}
		}
	}

	// Clear cookie
	cookie := &http.Cookie{
		Name:     "session_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

// getCurrentUser handles GET /api/auth/me
func getCurrentUser(c echo.Context) error {
	user := auth.GetUserFromContext(c)
	session := auth.GetSessionFromContext(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "not authenticated",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":    user,
		"session": session,
	})
}

// revokeAllSessions handles DELETE /api/auth/sessions. Logs the user out
// everywhere, including the session making this request.
func revokeAllSessions(c echo.Context) error {
	user := auth.GetUserFromContext(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "not authenticated",
		})
	}

	if err := authService.RevokeAllSessions(user.ID); err != nil {
		c.Logger().Error("revoke sessions error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to revoke sessions",
		})
	}

	cookie := &http.Cookie{
		Name:     "session_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, map[string]string{
		"message": "all sessions revoked",
	})
}

// getTokenFromRequest extracts the session token from the request
func getTokenFromRequest(c echo.Context) string {
	// Try Authorization header first
	authHeader := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Try cookie
	cookie, err := c.Cookie("session_token")
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}
