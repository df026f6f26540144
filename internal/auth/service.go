package auth

import (
	"errors"
	"time"

	"inkwell-backend/internal/database"
	"inkwell-backend/internal/models"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords so
// that login responses cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service handles authentication logic
type Service struct {
	userRepo    *database.UserRepo
	sessionRepo *database.SessionRepo
	sessionTTL  time.Duration
}

// NewService creates a new auth service
func NewService(sessionTTL time.Duration) *Service {
	if sessionTTL <= 0 {
		sessionTTL = time.Hour
	}
	return &Service{
		userRepo:    database.NewUserRepo(),
		sessionRepo: database.NewSessionRepo(),
		sessionTTL:  sessionTTL,
	}
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Register creates a new user with the given credentials. A duplicate
// username surfaces as database.ErrUsernameTaken.
func (s *Service) Register(username, password string) (*models.User, error) {
	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and creates a session
func (s *Service) Login(req LoginRequest, ipAddress, userAgent string) (*LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	valid, err := VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	token, session, err := s.sessionRepo.Create(user.ID, ipAddress, userAgent, s.sessionTTL)
	if err != nil {
		return nil, err
	}

	s.userRepo.UpdateLastLogin(user.ID)

	return &LoginResponse{
		User:      user,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Logout invalidates a session
func (s *Service) Logout(token string) error {
	return s.sessionRepo.DeleteByToken(token)
}

// ValidateToken validates a session token and returns the user. Called once
// per request by the auth middleware; the result is never cached across
// requests.
func (s *Service) ValidateToken(token string) (*models.User, *models.Session, error) {
	session, err := s.sessionRepo.GetByToken(token)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetByID(session.UserID)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// RevokeAllSessions revokes all sessions for a user
func (s *Service) RevokeAllSessions(userID int64) error {
	return s.sessionRepo.DeleteAllForUser(userID)
}
