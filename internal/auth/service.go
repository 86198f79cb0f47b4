package auth

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/pushparaj09/medishift-ai/internal/employee"
)

// Directory is the slice of the staff directory auth needs.
type Directory interface {
	GetByUsername(username string) (*employee.Employee, error)
	GetByIdentifier(identifier string) (*employee.Employee, error)
	GetEmployee(id string) (*employee.Employee, error)
	SetPasswordHash(id, hash string) error
}

// Service is the main auth service with dependencies
type Service struct {
	directory      Directory
	tokenGenerator TokenGenerator
	bcryptCost     int
	logger         *slog.Logger

	mu         sync.Mutex
	resetCodes map[string]string
}

func NewService(directory Directory, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		directory:      directory,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
		resetCodes:     make(map[string]string),
	}
}

// Authenticate validates credentials and returns tokens. The admin
// portal rejects non-administrators even with a correct password.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, *employee.Employee, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, nil, err
	}

	emp, err := s.directory.GetByUsername(dto.Username)
	if err != nil {
		s.logger.Warn("login failed: unknown username", "username", dto.Username)
		return AuthTokens{}, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: bad password", "username", dto.Username)
		return AuthTokens{}, nil, ErrInvalidCredentials
	}

	if dto.Portal == PortalAdmin && !emp.IsAdministrator() {
		s.logger.Warn("admin portal denied", "username", dto.Username, "role", emp.Role)
		return AuthTokens{}, nil, ErrAdminRequired
	}

	tokens, err := s.issueTokens(emp)
	if err != nil {
		return AuthTokens{}, nil, err
	}

	s.logger.Info("login succeeded", "employee_id", emp.ID, "portal", dto.Portal)
	return tokens, emp, nil
}

// RefreshTokens validates refresh token and returns new tokens
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	emp, err := s.directory.GetEmployee(claims.UserID)
	if err != nil {
		return AuthTokens{}, ErrInvalidToken
	}

	return s.issueTokens(emp)
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

func (s *Service) issueTokens(emp *employee.Employee) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(emp.ID, string(emp.Role))
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(emp.ID, string(emp.Role))
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// --- password reset ---

// RequestReset starts a reset flow for the account matching the email
// or username. No messaging integration exists, so the code comes back
// as a simulated delivery notice.
func (s *Service) RequestReset(dto IdentifyDTO) (*ResetChallengeDTO, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.directory.GetByIdentifier(dto.Identifier)
	if err != nil {
		s.logger.Warn("reset request for unknown account", "identifier", dto.Identifier)
		return nil, ErrAccountNotFound
	}

	code, err := generateResetCode()
	if err != nil {
		s.logger.Error("failed to generate reset code", "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.resetCodes[emp.ID] = code
	s.mu.Unlock()

	s.logger.Info("reset code issued", "employee_id", emp.ID)

	return &ResetChallengeDTO{
		Notice: fmt.Sprintf("SIMULATION: OTP %s sent to %s & %s", code, emp.PhoneNumber, emp.Email),
	}, nil
}

// VerifyResetCode checks a code without consuming it, so the client
// can gate the new-password form.
func (s *Service) VerifyResetCode(dto VerifyResetCodeDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	_, err := s.matchResetCode(dto.Identifier, dto.Code)
	return err
}

// ResetPassword consumes a valid code and stores the new password hash.
func (s *Service) ResetPassword(dto ResetPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	emp, err := s.matchResetCode(dto.Identifier, dto.Code)
	if err != nil {
		return err
	}

	hash, err := s.HashPassword(dto.NewPassword)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err, "employee_id", emp.ID)
		return err
	}

	if err := s.directory.SetPasswordHash(emp.ID, hash); err != nil {
		s.logger.Error("failed to store new password", "error", err, "employee_id", emp.ID)
		return err
	}

	s.mu.Lock()
	delete(s.resetCodes, emp.ID)
	s.mu.Unlock()

	s.logger.Info("password reset completed", "employee_id", emp.ID)
	return nil
}

func (s *Service) matchResetCode(identifier, code string) (*employee.Employee, error) {
	emp, err := s.directory.GetByIdentifier(identifier)
	if err != nil {
		return nil, ErrAccountNotFound
	}

	s.mu.Lock()
	expected, ok := s.resetCodes[emp.ID]
	s.mu.Unlock()

	if !ok || expected != strings.TrimSpace(code) {
		s.logger.Warn("reset code mismatch", "employee_id", emp.ID)
		return nil, ErrInvalidResetCode
	}
	return emp, nil
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// generateResetCode returns a 6 digit one-time code.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
