package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pushparaj09/medishift-ai/internal"
	"github.com/pushparaj09/medishift-ai/internal/employee"
	"github.com/pushparaj09/medishift-ai/internal/transport"
	"github.com/pushparaj09/medishift-ai/pkg/logger"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, *employee.Employee, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	RequestReset(dto IdentifyDTO) (*ResetChallengeDTO, error)
	VerifyResetCode(dto VerifyResetCodeDTO) error
	ResetPassword(dto ResetPasswordDTO) error
}

type Handler struct {
	*transport.BaseHandler
	Service   ServiceAPI
	Directory Directory
}

func NewHandler(service ServiceAPI, directory Directory) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
		Directory:   directory,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Login: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, emp, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Warn("Login: authentication failed", "error", err, "username", dto.Username)
		switch err {
		case ErrInvalidCredentials:
			h.WriteError(w, http.StatusUnauthorized, "Invalid credentials. Please try again.")
		case ErrAdminRequired:
			h.WriteError(w, http.StatusForbidden, "Access Denied: You do not have administrator privileges.")
		default:
			h.WriteError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.Logger.Info("Login: user authenticated", "employee_id", emp.ID)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": tokens,
		"user":   emp,
	})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Refresh: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Warn("Refresh: token refresh failed", "error", err)
		switch err {
		case ErrTokenExpired:
			h.WriteError(w, http.StatusUnauthorized, "token expired")
		default:
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// Logout exists for API symmetry. Tokens are stateless, so the client
// simply discards them.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me returns the authenticated employee's own profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	emp, err := h.Directory.GetEmployee(userID)
	if err != nil {
		h.Logger.Error("Me: employee lookup failed", "error", err, "employee_id", userID)
		h.WriteError(w, http.StatusNotFound, "employee not found")
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var dto IdentifyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("RequestReset: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	challenge, err := h.Service.RequestReset(dto)
	if err != nil {
		switch err {
		case ErrAccountNotFound:
			h.WriteError(w, http.StatusNotFound, "We couldn't find an account with that information.")
		default:
			h.Logger.Error("RequestReset: service error", "error", err)
			h.WriteError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, challenge)
}

func (h *Handler) VerifyResetCode(w http.ResponseWriter, r *http.Request) {
	var dto VerifyResetCodeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("VerifyResetCode: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.VerifyResetCode(dto); err != nil {
		switch err {
		case ErrInvalidResetCode:
			h.WriteError(w, http.StatusUnauthorized, "Invalid OTP. Please try again.")
		case ErrAccountNotFound:
			h.WriteError(w, http.StatusNotFound, "We couldn't find an account with that information.")
		default:
			h.WriteError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var dto ResetPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ResetPassword: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ResetPassword(dto); err != nil {
		switch err {
		case ErrInvalidResetCode:
			h.WriteError(w, http.StatusUnauthorized, "Invalid OTP. Please try again.")
		case ErrAccountNotFound:
			h.WriteError(w, http.StatusNotFound, "We couldn't find an account with that information.")
		default:
			h.WriteError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.Logger.Info("ResetPassword: password updated")
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "password_updated"})
}
