// Package handler exposes registration, verification and login over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"jobpilot/backend/internal/identity/service"
	"jobpilot/backend/internal/logging"
	"jobpilot/backend/internal/platform/apperr"
	"jobpilot/backend/internal/platform/httpx"
	userdomain "jobpilot/backend/internal/user/domain"
)

// AuthService is the subset of service.AuthService the handler calls.
type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.RegisterResult, error)
	ApplyMobileProof(ctx context.Context, in service.MobileProofInput) (*service.VerificationResult, error)
	ApplyEmailProof(ctx context.Context, email string) (*service.VerificationResult, error)
	Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error)
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	FullName string `json:"full_name" validate:"required,max=200"`
	Gender   string `json:"gender" validate:"required,oneof=m f o"`
	MobileNo string `json:"mobile_no" validate:"required,mobile"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type verifyMobileRequest struct {
	IDToken  string `json:"id_token" validate:"required"`
	MobileNo string `json:"mobile_no" validate:"required"`
}

type registerResponse struct {
	UserID string `json:"user_id"`
}

// AuthHandler serves /api/auth.
type AuthHandler struct {
	auth     AuthService
	validate *httpx.Validator
	logger   *zap.Logger
}

// NewAuthHandler returns an AuthHandler. The validator gets the password and mobile tags registered.
func NewAuthHandler(auth AuthService, validate *httpx.Validator, logger *zap.Logger) (*AuthHandler, error) {
	if validate == nil {
		validate = httpx.NewValidator()
	}
	if err := validate.Register("password", service.ValidPassword); err != nil {
		return nil, err
	}
	if err := validate.Register("mobile", func(s string) bool {
		return userdomain.ValidMobile(userdomain.NormalizeMobile(s))
	}); err != nil {
		return nil, err
	}
	return &AuthHandler{auth: auth, validate: validate, logger: logging.OrNop(logger)}, nil
}

// Routes mounts the public auth endpoints on r.
func (h *AuthHandler) Routes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/verify-mobile", h.VerifyMobile)
	r.Get("/verify-email", h.VerifyEmail)
}

// Register answers 201 for a new pending account and 200 when a pending account was overwritten.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.Decode(w, r, h.validate, &req); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	res, err := h.auth.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Gender:   req.Gender,
		MobileNo: req.MobileNo,
	})
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	if res.Retried {
		httpx.Success(w, http.StatusOK, "registration updated, verify your mobile number", registerResponse{UserID: res.UserID})
		return
	}
	httpx.Success(w, http.StatusCreated, "registered, verify your mobile number", registerResponse{UserID: res.UserID})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.Decode(w, r, h.validate, &req); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	res, err := h.auth.Login(r.Context(), service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.Success(w, http.StatusOK, "login successful", res)
}

func (h *AuthHandler) VerifyMobile(w http.ResponseWriter, r *http.Request) {
	var req verifyMobileRequest
	if err := httpx.Decode(w, r, h.validate, &req); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	res, err := h.auth.ApplyMobileProof(r.Context(), service.MobileProofInput{ProofToken: req.IDToken, MobileNo: req.MobileNo})
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.Success(w, http.StatusOK, "mobile number verified", res)
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		httpx.Error(w, r, h.logger, apperr.BadRequest("email is required"))
		return
	}
	res, err := h.auth.ApplyEmailProof(r.Context(), email)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.Success(w, http.StatusOK, "email verified", res)
}
