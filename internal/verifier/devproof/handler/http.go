// Package handler exposes dev proof issuance. Mounted only when the dev verifier is enabled.
package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"jobpilot/backend/internal/logging"
	"jobpilot/backend/internal/platform/apperr"
	"jobpilot/backend/internal/platform/httpx"
	userdomain "jobpilot/backend/internal/user/domain"
)

// Issuer mints proof tokens for a phone number.
type Issuer interface {
	Issue(ctx context.Context, phone string) (token string, expiresAt time.Time, err error)
}

type issueRequest struct {
	MobileNo string `json:"mobile_no" validate:"required"`
}

type issueResponse struct {
	IDToken   string    `json:"id_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DevProofHandler serves POST /dev/proof.
type DevProofHandler struct {
	issuer   Issuer
	validate *httpx.Validator
	logger   *zap.Logger
}

func NewDevProofHandler(issuer Issuer, logger *zap.Logger) *DevProofHandler {
	return &DevProofHandler{issuer: issuer, validate: httpx.NewValidator(), logger: logging.OrNop(logger)}
}

func (h *DevProofHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if err := httpx.Decode(w, r, h.validate, &req); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	mobile := userdomain.NormalizeMobile(req.MobileNo)
	if !userdomain.ValidMobile(mobile) {
		httpx.Error(w, r, h.logger, apperr.BadRequest("mobile_no must be in E.164 format"))
		return
	}
	token, expiresAt, err := h.issuer.Issue(r.Context(), mobile)
	if err != nil {
		httpx.Error(w, r, h.logger, apperr.Internal(err))
		return
	}
	h.logger.Info("dev proof issued", zap.String("mobile_no", mobile))
	httpx.Success(w, http.StatusOK, "dev proof issued", issueResponse{IDToken: token, ExpiresAt: expiresAt})
}
