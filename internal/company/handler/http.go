// Package handler exposes the company profile over HTTP. All routes require a session.
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"jobpilot/backend/internal/company/domain"
	"jobpilot/backend/internal/logging"
	"jobpilot/backend/internal/platform/apperr"
	"jobpilot/backend/internal/platform/httpx"
	"jobpilot/backend/internal/server/middleware"
	"jobpilot/backend/internal/storage"
)

// MaxImageSize is the largest accepted logo or banner.
const MaxImageSize = 5 << 20

// multipartOverhead is allowed on top of MaxImageSize for boundaries and part headers.
const multipartOverhead = 64 << 10

var (
	allowedImageTypes = []string{"image/jpeg", "image/png"}
	allowedImageExts  = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
)

// ProfileService is the subset of service.ProfileService the handler calls.
type ProfileService interface {
	Create(ctx context.Context, ownerID string, in domain.CreateInput) (*domain.Profile, error)
	Get(ctx context.Context, ownerID string) (*domain.Profile, error)
	Update(ctx context.Context, ownerID string, in domain.UpdateInput) (*domain.Profile, error)
	UpdateImage(ctx context.Context, ownerID, field string, f storage.File) (string, error)
}

type profileRequest struct {
	CompanyName string            `json:"company_name" validate:"max=200"`
	Address     string            `json:"address" validate:"max=500"`
	City        string            `json:"city" validate:"max=100"`
	State       string            `json:"state" validate:"max=100"`
	Country     string            `json:"country" validate:"max=100"`
	PostalCode  string            `json:"postal_code" validate:"max=20"`
	Website     string            `json:"website" validate:"max=500"`
	Industry    string            `json:"industry" validate:"max=100"`
	Description string            `json:"description" validate:"max=5000"`
	FoundedDate string            `json:"founded_date"`
	SocialLinks map[string]string `json:"social_links"`
}

func (p profileRequest) details() domain.Details {
	return domain.Details{
		CompanyName: p.CompanyName,
		Address:     p.Address,
		City:        p.City,
		State:       p.State,
		Country:     p.Country,
		PostalCode:  p.PostalCode,
		Website:     p.Website,
		Industry:    p.Industry,
		Description: p.Description,
		FoundedDate: p.FoundedDate,
		SocialLinks: domain.SocialLinks(p.SocialLinks),
	}
}

type profileResponse struct {
	ID          string            `json:"id"`
	OwnerID     string            `json:"owner_id"`
	CompanyName string            `json:"company_name"`
	Address     string            `json:"address"`
	City        string            `json:"city"`
	State       string            `json:"state"`
	Country     string            `json:"country"`
	PostalCode  string            `json:"postal_code"`
	Website     string            `json:"website"`
	Industry    string            `json:"industry"`
	Description string            `json:"description"`
	FoundedDate string            `json:"founded_date,omitempty"`
	SocialLinks map[string]string `json:"social_links"`
	LogoURL     string            `json:"logo_url"`
	BannerURL   string            `json:"banner_url"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func toResponse(p *domain.Profile) profileResponse {
	out := profileResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		CompanyName: p.CompanyName,
		Address:     p.Address,
		City:        p.City,
		State:       p.State,
		Country:     p.Country,
		PostalCode:  p.PostalCode,
		Website:     p.Website,
		Industry:    p.Industry,
		Description: p.Description,
		SocialLinks: p.SocialLinks,
		LogoURL:     p.LogoURL,
		BannerURL:   p.BannerURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.FoundedDate != nil {
		out.FoundedDate = p.FoundedDate.Format(time.DateOnly)
	}
	if out.SocialLinks == nil {
		out.SocialLinks = map[string]string{}
	}
	return out
}

// CompanyHandler serves /api/company.
type CompanyHandler struct {
	profiles ProfileService
	validate *httpx.Validator
	logger   *zap.Logger
}

func NewCompanyHandler(profiles ProfileService, validate *httpx.Validator, logger *zap.Logger) *CompanyHandler {
	if validate == nil {
		validate = httpx.NewValidator()
	}
	return &CompanyHandler{profiles: profiles, validate: validate, logger: logging.OrNop(logger)}
}

// Routes mounts the company endpoints on r. r must already be behind middleware.Auth.
func (h *CompanyHandler) Routes(r chi.Router) {
	r.Post("/register", h.Create)
	r.Get("/profile", h.Get)
	r.Put("/profile", h.Update)
	r.Post("/upload-logo", h.uploadImage(string(domain.ImageLogo)))
	r.Post("/upload-banner", h.uploadImage(string(domain.ImageBanner)))
}

func (h *CompanyHandler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.GetUserID(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, middleware.MsgNoToken)
	}
	return id, ok
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	var req profileRequest
	if err := httpx.Decode(w, r, h.validate, &req); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	p, err := h.profiles.Create(r.Context(), ownerID, domain.CreateInput(req.details()))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.Success(w, http.StatusCreated, "company profile created", toResponse(p))
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	p, err := h.profiles.Get(r.Context(), ownerID)
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.Success(w, http.StatusOK, "", toResponse(p))
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	var req profileRequest
	if err := httpx.Decode(w, r, h.validate, &req); err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	p, err := h.profiles.Update(r.Context(), ownerID, domain.UpdateInput(req.details()))
	if err != nil {
		httpx.Error(w, r, h.logger, err)
		return
	}
	httpx.Success(w, http.StatusOK, "company profile updated", toResponse(p))
}

// uploadImage accepts a single jpeg or png in the multipart field named after the image.
func (h *CompanyHandler) uploadImage(field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := h.owner(w, r)
		if !ok {
			return
		}
		f, err := h.readImage(w, r, field)
		if err != nil {
			httpx.Error(w, r, h.logger, err)
			return
		}
		defer f.close()

		url, err := h.profiles.UpdateImage(r.Context(), ownerID, field, f.File)
		if err != nil {
			httpx.Error(w, r, h.logger, err)
			return
		}
		httpx.Success(w, http.StatusOK, field+" updated", map[string]string{field + "_url": url})
	}
}

type classifiedFile struct {
	storage.File
	close func() error
}

func (h *CompanyHandler) readImage(w http.ResponseWriter, r *http.Request, field string) (*classifiedFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImageSize+multipartOverhead)
	if err := r.ParseMultipartForm(MaxImageSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperr.BadRequest("image must be at most 5 MB")
		}
		return nil, apperr.BadRequest("multipart form expected")
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, apperr.BadRequest("no " + field + " file uploaded")
	}
	fail := func(msg string) (*classifiedFile, error) {
		file.Close()
		return nil, apperr.BadRequest(msg)
	}
	if header.Size > MaxImageSize {
		return fail("image must be at most 5 MB")
	}
	if !allowedImageExts[strings.ToLower(filepath.Ext(header.Filename))] {
		return fail("only .jpg, .jpeg and .png files are allowed")
	}
	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return fail("unreadable image")
	}
	if !mimetype.EqualsAny(mt.String(), allowedImageTypes...) {
		return fail("only jpeg and png images are allowed")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, apperr.Internal(err)
	}
	return &classifiedFile{
		File: storage.File{
			Name:        header.Filename,
			ContentType: mt.String(),
			Size:        header.Size,
			Body:        file,
		},
		close: file.Close,
	}, nil
}
