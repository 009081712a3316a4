// Package service implements company profile creation, partial merge updates and image replacement.
package service

import (
	"context"
	"errors"
	"path"
	"time"

	"go.uber.org/zap"

	"jobpilot/backend/internal/company/domain"
	"jobpilot/backend/internal/company/repository"
	"jobpilot/backend/internal/logging"
	"jobpilot/backend/internal/platform/apperr"
	"jobpilot/backend/internal/storage"
	"jobpilot/backend/internal/telemetry"
	teldomain "jobpilot/backend/internal/telemetry/domain"
)

const (
	MsgProfileExists   = "user already has a company profile"
	MsgProfileNotFound = "company profile not found"
	MsgOwnerNotFound   = "user not found"
	MsgUploadFailed    = "image upload failed"
)

// DefaultUploadFolder is the folder prefix used when Options.UploadFolder is empty.
const DefaultUploadFolder = "company_uploads"

// Options carries the optional collaborators of ProfileService.
type Options struct {
	UploadFolder string
	// UploadTimeout bounds each upload; 0 means 15s.
	UploadTimeout time.Duration
	Logger        *zap.Logger
	Events        telemetry.EventEmitter
	Metrics       *telemetry.Metrics
}

// ProfileService manages the single company profile of an employer account.
type ProfileService struct {
	profiles      repository.Repository
	uploader      storage.Uploader
	uploadFolder  string
	uploadTimeout time.Duration
	logger        *zap.Logger
	events        telemetry.EventEmitter
	metrics       *telemetry.Metrics
}

// NewProfileService returns a ProfileService. uploader may be nil, in which case image
// updates fail with UploadFailed.
func NewProfileService(profiles repository.Repository, uploader storage.Uploader, opts Options) *ProfileService {
	if opts.UploadFolder == "" {
		opts.UploadFolder = DefaultUploadFolder
	}
	if opts.UploadTimeout <= 0 {
		opts.UploadTimeout = 15 * time.Second
	}
	if opts.Metrics == nil {
		opts.Metrics = telemetry.NopMetrics()
	}
	return &ProfileService{
		profiles:      profiles,
		uploader:      uploader,
		uploadFolder:  opts.UploadFolder,
		uploadTimeout: opts.UploadTimeout,
		logger:        logging.OrNop(opts.Logger),
		events:        opts.Events,
		metrics:       opts.Metrics,
	}
}

// Create inserts the owner's profile. An owner may have only one.
func (s *ProfileService) Create(ctx context.Context, ownerID string, in domain.CreateInput) (*domain.Profile, error) {
	p, err := domain.NewProfile(ownerID, in)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	existing, err := s.profiles.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		return nil, apperr.Conflict(MsgProfileExists)
	}
	created, err := s.profiles.Create(ctx, p)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProfileExists):
			return nil, apperr.Conflict(MsgProfileExists)
		case errors.Is(err, repository.ErrOwnerNotFound):
			return nil, apperr.NotFound(MsgOwnerNotFound)
		}
		return nil, apperr.Internal(err)
	}
	s.emit(teldomain.EventCompanyProfileCreated, ownerID, map[string]string{"profile_id": created.ID})
	return created, nil
}

// Get returns the owner's profile.
func (s *ProfileService) Get(ctx context.Context, ownerID string) (*domain.Profile, error) {
	p, err := s.profiles.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if p == nil {
		return nil, apperr.NotFound(MsgProfileNotFound)
	}
	return p, nil
}

// Update merges the supplied fields onto the stored profile. Empty fields keep their stored
// value; social links merge per platform.
func (s *ProfileService) Update(ctx context.Context, ownerID string, in domain.UpdateInput) (*domain.Profile, error) {
	patch, err := domain.NewPatch(in)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	if _, err := s.Get(ctx, ownerID); err != nil {
		return nil, err
	}
	merged, err := s.profiles.Merge(ctx, ownerID, patch)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if merged == nil {
		return nil, apperr.NotFound(MsgProfileNotFound)
	}
	s.emit(teldomain.EventCompanyProfileUpdated, ownerID, nil)
	return merged, nil
}

// UpdateImage stores f and points the logo or banner column at it. field must be exactly
// "logo" or "banner". Only the URL is returned.
func (s *ProfileService) UpdateImage(ctx context.Context, ownerID, field string, f storage.File) (string, error) {
	imageField, err := domain.ParseImageField(field)
	if err != nil {
		return "", apperr.BadRequest(err.Error())
	}
	if _, err := s.Get(ctx, ownerID); err != nil {
		return "", err
	}
	if s.uploader == nil {
		s.metrics.Upload(ctx, field, "failed")
		return "", apperr.UploadFailed(MsgUploadFailed, errors.New("no uploader configured"))
	}

	uctx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	url, err := s.uploader.Upload(uctx, path.Join(s.uploadFolder, ownerID), f)
	cancel()
	if err != nil {
		s.metrics.Upload(ctx, field, "failed")
		return "", apperr.UploadFailed(MsgUploadFailed, err)
	}

	ok, err := s.profiles.SetImageURL(ctx, ownerID, imageField, url)
	if err != nil {
		return "", apperr.Internal(err)
	}
	if !ok {
		// Profile vanished after the upload; the object is orphaned.
		s.logger.Warn("image uploaded for missing profile", zap.String("owner_id", ownerID), zap.String("url", url))
		return "", apperr.NotFound(MsgProfileNotFound)
	}
	s.metrics.Upload(ctx, field, "stored")
	s.emit(teldomain.EventCompanyImageUpdated, ownerID, map[string]string{"field": field})
	return url, nil
}

func (s *ProfileService) emit(eventType, userID string, attrs map[string]string) {
	telemetry.EmitAsync(s.logger, s.events, telemetry.NewEvent(eventType, userID, attrs))
}
