package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Profile is the single company profile owned by an employer account.
type Profile struct {
	ID          string
	OwnerID     string
	CompanyName string
	Address     string
	City        string
	State       string
	Country     string
	PostalCode  string
	Website     string
	Industry    string
	Description string
	FoundedDate *time.Time
	SocialLinks SocialLinks
	LogoURL     string
	BannerURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SocialLinks maps a platform name (facebook, twitter, instagram, youtube, linkedin, ...) to a URL.
type SocialLinks map[string]string

// Compact returns a copy with keys and URLs trimmed and empty entries dropped.
// It returns nil when nothing remains.
func (s SocialLinks) Compact() SocialLinks {
	var out SocialLinks
	for k, v := range s {
		k, v = strings.ToLower(strings.TrimSpace(k)), strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		if out == nil {
			out = SocialLinks{}
		}
		out[k] = v
	}
	return out
}

// Details are the caller-editable descriptive fields. Logo and banner are not among them.
type Details struct {
	CompanyName string
	Address     string
	City        string
	State       string
	Country     string
	PostalCode  string
	Website     string
	Industry    string
	Description string
	// FoundedDate is YYYY-MM-DD (an RFC 3339 timestamp is also accepted); empty means unset.
	FoundedDate string
	SocialLinks SocialLinks
}

// CreateInput is the payload of profile creation; CompanyName is required.
type CreateInput Details

// UpdateInput is a partial update; empty fields keep their stored value.
type UpdateInput Details

// Patch is a normalized partial update ready for the store.
type Patch struct {
	Details
	Founded *time.Time
}

// ErrInvalidDate is returned for a founded date that is neither empty nor a date.
var ErrInvalidDate = errors.New("founded_date must be a date in YYYY-MM-DD format")

// ErrCompanyNameRequired is returned when creating a profile without a name.
var ErrCompanyNameRequired = errors.New("company name is required")

// ParseFoundedDate returns nil for an empty value.
func ParseFoundedDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Trimmed returns d with every text field trimmed and social links compacted.
func (d Details) Trimmed() Details {
	return Details{
		CompanyName: strings.TrimSpace(d.CompanyName),
		Address:     strings.TrimSpace(d.Address),
		City:        strings.TrimSpace(d.City),
		State:       strings.TrimSpace(d.State),
		Country:     strings.TrimSpace(d.Country),
		PostalCode:  strings.TrimSpace(d.PostalCode),
		Website:     strings.TrimSpace(d.Website),
		Industry:    strings.TrimSpace(d.Industry),
		Description: strings.TrimSpace(d.Description),
		FoundedDate: strings.TrimSpace(d.FoundedDate),
		SocialLinks: d.SocialLinks.Compact(),
	}
}

// NewProfile validates in and builds the row to insert for ownerID.
func NewProfile(ownerID string, in CreateInput) (*Profile, error) {
	d := Details(in).Trimmed()
	if d.CompanyName == "" {
		return nil, ErrCompanyNameRequired
	}
	founded, err := ParseFoundedDate(d.FoundedDate)
	if err != nil {
		return nil, err
	}
	links := d.SocialLinks
	if links == nil {
		links = SocialLinks{}
	}
	return &Profile{
		OwnerID:     ownerID,
		CompanyName: d.CompanyName,
		Address:     d.Address,
		City:        d.City,
		State:       d.State,
		Country:     d.Country,
		PostalCode:  d.PostalCode,
		Website:     d.Website,
		Industry:    d.Industry,
		Description: d.Description,
		FoundedDate: founded,
		SocialLinks: links,
	}, nil
}

// NewPatch normalizes in. An empty founded date yields a nil Founded so the stored date is kept.
func NewPatch(in UpdateInput) (Patch, error) {
	d := Details(in).Trimmed()
	founded, err := ParseFoundedDate(d.FoundedDate)
	if err != nil {
		return Patch{}, err
	}
	return Patch{Details: d, Founded: founded}, nil
}

// Apply merges p onto a copy of prof the same way the store does.
func (p Patch) Apply(prof Profile) Profile {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&prof.CompanyName, p.CompanyName)
	set(&prof.Address, p.Address)
	set(&prof.City, p.City)
	set(&prof.State, p.State)
	set(&prof.Country, p.Country)
	set(&prof.PostalCode, p.PostalCode)
	set(&prof.Website, p.Website)
	set(&prof.Industry, p.Industry)
	set(&prof.Description, p.Description)
	if p.Founded != nil {
		f := *p.Founded
		prof.FoundedDate = &f
	}
	if len(p.SocialLinks) > 0 {
		merged := SocialLinks{}
		for k, v := range prof.SocialLinks {
			merged[k] = v
		}
		for k, v := range p.SocialLinks {
			merged[k] = v
		}
		prof.SocialLinks = merged
	}
	return prof
}

// ImageField names the profile image column an upload replaces.
type ImageField string

const (
	ImageLogo   ImageField = "logo"
	ImageBanner ImageField = "banner"
)

// ErrInvalidImageField is returned for anything other than logo or banner.
var ErrInvalidImageField = errors.New("image field must be logo or banner")

// ParseImageField accepts exactly "logo" or "banner".
func ParseImageField(s string) (ImageField, error) {
	switch ImageField(s) {
	case ImageLogo, ImageBanner:
		return ImageField(s), nil
	}
	return "", ErrInvalidImageField
}
