package policy

import (
	"fmt"

	"github.com/stitchline/asset-service/pkg/types/errs"
)

// FitMode controls how an image is fitted into the target box.
type FitMode string

const (
	// FitCover fills the whole box, cropping overflow.
	FitCover FitMode = "cover"
	// FitContain fits the image inside the box, preserving aspect ratio.
	FitContain FitMode = "contain"
	// FitInside behaves like contain but never grows the image.
	FitInside FitMode = "inside"
)

// Output formats understood by the transform engine.
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatGIF  = "gif"
)

// ProcessingProfile is a named transformation preset. The zero target on
// either axis means "derive from aspect ratio".
type ProcessingProfile struct {
	Name    string
	Width   int
	Height  int
	Quality int
	Format  string
	Fit     FitMode
}

// ProfileOriginal skips transformation entirely.
const ProfileOriginal = "original"

// DefaultProfile is applied when a request names none.
const DefaultProfile = "gallery"

// ContentType maps the profile's output format to a MIME type.
func (p ProcessingProfile) ContentType() string {
	switch p.Format {
	case FormatPNG:
		return "image/png"
	case FormatGIF:
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

// ProfileCatalog resolves processing profiles by name.
type ProfileCatalog struct {
	profiles map[string]ProcessingProfile
}

// NewProfileCatalog builds the production preset table.
func NewProfileCatalog() *ProfileCatalog {
	presets := []ProcessingProfile{
		{Name: ProfileOriginal},
		{Name: "thumbnail", Width: 300, Height: 300, Quality: 80, Format: FormatJPEG, Fit: FitCover},
		{Name: "gallery", Width: 1200, Height: 1200, Quality: 85, Format: FormatJPEG, Fit: FitInside},
		{Name: "hero", Width: 1920, Height: 1080, Quality: 90, Format: FormatJPEG, Fit: FitCover},
		{Name: "profile", Width: 500, Height: 500, Quality: 85, Format: FormatJPEG, Fit: FitCover},
		{Name: "production", Width: 2400, Height: 2400, Quality: 95, Format: FormatJPEG, Fit: FitInside},
		{Name: "logo", Width: 800, Height: 800, Quality: 90, Format: FormatPNG, Fit: FitInside},
		{Name: "mockup", Width: 1600, Height: 1600, Quality: 85, Format: FormatJPEG, Fit: FitInside},
	}

	m := make(map[string]ProcessingProfile, len(presets))
	for _, p := range presets {
		m[p.Name] = p
	}

	return &ProfileCatalog{profiles: m}
}

// NewProfileCatalogWith builds a catalog from explicit presets.
func NewProfileCatalogWith(presets ...ProcessingProfile) *ProfileCatalog {
	m := make(map[string]ProcessingProfile, len(presets))
	for _, p := range presets {
		m[p.Name] = p
	}
	return &ProfileCatalog{profiles: m}
}

// Get -.
func (c *ProfileCatalog) Get(name string) (ProcessingProfile, bool) {
	p, ok := c.profiles[name]
	return p, ok
}

// Resolve returns the named profile, falling back to the default when the
// name is empty.
func (c *ProfileCatalog) Resolve(name string) (ProcessingProfile, error) {
	if name == "" {
		name = DefaultProfile
	}
	p, ok := c.profiles[name]
	if !ok {
		return ProcessingProfile{}, fmt.Errorf("policy - ProfileCatalog - Resolve %q: %w", name, errs.ErrUnknownProfile)
	}
	return p, nil
}
