package enums

import "fmt"

// BackgroundType selects which background fields of the theme are active.
type BackgroundType string

const (
	BackgroundTypeColor    BackgroundType = "color"
	BackgroundTypeGradient BackgroundType = "gradient"
	BackgroundTypeImage    BackgroundType = "image"
)

var validBackgroundTypes = []BackgroundType{
	BackgroundTypeColor,
	BackgroundTypeGradient,
	BackgroundTypeImage,
}

// String implements fmt.Stringer.
func (b BackgroundType) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BackgroundType.
func (b BackgroundType) IsValid() bool {
	for _, candidate := range validBackgroundTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBackgroundType converts raw input into a BackgroundType.
func ParseBackgroundType(value string) (BackgroundType, error) {
	for _, candidate := range validBackgroundTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid background type %q", value)
}

// ImageFit mirrors the CSS object-fit values allowed for the hero banner.
type ImageFit string

const (
	ImageFitContain ImageFit = "contain"
	ImageFitCover   ImageFit = "cover"
)

var validImageFits = []ImageFit{
	ImageFitContain,
	ImageFitCover,
}

// String implements fmt.Stringer.
func (f ImageFit) String() string {
	return string(f)
}

// IsValid reports whether the value is a known ImageFit.
func (f ImageFit) IsValid() bool {
	for _, candidate := range validImageFits {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseImageFit converts raw input into an ImageFit.
func ParseImageFit(value string) (ImageFit, error) {
	for _, candidate := range validImageFits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid image fit %q", value)
}
