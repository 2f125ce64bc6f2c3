package types

import "fmt"

// PerspectiveOption is the camera viewpoint requested for a render.
type PerspectiveOption string

const (
	PerspectiveAerial    PerspectiveOption = "aerial"
	PerspectiveStreet    PerspectiveOption = "street"
	PerspectiveIsometric PerspectiveOption = "isometric"
)

// AllPerspectives lists every valid perspective, in display order.
func AllPerspectives() []PerspectiveOption {
	return []PerspectiveOption{PerspectiveAerial, PerspectiveStreet, PerspectiveIsometric}
}

// ParsePerspective validates a raw string against the closed perspective set.
func ParsePerspective(s string) (PerspectiveOption, error) {
	switch PerspectiveOption(s) {
	case PerspectiveAerial, PerspectiveStreet, PerspectiveIsometric:
		return PerspectiveOption(s), nil
	}
	return "", fmt.Errorf("unknown perspective %q: %w", s, ErrBadRequest)
}

// StyleOption is the art style requested for a render. StyleCustom defers to
// user-supplied free text instead of a fixed fragment.
type StyleOption string

const (
	StyleRealistic  StyleOption = "realistic"
	StyleCyberpunk  StyleOption = "cyberpunk"
	StyleClay       StyleOption = "clay"
	StyleSketch     StyleOption = "sketch"
	StyleVoxel      StyleOption = "voxel"
	StyleLowPoly    StyleOption = "lowpoly"
	StyleOrigami    StyleOption = "origami"
	StyleSteampunk  StyleOption = "steampunk"
	StyleWatercolor StyleOption = "watercolor"
	StyleSynthwave  StyleOption = "synthwave"
	StyleNoir       StyleOption = "noir"
	StyleCustom     StyleOption = "custom"
)

// AllStyles lists every valid style, custom last.
func AllStyles() []StyleOption {
	return []StyleOption{
		StyleRealistic, StyleCyberpunk, StyleClay, StyleSketch,
		StyleVoxel, StyleLowPoly, StyleOrigami, StyleSteampunk,
		StyleWatercolor, StyleSynthwave, StyleNoir, StyleCustom,
	}
}

// FixedStyles lists the styles with a fixed prompt fragment (everything but custom).
func FixedStyles() []StyleOption {
	all := AllStyles()
	return all[:len(all)-1]
}

// ParseStyle validates a raw string against the closed style set.
func ParseStyle(s string) (StyleOption, error) {
	switch StyleOption(s) {
	case StyleRealistic, StyleCyberpunk, StyleClay, StyleSketch,
		StyleVoxel, StyleLowPoly, StyleOrigami, StyleSteampunk,
		StyleWatercolor, StyleSynthwave, StyleNoir, StyleCustom:
		return StyleOption(s), nil
	}
	return "", fmt.Errorf("unknown style %q: %w", s, ErrBadRequest)
}

// QualityOption selects the generation backend and whether the emphasis
// fragment is appended to the prompt.
type QualityOption string

const (
	QualityStandard QualityOption = "standard"
	QualityHigh     QualityOption = "high"
	QualityUltra    QualityOption = "ultra"
)

// ParseQuality validates a raw string against the closed quality set.
func ParseQuality(s string) (QualityOption, error) {
	switch QualityOption(s) {
	case QualityStandard, QualityHigh, QualityUltra:
		return QualityOption(s), nil
	}
	return "", fmt.Errorf("unknown quality %q: %w", s, ErrBadRequest)
}
