package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePerspective(t *testing.T) {
	for _, perspective := range AllPerspectives() {
		parsed, err := ParsePerspective(string(perspective))
		require.NoError(t, err)
		assert.Equal(t, perspective, parsed)
	}

	_, err := ParsePerspective("orbital")
	assert.ErrorIs(t, err, ErrBadRequest)

	// Case sensitive by design.
	_, err = ParsePerspective("Aerial")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestParseStyle(t *testing.T) {
	for _, style := range AllStyles() {
		parsed, err := ParseStyle(string(style))
		require.NoError(t, err)
		assert.Equal(t, style, parsed)
	}

	_, err := ParseStyle("vaporwave")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestParseQuality(t *testing.T) {
	for _, quality := range []QualityOption{QualityStandard, QualityHigh, QualityUltra} {
		parsed, err := ParseQuality(string(quality))
		require.NoError(t, err)
		assert.Equal(t, quality, parsed)
	}

	_, err := ParseQuality("extreme")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestFixedStylesExcludesCustom(t *testing.T) {
	assert.NotContains(t, FixedStyles(), StyleCustom)
	assert.Len(t, FixedStyles(), len(AllStyles())-1)
}

func TestDefaultGenerationRequest(t *testing.T) {
	req := DefaultGenerationRequest()
	assert.Equal(t, PerspectiveAerial, req.Perspective)
	assert.Equal(t, StyleRealistic, req.Style)
	assert.Equal(t, QualityStandard, req.Quality)
	assert.Empty(t, req.CustomStyleText)
}
