package visual

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/loci-canvas-api/internal/types"
)

// Fixed phrase fragments keyed by enum value. BuildPrompt concatenates them in
// a fixed order so identical requests always produce identical prompts.

func perspectiveFragment(perspective types.PerspectiveOption) string {
	switch perspective {
	case types.PerspectiveAerial:
		return "A sweeping aerial drone shot from high above, capturing the full layout of the scene below."
	case types.PerspectiveStreet:
		return "A street-level view at eye height, standing in the middle of the scene as a pedestrian would."
	case types.PerspectiveIsometric:
		return "An isometric diorama view at a 45-degree angle, rendering the scene as a detailed miniature model."
	}
	return ""
}

func styleFragment(style types.StyleOption, customText string) string {
	switch style {
	case types.StyleRealistic:
		return "Photorealistic rendering with natural lighting, accurate materials and true-to-life colors."
	case types.StyleCyberpunk:
		return "Cyberpunk aesthetic: neon signs, rain-slicked streets, holographic advertisements and a moody electric night sky."
	case types.StyleClay:
		return "Claymation style: soft rounded plasticine shapes, visible fingerprints and warm studio lighting."
	case types.StyleSketch:
		return "Hand-drawn pencil sketch: loose crosshatched linework, smudged graphite shading on textured paper."
	case types.StyleVoxel:
		return "Voxel art: the whole scene built from small colorful 3D cubes with crisp blocky edges."
	case types.StyleLowPoly:
		return "Low-poly 3D art: flat-shaded geometric facets, minimal color palette and clean silhouettes."
	case types.StyleOrigami:
		return "Origami style: everything folded from crisp paper, sharp creases and delicate paper textures."
	case types.StyleSteampunk:
		return "Steampunk aesthetic: brass gears, copper pipes, steam vents and Victorian industrial machinery."
	case types.StyleWatercolor:
		return "Watercolor painting: soft translucent washes, bleeding pigment edges and visible paper grain."
	case types.StyleSynthwave:
		return "Synthwave aesthetic: magenta and cyan gradients, a glowing sunset grid and retro 80s chrome."
	case types.StyleNoir:
		return "Film noir: stark black-and-white contrast, deep shadows, fog and dramatic venetian-blind lighting."
	case types.StyleCustom:
		// Verbatim, unescaped; an empty custom text emits no style fragment.
		return customText
	}
	return ""
}

const ultraFragment = "A masterpiece in 8k resolution with raytraced lighting and extreme fine detail."

func closingFragment(locationName, description string) string {
	return fmt.Sprintf(
		"The scene depicts %s. Context for accuracy: %s Do not render any text, labels, captions or watermarks in the image.",
		locationName, description)
}

// BuildPrompt deterministically assembles the generation prompt for a request.
// Pure function: no I/O, no randomness, no failure mode.
func BuildPrompt(req types.GenerationRequest) string {
	fragments := make([]string, 0, 4)

	if f := perspectiveFragment(req.Perspective); f != "" {
		fragments = append(fragments, f)
	}
	if f := styleFragment(req.Style, req.CustomStyleText); f != "" {
		fragments = append(fragments, f)
	}
	if req.Quality == types.QualityUltra {
		fragments = append(fragments, ultraFragment)
	}
	fragments = append(fragments, closingFragment(req.LocationName, req.Description))

	return strings.Join(fragments, " ")
}
