package style

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/loci-canvas-api/internal/types"
)

func recommendStylePrompt(locationName, description string) string {
	perspectives := make([]string, 0, len(types.AllPerspectives()))
	for _, p := range types.AllPerspectives() {
		perspectives = append(perspectives, string(p))
	}
	styles := make([]string, 0, len(types.FixedStyles()))
	for _, s := range types.FixedStyles() {
		styles = append(styles, string(s))
	}

	return fmt.Sprintf(`
        You are an art director choosing how to render a stylized image of a place.

        Place: %s
        Context: %s

        Pick exactly one perspective from [%s] and one style from [%s].
        Apply these heuristics in order, first match wins:
        1. Dense modern urban areas, especially night scenes or neon districts, favor cyberpunk.
        2. Industrial or Victorian-era architecture favors steampunk.
        3. Coastal towns, gardens, canals and pastoral scenery favor watercolor.
        4. Retro landmarks, sunset boulevards and 80s iconography favor synthwave.
        5. Rainy, foggy or historically dramatic places favor noir.
        6. Whimsical, compact or miniature-feeling places favor clay or voxel.
        7. When nothing else fits, pick realistic.
        Prefer the street perspective for canyon-like streets and markets, aerial
        for coastlines, parks and sprawling landmarks, isometric for districts
        and intersections that read well as a diorama.

        Return a JSON object with the fields "perspective", "style" and
        "reasoning" (one or two sentences explaining the choice).`,
		locationName, description,
		strings.Join(perspectives, ", "), strings.Join(styles, ", "))
}
