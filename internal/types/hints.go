package types

import (
	"sort"
	"strings"

	a "github.com/petar-dambovaliev/aho-corasick"
)

// Aho-Corasick matcher for theme-hint detection in resolved descriptions.
// Hints are advisory only: the real recommendation still comes from the
// recommender call. They let the UI pre-highlight plausible styles without a
// second model round-trip.
var (
	themeMatcherBuilder = a.NewAhoCorasickBuilder(a.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  true,
		// Leftmost-longest so plural keywords win over their singular
		// prefixes instead of being discarded as partial words.
		MatchKind: a.LeftMostLongestMatch,
	})

	themeKeywords = []string{
		// Cyberpunk signals
		"neon", "skyscraper", "skyscrapers", "futuristic", "billboard", "billboards",
		"nightlife", "megacity", "crossing",
		// Steampunk signals
		"victorian", "industrial", "brick", "factory", "railway", "clocktower", "foundry",
		// Watercolor signals
		"canal", "canals", "harbor", "harbour", "riverside", "garden", "gardens",
		"meadow", "village", "coastal",
		// Noir signals
		"alley", "alleys", "fog", "foggy", "rainy", "shadowy",
		// Synthwave signals
		"sunset", "boulevard", "retro", "palm",
		// Sketch signals
		"medieval", "cathedral", "ruins", "ancient", "cobblestone",
	}

	themeMatcher = themeMatcherBuilder.Build(themeKeywords)

	keywordToStyle = map[string]StyleOption{
		"neon": StyleCyberpunk, "skyscraper": StyleCyberpunk, "skyscrapers": StyleCyberpunk,
		"futuristic": StyleCyberpunk, "billboard": StyleCyberpunk, "billboards": StyleCyberpunk,
		"nightlife": StyleCyberpunk, "megacity": StyleCyberpunk, "crossing": StyleCyberpunk,

		"victorian": StyleSteampunk, "industrial": StyleSteampunk, "brick": StyleSteampunk,
		"factory": StyleSteampunk, "railway": StyleSteampunk, "clocktower": StyleSteampunk,
		"foundry": StyleSteampunk,

		"canal": StyleWatercolor, "canals": StyleWatercolor, "harbor": StyleWatercolor,
		"harbour": StyleWatercolor, "riverside": StyleWatercolor, "garden": StyleWatercolor,
		"gardens": StyleWatercolor, "meadow": StyleWatercolor, "village": StyleWatercolor,
		"coastal": StyleWatercolor,

		"alley": StyleNoir, "alleys": StyleNoir, "fog": StyleNoir,
		"foggy": StyleNoir, "rainy": StyleNoir, "shadowy": StyleNoir,

		"sunset": StyleSynthwave, "boulevard": StyleSynthwave, "retro": StyleSynthwave,
		"palm": StyleSynthwave,

		"medieval": StyleSketch, "cathedral": StyleSketch, "ruins": StyleSketch,
		"ancient": StyleSketch, "cobblestone": StyleSketch,
	}
)

// ThemeHints scans a description for style keywords and returns the matched
// styles ordered by hit count (ties broken by style name for determinism).
// An empty result means no hint, not an error.
func ThemeHints(description string) []StyleOption {
	if description == "" {
		return nil
	}

	counts := make(map[StyleOption]int)
	iter := themeMatcher.Iter(strings.ToLower(description))
	for m := iter.Next(); m != nil; m = iter.Next() {
		if style, ok := keywordToStyle[themeKeywords[m.Pattern()]]; ok {
			counts[style]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	hints := make([]StyleOption, 0, len(counts))
	for style := range counts {
		hints = append(hints, style)
	}
	sort.Slice(hints, func(i, j int) bool {
		if counts[hints[i]] != counts[hints[j]] {
			return counts[hints[i]] > counts[hints[j]]
		}
		return hints[i] < hints[j]
	})
	return hints
}
