package location

import "fmt"

func resolveLocationPrompt(query string) string {
	return fmt.Sprintf(`
        Describe the place "%s" for someone who wants to picture it vividly.
        Focus on what it looks like: architecture, landmarks, terrain, colors,
        atmosphere, and anything visually distinctive. Mention the surrounding
        area briefly. Answer in one or two short paragraphs of plain prose,
        no lists and no markdown.`, query)
}
