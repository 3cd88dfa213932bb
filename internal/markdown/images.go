package markdown

import (
	"regexp"
)

var imagePattern = regexp.MustCompile(`!\[([^\]\n]*)\]\(([^)\s]+)(?:\s+"[^"\n]*")?\)`)

// ImageRef is an image tag found in raw markdown, with the line it starts on
// and the text preceding it on that line.
type ImageRef struct {
	Alt    string
	URL    string
	Line   int
	Prefix string
}

// ExtractImages returns every image of md in document order. Line and prefix
// come from the byte offset of each match, so a title on the next line does not
// shift the images that follow.
func ExtractImages(md string) []ImageRef {
	matches := imagePattern.FindAllStringSubmatchIndex(md, -1)
	if len(matches) == 0 {
		return nil
	}

	refs := make([]ImageRef, 0, len(matches))
	line, lineStart, scanned := 0, 0, 0
	for _, m := range matches {
		start := m[0]
		for i := scanned; i < start; i++ {
			if md[i] == '\n' {
				line++
				lineStart = i + 1
			}
		}
		scanned = start

		refs = append(refs, ImageRef{
			Alt:    md[m[2]:m[3]],
			URL:    md[m[4]:m[5]],
			Line:   line,
			Prefix: md[lineStart:start],
		})
	}

	return refs
}
