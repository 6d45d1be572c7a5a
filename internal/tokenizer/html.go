package tokenizer

import "strings"

// ExtractText strips HTML down to its visible text. Content inside tags and
// inside <script>/<style>/<title> sections is removed, every closed tag
// becomes a single space, and runs of whitespace collapse to one space.
func ExtractText(html string) string {
	raw := make([]byte, 0, len(html))
	inTag := false
	inScript := false
	inStyle := false
	inTitle := false

	for i := 0; i < len(html); i++ {
		c := html[i]

		if c == '<' {
			inTag = true

			end := i + 10
			if end > len(html) {
				end = len(html)
			}
			look := asciiLower(html[i:end])
			switch {
			case strings.HasPrefix(look, "<script"):
				inScript = true
			case strings.HasPrefix(look, "</script"):
				inScript = false
			case strings.HasPrefix(look, "<style"):
				inStyle = true
			case strings.HasPrefix(look, "</style"):
				inStyle = false
			case strings.HasPrefix(look, "<title"):
				inTitle = true
			case strings.HasPrefix(look, "</title"):
				inTitle = false
			}
			continue
		}

		if c == '>' {
			inTag = false
			raw = append(raw, ' ')
			continue
		}

		if !inTag && !inScript && !inStyle && !inTitle {
			raw = append(raw, c)
		}
	}

	out := make([]byte, 0, len(raw))
	lastSpace := true
	for _, c := range raw {
		if isSpace(c) {
			if !lastSpace {
				out = append(out, ' ')
				lastSpace = true
			}
		} else {
			out = append(out, c)
			lastSpace = false
		}
	}
	return string(out)
}

// ExtractTitle returns the document title: the text of the first <title>
// element truncated at the wiki-style " — " or " - " separator, the text of
// the first <h1> if there is no title, or "Untitled". The result is raw, not
// normalised.
func ExtractTitle(html string) string {
	lower := asciiLower(html)

	start := strings.Index(lower, "<title>")
	if start == -1 {
		start = strings.Index(lower, "<title ")
	}
	if start != -1 {
		if gt := strings.IndexByte(html[start:], '>'); gt != -1 {
			s := start + gt + 1
			if end := strings.Index(lower[s:], "</title>"); end != -1 {
				title := html[s : s+end]
				if cut := strings.Index(title, " — "); cut != -1 {
					title = title[:cut]
				}
				if cut := strings.Index(title, " - "); cut != -1 {
					title = title[:cut]
				}
				return title
			}
		}
	}

	if start := strings.Index(lower, "<h1"); start != -1 {
		if gt := strings.IndexByte(html[start:], '>'); gt != -1 {
			s := start + gt + 1
			if end := strings.Index(lower[s:], "</h1>"); end != -1 {
				return ExtractText(html[s : s+end])
			}
		}
	}

	return "Untitled"
}

// asciiLower lowercases only A..Z, leaving multi-byte sequences intact so
// that byte offsets into the original string stay valid.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
