// Package tokenizer extracts plain text from HTML and splits it into
// normalised terms. It understands ASCII and the two-byte UTF-8 Cyrillic
// plane; lowercasing is a byte-level transducer so that the indexing and
// query paths always agree on the stored term form.
package tokenizer

// Config controls tokenisation behaviour.
type Config struct {
	MinLength       int
	Lowercase       bool
	RemoveStopwords bool
}

// DefaultConfig is the analysis-mode configuration. The indexing pipeline
// overrides RemoveStopwords to false so the index stays complete.
func DefaultConfig() Config {
	return Config{
		MinLength:       2,
		Lowercase:       true,
		RemoveStopwords: true,
	}
}

// Tokenizer splits text into terms according to its Config.
type Tokenizer struct {
	cfg Config
}

// New creates a Tokenizer with the given configuration.
func New(cfg Config) *Tokenizer {
	return &Tokenizer{cfg: cfg}
}

// Lower lowercases s byte-by-byte: ASCII A..Z, the Cyrillic uppercase range
// U+0410..U+042F, and Ё→ё. Every other byte passes through unchanged, so
// invalid UTF-8 is preserved rather than rejected. Locale-sensitive case
// folding is deliberately avoided: the same bytes must come out of the
// indexing and query paths.
func Lower(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c < 0x80:
			if c >= 'A' && c <= 'Z' {
				c += 'a' - 'A'
			}
			b = append(b, c)
		case c&0xE0 == 0xC0 && i+1 < len(s):
			c2 := s[i+1]
			switch {
			case c == 0xD0 && c2 >= 0x90 && c2 <= 0x9F:
				// А..П → а..п: same lead byte.
				b = append(b, c, c2+0x20)
			case c == 0xD0 && c2 >= 0xA0 && c2 <= 0xAF:
				// Р..Я → р..я: the lowercase forms live under lead byte 0xD1.
				b = append(b, 0xD1, c2-0x20)
			case c == 0xD0 && c2 == 0x81:
				b = append(b, 0xD1, 0x91)
			default:
				b = append(b, c, c2)
			}
			i++
		default:
			b = append(b, c)
		}
	}
	return string(b)
}

// Tokenize splits text into terms. A term is a maximal run of ASCII letters
// or two-byte Cyrillic sequences (lead byte 0xD0/0xD1); digits, punctuation,
// and whitespace terminate a term. Terms shorter than MinLength bytes are
// dropped, and stopwords are dropped when RemoveStopwords is set.
func (t *Tokenizer) Tokenize(text string) []string {
	s := text
	if t.cfg.Lowercase {
		s = Lower(s)
	}

	var tokens []string
	cur := make([]byte, 0, 32)
	flush := func() {
		if len(cur) == 0 {
			return
		}
		if len(cur) >= t.cfg.MinLength {
			tok := string(cur)
			if !t.cfg.RemoveStopwords || !isStopword(tok) {
				tokens = append(tokens, tok)
			}
		}
		cur = cur[:0]
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			cur = append(cur, c)
		case (c == 0xD0 || c == 0xD1) && i+1 < len(s):
			cur = append(cur, c, s[i+1])
			i++
		default:
			flush()
		}
	}
	flush()
	return tokens
}

// Normalize maps a query term to the on-disk term form. It applies the same
// lowercasing rule as Tokenize but no length or stopword filtering.
func (t *Tokenizer) Normalize(term string) string {
	if t.cfg.Lowercase {
		return Lower(term)
	}
	return term
}
