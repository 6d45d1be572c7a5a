package tokenizer

import (
	"reflect"
	"testing"
)

func TestLower(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "Hello World", "hello world"},
		{"ascii mixed", "AbC-123_xYz", "abc-123_xyz"},
		{"cyrillic upper", "Кот", "кот"},
		{"cyrillic all upper", "МОСКВА", "москва"},
		{"yo upper", "Ёлка", "ёлка"},
		{"cyrillic lower unchanged", "собака", "собака"},
		{"mixed scripts", "Linux Ядро", "linux ядро"},
		{"punctuation", "Привет, Мир!", "привет, мир!"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lower(tt.in); got != tt.want {
				t.Errorf("Lower(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLowerYoBytes(t *testing.T) {
	// Ё (0xD0 0x81) must become ё (0xD1 0x91): the lead byte changes, not
	// just the continuation byte.
	got := Lower("Ё")
	if got != "ё" {
		t.Fatalf("Lower(Ё) = %q", got)
	}
	if got[0] != 0xD1 || got[1] != 0x91 {
		t.Errorf("Lower(Ё) bytes = %#x %#x, want 0xd1 0x91", got[0], got[1])
	}
}

func TestLowerInvalidUTF8(t *testing.T) {
	// Stray continuation and lead bytes pass through unchanged.
	in := string([]byte{0x90, 'A', 0xD0})
	want := string([]byte{0x90, 'a', 0xD0})
	if got := Lower(in); got != want {
		t.Errorf("Lower(%v) = %v, want %v", []byte(in), []byte(got), []byte(want))
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		in   string
		want []string
	}{
		{
			name: "cyrillic lowercased",
			cfg:  Config{MinLength: 2, Lowercase: true},
			in:   "Кот",
			want: []string{"кот"},
		},
		{
			name: "yo lowercased",
			cfg:  Config{MinLength: 2, Lowercase: true},
			in:   "Ёлка",
			want: []string{"ёлка"},
		},
		{
			name: "digits split tokens",
			cfg:  Config{MinLength: 2, Lowercase: true},
			in:   "abc123def",
			want: []string{"abc", "def"},
		},
		{
			name: "short ascii dropped",
			cfg:  Config{MinLength: 2, Lowercase: true},
			in:   "a bc d ef",
			want: []string{"bc", "ef"},
		},
		{
			name: "single cyrillic letter is two bytes",
			cfg:  Config{MinLength: 2, Lowercase: true},
			in:   "я шёл",
			want: []string{"я", "шёл"},
		},
		{
			name: "punctuation separates",
			cfg:  Config{MinLength: 2, Lowercase: true},
			in:   "кот,собака;мышь",
			want: []string{"кот", "собака", "мышь"},
		},
		{
			name: "stopwords removed when enabled",
			cfg:  Config{MinLength: 2, Lowercase: true, RemoveStopwords: true},
			in:   "кот на крыше",
			want: []string{"кот", "крыше"},
		},
		{
			name: "stopwords kept when disabled",
			cfg:  Config{MinLength: 2, Lowercase: true},
			in:   "кот на крыше",
			want: []string{"кот", "на", "крыше"},
		},
		{
			name: "english stopwords",
			cfg:  Config{MinLength: 2, Lowercase: true, RemoveStopwords: true},
			in:   "the cat is on the roof",
			want: []string{"cat", "roof"},
		},
		{
			name: "empty input",
			cfg:  Config{MinLength: 2, Lowercase: true},
			in:   "",
			want: nil,
		},
		{
			name: "only separators",
			cfg:  Config{MinLength: 2, Lowercase: true},
			in:   "123 ... 456",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := New(tt.cfg)
			got := tok.Tokenize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// Tokens coming out of Tokenize are already in normalised form: running
// Normalize over them must be a no-op. The index and query paths rely on
// this agreement.
func TestTokensAreNormalized(t *testing.T) {
	tok := New(Config{MinLength: 2, Lowercase: true})
	text := "Штирлиц ПОДУМАЛ: Hello, WORLD — Ёжик 42 раза"
	for _, token := range tok.Tokenize(text) {
		if norm := tok.Normalize(token); norm != token {
			t.Errorf("Normalize(%q) = %q, want unchanged", token, norm)
		}
	}
}

func TestNormalize(t *testing.T) {
	tok := New(Config{MinLength: 2, Lowercase: true})

	if got := tok.Normalize("Кот"); got != "кот" {
		t.Errorf("Normalize(Кот) = %q, want кот", got)
	}
	// No length or stopword filtering at query time.
	if got := tok.Normalize("и"); got != "и" {
		t.Errorf("Normalize(и) = %q, want и", got)
	}

	raw := New(Config{MinLength: 2, Lowercase: false})
	if got := raw.Normalize("Кот"); got != "Кот" {
		t.Errorf("Normalize without lowercase = %q, want Кот", got)
	}
}

func BenchmarkTokenize(b *testing.B) {
	tok := New(Config{MinLength: 2, Lowercase: true})
	text := "Историческая справка: в 1961 году Московский театр оперетты " +
		"поставил мюзикл, и критика назвала его лучшим спектаклем сезона. " +
		"The ensemble toured Europe and recorded two albums."
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tok.Tokenize(text)
	}
}

func BenchmarkLower(b *testing.B) {
	s := "Контрабандисты Перевозили ЧЕРЕЗ Границу Ёмкости С Horseradish"
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Lower(s)
	}
}
