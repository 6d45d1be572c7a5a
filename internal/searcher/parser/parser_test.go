package parser

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"single term", "кот", "кот"},
		{"term case preserved", "Кот", "Кот"},
		{"term with dash and underscore", "utf-8_v2", "utf-8_v2"},
		{"implicit and", "кот собака", "AND(кот, собака)"},
		{"explicit and", "кот && собака", "AND(кот, собака)"},
		{"explicit or", "кот || собака", "OR(кот, собака)"},
		{"not", "!собака", "NOT(собака)"},
		{"double not", "!!x", "NOT(NOT(x))"},
		{"and not", "кот && !собака", "AND(кот, NOT(собака))"},
		{"implicit and with not", "кот !собака", "AND(кот, NOT(собака))"},
		{"or binds looser than and", "a || b c", "OR(a, AND(b, c))"},
		{"and chain", "a b c", "AND(a, b, c)"},
		{"or chain", "a || b || c", "OR(a, b, c)"},
		{"parens regroup", "(a || b) c", "AND(OR(a, b), c)"},
		{"nested parens", "((a))", "a"},
		{"paren then or", "(a b) || c", "OR(AND(a, b), c)"},
		{"not over parens", "!(a || b)", "NOT(OR(a, b))"},
		{"mixed cyrillic operators", "(джаз || блюз) концерт", "AND(OR(джаз, блюз), концерт)"},
		{"yo in term", "ёлка", "ёлка"},
		{"digits in term", "top40 хит", "AND(top40, хит)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := Parse(tt.query)
			if node == nil {
				t.Fatalf("Parse(%q) = nil", tt.query)
			}
			if got := node.String(); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.query, got, tt.want)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, query := range []string{"", "   ", "\t\n"} {
		if node := Parse(query); node != nil {
			t.Errorf("Parse(%q) = %s, want nil", query, node)
		}
	}
}

// The parser never fails: broken input degrades to a partial tree or nil.
func TestParseLenient(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"unmatched close paren", "a)", "a"},
		{"unmatched open paren", "(a", "a"},
		{"dangling open paren with and", "(a b", "AND(a, b)"},
		{"stray close stops the walk", "a) b", "a"},
		{"dangling operator", "a &&", "a"},
		{"dangling or", "a ||", "a"},
		{"lone not", "!", ""},
		{"not before nothing", "a !", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := Parse(tt.query)
			got := ""
			if node != nil {
				got = node.String()
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestParseSingleChildCollapse(t *testing.T) {
	// A lone operand never shows up wrapped in AND/OR.
	node := Parse("term")
	if node.Type != NodeTerm {
		t.Errorf("Parse(term) type = %v, want NodeTerm", node.Type)
	}
	node = Parse("(term)")
	if node.Type != NodeTerm {
		t.Errorf("Parse((term)) type = %v, want NodeTerm", node.Type)
	}
}

func BenchmarkParse(b *testing.B) {
	query := "(рок || джаз || блюз) концерт !отменён и-или_прочее"
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Parse(query)
	}
}
