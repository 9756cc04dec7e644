package token

import "testing"

func TestTokenize(t *testing.T) {
	tokens := Tokenize("extern int Add(int a, int b);")
	want := []struct {
		value string
		typ   Type
	}{
		{"extern", Ident}, {"int", Ident}, {"Add", Ident},
		{"(", LParen}, {"int", Ident}, {"a", Ident}, {",", Comma},
		{"int", Ident}, {"b", Ident}, {")", RParen}, {";", Semi},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, w := range want {
		if tokens[i].Value != w.value || tokens[i].Type != w.typ {
			t.Errorf("token %d = {%q %v}, want {%q %v}", i, tokens[i].Value, tokens[i].Type, w.value, w.typ)
		}
	}
}

func TestTokenize_SkipsCommentsAndPreprocessor(t *testing.T) {
	src := `// line comment
#include <stddef.h>
#define LONG_MACRO \
	continues here
/* block
   comment */
typedef int T;`
	tokens := Tokenize(src)
	want := []string{"typedef", "int", "T", ";"}
	if len(tokens) != len(want) {
		t.Fatalf("got %v", tokens)
	}
	for i, w := range want {
		if tokens[i].Value != w {
			t.Errorf("token %d = %q, want %q", i, tokens[i].Value, w)
		}
	}
	if tokens[0].Line != 7 {
		t.Errorf("typedef on line %d, want 7", tokens[0].Line)
	}
}

func TestTokenize_ExternC(t *testing.T) {
	tokens := Tokenize(`extern "C" {`)
	if len(tokens) != 3 {
		t.Fatalf("got %v", tokens)
	}
	if tokens[1].Type != String || tokens[1].Value != "C" {
		t.Errorf("string literal = %+v", tokens[1])
	}
	if tokens[2].Type != LBrace {
		t.Errorf("brace = %+v", tokens[2])
	}
}

func TestTokenize_PointersAndEllipsis(t *testing.T) {
	tokens := Tokenize("char **v, ...")
	types := []Type{Ident, Star, Star, Ident, Comma, Ellipsis}
	if len(tokens) != len(types) {
		t.Fatalf("got %v", tokens)
	}
	for i, typ := range types {
		if tokens[i].Type != typ {
			t.Errorf("token %d type = %v, want %v", i, tokens[i].Type, typ)
		}
	}
}

func TestTokenize_UnterminatedAtEOF(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		value string
		line  int
	}{
		{"block comment", "int a;\n/* swallowed", "unterminated block comment", 2},
		{"string literal", `extern "C`, "unterminated string literal", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.src)
			if len(tokens) == 0 {
				t.Fatal("no tokens")
			}
			last := tokens[len(tokens)-1]
			if last.Type != Invalid || last.Value != tt.value {
				t.Errorf("last token = %+v, want Invalid %q", last, tt.value)
			}
			if last.Line != tt.line {
				t.Errorf("line = %d, want %d", last.Line, tt.line)
			}
		})
	}
}

func TestTokenize_LineNumbers(t *testing.T) {
	tokens := Tokenize("int a;\nint b;\n\nint c;")
	lines := map[string]int{"a": 1, "b": 2, "c": 4}
	for _, tok := range tokens {
		if want, ok := lines[tok.Value]; ok && tok.Line != want {
			t.Errorf("%q on line %d, want %d", tok.Value, tok.Line, want)
		}
	}
}
