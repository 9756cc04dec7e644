package token

import "unicode"

type Type int

const (
	LParen Type = iota
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semi
	Star
	Ellipsis
	Ident
	Number
	String
	Invalid
)

func (t Type) String() string {
	switch t {
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case Comma:
		return "','"
	case Semi:
		return "';'"
	case Star:
		return "'*'"
	case Ellipsis:
		return "'...'"
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case String:
		return "string"
	case Invalid:
		return "invalid input"
	}
	return "unknown"
}

type Token struct {
	Value string
	Type  Type
	Line  int
}

// Tokenize splits C header text into tokens. Comments and preprocessor
// lines (including backslash continuations) are dropped; the parser never
// sees them. Line numbers are preserved for error reporting.
func Tokenize(input string) []Token {
	var tokens []Token
	line := 1
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' {
			line++
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}

		// Line comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '/' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			line++
			continue
		}

		// Block comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '*' {
			startLine := line
			i += 2
			for i+1 < len(runes) && !(runes[i] == '*' && runes[i+1] == '/') {
				if runes[i] == '\n' {
					line++
				}
				i++
			}
			if i+1 >= len(runes) {
				// Running off the end here would silently swallow the rest of
				// the header, so the parser gets a reportable token instead.
				return append(tokens, Token{"unterminated block comment", Invalid, startLine})
			}
			i++ // skip '/'
			continue
		}

		// Preprocessor line, honoring backslash continuations
		if r == '#' {
			for i < len(runes) && runes[i] != '\n' {
				if runes[i] == '\\' && i+1 < len(runes) && runes[i+1] == '\n' {
					line++
					i += 2
					continue
				}
				i++
			}
			line++
			continue
		}

		// String literal (only appears as extern "C")
		if r == '"' {
			start := i + 1
			i++
			for i < len(runes) && runes[i] != '"' {
				if runes[i] == '\\' {
					i++
				}
				i++
			}
			if i >= len(runes) {
				return append(tokens, Token{"unterminated string literal", Invalid, line})
			}
			tokens = append(tokens, Token{string(runes[start:i]), String, line})
			continue
		}

		// Ellipsis
		if r == '.' && i+2 < len(runes) && runes[i+1] == '.' && runes[i+2] == '.' {
			tokens = append(tokens, Token{"...", Ellipsis, line})
			i += 2
			continue
		}

		switch r {
		case '(':
			tokens = append(tokens, Token{"(", LParen, line})
			continue
		case ')':
			tokens = append(tokens, Token{")", RParen, line})
			continue
		case '{':
			tokens = append(tokens, Token{"{", LBrace, line})
			continue
		case '}':
			tokens = append(tokens, Token{"}", RBrace, line})
			continue
		case '[':
			tokens = append(tokens, Token{"[", LBracket, line})
			continue
		case ']':
			tokens = append(tokens, Token{"]", RBracket, line})
			continue
		case ',':
			tokens = append(tokens, Token{",", Comma, line})
			continue
		case ';':
			tokens = append(tokens, Token{";", Semi, line})
			continue
		case '*':
			tokens = append(tokens, Token{"*", Star, line})
			continue
		}

		// Number (array bounds)
		if unicode.IsDigit(r) {
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == 'x' || runes[i] == 'X' ||
				unicode.IsLetter(runes[i])) {
				i++
			}
			tokens = append(tokens, Token{string(runes[start:i]), Number, line})
			i--
			continue
		}

		// Identifier
		if unicode.IsLetter(r) || r == '_' {
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			tokens = append(tokens, Token{string(runes[start:i]), Ident, line})
			i--
			continue
		}

		// Unknown runes are kept so the parser can report them with a line
		tokens = append(tokens, Token{string(r), Ident, line})
	}

	return tokens
}
