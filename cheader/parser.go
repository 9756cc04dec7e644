package cheader

import (
	"strconv"
	"strings"

	"github.com/ffikit/ffi-bridge/cheader/internal/token"
	"github.com/ffikit/ffi-bridge/errors"
)

type parser struct {
	tokens []token.Token
	pos    int
}

// typeWords are C keywords that always belong to a type specifier, never a
// declared name. Typedef names (GoInt, size_t, ...) are intentionally absent:
// they are told apart from names by position.
var typeWords = map[string]bool{
	"void": true, "char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "signed": true, "unsigned": true,
	"_Bool": true, "_Complex": true, "bool": true,
}

// qualifiers are accepted and dropped; only const is recorded.
var qualifiers = map[string]bool{
	"const": true, "volatile": true, "restrict": true, "__restrict": true,
	"__extension__": true, "inline": true, "static": true,
}

func (p *parser) peek() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *parser) next() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) expect(typ token.Type) (*token.Token, error) {
	t := p.next()
	if t == nil {
		return nil, errors.InvalidHeader(p.lastLine(), "unexpected end of header, expected "+typ.String())
	}
	if t.Type != typ {
		return nil, errors.InvalidHeader(t.Line, "expected "+typ.String()+", got "+quoted(t.Value))
	}
	return t, nil
}

func (p *parser) lastLine() int {
	if len(p.tokens) == 0 {
		return 1
	}
	return p.tokens[len(p.tokens)-1].Line
}

func quoted(s string) string {
	return "'" + s + "'"
}

func (p *parser) parse() ([]Decl, error) {
	// The tokenizer appends an Invalid sentinel when input runs out inside
	// a comment or string literal; it is always the final token.
	if n := len(p.tokens); n > 0 && p.tokens[n-1].Type == token.Invalid {
		t := p.tokens[n-1]
		return nil, errors.InvalidHeader(t.Line, t.Value)
	}

	var decls []Decl
	for p.peek() != nil {
		ds, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		decls = append(decls, ds...)
	}
	return decls, nil
}

// parseItem parses one top-level construct. extern "C" blocks are flattened.
func (p *parser) parseItem() ([]Decl, error) {
	t := p.peek()

	if t.Type == token.Ident && t.Value == "extern" {
		if la := p.lookahead(1); la != nil && la.Type == token.String && la.Value == "C" {
			return p.parseExternC()
		}
		p.next() // extern on a prototype carries no meaning for the binding
		t = p.peek()
		if t == nil {
			return nil, errors.InvalidHeader(p.lastLine(), "unexpected end of header after 'extern'")
		}
	}

	// Stray '}' can only close an extern "C" block handled elsewhere
	if t.Type == token.RBrace {
		return nil, errors.InvalidHeader(t.Line, "unmatched '}'")
	}

	if t.Type == token.Ident {
		switch t.Value {
		case "typedef":
			d, err := p.parseTypedef()
			if err != nil {
				return nil, err
			}
			return []Decl{d}, nil
		case "struct":
			if la := p.lookahead(2); la != nil && la.Type == token.Semi {
				d, err := p.parseOpaque()
				if err != nil {
					return nil, err
				}
				return []Decl{d}, nil
			}
			if la1, la2 := p.lookahead(1), p.lookahead(2); (la1 != nil && la1.Type == token.LBrace) ||
				(la2 != nil && la2.Type == token.LBrace) {
				// A bare struct definition has no stable host representation
				// without a typedef name to bind it to.
				return nil, errors.Unsupported(errors.PhaseParse, nil,
					"struct definition outside typedef at line "+strconv.Itoa(t.Line))
			}
			// Anything else is a prototype whose return type names the struct.
		case "union", "enum":
			return nil, errors.Unsupported(errors.PhaseParse, nil,
				t.Value+" declarations have no host-language equivalent (line "+strconv.Itoa(t.Line)+")")
		}
	}

	d, err := p.parsePrototype()
	if err != nil {
		return nil, err
	}
	return []Decl{d}, nil
}

func (p *parser) lookahead(n int) *token.Token {
	if p.pos+n >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos+n]
}

func (p *parser) parseExternC() ([]Decl, error) {
	p.next() // extern
	p.next() // "C"
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	var decls []Decl
	for {
		t := p.peek()
		if t == nil {
			return nil, errors.InvalidHeader(p.lastLine(), `unterminated extern "C" block`)
		}
		if t.Type == token.RBrace {
			p.next()
			return decls, nil
		}
		ds, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		decls = append(decls, ds...)
	}
}

// parseOpaque parses `struct Name;`.
func (p *parser) parseOpaque() (Decl, error) {
	start := p.next() // struct
	name, err := p.expect(token.Ident)
	if err != nil {
		return Decl{}, err
	}
	if _, err := p.expect(token.Semi); err != nil {
		return Decl{}, err
	}
	return Decl{Kind: DeclOpaque, Name: name.Value, Line: start.Line}, nil
}

// parseTypedef parses `typedef <type> <name>;` and
// `typedef struct { fields } <name>;`.
func (p *parser) parseTypedef() (Decl, error) {
	start := p.next() // typedef

	if t := p.peek(); t != nil && t.Type == token.Ident && t.Value == "struct" {
		la := p.lookahead(1)
		inline := la != nil && la.Type == token.LBrace
		named := la != nil && la.Type == token.Ident
		if inline || (named && p.lookahead(2) != nil && p.lookahead(2).Type == token.LBrace) {
			return p.parseRecordTypedef(start.Line)
		}
	}

	typ, name, err := p.parseDeclarator(nil)
	if err != nil {
		return Decl{}, err
	}
	if name == "" {
		return Decl{}, errors.InvalidHeader(start.Line, "typedef without a name")
	}
	if _, err := p.expect(token.Semi); err != nil {
		return Decl{}, err
	}
	return Decl{Kind: DeclTypedef, Name: name, Alias: typ, Line: start.Line}, nil
}

// parseRecordTypedef parses `typedef struct [tag] { members } name;`.
func (p *parser) parseRecordTypedef(line int) (Decl, error) {
	p.next() // struct
	if t := p.peek(); t != nil && t.Type == token.Ident {
		p.next() // optional tag, not used for binding
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return Decl{}, err
	}

	var fields []Field
	for {
		t := p.peek()
		if t == nil {
			return Decl{}, errors.InvalidHeader(p.lastLine(), "unterminated struct body")
		}
		if t.Type == token.RBrace {
			p.next()
			break
		}
		typ, name, err := p.parseDeclarator([]string{"<record>"})
		if err != nil {
			return Decl{}, err
		}
		if name == "" {
			return Decl{}, errors.InvalidHeader(t.Line, "struct member without a name")
		}
		fields = append(fields, Field{Name: name, Type: typ})
		if _, err := p.expect(token.Semi); err != nil {
			return Decl{}, err
		}
	}

	name, err := p.expect(token.Ident)
	if err != nil {
		return Decl{}, err
	}
	if _, err := p.expect(token.Semi); err != nil {
		return Decl{}, err
	}
	return Decl{Kind: DeclRecord, Name: name.Value, Fields: fields, Line: line}, nil
}

// parsePrototype parses `<type> <name>(<params>);`.
func (p *parser) parsePrototype() (Decl, error) {
	start := p.peek()
	ret, name, err := p.parseDeclarator(nil)
	if err != nil {
		return Decl{}, err
	}
	if name == "" {
		return Decl{}, errors.InvalidHeader(start.Line, "expected a declaration, got "+quoted(start.Value))
	}

	if _, err := p.expect(token.LParen); err != nil {
		return Decl{}, err
	}
	params, err := p.parseParams(name)
	if err != nil {
		return Decl{}, err
	}
	if _, err := p.expect(token.Semi); err != nil {
		return Decl{}, err
	}
	return Decl{Kind: DeclFunc, Name: name, Ret: ret, Params: params, Line: start.Line}, nil
}

func (p *parser) parseParams(fnName string) ([]Field, error) {
	// Empty list or the C spelling of it, (void)
	if t := p.peek(); t != nil && t.Type == token.RParen {
		p.next()
		return nil, nil
	}
	if t := p.peek(); t != nil && t.Type == token.Ident && t.Value == "void" {
		if la := p.lookahead(1); la != nil && la.Type == token.RParen {
			p.next()
			p.next()
			return nil, nil
		}
	}

	var params []Field
	for i := 0; ; i++ {
		t := p.peek()
		if t == nil {
			return nil, errors.InvalidHeader(p.lastLine(), "unterminated parameter list")
		}
		if t.Type == token.Ellipsis {
			// Silently dropping the variadic tail would break every caller at
			// link time, so the whole run fails instead.
			return nil, errors.Unsupported(errors.PhaseParse, []string{fnName},
				"variadic functions cannot be bound")
		}

		typ, name, err := p.parseDeclarator([]string{fnName})
		if err != nil {
			return nil, err
		}
		params = append(params, Field{Name: name, Type: typ})

		sep := p.next()
		if sep == nil {
			return nil, errors.InvalidHeader(p.lastLine(), "unterminated parameter list")
		}
		switch sep.Type {
		case token.Comma:
			continue
		case token.RParen:
			return params, nil
		default:
			return nil, errors.InvalidHeader(sep.Line, "expected ',' or ')', got "+quoted(sep.Value))
		}
	}
}

// parseDeclarator parses a type specifier followed by an optional declared
// name: `const char *p`, `unsigned long long`, `GoInt x`, `struct Ctx *h`.
// path is used only for error reporting.
func (p *parser) parseDeclarator(path []string) (Type, string, error) {
	var typ Type
	var words []string

	for {
		t := p.peek()
		if t == nil || t.Type != token.Ident {
			break
		}
		if qualifiers[t.Value] {
			if t.Value == "const" {
				typ.Const = true
			}
			p.next()
			continue
		}
		if t.Value == "struct" || t.Value == "union" || t.Value == "enum" {
			p.next()
			tag, err := p.expect(token.Ident)
			if err != nil {
				return Type{}, "", err
			}
			words = append(words, t.Value+" "+tag.Value)
			continue
		}
		words = append(words, t.Value)
		p.next()
	}

	if len(words) == 0 {
		t := p.peek()
		line := p.lastLine()
		got := "end of header"
		if t != nil {
			line = t.Line
			got = quoted(t.Value)
		}
		return Type{}, "", errors.InvalidHeader(line, "expected a type, got "+got)
	}

	for {
		t := p.peek()
		if t == nil || t.Type != token.Star {
			break
		}
		typ.Stars++
		p.next()
	}

	var name string
	if t := p.peek(); t != nil && t.Type == token.Ident && !typeWords[t.Value] {
		name = t.Value
		p.next()
	} else if typ.Stars == 0 && len(words) >= 2 && !typeWords[words[len(words)-1]] &&
		!strings.Contains(words[len(words)-1], " ") {
		name = words[len(words)-1]
		words = words[:len(words)-1]
	}

	if t := p.peek(); t != nil {
		switch {
		case t.Type == token.LParen && name == "":
			return Type{}, "", errors.Unsupported(errors.PhaseParse, path,
				"function pointer types cannot be bound (line "+strconv.Itoa(t.Line)+")")
		case t.Type == token.LBracket:
			return Type{}, "", errors.Unsupported(errors.PhaseParse, appendPath(path, name),
				"array declarators cannot be bound (line "+strconv.Itoa(t.Line)+")")
		}
	}

	typ.Base = strings.Join(words, " ")
	return typ, name, nil
}

func appendPath(path []string, name string) []string {
	if name == "" {
		return path
	}
	return append(append([]string{}, path...), name)
}

