package cheader

import (
	"os"

	"go.uber.org/zap"

	"github.com/ffikit/ffi-bridge/cheader/internal/token"
	"github.com/ffikit/ffi-bridge/errors"
)

// Parse parses C header text into declarations in source order.
// Parse is pure: same input, same output, no side effects.
//
// Constructs the bridge cannot represent in the host language (variadic
// functions, function pointers, arrays, unions, enums) fail the whole parse
// rather than being skipped, so a missing binding is never discovered at
// link time.
func Parse(src string) ([]Decl, error) {
	p := &parser{tokens: token.Tokenize(src)}
	decls, err := p.parse()
	if err != nil {
		return nil, err
	}
	Logger().Debug("parsed header", zap.Int("decls", len(decls)))
	return decls, nil
}

// ParseFile reads and parses a generated header from disk.
func ParseFile(path string) ([]Decl, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidHeader, err,
			"read generated header "+path)
	}
	return Parse(string(data))
}
