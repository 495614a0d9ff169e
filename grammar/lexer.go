package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// SelectorLexer tokenizes attribute selectors such as
// services.openssh.enable or users.users."alice@host".shell.
var SelectorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_'-]*`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})
