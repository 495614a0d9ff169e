package errors

// Error codes for the gnix toolchain.
// These codes are used in diagnostics, LSP payloads and documentation
// to provide consistent error identification across the tools.
//
// Error code ranges:
// E0100-E0199: Lexer errors (fatal)
// E0200-E0299: Bracket grouping errors (fatal)
// E0300-E0399: Grammar errors (recoverable, embedded as Error nodes)
// W0800-W0899: Warning codes
// E0900-E0999: Tooling errors (lookups, configuration files)

const (
	// E0100: No lexical pattern matches at this position
	ErrorUnexpectedCharacter = "E0100"

	// E0101: String literal reaches end of input
	ErrorUnterminatedString = "E0101"

	// E0102: Block comment reaches end of input
	ErrorUnterminatedComment = "E0102"

	// E0200: Closing bracket does not match the innermost opener
	ErrorUnexpectedClosing = "E0200"

	// E0201: Opening bracket never closed
	ErrorUnterminatedBlock = "E0201"

	// E0300: An expression was required here
	ErrorExpectedExpression = "E0300"

	// E0301: Token cannot appear in this position
	ErrorUnexpectedToken = "E0301"

	// E0302: Binding is missing '=' or ';' or has no key
	ErrorMalformedBinding = "E0302"

	// E0303: Function head is not an identifier or a pattern
	ErrorMalformedFunctionHead = "E0303"

	// E0304: Keyword construct is missing 'in', 'then', 'else' or ';'
	ErrorMissingKeyword = "E0304"

	// E0305: Attribute path segment is not a name, string or interpolation
	ErrorInvalidAttrPath = "E0305"

	// E0306: Tokens left over after a complete expression
	ErrorTrailingTokens = "E0306"

	// E0307: Interpolation inside a literal could not be parsed
	ErrorInvalidInterpolation = "E0307"

	// W0800: Same attribute assigned twice in one set
	WarningDuplicateAttribute = "W0800"

	// W0801: Expression is empty (e.g. '()')
	WarningEmptyExpression = "W0801"

	// E0900: Selector does not name any binding
	ErrorUnknownKey = "E0900"

	// E0901: Selector text is malformed
	ErrorInvalidSelector = "E0901"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnexpectedCharacter:
		return "No token starts with this character"
	case ErrorUnterminatedString:
		return "String literal is never closed"
	case ErrorUnterminatedComment:
		return "Block comment is never closed"
	case ErrorUnexpectedClosing:
		return "Closing bracket does not match the open bracket"
	case ErrorUnterminatedBlock:
		return "Bracket is opened but never closed"
	case ErrorExpectedExpression:
		return "An expression was expected"
	case ErrorUnexpectedToken:
		return "Token is not valid in this position"
	case ErrorMalformedBinding:
		return "Binding must have the form 'path = value;' or 'inherit names;'"
	case ErrorMalformedFunctionHead:
		return "Function head must be an identifier or an attribute pattern"
	case ErrorMissingKeyword:
		return "Construct is missing a required keyword or separator"
	case ErrorInvalidAttrPath:
		return "Attribute path segment is invalid"
	case ErrorTrailingTokens:
		return "Unexpected tokens after a complete expression"
	case ErrorInvalidInterpolation:
		return "Interpolated expression is invalid"
	case WarningDuplicateAttribute:
		return "Attribute is defined more than once"
	case WarningEmptyExpression:
		return "Expression is empty"
	case ErrorUnknownKey:
		return "No binding matches the selector"
	case ErrorInvalidSelector:
		return "Selector is not a valid attribute path"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code != "" && code[0] == 'W'
}

// IsFatal returns true for codes that abort a parse
func IsFatal(code string) bool {
	return code >= "E0100" && code < "E0300"
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code == "":
		return "Unknown"
	case code[0] == 'W':
		return "Warning"
	case code >= "E0100" && code < "E0200":
		return "Lexer"
	case code >= "E0200" && code < "E0300":
		return "Bracket"
	case code >= "E0300" && code < "E0400":
		return "Grammar"
	case code >= "E0900" && code < "E1000":
		return "Tooling"
	default:
		return "Unknown"
	}
}
