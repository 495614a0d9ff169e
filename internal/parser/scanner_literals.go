package parser

// Matchers for the overlapping literal classes. Each returns the length of
// the literal starting at src[i], or 0 when it does not match.

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isIdentStart(c byte) bool {
	return isAlpha(c) || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '\'' || c == '-'
}

func isPathChar(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '.' || c == '_' || c == '-' || c == '+'
}

func isSchemeChar(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '+' || c == '-' || c == '.'
}

func isURIChar(c byte) bool {
	if isAlpha(c) || isDigit(c) {
		return true
	}
	switch c {
	case '%', '/', '?', ':', '@', '&', '=', '+', '$', ',', '-', '_', '.', '!', '~', '*', '\'':
		return true
	}
	return false
}

func hasPrefixAt(src string, i int, prefix string) bool {
	return i+len(prefix) <= len(src) && src[i:i+len(prefix)] == prefix
}

func matchWord(src string, i int) int {
	if i >= len(src) || !isIdentStart(src[i]) {
		return 0
	}
	j := i + 1
	for j < len(src) && isIdentChar(src[j]) {
		j++
	}
	return j - i
}

// matchURI matches scheme ':' uri-chars+, e.g. https://nixos.org/channels.
func matchURI(src string, i int) int {
	if i >= len(src) || !isAlpha(src[i]) {
		return 0
	}
	j := i + 1
	for j < len(src) && isSchemeChar(src[j]) {
		j++
	}
	if j >= len(src) || src[j] != ':' {
		return 0
	}
	j++
	k := j
	for k < len(src) && isURIChar(src[k]) {
		k++
	}
	if k == j {
		return 0
	}
	return k - i
}

// matchPath matches relative, absolute and home paths. At least one
// '/'-separated segment is required; segments may contain ${...}.
func matchPath(src string, i int) int {
	j := i
	if j < len(src) && src[j] == '~' {
		j++
		if j >= len(src) || src[j] != '/' {
			return 0
		}
	} else {
		for j < len(src) && isPathChar(src[j]) {
			j++
		}
	}

	segments := 0
	for j < len(src) && src[j] == '/' {
		k := j + 1
		n := 0
		for k < len(src) {
			if isPathChar(src[k]) {
				k++
				n++
				continue
			}
			if hasPrefixAt(src, k, "${") {
				end, ok := skipInterpolation(src, k)
				if !ok {
					break
				}
				k = end
				n++
				continue
			}
			break
		}
		if n == 0 {
			break
		}
		j = k
		segments++
	}

	if segments == 0 {
		return 0
	}
	return j - i
}

// matchSearchPath matches <nixpkgs> and <nixpkgs/lib>.
func matchSearchPath(src string, i int) int {
	if i >= len(src) || src[i] != '<' {
		return 0
	}
	j := i + 1
	start := j
	for j < len(src) && (isPathChar(src[j]) || src[j] == '/') {
		j++
	}
	if j == start || j >= len(src) || src[j] != '>' {
		return 0
	}
	if src[start] == '/' || src[j-1] == '/' {
		return 0
	}
	return j + 1 - i
}

func matchDigits(src string, i int) int {
	j := i
	for j < len(src) && isDigit(src[j]) {
		j++
	}
	return j - i
}

func matchExponent(src string, i int) int {
	if i >= len(src) || (src[i] != 'e' && src[i] != 'E') {
		return 0
	}
	j := i + 1
	if j < len(src) && (src[j] == '+' || src[j] == '-') {
		j++
	}
	n := matchDigits(src, j)
	if n == 0 {
		return 0
	}
	return j + n - i
}

// matchFloat matches 1.5, 1.5e3 and 1e3. Plain integers are left to matchInteger.
func matchFloat(src string, i int) int {
	n := matchDigits(src, i)
	if n == 0 {
		return 0
	}
	j := i + n
	if j < len(src) && src[j] == '.' {
		frac := matchDigits(src, j+1)
		if frac == 0 {
			return 0
		}
		j += 1 + frac
		j += matchExponent(src, j)
		return j - i
	}
	if e := matchExponent(src, j); e > 0 {
		return j + e - i
	}
	return 0
}

func matchInteger(src string, i int) int {
	return matchDigits(src, i)
}

// skipString returns the index just past the "..." literal starting at src[i].
func skipString(src string, i int) (int, bool) {
	j := i + 1
	for j < len(src) {
		switch {
		case src[j] == '\\':
			j += 2
		case src[j] == '"':
			return j + 1, true
		case hasPrefixAt(src, j, "$${"):
			j += 3
		case hasPrefixAt(src, j, "${"):
			end, ok := skipInterpolation(src, j)
			if !ok {
				return len(src), false
			}
			j = end
		default:
			j++
		}
	}
	return len(src), false
}

// skipIndentedString returns the index just past the ''...'' literal starting at src[i].
func skipIndentedString(src string, i int) (int, bool) {
	j := i + 2
	for j < len(src) {
		switch {
		case hasPrefixAt(src, j, "'''"), hasPrefixAt(src, j, "''$"):
			j += 3
		case hasPrefixAt(src, j, "''\\"):
			j += 4
		case hasPrefixAt(src, j, "''"):
			return j + 2, true
		case hasPrefixAt(src, j, "$${"):
			j += 3
		case hasPrefixAt(src, j, "${"):
			end, ok := skipInterpolation(src, j)
			if !ok {
				return len(src), false
			}
			j = end
		default:
			j++
		}
	}
	return len(src), false
}

// skipInterpolation returns the index just past the '}' closing the ${ at src[i].
// Braces inside nested strings and comments do not count.
func skipInterpolation(src string, i int) (int, bool) {
	depth := 1
	j := i + 2
	for j < len(src) {
		var ok bool
		switch {
		case src[j] == '{':
			depth++
			j++
		case src[j] == '}':
			depth--
			j++
			if depth == 0 {
				return j, true
			}
		case src[j] == '"':
			if j, ok = skipString(src, j); !ok {
				return len(src), false
			}
		case hasPrefixAt(src, j, "''"):
			if j, ok = skipIndentedString(src, j); !ok {
				return len(src), false
			}
		case src[j] == '#':
			for j < len(src) && src[j] != '\n' {
				j++
			}
		case hasPrefixAt(src, j, "/*"):
			if j, ok = skipBlockComment(src, j); !ok {
				return len(src), false
			}
		default:
			j++
		}
	}
	return len(src), false
}

func skipBlockComment(src string, i int) (int, bool) {
	for j := i + 2; j+1 < len(src); j++ {
		if src[j] == '*' && src[j+1] == '/' {
			return j + 2, true
		}
	}
	return len(src), false
}
