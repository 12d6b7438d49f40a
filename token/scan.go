package token

// Scan lexes JSON text into shared tokens drawn from cache. A quoted
// string whose next non-whitespace character is a colon scans as a
// key, any other as a string. Input that is not part of a JSON lexeme
// is skipped, so Scan never fails; feed it through a validator first
// when syntax matters. A nil cache gets a private one.
func Scan(text string, cache *Cache) []*Token {
	if cache == nil {
		cache = New()
	}

	var out []*Token
	n := len(text)
	for i := 0; i < n; {
		ch := text[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++

		case ch == '{' || ch == '}' || ch == '[' || ch == ']' || ch == ':' || ch == ',':
			out = append(out, cache.Get(string(ch), KindSymbol))
			i++

		case ch == '"':
			end := scanString(text, i)
			kind := KindString
			if colonFollows(text, end) {
				kind = KindKey
			}
			out = append(out, cache.Get(text[i:end], kind))
			i = end

		case ch == '-' || isDigit(ch):
			end, ok := scanNumber(text, i)
			if !ok {
				i++
				continue
			}
			out = append(out, cache.Get(text[i:end], KindNumber))
			i = end

		case isAlpha(ch):
			end := scanWord(text, i)
			switch word := text[i:end]; word {
			case "true", "false":
				out = append(out, cache.Get(word, KindBoolean))
			case "null":
				out = append(out, cache.Get(word, KindNull))
			}
			i = end

		default:
			i++
		}
	}
	return out
}

// scanString consumes a quoted string starting at the opening quote
// and returns the index just past the closing quote. An unterminated
// string consumes the rest of the text.
func scanString(text string, start int) int {
	n := len(text)
	for i := start + 1; i < n; {
		switch text[i] {
		case '\\':
			i += 2
			if i > n {
				return n
			}
		case '"':
			return i + 1
		default:
			i++
		}
	}
	return n
}

func scanNumber(text string, start int) (end int, ok bool) {
	n := len(text)
	i := start
	if text[i] == '-' {
		i++
	}
	if i >= n || !isDigit(text[i]) {
		return 0, false
	}
	for i < n && isDigit(text[i]) {
		i++
	}
	if i < n && text[i] == '.' {
		i++
		for i < n && isDigit(text[i]) {
			i++
		}
	}
	if i < n && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j < n && (text[j] == '+' || text[j] == '-') {
			j++
		}
		if j < n && isDigit(text[j]) {
			for j < n && isDigit(text[j]) {
				j++
			}
			i = j
		}
	}
	return i, true
}

func scanWord(text string, start int) int {
	i := start
	for i < len(text) && isAlpha(text[i]) {
		i++
	}
	return i
}

func colonFollows(text string, i int) bool {
	for i < len(text) {
		switch text[i] {
		case ' ', '\t', '\n', '\r':
			i++
		case ':':
			return true
		default:
			return false
		}
	}
	return false
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
