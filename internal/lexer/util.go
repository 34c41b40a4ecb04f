package lexer

func isDec(b byte) bool { return b >= '0' && b <= '9' }

// isDelimiter: байты, на которых заканчивается атом.
func isDelimiter(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f',
		'(', ')', '[', ']', '{', '}', '"', ';':
		return true
	default:
		return false
	}
}
