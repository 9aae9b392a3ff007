package reader

import (
	"errors"
	"strconv"
	"strings"

	. "mal/types"
)

// ErrNoForm is returned by ReadStr when the input holds only whitespace
// and comments.
var ErrNoForm = errors.New("no form to read")

const msgEOF = "unexpected end of input"

// IsIncomplete reports whether err means the input stopped in the middle
// of a form, so that more input could complete it.
func IsIncomplete(err error) bool {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return false
	}
	return strings.HasPrefix(pe.Msg, msgEOF)
}

type MalReader struct {
	tokens []string
	index  int
}

func (r *MalReader) Next() (string, bool) {
	t, ok := r.Peek()
	if !ok {
		return t, false
	}

	r.index++
	return t, true
}

func (r *MalReader) Peek() (string, bool) {
	if r.index >= len(r.tokens) {
		return "EOF", false
	}
	return r.tokens[r.index], true
}

func (r *MalReader) HasMore() bool {
	return r.index < len(r.tokens)
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', ',', '(', ')', '[', ']', '{', '}', '\'', '`', '~', '^', '@', '"', ';':
		return true
	}
	return false
}

func tokenize(input string) []string {
	t := make([]string, 0, 16)
	for pos := 0; pos < len(input); {
		c := input[pos]
		switch c {
		case ' ', '\t', '\r', '\n', ',':
			pos++ // Whitespace and commas are skipped.

		case '~':
			if pos+1 < len(input) && input[pos+1] == '@' {
				t = append(t, "~@")
				pos += 2
			} else {
				t = append(t, "~")
				pos++
			}

		case '[', ']', '{', '}', '(', ')', '\'', '`', '^', '@':
			t = append(t, string(c))
			pos++

		case '"':
			// The raw token keeps its quotes and escapes; an unterminated
			// string runs to the end of input and is rejected by readString.
			end := pos + 1
			for end < len(input) {
				if input[end] == '\\' {
					end += 2
					continue
				}
				if input[end] == '"' {
					end++
					break
				}
				end++
			}
			if end > len(input) {
				end = len(input)
			}
			t = append(t, input[pos:end])
			pos = end

		case ';': // Comments run to the end of the line and are dropped.
			for pos < len(input) && input[pos] != '\n' {
				pos++
			}

		default:
			end := pos + 1
			for end < len(input) && !isDelimiter(input[end]) {
				end++
			}
			t = append(t, input[pos:end])
			pos = end
		}
	}
	return t
}

// ReadStr reads the first form in input. Anything after it is ignored.
func ReadStr(input string) (Data, error) {
	tokens := tokenize(input)
	if len(tokens) == 0 {
		return nil, ErrNoForm
	}

	r := &MalReader{tokens, 0}
	return ReadForm(r)
}

func ReadForm(r *MalReader) (Data, error) {
	t, ok := r.Peek()
	if !ok {
		return nil, &ParseError{Msg: msgEOF}
	}

	switch t {
	case "'":
		return nextWrapped(r, "quote")
	case "`":
		return nextWrapped(r, "quasiquote")
	case "~":
		return nextWrapped(r, "unquote")
	case "~@":
		return nextWrapped(r, "splice-unquote")
	case "@":
		return nextWrapped(r, "deref")
	case "^":
		return readMeta(r)
	case "(":
		members, err := readSeq(r, ")")
		if err != nil {
			return nil, err
		}
		return &DList{Members: members}, nil
	case "[":
		members, err := readSeq(r, "]")
		if err != nil {
			return nil, err
		}
		return &DVector{Members: members}, nil
	case "{":
		members, err := readSeq(r, "}")
		if err != nil {
			return nil, err
		}
		m, err := NewHashmap(members...)
		if err != nil {
			return nil, &ParseError{Msg: err.Error()}
		}
		return m, nil
	case ")", "]", "}":
		r.Next()
		return nil, &ParseError{Msg: "unexpected '" + t + "'"}
	}

	switch t[0] {
	case '"':
		r.Next()
		return readString(t)
	case ':':
		r.Next()
		return readKeyword(t)
	}
	return readAtom(r)
}

func nextWrapped(r *MalReader, wrapper string) (Data, error) {
	r.Next()
	next, err := ReadForm(r)
	if err != nil {
		return nil, err
	}
	return List(Symbol(wrapper), next), nil
}

// ^meta form reads as (with-meta form meta).
func readMeta(r *MalReader) (Data, error) {
	r.Next()
	meta, err := ReadForm(r)
	if err != nil {
		return nil, err
	}
	form, err := ReadForm(r)
	if err != nil {
		return nil, err
	}
	return List(Symbol("with-meta"), form, meta), nil
}

func readSeq(r *MalReader, closer string) ([]Data, error) {
	r.Next() // Skip the opener.
	ret := []Data{}
	for {
		if !r.HasMore() {
			return nil, &ParseError{Msg: msgEOF + ", expected '" + closer + "'"}
		}
		if t, _ := r.Peek(); t == closer {
			r.Next()
			return ret, nil
		}

		f, err := ReadForm(r)
		if err != nil {
			return nil, err
		}
		ret = append(ret, f)
	}
}

func readString(t string) (Data, error) {
	if len(t) < 2 || t[len(t)-1] != '"' || !evenBackslashes(t[1:len(t)-1]) {
		return nil, &ParseError{Msg: msgEOF + ", expected '\"'"}
	}

	body := t[1 : len(t)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case '\\', '"':
			b.WriteByte(body[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(body[i])
		}
	}
	return String(b.String()), nil
}

// evenBackslashes reports whether s ends in an even-length run of
// backslashes, i.e. whether a following quote would be unescaped.
func evenBackslashes(s string) bool {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n%2 == 0
}

func readKeyword(t string) (Data, error) {
	if len(t) < 2 {
		return nil, &ParseError{Msg: "keyword needs a name after ':'"}
	}
	return Keyword(t[1:]), nil
}

func readAtom(r *MalReader) (Data, error) {
	t, ok := r.Next()
	if !ok {
		return nil, &ParseError{Msg: msgEOF}
	}

	switch t {
	case "nil":
		return Nil, nil
	case "true":
		return True, nil
	case "false":
		return False, nil
	}

	// Tokens such as 12abc or 2nd are symbols; an integer too large for
	// int64 is an error rather than a symbol.
	if looksNumeric(t) {
		n, err := strconv.ParseInt(t, 10, 64)
		if err == nil {
			return Number(n), nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return nil, &ParseError{Msg: "number out of range '" + t + "'"}
		}
	}
	return Symbol(t), nil
}

func looksNumeric(t string) bool {
	if len(t) >= 2 && (t[0] == '-' || t[0] == '+') {
		t = t[1:]
	}
	return '0' <= t[0] && t[0] <= '9'
}
