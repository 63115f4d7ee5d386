package table

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"
)

// phpCodec handles Laravel style language files:
//
//	<?php
//
//	return [
//	    'welcome' => 'Welcome, :name',
//	];
//
// Only literal arrays of string values are accepted. The long array(...)
// syntax, comments, string concatenation with '.' and null values are
// understood as well.
type phpCodec struct{}

func (phpCodec) Decode(data []byte) (*Table, error) {
	p := &phpParser{src: string(data)}
	return p.parse()
}

func (phpCodec) Encode(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("<?php\n\nreturn [")
	if t.Len() == 0 {
		buf.WriteString("];\n")
		return buf.Bytes(), nil
	}
	buf.WriteByte('\n')
	for _, k := range t.keys {
		buf.WriteString("    ")
		buf.WriteString(phpQuote(k))
		buf.WriteString(" => ")
		buf.WriteString(phpQuote(t.values[k]))
		buf.WriteString(",\n")
	}
	buf.WriteString("];\n")
	return buf.Bytes(), nil
}

// phpQuote renders s as a single-quoted PHP string
func phpQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

var phpEscapes = map[byte]byte{
	'n': '\n', 't': '\t', 'r': '\r', 'v': '\v', 'f': '\f', 'e': 0x1b,
	'\\': '\\', '$': '$', '"': '"',
}

type phpParser struct {
	src string
	pos int
}

func (p *phpParser) parse() (*Table, error) {
	open := strings.Index(p.src, "<?php")
	if open < 0 {
		return nil, invalidf("missing <?php open tag")
	}
	p.pos = open + len("<?php")

	// Skip leading statements such as declare(strict_types=1);
	for {
		p.skipSpace()
		if p.eof() {
			return nil, invalidf("file does not return an array")
		}
		if p.matchWord("return") {
			break
		}
		if err := p.skipStatement(); err != nil {
			return nil, err
		}
	}

	p.skipSpace()
	closer, ok := p.arrayOpen()
	if !ok {
		return nil, invalidf("return value is not an array literal")
	}

	t, err := p.parseEntries(closer)
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if !p.eof() && p.peek() != ';' {
		return nil, invalidf("unexpected %q after array at offset %d", p.peek(), p.pos)
	}
	return t, nil
}

// arrayOpen consumes "[" or "array(" and returns the matching closer
func (p *phpParser) arrayOpen() (byte, bool) {
	if p.peek() == '[' {
		p.pos++
		return ']', true
	}
	save := p.pos
	if p.matchWord("array") {
		p.skipSpace()
		if p.peek() == '(' {
			p.pos++
			return ')', true
		}
	}
	p.pos = save
	return 0, false
}

func (p *phpParser) parseEntries(closer byte) (*Table, error) {
	t := New()
	for {
		p.skipSpace()
		if p.eof() {
			return nil, invalidf("unterminated array")
		}
		if p.peek() == closer {
			p.pos++
			return t, nil
		}

		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}

		p.skipSpace()
		if !strings.HasPrefix(p.src[p.pos:], "=>") {
			return nil, invalidf("expected => after key %q", key)
		}
		p.pos += 2
		p.skipSpace()

		if _, nested := p.arrayOpen(); nested {
			return nil, invalidf("nested array under key %q", key)
		}
		value, err := p.parseValue(key)
		if err != nil {
			return nil, err
		}
		t.Set(key, value)

		p.skipSpace()
		switch {
		case p.peek() == ',':
			p.pos++
		case p.peek() == closer:
		default:
			return nil, invalidf("expected , or %c after value of key %q", closer, key)
		}
	}
}

func (p *phpParser) parseKey() (string, error) {
	switch c := p.peek(); {
	case c == '\'' || c == '"':
		return p.parseString()
	case c == '-' || (c >= '0' && c <= '9'):
		start := p.pos
		p.pos++
		for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
			p.pos++
		}
		n, err := strconv.Atoi(p.src[start:p.pos])
		if err != nil {
			return "", invalidf("bad integer key %q", p.src[start:p.pos])
		}
		return strconv.Itoa(n), nil
	default:
		return "", invalidf("expected a string or integer key at offset %d", p.pos)
	}
}

func (p *phpParser) parseValue(key string) (string, error) {
	if p.matchWord("null") {
		return "", nil
	}
	if c := p.peek(); c != '\'' && c != '"' {
		return "", invalidf("value of key %q is not a string", key)
	}

	var sb strings.Builder
	for {
		s, err := p.parseString()
		if err != nil {
			return "", err
		}
		sb.WriteString(s)

		save := p.pos
		p.skipSpace()
		if p.peek() != '.' {
			p.pos = save
			return sb.String(), nil
		}
		p.pos++
		p.skipSpace()
		if c := p.peek(); c != '\'' && c != '"' {
			return "", invalidf("value of key %q concatenates a non-literal", key)
		}
	}
}

func (p *phpParser) parseString() (string, error) {
	quote := p.src[p.pos]
	p.pos++

	var sb strings.Builder
	for {
		if p.eof() {
			return "", invalidf("unterminated string")
		}
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return sb.String(), nil
		case c == '\\' && p.pos+1 < len(p.src):
			if quote == '\'' {
				next := p.src[p.pos+1]
				if next == '\'' || next == '\\' {
					sb.WriteByte(next)
					p.pos += 2
					continue
				}
				sb.WriteByte(c)
				p.pos++
				continue
			}
			p.pos++
			p.unescapeDouble(&sb)
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
}

// unescapeDouble handles the escape sequence following a backslash inside
// a double-quoted string. p.pos points at the character after the backslash.
func (p *phpParser) unescapeDouble(sb *strings.Builder) {
	c := p.src[p.pos]
	if r, ok := phpEscapes[c]; ok {
		sb.WriteByte(r)
		p.pos++
		return
	}

	switch {
	case c == 'x' && p.pos+1 < len(p.src) && isHex(p.src[p.pos+1]):
		end := p.pos + 1
		for end < len(p.src) && end < p.pos+3 && isHex(p.src[end]) {
			end++
		}
		n, _ := strconv.ParseUint(p.src[p.pos+1:end], 16, 8)
		sb.WriteByte(byte(n))
		p.pos = end
	case c == 'u' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '{':
		end := strings.IndexByte(p.src[p.pos:], '}')
		if end < 0 {
			sb.WriteString(`\u`)
			p.pos++
			return
		}
		n, err := strconv.ParseUint(p.src[p.pos+2:p.pos+end], 16, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			sb.WriteString(`\u`)
			p.pos++
			return
		}
		sb.WriteRune(rune(n))
		p.pos += end + 1
	case c >= '0' && c <= '7':
		end := p.pos
		for end < len(p.src) && end < p.pos+3 && p.src[end] >= '0' && p.src[end] <= '7' {
			end++
		}
		n, _ := strconv.ParseUint(p.src[p.pos:end], 8, 16)
		sb.WriteByte(byte(n))
		p.pos = end
	default:
		sb.WriteByte('\\')
	}
}

// skipStatement advances past the next ';' outside of strings
func (p *phpParser) skipStatement() error {
	for !p.eof() {
		switch c := p.peek(); c {
		case '\'', '"':
			if _, err := p.parseString(); err != nil {
				return err
			}
		case ';':
			p.pos++
			return nil
		default:
			p.pos++
		}
		p.skipSpace()
	}
	return invalidf("file does not return an array")
}

func (p *phpParser) skipSpace() {
	for !p.eof() {
		rest := p.src[p.pos:]
		switch {
		case isSpace(rest[0]):
			p.pos++
		case strings.HasPrefix(rest, "//") || (rest[0] == '#' && !strings.HasPrefix(rest, "#[")):
			nl := strings.IndexByte(rest, '\n')
			if nl < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += nl + 1
		case strings.HasPrefix(rest, "/*"):
			end := strings.Index(rest[2:], "*/")
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += end + 4
		default:
			return
		}
	}
}

// matchWord consumes word if it appears at the cursor as a whole,
// case-insensitive identifier.
func (p *phpParser) matchWord(word string) bool {
	end := p.pos + len(word)
	if end > len(p.src) || !strings.EqualFold(p.src[p.pos:end], word) {
		return false
	}
	if end < len(p.src) && isIdent(p.src[end]) {
		return false
	}
	p.pos = end
	return true
}

func (p *phpParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *phpParser) eof() bool {
	return p.pos >= len(p.src)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdent(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
