package bundle

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/c360studio/plughost/store"
	"github.com/c360studio/plughost/value"
	"github.com/c360studio/plughost/vocabulary"
)

// NTriplesReader is a TripleReader for line-oriented N-Triples files. It
// exists so the library is usable end to end without an external Turtle
// parser; production hosts normally supply their own reader.
//
// Typed literals with xsd integer, floating point, and boolean datatypes
// become the corresponding Value kinds; other datatypes keep their lexical
// form as plain strings.
type NTriplesReader struct{}

// ReadFile parses the file at path. Blank lines and # comments are skipped.
func (NTriplesReader) ReadFile(_ context.Context, path string) ([]store.Triple, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var out []store.Triple
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		t, err := parseNTLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineno, err)
		}
		out = append(out, t)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

type ntScanner struct {
	s   string
	pos int
}

func (p *ntScanner) skipSpace() {
	for p.pos < len(p.s) && unicode.IsSpace(rune(p.s[p.pos])) {
		p.pos++
	}
}

func (p *ntScanner) term() (value.Value, error) {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return value.Value{}, fmt.Errorf("unexpected end of line")
	}
	switch p.s[p.pos] {
	case '<':
		end := strings.IndexByte(p.s[p.pos:], '>')
		if end < 0 {
			return value.Value{}, fmt.Errorf("unterminated URI")
		}
		uri := p.s[p.pos+1 : p.pos+end]
		p.pos += end + 1
		return value.NewURI(uri), nil
	case '_':
		if p.pos+1 >= len(p.s) || p.s[p.pos+1] != ':' {
			return value.Value{}, fmt.Errorf("malformed blank node")
		}
		start := p.pos + 2
		end := start
		for end < len(p.s) && !unicode.IsSpace(rune(p.s[end])) {
			end++
		}
		id := p.s[start:end]
		p.pos = end
		if id == "" {
			return value.Value{}, fmt.Errorf("empty blank node label")
		}
		return value.NewBlank(id), nil
	case '"':
		return p.literal()
	default:
		return value.Value{}, fmt.Errorf("unexpected character %q", p.s[p.pos])
	}
}

func (p *ntScanner) literal() (value.Value, error) {
	var sb strings.Builder
	i := p.pos + 1
	for {
		if i >= len(p.s) {
			return value.Value{}, fmt.Errorf("unterminated string literal")
		}
		c := p.s[i]
		if c == '\\' && i+1 < len(p.s) {
			switch p.s[i+1] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteByte(p.s[i+1])
			}
			i += 2
			continue
		}
		if c == '"' {
			i++
			break
		}
		sb.WriteByte(c)
		i++
	}
	text := sb.String()

	// Optional language tag or datatype.
	if i < len(p.s) && p.s[i] == '@' {
		start := i + 1
		end := start
		for end < len(p.s) && (p.s[end] == '-' || unicode.IsLetter(rune(p.s[end])) || unicode.IsDigit(rune(p.s[end]))) {
			end++
		}
		p.pos = end
		return value.NewStringLang(text, p.s[start:end]), nil
	}
	if strings.HasPrefix(p.s[i:], "^^<") {
		end := strings.IndexByte(p.s[i:], '>')
		if end < 0 {
			return value.Value{}, fmt.Errorf("unterminated datatype URI")
		}
		dt := p.s[i+3 : i+end]
		p.pos = i + end + 1
		return typedLiteral(text, dt)
	}
	p.pos = i
	return value.NewString(text), nil
}

func typedLiteral(text, datatype string) (value.Value, error) {
	switch datatype {
	case vocabulary.NSXSD + "integer", vocabulary.NSXSD + "int", vocabulary.NSXSD + "long":
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return value.Value{}, fmt.Errorf("bad integer literal %q: %w", text, err)
		}
		return value.NewInt(n), nil
	case vocabulary.NSXSD + "decimal", vocabulary.NSXSD + "double", vocabulary.NSXSD + "float":
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return value.Value{}, fmt.Errorf("bad float literal %q: %w", text, err)
		}
		return value.NewFloat(f), nil
	case vocabulary.NSXSD + "boolean":
		switch text {
		case "true", "1":
			return value.NewBool(true), nil
		case "false", "0":
			return value.NewBool(false), nil
		}
		return value.Value{}, fmt.Errorf("bad boolean literal %q", text)
	default:
		return value.NewString(text), nil
	}
}

func parseNTLine(line string) (store.Triple, error) {
	p := &ntScanner{s: line}
	subj, err := p.term()
	if err != nil {
		return store.Triple{}, fmt.Errorf("subject: %w", err)
	}
	pred, err := p.term()
	if err != nil {
		return store.Triple{}, fmt.Errorf("predicate: %w", err)
	}
	obj, err := p.term()
	if err != nil {
		return store.Triple{}, fmt.Errorf("object: %w", err)
	}
	p.skipSpace()
	if p.pos >= len(p.s) || p.s[p.pos] != '.' {
		return store.Triple{}, fmt.Errorf("missing statement terminator")
	}
	return store.Triple{Subject: subj, Predicate: pred, Object: obj}, nil
}
