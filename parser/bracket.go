package parser

import "github.com/corejit/rejit/ast"

// posixClasses implements the ERE `[:name:]` bracket classes supplemented
// into this module per SPEC_FULL.md §4 (spec.md's §4.1 is silent on them,
// but an ERE bracket parser without them is unusually crippled).
var posixClasses = map[string][]ast.ByteRange{
	"digit":  {{Lo: '0', Hi: '9'}},
	"upper":  {{Lo: 'A', Hi: 'Z'}},
	"lower":  {{Lo: 'a', Hi: 'z'}},
	"alpha":  {{Lo: 'A', Hi: 'Z'}, {Lo: 'a', Hi: 'z'}},
	"alnum":  {{Lo: '0', Hi: '9'}, {Lo: 'A', Hi: 'Z'}, {Lo: 'a', Hi: 'z'}},
	"xdigit": {{Lo: '0', Hi: '9'}, {Lo: 'A', Hi: 'F'}, {Lo: 'a', Hi: 'f'}},
}

var posixClassChars = map[string][]byte{
	"space": {' ', '\t', '\n', '\r', '\v', '\f'},
	"punct": []byte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"),
}

// parseBracket parses `[ ... ]` starting at the current '['.
func (p *parser) parseBracket() (*ast.Node, error) {
	start := p.pos
	p.pos++ // consume '['
	if p.pos >= len(p.pattern) {
		return nil, errExpected(start, "']'")
	}
	negated := false
	if p.pattern[p.pos] == '^' {
		negated = true
		p.pos++
	}

	var chars []byte
	var ranges []ast.ByteRange
	first := true

	for {
		if p.pos >= len(p.pattern) {
			return nil, errExpected(start, "']'")
		}
		b := p.pattern[p.pos]
		if b == ']' && !first {
			p.pos++
			break
		}
		first = false

		// POSIX class: [:name:]
		if b == '[' && p.pos+1 < len(p.pattern) && p.pattern[p.pos+1] == ':' {
			name, ok := p.tryParsePosixClass()
			if ok {
				if rs, ok := posixClasses[name]; ok {
					ranges = append(ranges, rs...)
					continue
				}
				if cs, ok := posixClassChars[name]; ok {
					chars = append(chars, cs...)
					continue
				}
				return nil, errUnsupported(p.pos, "POSIX class [:"+name+":]")
			}
		}

		lit, err := p.bracketLiteralByte()
		if err != nil {
			return nil, err
		}
		// A literal '-' immediately after '[' or '[^' matches itself
		// (already handled since first==true only on the very first
		// iteration); a '-' between two literals denotes a range unless it
		// is the last character before ']'.
		if p.pos < len(p.pattern) && p.pattern[p.pos] == '-' && p.pos+1 < len(p.pattern) && p.pattern[p.pos+1] != ']' {
			p.pos++ // consume '-'
			hi, err := p.bracketLiteralByte()
			if err != nil {
				return nil, err
			}
			if hi < lit {
				return nil, &ParserError{Index: p.pos, Kind: Expected, Message: "invalid range (hi < lo)"}
			}
			ranges = append(ranges, ast.ByteRange{Lo: lit, Hi: hi})
			continue
		}
		chars = append(chars, lit)
	}
	return ast.NewBracket(chars, ranges, negated), nil
}

// tryParsePosixClass parses "[:name:]" at p.pos, consuming it on success.
func (p *parser) tryParsePosixClass() (string, bool) {
	save := p.pos
	i := p.pos + 2 // past "[:"
	j := i
	for j < len(p.pattern) && p.pattern[j] != ':' {
		j++
	}
	if j+1 >= len(p.pattern) || p.pattern[j] != ':' || p.pattern[j+1] != ']' {
		p.pos = save
		return "", false
	}
	name := string(p.pattern[i:j])
	p.pos = j + 2
	return name, true
}

// bracketLiteralByte reads one literal byte inside a bracket expression,
// honoring the same backslash escapes as top-level literals.
func (p *parser) bracketLiteralByte() (byte, error) {
	if p.pattern[p.pos] == '\\' && p.pos+1 < len(p.pattern) {
		c := p.pattern[p.pos+1]
		switch c {
		case '\\', ']', '^', '-':
			p.pos += 2
			return c, nil
		case 'n':
			p.pos += 2
			return '\n', nil
		case 'r':
			p.pos += 2
			return '\r', nil
		case 't':
			p.pos += 2
			return '\t', nil
		}
	}
	b := p.pattern[p.pos]
	p.pos++
	return b, nil
}
