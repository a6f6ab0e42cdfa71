// This file is part of rjl - https://github.com/db47h/rjl
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package testlang

import (
	"fmt"
	"io"
	"strconv"
	"text/scanner"
	"unicode"

	"github.com/db47h/rjl/ast"
)

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) ||
		ch == '-' || ch == '+' || ch == '*' || ch == '/' || ch == '!' || ch == '?' || ch == '='
}

type parser struct {
	s   scanner.Scanner
	tok rune
	err error
}

func scanError(s *scanner.Scanner, msg string) error {
	pos := s.Position
	if !pos.IsValid() {
		pos = s.Pos()
	}
	return fmt.Errorf("%s: %s", pos, msg)
}

func (p *parser) next() {
	p.tok = p.s.Scan()
}

// Parse reads one bracketed-token source file and returns its top-level
// nodes. Grammar: `[ ... ]` arrays, `( ... )` quotes, `{ "k" v ... }`
// objects, `"..."` strings, `: name ( body ) ;` word declarations, bare
// identifiers are symbols. This exists only so cmd/rjlc and this module's
// tests have something real to feed the compiler back-end; the actual L
// grammar is out of scope.
func Parse(name string, r io.Reader) ([]ast.Node, error) {
	p := &parser{}
	p.s.Init(r)
	p.s.Filename = name
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents | scanner.ScanStrings | scanner.ScanComments | scanner.SkipComments
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.err = scanError(s, msg)
	}

	var nodes []ast.Node
	p.next()
	for p.err == nil && p.tok != scanner.EOF {
		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if p.err != nil {
		return nil, p.err
	}
	return nodes, nil
}

func (p *parser) parseNode() (ast.Node, error) {
	switch p.tok {
	case '[':
		return p.parseArray()
	case '(':
		return p.parseQuote()
	case '{':
		return p.parseObject()
	case scanner.String:
		s, err := strconv.Unquote(p.s.TokenText())
		if err != nil {
			return nil, scanError(&p.s, err.Error())
		}
		p.next()
		return ast.String{Value: s}, nil
	case ':':
		return p.parseWord()
	case scanner.Ident:
		sym := ast.Symbol{
			ID: p.s.TokenText(),
			Position: ast.Position{
				File:   p.s.Position.Filename,
				Line:   p.s.Position.Line,
				Column: p.s.Position.Column,
			},
		}
		p.next()
		return sym, nil
	default:
		return nil, scanError(&p.s, "unexpected token "+scanner.TokenString(p.tok))
	}
}

func (p *parser) parseArray() (ast.Node, error) {
	p.next() // consume [
	var elems []ast.Node
	for p.tok != ']' {
		if p.tok == scanner.EOF {
			return nil, scanError(&p.s, "unterminated array")
		}
		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		elems = append(elems, n)
	}
	p.next() // consume ]
	return ast.Array{Elements: elems}, nil
}

func (p *parser) parseQuote() (ast.Node, error) {
	p.next() // consume (
	var children []ast.Node
	for p.tok != ')' {
		if p.tok == scanner.EOF {
			return nil, scanError(&p.s, "unterminated quote")
		}
		n, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	p.next() // consume )
	return ast.Quote{Children: children}, nil
}

func (p *parser) parseObject() (ast.Node, error) {
	p.next() // consume {
	var props []ast.Property
	for p.tok != '}' {
		if p.tok != scanner.String {
			return nil, scanError(&p.s, "object key must be a string")
		}
		key, err := strconv.Unquote(p.s.TokenText())
		if err != nil {
			return nil, scanError(&p.s, err.Error())
		}
		p.next()
		val, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		props = append(props, ast.Property{Key: key, Value: val})
	}
	p.next() // consume }
	return ast.Object{Properties: props}, nil
}

func (p *parser) parseWord() (ast.Node, error) {
	p.next() // consume :
	if p.tok != scanner.Ident {
		return nil, scanError(&p.s, "expected word name after ':'")
	}
	sym := ast.Symbol{
		ID: p.s.TokenText(),
		Position: ast.Position{
			File:   p.s.Position.Filename,
			Line:   p.s.Position.Line,
			Column: p.s.Position.Column,
		},
	}
	p.next()
	if p.tok != '(' {
		return nil, scanError(&p.s, "expected '(' to open word body")
	}
	q, err := p.parseQuote()
	if err != nil {
		return nil, err
	}
	if p.tok != ';' {
		return nil, scanError(&p.s, "expected ';' to close word declaration")
	}
	p.next()
	return ast.Word{Symbol: sym, Quote: q.(ast.Quote)}, nil
}
