package grammar

import (
	"io"
	"strconv"

	"github.com/boltzmannbrain/bb/model"
)

// Parse lexes and parses r into a model.System: a preamble of
// `key: value` annotation lines followed by a set of type blocks
// (spec §6). Parse does not call Validate; callers run that
// separately so parse errors and model errors stay distinct.
func Parse(r io.Reader) (*model.System, error) {
	lx := NewLexer(r)
	if err := lx.Run(); err != nil {
		log.WithError(err).Debug("lex failed")
		return nil, err
	}

	p := &parser{tokens: drain(lx)}
	s, err := p.parseSystem()
	if err != nil {
		log.WithError(err).Debug("parse failed")
		return nil, err
	}
	log.WithField("types", len(s.Order)).Debug("parsed system")
	return s, nil
}

func drain(lx *Lexer) []Token {
	var out []Token
	for {
		tk := lx.Next()
		out = append(out, *tk)
		if tk.Type == EOFToken {
			return out
		}
	}
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) cur() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOFToken}
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() Token {
	tk := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tk
}

func (p *parser) skipNewlines() {
	for p.cur().Type == NewlineToken {
		p.advance()
	}
}

func (p *parser) expect(t TokenType) (Token, error) {
	if p.cur().Type != t {
		return Token{}, ErrParse.New(p.cur().Line, "expected "+t.String()+", got "+p.cur().Type.String())
	}
	return p.advance(), nil
}

// parseSystem parses the preamble (key: value lines) followed by the type
// blocks. An input with no type block parses to a system with no types.
func (p *parser) parseSystem() (*model.System, error) {
	s := model.NewSystem()
	p.skipNewlines()

	for p.cur().Type == IdentifierToken && p.peekIsColon() {
		if err := p.parseAnnotation(s); err != nil {
			return nil, err
		}
		p.skipNewlines()
	}

	for p.cur().Type != EOFToken {
		if err := p.parseTypeBlock(s); err != nil {
			return nil, err
		}
		p.skipNewlines()
	}

	return s, nil
}

func (p *parser) peekIsColon() bool {
	if p.pos+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.pos+1].Type == ColonToken
}

func (p *parser) parseAnnotation(s *model.System) error {
	key, err := p.expect(IdentifierToken)
	if err != nil {
		return err
	}
	if _, err := p.expect(ColonToken); err != nil {
		return err
	}
	valTok := p.advance()
	if valTok.Type != IdentifierToken && valTok.Type != IntToken && valTok.Type != FloatToken {
		return ErrParse.New(valTok.Line, "expected annotation value, got "+valTok.Type.String())
	}
	s.Annotations[key.Value] = valTok.Value
	return nil
}

// parseTypeBlock parses `TypeName = Cons1 ... | Cons2 ...`.
func (p *parser) parseTypeBlock(s *model.System) error {
	name, err := p.expect(IdentifierToken)
	if err != nil {
		return err
	}
	if s.HasType(name.Value) {
		return ErrDuplicateType.New(name.Line, name.Value)
	}
	if _, err := p.expect(EqualsToken); err != nil {
		return err
	}

	var cs []model.Constructor
	for {
		c, err := p.parseConstructor()
		if err != nil {
			return err
		}
		cs = append(cs, c)
		if p.cur().Type != PipeToken {
			break
		}
		p.advance()
	}
	s.AddType(name.Value, cs)
	return nil
}

// parseConstructor parses `Name (arg | List arg)* (@weight(/frequency)?)?`.
func (p *parser) parseConstructor() (model.Constructor, error) {
	name, err := p.expect(IdentifierToken)
	if err != nil {
		return model.Constructor{}, err
	}
	c := model.Constructor{Name: name.Value, Weight: 1}

	for p.cur().Type == IdentifierToken {
		arg, err := p.parseArgument()
		if err != nil {
			return model.Constructor{}, err
		}
		c.Args = append(c.Args, arg)
	}

	if p.cur().Type == AtToken {
		p.advance()
		w, err := p.expect(IntToken)
		if err != nil {
			return model.Constructor{}, err
		}
		weight, convErr := strconv.Atoi(w.Value)
		if convErr != nil {
			return model.Constructor{}, ErrParse.New(w.Line, "invalid weight "+w.Value)
		}
		c.Weight = weight

		if p.cur().Type == SlashToken {
			p.advance()
			f, err := p.parseNumberToken()
			if err != nil {
				return model.Constructor{}, err
			}
			c.Frequency = &f
		}
	}
	return c, nil
}

func (p *parser) parseArgument() (model.Argument, error) {
	tok, err := p.expect(IdentifierToken)
	if err != nil {
		return model.Argument{}, err
	}
	if tok.Value == "List" {
		elem, err := p.expect(IdentifierToken)
		if err != nil {
			return model.Argument{}, err
		}
		return model.Argument{Kind: model.ListArg, Type: elem.Value}, nil
	}
	return model.Argument{Kind: model.TypeArg, Type: tok.Value}, nil
}

func (p *parser) parseNumberToken() (float64, error) {
	tok := p.advance()
	if tok.Type != IntToken && tok.Type != FloatToken {
		return 0, ErrParse.New(tok.Line, "expected number, got "+tok.Type.String())
	}
	v, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return 0, ErrParse.New(tok.Line, "invalid number "+tok.Value)
	}
	return v, nil
}
