package parser

import (
	"github.com/lowtek7/songlang/internal/ast"
	"github.com/lowtek7/songlang/internal/token"
)

func (p *parser) parseExpression() (ast.Expression, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(token.OR) {
		opTok := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{At: pos(opTok), Left: left, Op: ast.Or, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.check(token.AND) {
		opTok := p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{At: pos(opTok), Left: left, Op: ast.And, Right: right}
	}
	return left, nil
}

var comparisonOps = map[token.Type]ast.BinaryOp{
	token.EQ:  ast.Eq,
	token.NEQ: ast.Neq,
	token.LT:  ast.Lt,
	token.GT:  ast.Gt,
	token.LTE: ast.Lte,
	token.GTE: ast.Gte,
}

func (p *parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := comparisonOps[p.cur().Type]
		if !ok {
			return left, nil
		}
		opTok := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{At: pos(opTok), Left: left, Op: op, Right: right}
	}
}

func (p *parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.check(token.PLUS) || p.check(token.MINUS) {
		opTok := p.advance()
		op := ast.Add
		if opTok.Type == token.MINUS {
			op = ast.Sub
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{At: pos(opTok), Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(token.STAR) || p.check(token.SLASH) || p.check(token.PERCENT) {
		opTok := p.advance()
		var op ast.BinaryOp
		switch opTok.Type {
		case token.STAR:
			op = ast.Mul
		case token.SLASH:
			op = ast.Div
		default:
			op = ast.Mod
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{At: pos(opTok), Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (ast.Expression, error) {
	if p.check(token.NOT) {
		opTok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{At: pos(opTok), Op: ast.Not, Operand: operand}, nil
	}
	if p.check(token.MINUS) {
		opTok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{At: pos(opTok), Op: ast.Negate, Operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (ast.Expression, error) {
	start := pos(p.cur())
	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfixFrom(start, primary)
}

// parsePostfixFrom continues postfix parsing (property access and OF
// desugaring) from an already-parsed primary expression. Shared with
// the statement parser so identifier- and grouping-led statement
// subjects can reuse the same chain logic.
func (p *parser) parsePostfixFrom(start ast.Pos, expr ast.Expression) (ast.Expression, error) {
	for {
		switch p.cur().Type {
		case token.DOT:
			p.advance()
			propTok, err := p.expect(token.IDENTIFIER, "after '.'")
			if err != nil {
				return nil, err
			}
			expr = ast.PropertyAccess{At: start, Object: expr, Property: propTok.Lexeme}

		case token.OF:
			id, ok := expr.(ast.Identifier)
			if !ok {
				return nil, newError(p.cur(), "left side of OF must be a bare identifier")
			}
			p.advance()
			object, err := p.parsePostfix()
			if err != nil {
				return nil, err
			}
			expr = ast.PropertyAccess{At: start, Object: object, Property: id.Name}

		default:
			return expr, nil
		}
	}
}

func (p *parser) parsePrimary() (ast.Expression, error) {
	tok := p.cur()
	start := pos(tok)

	switch tok.Type {
	case token.NUMBER:
		p.advance()
		return ast.Number{At: start, Value: tok.NumberValue()}, nil

	case token.STRING:
		p.advance()
		return ast.String{At: start, Value: tok.StringValue()}, nil

	case token.IDENTIFIER:
		p.advance()
		return ast.Identifier{At: start, Name: tok.Lexeme}, nil

	case token.QUERY_VAR:
		p.advance()
		return ast.Identifier{At: start, Name: tok.StringValue()}, nil

	case token.LPAREN:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "to close grouped expression"); err != nil {
			return nil, err
		}
		return ast.Grouping{At: start, Inner: inner}, nil

	case token.RANDOM:
		p.advance()
		min, err := p.parseRandomOperand()
		if err != nil {
			return nil, err
		}
		max, err := p.parseRandomOperand()
		if err != nil {
			return nil, err
		}
		return ast.Random{At: start, Min: min, Max: max}, nil

	default:
		return nil, newError(tok, "unexpected token %s in expression", tok.Type)
	}
}

// parseRandomOperand parses one RANDOM argument: a number, an
// identifier with an optional dot-chain, or a parenthesized
// expression. Unlike a general primary it never consumes OF.
func (p *parser) parseRandomOperand() (ast.Expression, error) {
	tok := p.cur()
	start := pos(tok)

	switch tok.Type {
	case token.NUMBER:
		p.advance()
		return ast.Number{At: start, Value: tok.NumberValue()}, nil

	case token.IDENTIFIER:
		p.advance()
		var expr ast.Expression = ast.Identifier{At: start, Name: tok.Lexeme}
		for p.check(token.DOT) {
			p.advance()
			propTok, err := p.expect(token.IDENTIFIER, "after '.'")
			if err != nil {
				return nil, err
			}
			expr = ast.PropertyAccess{At: start, Object: expr, Property: propTok.Lexeme}
		}
		return expr, nil

	case token.LPAREN:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "to close grouped expression"); err != nil {
			return nil, err
		}
		return ast.Grouping{At: start, Inner: inner}, nil

	default:
		return nil, newError(tok, "expected a RANDOM operand, got %s", tok.Type)
	}
}
