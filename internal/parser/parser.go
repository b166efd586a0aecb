// Package parser turns a token stream into an ordered sequence of
// ast.Statement values, using recursive descent for statements and
// precedence climbing for expressions.
package parser

import (
	"strings"

	"github.com/lowtek7/songlang/internal/ast"
	"github.com/lowtek7/songlang/internal/token"
)

type parser struct {
	tokens []token.Token
	pos    int
}

// Parse consumes the full token stream and returns the statement
// sequence it describes.
func Parse(tokens []token.Token) ([]ast.Statement, error) {
	p := &parser{tokens: tokens}
	return p.parseStatements(nil)
}

func (p *parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *parser) at(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) check(t token.Type) bool {
	return p.cur().Type == t
}

func (p *parser) expect(t token.Type, context string) (token.Token, error) {
	if !p.check(t) {
		return token.Token{}, newError(p.cur(), "expected %s %s, got %s", t, context, p.cur().Type)
	}
	return p.advance(), nil
}

func (p *parser) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

func pos(tok token.Token) ast.Pos {
	return ast.Pos{Line: tok.Line, Column: tok.Column}
}

// stopSet is a set of token types that terminate a statement block.
type stopSet map[token.Type]bool

func stops(types ...token.Type) stopSet {
	s := make(stopSet, len(types))
	for _, t := range types {
		s[t] = true
	}
	return s
}

// parseStatements parses statements separated by NEWLINEs until EOF or
// a token in stop is encountered (the stop token is left unconsumed).
func (p *parser) parseStatements(stop stopSet) ([]ast.Statement, error) {
	var stmts []ast.Statement
	p.skipNewlines()
	for !p.check(token.EOF) {
		if stop != nil && stop[p.cur().Type] {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.skipNewlines()
	}
	return stmts, nil
}

func (p *parser) parseStatement() (ast.Statement, error) {
	stmt, err := p.parseBareStatement()
	if err != nil {
		return nil, err
	}
	// Legacy trailing WHEN: "<S> WHEN DO <body> END".
	if p.check(token.WHEN) {
		start := pos(p.cur())
		p.advance()
		if _, err := p.expect(token.DO, "after WHEN"); err != nil {
			return nil, err
		}
		body, err := p.parseStatements(stops(token.END))
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.END, "to close WHEN"); err != nil {
			return nil, err
		}
		return ast.WhenStatement{At: start, Condition: stmt, Body: body}, nil
	}
	return stmt, nil
}

func (p *parser) parseBareStatement() (ast.Statement, error) {
	switch p.cur().Type {
	case token.DEBUG:
		return p.parseDebug()
	case token.ALL:
		return p.parseAll()
	case token.QUESTION, token.QUERY_VAR:
		return p.parseQuery()
	case token.LPAREN:
		return p.parseExpressionSubjectStatement()
	case token.CHANCE:
		return p.parseChance()
	case token.IDENTIFIER:
		return p.parseIdentifierLeadStatement()
	default:
		return nil, newError(p.cur(), "unexpected token %s at start of statement", p.cur().Type)
	}
}

func (p *parser) parseDebug() (ast.Statement, error) {
	start := pos(p.cur())
	p.advance() // DEBUG
	tok, err := p.expect(token.IDENTIFIER, "after DEBUG")
	if err != nil {
		return nil, err
	}
	switch strings.ToUpper(tok.Lexeme) {
	case "GRAPH":
		return ast.DebugStatement{At: start, Target: ast.DebugGraph}, nil
	case "TOKENS":
		return ast.DebugStatement{At: start, Target: ast.DebugTokens}, nil
	case "AST":
		return ast.DebugStatement{At: start, Target: ast.DebugAst}, nil
	default:
		return nil, newError(tok, "unknown DEBUG target %q", tok.Lexeme)
	}
}

func (p *parser) parseAll() (ast.Statement, error) {
	start := pos(p.cur())
	p.advance() // ALL

	stmt := ast.AllStatement{At: start}
	if p.check(token.QUERY_VAR) {
		stmt.QueryVariable = p.advance().StringValue()
	} else {
		tok, err := p.expect(token.IDENTIFIER, "as ALL type name")
		if err != nil {
			return nil, err
		}
		stmt.TypeName = tok.Lexeme
	}

	if action, ok, err := p.tryParseAction(); err != nil {
		return nil, err
	} else if ok {
		stmt.Action = action
	}

	return stmt, nil
}

// tryParseAction parses the optional action attached to ALL: HAS
// <prop> [value], PRINT, or a custom relation invocation.
func (p *parser) tryParseAction() (ast.Statement, bool, error) {
	start := pos(p.cur())
	switch p.cur().Type {
	case token.HAS:
		p.advance()
		propTok, err := p.expect(token.IDENTIFIER, "as HAS property")
		if err != nil {
			return nil, false, err
		}
		args := []ast.Arg{{Kind: ast.ArgIdentifier, Text: propTok.Lexeme}}
		if arg, ok, err := p.tryParseSimpleArg(); err != nil {
			return nil, false, err
		} else if ok {
			args = append(args, arg)
		}
		return ast.RelationStatement{At: start, Relation: "HAS", Args: args}, true, nil

	case token.PRINT:
		p.advance()
		return ast.RelationStatement{At: start, Relation: "PRINT"}, true, nil

	case token.IDENTIFIER:
		nameTok := p.advance()
		args, err := p.parseArgs()
		if err != nil {
			return nil, false, err
		}
		return ast.RelationStatement{At: start, Relation: nameTok.Lexeme, Args: args}, true, nil

	default:
		return nil, false, nil
	}
}

func (p *parser) tryParseSimpleArg() (ast.Arg, bool, error) {
	switch p.cur().Type {
	case token.NUMBER:
		tok := p.advance()
		return ast.Arg{Kind: ast.ArgNumber, Text: tok.Lexeme, Number: tok.NumberValue()}, true, nil
	case token.STRING:
		tok := p.advance()
		return ast.Arg{Kind: ast.ArgString, Text: tok.StringValue()}, true, nil
	case token.IDENTIFIER:
		tok := p.advance()
		return ast.Arg{Kind: ast.ArgIdentifier, Text: tok.Lexeme}, true, nil
	default:
		return ast.Arg{}, false, nil
	}
}

func (p *parser) parseArgs() ([]ast.Arg, error) {
	var args []ast.Arg
	for {
		arg, ok, err := p.tryParseSimpleArg()
		if err != nil {
			return nil, err
		}
		if !ok {
			return args, nil
		}
		args = append(args, arg)
	}
}

func (p *parser) parseQuery() (ast.Statement, error) {
	start := pos(p.cur())
	var subject ast.QueryPattern
	if p.check(token.QUERY_VAR) {
		subject = ast.QueryPattern{Kind: ast.Variable, Name: p.advance().StringValue()}
	} else {
		if _, err := p.expect(token.QUESTION, "to start a query"); err != nil {
			return nil, err
		}
		subject = ast.QueryPattern{Kind: ast.Wildcard}
	}

	relTok := p.cur()
	var relation string
	switch relTok.Type {
	case token.IS:
		relation = "IS"
	case token.HAS:
		relation = "HAS"
	case token.CAN:
		relation = "CAN"
	default:
		return nil, newError(relTok, "expected IS, HAS, or CAN in query, got %s", relTok.Type)
	}
	p.advance()

	stmt := ast.QueryStatement{At: start, Subject: subject, Relation: relation}

	if p.check(token.IDENTIFIER) {
		stmt.Target = p.advance().Lexeme
		stmt.HasTarget = true

		if relation == "HAS" {
			if arg, ok, err := p.tryParseSimpleArg(); err != nil {
				return nil, err
			} else if ok {
				stmt.TargetValue = &arg
			}
		}
	}

	if p.check(token.WHERE) {
		p.advance()
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.WhereCondition = cond
	}

	return stmt, nil
}

func (p *parser) parseExpressionSubjectStatement() (ast.Statement, error) {
	start := pos(p.cur())
	expr, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	return p.parseExpressionSubjectTail(start, expr)
}

func (p *parser) parseExpressionSubjectTail(start ast.Pos, expr ast.Expression) (ast.Statement, error) {
	switch p.cur().Type {
	case token.PRINT:
		p.advance()
		return ast.ExpressionPrintStatement{At: start, Subject: expr}, nil
	case token.HAS:
		p.advance()
		return p.parseExpressionHas(start, expr)
	default:
		return nil, newError(p.cur(), "expected PRINT or HAS after expression, got %s", p.cur().Type)
	}
}

func (p *parser) parseExpressionHas(start ast.Pos, subject ast.Expression) (ast.Statement, error) {
	propTok, err := p.expect(token.IDENTIFIER, "as HAS property")
	if err != nil {
		return nil, err
	}
	stmt := ast.ExpressionHasStatement{At: start, Subject: subject, Property: propTok.Lexeme}

	if p.check(token.LPAREN) {
		p.advance()
		valueExpr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "to close HAS expression"); err != nil {
			return nil, err
		}
		stmt.ValueExpr = valueExpr
		return stmt, nil
	}

	if arg, ok, err := p.tryParseSimpleArg(); err != nil {
		return nil, err
	} else if ok {
		stmt.Literal = &arg
	}
	return stmt, nil
}

func (p *parser) parseChance() (ast.Statement, error) {
	start := pos(p.cur())
	p.advance() // CHANCE

	var percent ast.Expression
	var err error
	if p.check(token.LPAREN) {
		p.advance()
		percent, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "to close CHANCE percent"); err != nil {
			return nil, err
		}
	} else {
		numTok, err := p.expect(token.NUMBER, "as CHANCE percent")
		if err != nil {
			return nil, err
		}
		percent = ast.Number{At: pos(numTok), Value: numTok.NumberValue()}
	}

	if _, err := p.expect(token.DO, "after CHANCE percent"); err != nil {
		return nil, err
	}
	body, err := p.parseStatements(stops(token.END, token.ELSE))
	if err != nil {
		return nil, err
	}

	stmt := ast.ChanceStatement{At: start, Percent: percent, Body: body}

	if p.check(token.ELSE) {
		p.advance()
		if _, err := p.expect(token.DO, "after ELSE"); err != nil {
			return nil, err
		}
		elseBody, err := p.parseStatements(stops(token.END))
		if err != nil {
			return nil, err
		}
		stmt.ElseBody = elseBody
	}

	if _, err := p.expect(token.END, "to close CHANCE"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *parser) parseIdentifierLeadStatement() (ast.Statement, error) {
	start := pos(p.cur())
	subjectTok := p.advance()
	subject := subjectTok.Lexeme

	if p.check(token.DOT) {
		expr, err := p.parsePostfixFrom(start, ast.Identifier{At: start, Name: subject})
		if err != nil {
			return nil, err
		}
		return p.parseExpressionSubjectTail(start, expr)
	}

	switch p.cur().Type {
	case token.DO:
		return p.parseDoBlock(start, subject)
	case token.PRINT:
		p.advance()
		return ast.RelationStatement{At: start, Subject: subject, Relation: "PRINT"}, nil
	case token.CAN:
		p.advance()
		abilityTok, err := p.expect(token.IDENTIFIER, "as CAN ability")
		if err != nil {
			return nil, err
		}
		return ast.CanStatement{At: start, Subject: subject, Ability: abilityTok.Lexeme}, nil
	case token.LOSES:
		return p.parseLoses(start, subject)
	case token.HAS:
		return p.parseHas(start, subject)
	case token.IS:
		p.advance()
		var typeTok token.Token
		var err error
		if p.check(token.RELATION) {
			typeTok = p.advance()
		} else {
			typeTok, err = p.expect(token.IDENTIFIER, "as IS type")
			if err != nil {
				return nil, err
			}
		}
		return ast.RelationStatement{
			At: start, Subject: subject, Relation: "IS",
			Args: []ast.Arg{{Kind: ast.ArgIdentifier, Text: typeTok.Lexeme}},
		}, nil
	case token.EACH:
		return p.parseEach(start, subject)
	case token.WHEN:
		return p.parseWhenExpression(start, subject)
	case token.IDENTIFIER:
		relTok := p.advance()
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return ast.RelationStatement{At: start, Subject: subject, Relation: relTok.Lexeme, Args: args}, nil
	default:
		return nil, newError(p.cur(), "expected a relation after %q, got %s", subject, p.cur().Type)
	}
}

func (p *parser) parseHas(start ast.Pos, subject string) (ast.Statement, error) {
	p.advance() // HAS
	propTok, err := p.expect(token.IDENTIFIER, "as HAS property")
	if err != nil {
		return nil, err
	}

	if p.check(token.LPAREN) {
		// Disambiguate "HAS prop ( Node )" (role definition) from
		// "HAS prop ( expr )" (computed value).
		if p.at(1).Type == token.IDENTIFIER && strings.EqualFold(p.at(1).Lexeme, "Node") && p.at(2).Type == token.RPAREN {
			p.advance() // (
			p.advance() // Node
			p.advance() // )
			return ast.RoleDefinitionStatement{At: start, Subject: subject, RoleName: propTok.Lexeme}, nil
		}
		p.advance() // (
		valueExpr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "to close HAS expression"); err != nil {
			return nil, err
		}
		return ast.HasExpressionStatement{At: start, Subject: subject, Property: propTok.Lexeme, Value: valueExpr}, nil
	}

	args := []ast.Arg{{Kind: ast.ArgIdentifier, Text: propTok.Lexeme}}
	if arg, ok, err := p.tryParseSimpleArg(); err != nil {
		return nil, err
	} else if ok {
		args = append(args, arg)
	}
	return ast.RelationStatement{At: start, Subject: subject, Relation: "HAS", Args: args}, nil
}

func (p *parser) parseLoses(start ast.Pos, subject string) (ast.Statement, error) {
	p.advance() // LOSES
	if p.check(token.IS) {
		p.advance()
		tok, err := p.expect(token.IDENTIFIER, "as LOSES IS target")
		if err != nil {
			return nil, err
		}
		return ast.LosesStatement{At: start, Subject: subject, Target: tok.Lexeme, Kind: ast.LosesIs}, nil
	}
	tok, err := p.expect(token.IDENTIFIER, "as LOSES target")
	if err != nil {
		return nil, err
	}
	return ast.LosesStatement{At: start, Subject: subject, Target: tok.Lexeme, Kind: ast.LosesAuto}, nil
}

func (p *parser) parseDoBlock(start ast.Pos, subject string) (ast.Statement, error) {
	p.advance() // DO
	body, err := p.parseStatements(stops(token.END))
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.END, "to close DO"); err != nil {
		return nil, err
	}
	return ast.DoBlockStatement{At: start, Subject: subject, Body: body}, nil
}

func (p *parser) parseEach(start ast.Pos, subject string) (ast.Statement, error) {
	p.advance() // EACH
	varTok, err := p.expect(token.IDENTIFIER, "as EACH loop variable")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.DO, "after EACH variable"); err != nil {
		return nil, err
	}
	body, err := p.parseStatements(stops(token.END))
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.END, "to close EACH"); err != nil {
		return nil, err
	}
	return ast.EachStatement{At: start, Collection: subject, Variable: varTok.Lexeme, Body: body}, nil
}

// parseWhenExpression parses the whole "WHEN (expr) DO body [ELSE DO
// body | ELSE WHEN (expr) DO body ...] END" chain. Only one trailing
// END closes the entire chain, however deeply the ELSE WHEN nests.
func (p *parser) parseWhenExpression(start ast.Pos, subject string) (ast.Statement, error) {
	stmt, err := p.parseWhenExpressionClauseBody(start, subject)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.END, "to close WHEN"); err != nil {
		return nil, err
	}
	return *stmt, nil
}

// parseWhenExpressionClauseBody parses "WHEN ( expr ) DO body [ELSE DO
// body | ELSE WHEN (...) DO body ...]" without consuming the closing
// END, so nested ELSE WHEN clauses share a single final END.
func (p *parser) parseWhenExpressionClauseBody(start ast.Pos, subject string) (*ast.WhenExpressionStatement, error) {
	if _, err := p.expect(token.WHEN, "to start WHEN"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "after WHEN"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, "to close WHEN condition"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.DO, "after WHEN condition"); err != nil {
		return nil, err
	}
	body, err := p.parseStatements(stops(token.END, token.ELSE))
	if err != nil {
		return nil, err
	}

	stmt := &ast.WhenExpressionStatement{At: start, Subject: subject, Condition: cond, Body: body}

	if p.check(token.ELSE) {
		p.advance()
		if p.check(token.WHEN) {
			nested, err := p.parseWhenExpressionClauseBody(pos(p.cur()), subject)
			if err != nil {
				return nil, err
			}
			stmt.ElseWhen = nested
			return stmt, nil
		}
		if _, err := p.expect(token.DO, "after ELSE"); err != nil {
			return nil, err
		}
		elseBody, err := p.parseStatements(stops(token.END))
		if err != nil {
			return nil, err
		}
		stmt.ElseBody = elseBody
	}

	return stmt, nil
}
