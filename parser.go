package metagen

import "strconv"

// Parser turns a Tokenizer's token stream into declarations appended
// to a Model. It runs one top-level loop per input file (see
// ParseAll / ParseFile); a malformed declaration is abandoned and
// scanning resumes at the next token -- there is no error return for
// that case, by design (SPEC_FULL.md section 7, tier 1).
type Parser struct {
	tok   *Tokenizer
	model *Model

	// cur is the lookahead token; the parser always has exactly one
	// token buffered so dispatch can peek before committing.
	cur Token
}

// NewParser wraps a Tokenizer over a single file's contents. Declared
// types accumulate into model.
func NewParser(input []byte, model *Model) *Parser {
	p := &Parser{tok: NewTokenizer(input), model: model}
	p.advance()
	return p
}

func (p *Parser) advance() Token {
	t := p.cur
	p.cur = p.tok.NextToken()
	return t
}

// ParseAll runs the top-level loop to exhaustion, appending every
// declaration it recognizes to the Model supplied at construction.
func (p *Parser) ParseAll() {
	for p.cur.Kind != TokenEndOfStream {
		p.parseTopLevel()
	}
}

// ParseFiles runs one Parser per input file, in order, sharing model
// so declaration order across files matches discovery order. It is
// the Go-level analogue of feeding several translation units through
// the same accumulation pass (SPEC_FULL.md section 4.5).
func ParseFiles(files [][]byte, model *Model) {
	for _, file := range files {
		NewParser(file, model).ParseAll()
	}
}

func (p *Parser) parseTopLevel() {
	tok := p.advance()
	switch tok.Kind {
	case TokenIdentifier:
		switch tok.String() {
		case "struct":
			p.parseStruct()
		case "union":
			p.parseUnion()
		case "enum":
			p.parseEnum()
		default:
			p.parseFunction(tok)
		}
	default:
		// All other tokens at the top level are discarded.
	}
}

// parseStruct implements SPEC_FULL.md section 4.4's struct rule.
func (p *Parser) parseStruct() {
	name := p.advance()
	if name.Kind != TokenIdentifier {
		return
	}
	if p.cur.Kind != TokenOpenBrace {
		return
	}
	p.advance() // consume '{'

	type pendingMember struct {
		typeTok Token
		// body is the token sequence from just after typeTok up to
		// (but not including) the terminating ';'.
		body []Token
	}
	var pending []pendingMember

	for p.cur.Kind != TokenCloseBrace && p.cur.Kind != TokenEndOfStream {
		mt := p.advance()
		switch {
		case mt.Kind == TokenHash:
			for p.cur.Pos.Line == mt.Pos.Line && p.cur.Kind != TokenEndOfStream {
				p.advance()
			}
		case mt.Kind == TokenTilde:
			// destructor marker: consumed, name and body untouched.
		case mt.Kind == TokenIdentifier && (mt.String() == "inline" || mt.String() == "func"):
			// Member-function heuristic: a data member whose type is
			// literally named `inline` or `func` is skipped the same way.
			for p.cur.Kind != TokenSemiColon && p.cur.Kind != TokenEndOfStream {
				p.advance()
			}
			if p.cur.Kind == TokenSemiColon {
				p.advance()
			}
		default:
			var body []Token
			for p.cur.Kind != TokenSemiColon && p.cur.Kind != TokenEndOfStream && p.cur.Kind != TokenCloseBrace {
				body = append(body, p.advance())
			}
			if p.cur.Kind == TokenSemiColon {
				p.advance()
			}
			pending = append(pending, pendingMember{typeTok: mt, body: body})
		}
	}
	if p.cur.Kind == TokenCloseBrace {
		p.advance()
	}
	if p.cur.Kind == TokenSemiColon {
		p.advance()
	}

	members := make([]Variable, 0, len(pending))
	for _, pm := range pending {
		members = append(members, parseMember(pm.typeTok, pm.body))
	}
	p.model.addStruct(StructRecord{Name: name.String(), Members: members})
}

// parseMember implements step 4 of the struct rule: typeTok is the
// member's type; body is every token between it and the terminating
// ';'.
func parseMember(typeTok Token, body []Token) Variable {
	v := newVariable()
	v.Type = typeTok.String()
	for i := 0; i < len(body); i++ {
		tok := body[i]
		switch tok.Kind {
		case TokenAsterisk:
			v.IsPointer = true
		case TokenOpenBracket:
			if i+1 < len(body) && body[i+1].Kind == TokenNumber {
				if n, err := strconv.Atoi(body[i+1].String()); err == nil {
					v.ArrayCount = n
				}
			}
		case TokenIdentifier:
			v.Name = tok.String()
		}
	}
	return v
}

// parseUnion implements SPEC_FULL.md section 4.4's union rule: just
// capture the name, no body parsing.
func (p *Parser) parseUnion() {
	name := p.advance()
	if name.Kind != TokenIdentifier {
		return
	}
	p.model.addUnion(UnionRecord{Name: name.String()})
}

// parseEnum implements SPEC_FULL.md section 4.4's enum rule.
func (p *Parser) parseEnum() {
	isClass := false
	if p.cur.Kind == TokenIdentifier && (p.cur.String() == "class" || p.cur.String() == "struct") {
		isClass = true
		p.advance()
	}

	name := p.advance()
	if name.Kind != TokenIdentifier {
		p.model.report(ErrorKindEnumParseFailed, "missing enum name")
		return
	}

	var underlying string
	if p.cur.Kind == TokenColon {
		p.advance()
		if p.cur.Kind == TokenIdentifier {
			underlying = p.cur.String()
			p.advance()
		}
	}

	if p.cur.Kind != TokenOpenBrace {
		p.model.report(ErrorKindEnumParseFailed, name.String())
		return
	}
	p.advance()

	depth := 1
	for depth > 0 && p.cur.Kind != TokenEndOfStream {
		switch p.advance().Kind {
		case TokenOpenBrace:
			depth++
		case TokenCloseBrace:
			depth--
		}
	}
	if p.cur.Kind == TokenSemiColon {
		p.advance()
	}

	p.model.addEnum(EnumRecord{Name: name.String(), UnderlyingType: underlying, IsEnumClass: isClass})
}

// parseFunction implements SPEC_FULL.md section 4.4's function rule.
// tok is the identifier that triggered this candidate (either the
// linkage keyword or the return type, depending on step 1).
func (p *Parser) parseFunction(tok Token) {
	var linkage, retType Token
	if linkageKeywords[tok.String()] {
		linkage = tok
		retType = p.advance()
	} else {
		retType = tok
	}
	if retType.Kind != TokenIdentifier {
		return
	}

	name := p.advance()
	if name.Kind != TokenIdentifier {
		return
	}
	if skippedFunctionNames[name.String()] {
		return
	}

	if p.cur.Kind != TokenOpenParen {
		return
	}
	p.advance()

	params := p.parseParams()

	p.model.addFunction(FunctionRecord{
		Linkage: linkage.String(),
		RetType: retType.String(),
		Name:    name.String(),
		Params:  params,
	})
}

// parseParams implements step 4/5 of the function rule, including the
// `(void)` normalization to zero parameters and the rule that a
// parameter completes (and its count advances) on its second
// identifier, not on the following comma.
func (p *Parser) parseParams() []Variable {
	if p.cur.Kind == TokenIdentifier && p.cur.String() == "void" {
		// Lookahead without consuming unless it really is `(void)`.
		savedTok, savedCur := p.tok.snapshot(), p.cur
		p.advance()
		if p.cur.Kind == TokenCloseParen {
			p.advance()
			return nil
		}
		p.tok.restore(savedTok)
		p.cur = savedCur
	}

	var params []Variable
	cur := newVariable()
	haveType := false

	for {
		tok := p.advance()
		switch tok.Kind {
		case TokenAsterisk:
			cur.IsPointer = true
		case TokenOpenBracket:
			if p.cur.Kind == TokenNumber {
				if n, err := strconv.Atoi(p.cur.String()); err == nil {
					cur.ArrayCount = n
				}
				p.advance()
			}
			if p.cur.Kind == TokenCloseBracket {
				p.advance()
			}
		case TokenIdentifier:
			if !haveType {
				cur.Type = tok.String()
				haveType = true
			} else {
				cur.Name = tok.String()
				params = append(params, cur)
				cur = newVariable()
				haveType = false
			}
		case TokenComma:
			// A parameter without a name (e.g. an abbreviated
			// prototype) is simply dropped; nothing completed it.
			cur = newVariable()
			haveType = false
		case TokenEndOfStream, TokenOpenBrace:
			return params
		case TokenCloseParen:
			return params
		}
	}
}
