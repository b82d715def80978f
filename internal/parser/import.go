package parser

import (
	"pycst/internal/cst"
	"pycst/internal/diag"
	"pycst/internal/token"
)

// import a.b [as c], d
func (p *Parser) parseImport() (*cst.Import, error) {
	imp := &cst.Import{Import: p.advance()}
	for {
		alias, err := p.parseAlias(true)
		if err != nil {
			return nil, err
		}
		imp.Names = append(imp.Names, alias)
		if !p.at(token.Comma) {
			return imp, nil
		}
		imp.Commas = append(imp.Commas, p.advance())
	}
}

// from [.]*module import (* | names | '(' names [','] ')')
func (p *Parser) parseImportFrom() (*cst.ImportFrom, error) {
	imp := &cst.ImportFrom{From: p.advance()}
	for p.atAny(token.Dot, token.Ellipsis) {
		imp.Dots = append(imp.Dots, p.advance())
	}
	if p.at(token.Name) {
		mod, err := p.parseDottedName()
		if err != nil {
			return nil, err
		}
		imp.Module = mod
	} else if len(imp.Dots) == 0 {
		return nil, p.unexpected(diag.SynExpectIdentifier, "expected module name")
	}

	var err error
	if imp.Import, err = p.expect(token.KwImport, diag.SynExpectImport); err != nil {
		return nil, err
	}
	switch {
	case p.at(token.Star):
		imp.Star = p.advancePtr()
		return imp, nil
	case p.at(token.LParen):
		imp.LParen = p.advancePtr()
	}

	for {
		alias, err := p.parseAlias(false)
		if err != nil {
			return nil, err
		}
		imp.Names = append(imp.Names, alias)
		if !p.at(token.Comma) {
			break
		}
		imp.Commas = append(imp.Commas, p.advance())
		if imp.LParen != nil && p.at(token.RParen) {
			break
		}
	}
	if imp.LParen != nil {
		rp, err := p.expect(token.RParen, diag.SynExpectRParen)
		if err != nil {
			return nil, err
		}
		imp.RParen = &rp
	}
	return imp, nil
}

// parseAlias parses "name [as asname]"; dotted names only in plain imports.
func (p *Parser) parseAlias(dotted bool) (*cst.Alias, error) {
	var (
		name *cst.DottedName
		err  error
	)
	if dotted {
		name, err = p.parseDottedName()
	} else {
		var tok token.Token
		tok, err = p.expectName()
		name = &cst.DottedName{Names: []token.Token{tok}}
	}
	if err != nil {
		return nil, err
	}
	alias := &cst.Alias{Name: name}
	if p.at(token.KwAs) {
		alias.As = p.advancePtr()
		asName, err := p.expectName()
		if err != nil {
			return nil, err
		}
		alias.AsName = &asName
	}
	return alias, nil
}

func (p *Parser) parseDottedName() (*cst.DottedName, error) {
	first, err := p.expectName()
	if err != nil {
		return nil, err
	}
	dn := &cst.DottedName{Names: []token.Token{first}}
	for p.at(token.Dot) {
		dn.Dots = append(dn.Dots, p.advance())
		name, err := p.expectName()
		if err != nil {
			return nil, err
		}
		dn.Names = append(dn.Names, name)
	}
	return dn, nil
}
