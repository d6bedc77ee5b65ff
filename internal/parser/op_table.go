package parser

import (
	"cfparse/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precElvis      = 1  // ?:
	precImp        = 2  // IMP
	precEqv        = 3  // EQV
	precXor        = 4  // XOR
	precOr         = 5  // OR ||
	precAnd        = 6  // AND &&
	precNot        = 7  // NOT ! (prefix)
	precComparison = 8  // EQ NEQ GT ... CONTAINS INSTANCEOF CASTAS
	precConcat     = 9  // &
	precAdditive   = 10 // + -
	precMod        = 11 // MOD %
	precIntDiv     = 12 // \
	precMul        = 13 // * /
	precPower      = 14 // ^
)

type binaryOp struct {
	value      string
	prec       int
	rightAssoc bool
}

var symbolOps = map[token.Kind]binaryOp{
	token.QuestionColon: {"?:", precElvis, true},
	token.OrOr:          {"OR", precOr, false},
	token.AndAnd:        {"AND", precAnd, false},
	token.EqEq:          {"EQ", precComparison, false},
	token.EqEqEq:        {"TEQ", precComparison, false},
	token.BangEq:        {"NEQ", precComparison, false},
	token.LtGt:          {"NEQ", precComparison, false},
	token.Gt:            {"GT", precComparison, false},
	token.GtEq:          {"GTE", precComparison, false},
	token.Lt:            {"LT", precComparison, false},
	token.LtEq:          {"LTE", precComparison, false},
	token.Amp:           {"&", precConcat, false},
	token.Plus:          {"+", precAdditive, false},
	token.Minus:         {"-", precAdditive, false},
	token.Percent:       {"MOD", precMod, false},
	token.Backslash:     {"\\", precIntDiv, false},
	token.Star:          {"*", precMul, false},
	token.Slash:         {"/", precMul, false},
	token.Caret:         {"^", precPower, false},
}

type wordOp struct {
	words []string
	op    binaryOp
}

// wordOps is ordered longest first: multi-word comparators are resolved by
// longest match, so `GREATER THAN OR EQUAL TO` never splits into GT and OR.
var wordOps = []wordOp{
	{[]string{"greater", "than", "or", "equal", "to"}, binaryOp{"GTE", precComparison, false}},
	{[]string{"less", "than", "or", "equal", "to"}, binaryOp{"LTE", precComparison, false}},
	{[]string{"does", "not", "contain"}, binaryOp{"NOT CONTAINS", precComparison, false}},
	{[]string{"greater", "than"}, binaryOp{"GT", precComparison, false}},
	{[]string{"less", "than"}, binaryOp{"LT", precComparison, false}},
	{[]string{"is", "not"}, binaryOp{"NEQ", precComparison, false}},
	{[]string{"not", "equal"}, binaryOp{"NEQ", precComparison, false}},
	{[]string{"eq"}, binaryOp{"EQ", precComparison, false}},
	{[]string{"is"}, binaryOp{"EQ", precComparison, false}},
	{[]string{"equal"}, binaryOp{"EQ", precComparison, false}},
	{[]string{"neq"}, binaryOp{"NEQ", precComparison, false}},
	{[]string{"gt"}, binaryOp{"GT", precComparison, false}},
	{[]string{"gte"}, binaryOp{"GTE", precComparison, false}},
	{[]string{"ge"}, binaryOp{"GTE", precComparison, false}},
	{[]string{"lt"}, binaryOp{"LT", precComparison, false}},
	{[]string{"lte"}, binaryOp{"LTE", precComparison, false}},
	{[]string{"le"}, binaryOp{"LTE", precComparison, false}},
	{[]string{"contains"}, binaryOp{"CONTAINS", precComparison, false}},
	{[]string{"instanceof"}, binaryOp{"INSTANCEOF", precComparison, false}},
	{[]string{"castas"}, binaryOp{"CASTAS", precComparison, false}},
	{[]string{"mod"}, binaryOp{"MOD", precMod, false}},
	{[]string{"and"}, binaryOp{"AND", precAnd, false}},
	{[]string{"or"}, binaryOp{"OR", precOr, false}},
	{[]string{"xor"}, binaryOp{"XOR", precXor, false}},
	{[]string{"eqv"}, binaryOp{"EQV", precEqv, false}},
	{[]string{"imp"}, binaryOp{"IMP", precImp, false}},
}

// peekBinaryOp looks at the upcoming tokens and returns the binary operator
// they spell and how many tokens it takes.
func (p *parser) peekBinaryOp() (binaryOp, int, bool) {
	tok := p.peek()
	if op, ok := symbolOps[tok.Kind]; ok {
		return op, 1, true
	}
	if tok.Kind != token.Ident {
		return binaryOp{}, 0, false
	}
	for _, w := range wordOps {
		if p.matchWords(w.words) {
			return w.op, len(w.words), true
		}
	}
	return binaryOp{}, 0, false
}

func (p *parser) matchWords(words []string) bool {
	for i, w := range words {
		if !p.peekN(i).IsWord(w) {
			return false
		}
	}
	return true
}

// isNotPrefix reports whether the current token is the logical NOT prefix.
func (p *parser) isNotPrefix() bool {
	if p.at(token.Bang) {
		return true
	}
	// `NOT EQUAL` is a comparator, never a prefix
	return p.atWord("not") && !p.peekN(1).IsWord("equal") && startsOperand(p.peekN(1))
}

// startsOperand reports whether tok can begin an expression.
func startsOperand(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.IntLit, token.FloatLit, token.StringOpen, token.Hash,
		token.LParen, token.LBracket, token.LBrace, token.Minus, token.Plus,
		token.Bang, token.PlusPlus, token.MinusMinus:
		return true
	}
	return false
}
