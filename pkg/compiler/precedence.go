package compiler

import "github.com/kristofer/quill/pkg/token"

// precedence orders binding power from loosest to tightest, driving
// parsePrecedence's climb.
type precedence int

const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // < > <= >=
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // ! -
	precCall                  // ()
	precPrimary
)

// parseFn is a Pratt prefix or infix handler. canAssign is threaded
// through so only the outermost call (at precAssignment or looser) may
// consume a trailing '=' and compile an assignment.
type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

// rules is the Pratt dispatch table, indexed by token type. Expressed as
// Go function values rather than C function pointers, matching the design
// note on process-wide parser state being made explicit instead.
var rules map[token.Type]parseRule

func init() {
	rules = map[token.Type]parseRule{
		token.LeftParen:    {prefix: (*Compiler).grouping, infix: (*Compiler).call, precedence: precCall},
		token.Minus:        {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: precTerm},
		token.Plus:         {infix: (*Compiler).binary, precedence: precTerm},
		token.Slash:        {infix: (*Compiler).binary, precedence: precFactor},
		token.Star:         {infix: (*Compiler).binary, precedence: precFactor},
		token.Bang:         {prefix: (*Compiler).unary},
		token.BangEqual:    {infix: (*Compiler).binary, precedence: precEquality},
		token.EqualEqual:   {infix: (*Compiler).binary, precedence: precEquality},
		token.Greater:      {infix: (*Compiler).binary, precedence: precComparison},
		token.GreaterEqual: {infix: (*Compiler).binary, precedence: precComparison},
		token.Less:         {infix: (*Compiler).binary, precedence: precComparison},
		token.LessEqual:    {infix: (*Compiler).binary, precedence: precComparison},
		token.Identifier:   {prefix: (*Compiler).variable},
		token.String:       {prefix: (*Compiler).stringLiteral},
		token.Number:       {prefix: (*Compiler).number},
		token.And:          {infix: (*Compiler).and, precedence: precAnd},
		token.Or:           {infix: (*Compiler).or, precedence: precOr},
		token.False:        {prefix: (*Compiler).literal},
		token.True:         {prefix: (*Compiler).literal},
		token.Null:         {prefix: (*Compiler).literal},
	}
}

func getRule(tt token.Type) parseRule {
	return rules[tt]
}
