// Package farex converts a finite automaton over character sets into an
// equivalent regular expression AST, then simplifies that AST (spec §1,
// §6.2). It wires together fagraph (build), eliminate (tear down) and
// simplify (clean up) behind a single entry point.
//
// Modeled on exec.Params/ParseParams/Execute's three-step shape
// (options struct → validate/default → run) and its "step: %w"
// error-wrapping convention at each boundary call.
package farex

import (
	"github.com/pkg/errors"

	"farex/eliminate"
	"farex/fagraph"
	"farex/regexast"
	"farex/simplify"
)

// ExternalState is the caller's own state identity (spec §6.1).
type ExternalState = fagraph.ExternalState

// OutEdge is one outgoing transition reported by an Iterator (spec
// §6.1).
type OutEdge = fagraph.OutEdge

// Iterator is the external FA contract (spec §6.1): a value exposing an
// initial state, a final-state predicate, and each state's outgoing
// transitions.
type Iterator = fagraph.Iterator

// defaultMaximumNodes is spec §6.2's default maximumNodes.
const defaultMaximumNodes = 10000

// Options configures one conversion (spec §6.2).
type Options struct {
	// MaximumNodes is a hard ceiling on AST nodes constructed by the
	// factory, including copies. Exceeding it fails with a
	// *regexast.TooManyNodesError. Zero means "use the default".
	MaximumNodes int

	// MaximumOptimizationPasses bounds the simplifier's fixed-point
	// loop. Zero or negative means unbounded (run to a true fixed
	// point).
	MaximumOptimizationPasses int
}

// WithDefaults returns a copy of o with zero-valued fields replaced by
// spec §6.2's defaults.
func (o Options) WithDefaults() Options {
	if o.MaximumNodes <= 0 {
		o.MaximumNodes = defaultMaximumNodes
	}
	return o
}

// Stats reports bookkeeping about one conversion, for callers that want
// to inspect the cost of a run without re-deriving it (supplemental to
// spec §6.2's plain Expression-only return).
type Stats struct {
	// NodesConstructed is the factory's node count at the end of the
	// conversion (including every copy made during elimination).
	NodesConstructed int

	// Empty reports whether the input FA had no reachable final state
	// (spec §4.4 step 3, §8 property 11): the returned Expression has
	// zero alternatives.
	Empty bool

	// StatesEliminated is the number of interior states the elimination
	// engine removed. Zero when Empty is true, since no elimination runs.
	StatesEliminated int

	// SimplifierPasses is the number of fixed-point passes the simplifier
	// ran before converging or hitting MaximumOptimizationPasses. Zero
	// when Empty is true, since the simplifier never runs on an already-
	// empty Expression.
	SimplifierPasses int
}

// FAToRegex converts iter into a simplified regex AST (spec §6.2). It
// discards the Stats FAToRegexWithStats would also return.
func FAToRegex(iter Iterator, options Options) (*regexast.Node, error) {
	expr, _, err := FAToRegexWithStats(iter, options)
	return expr, err
}

// FAToRegexWithStats is FAToRegex plus Stats about the conversion.
func FAToRegexWithStats(iter Iterator, options Options) (*regexast.Node, Stats, error) {
	options = options.WithDefaults()
	factory := regexast.NewFactory(options.MaximumNodes)

	nl, empty, err := fagraph.Build(iter, factory)
	if err != nil {
		return nil, Stats{}, errors.Wrap(err, "build-graph")
	}
	if empty {
		expr, err := factory.Expression()
		if err != nil {
			return nil, Stats{}, errors.Wrap(err, "build-empty-expression")
		}
		return expr, Stats{NodesConstructed: factory.Count(), Empty: true}, nil
	}

	engine := eliminate.New(nl, factory)
	residual, err := engine.Eliminate()
	if err != nil {
		return nil, Stats{}, errors.Wrap(err, "eliminate")
	}

	// The residual transition's kind depends on what the combinators
	// last produced (CharacterClass, Alternation, Quantifier, or
	// already a Concatenation); Expression.Alternatives holds only
	// Concatenation-kind elements, so wrap unless it already is one.
	body := residual
	if body.Kind != regexast.KindConcatenation {
		body, err = factory.Concatenation(residual)
		if err != nil {
			return nil, Stats{}, errors.Wrap(err, "wrap-residual")
		}
	}

	expr, err := factory.Expression(body)
	if err != nil {
		return nil, Stats{}, errors.Wrap(err, "wrap-residual")
	}

	simplifier := simplify.New(factory, options.MaximumOptimizationPasses)
	simplified, err := simplifier.Simplify(expr)
	if err != nil {
		return nil, Stats{}, errors.Wrap(err, "simplify")
	}

	return simplified, Stats{
		NodesConstructed: factory.Count(),
		StatesEliminated: engine.StatesEliminated(),
		SimplifierPasses: simplifier.Passes(),
	}, nil
}
