// Package planner builds an abstract sampler plan from a parametrised
// system: a branching table over constructors by cumulative probability,
// and per-branch an ordered sequence of recursive/list generator calls
// with size-budget accounting left as runtime bookkeeping for the
// emitted code (spec §4.4).
package planner

import (
	"sort"

	"github.com/boltzmannbrain/bb/analyzer"
	"github.com/boltzmannbrain/bb/model"
)

// ChildCall is one recursive call a branch plan makes: either a
// recursive generator call for `Type u` or a list-generator call for
// `List u`.
type ChildCall struct {
	Kind   model.ArgKind
	Target string
}

// Branch is one constructor alternative of a type: its weight, an
// ordered list of child calls, and the cumulative probability at (or
// below) which this branch is selected. The last branch of a type has
// NeedsTest == false: spec §4.4's fallthrough, no probability test
// needed since it is certain given every earlier branch was rejected.
type Branch struct {
	Constructor model.Constructor
	CumProb     float64
	NeedsTest   bool
	Children    []ChildCall
}

// TypePlan is the generator plan for one type: its branches in
// declaration order, and whether the planner should emit an explicit
// budget check before each atom emission (true for interruptible
// rational systems, per spec §4.4).
type TypePlan struct {
	Name          string
	Branches      []Branch
	Interruptible bool
}

// SeqPlan is the plan for a `List t` generator: at each step, with
// probability Continue draw one more element of Element and recurse,
// else stop (spec §4.4's geometric tail).
type SeqPlan struct {
	Element  string
	Continue float64
}

// Plan is the complete sampler plan for a parametrised system.
type Plan struct {
	Types    []TypePlan
	Seqs     []SeqPlan
	Rho      float64
	Rational bool
}

// Build produces a Plan from a parametrised system and its
// classification.
func Build(p *model.ParametrisedSystem, class analyzer.Class) *Plan {
	plan := &Plan{Rho: p.Rho, Rational: class == analyzer.Rational}

	seqElems := make(map[string]bool)
	for _, t := range p.TypeOrder() {
		tp := buildTypePlan(p, t, class)
		plan.Types = append(plan.Types, tp)
		for _, c := range p.Constructors[t] {
			for _, a := range c.Args {
				if a.IsList() {
					seqElems[a.Type] = true
				}
			}
		}
	}

	seqNames := make([]string, 0, len(seqElems))
	for e := range seqElems {
		seqNames = append(seqNames, e)
	}
	sort.Strings(seqNames)
	for _, e := range seqNames {
		plan.Seqs = append(plan.Seqs, SeqPlan{Element: e, Continue: p.Y[e]})
	}

	return plan
}

func buildTypePlan(p *model.ParametrisedSystem, t string, class analyzer.Class) TypePlan {
	cs := p.Constructors[t]
	tp := TypePlan{Name: t, Interruptible: class == analyzer.Rational}

	cum := 0.0
	for i, c := range cs {
		children := make([]ChildCall, 0, len(c.Args))
		for _, a := range c.Args {
			children = append(children, ChildCall{Kind: a.Kind, Target: a.Type})
		}
		last := i == len(cs)-1
		if !last {
			cum += c.Probability
		} else {
			cum = 1
		}
		tp.Branches = append(tp.Branches, Branch{
			Constructor: c.Constructor,
			CumProb:     cum,
			NeedsTest:   !last,
			Children:    children,
		})
	}
	return tp
}
