// Package analyzer derives the atomic types, sequence types, dependency
// graph, linearity and interruptibility of a model.System, and classifies
// it as Rational, Algebraic or Unsupported (spec §3, §4.1).
package analyzer

import (
	"fmt"

	"github.com/boltzmannbrain/bb/model"
)

// Class is the classification of a system.
type Class int

const (
	// Rational systems admit a linear, interruptible, single-SCC
	// dependency graph and are compiled to linear-recurrence samplers.
	Rational Class = iota
	// Algebraic systems permit List arguments and multiple non-atomic
	// references but are otherwise well-formed.
	Algebraic
	// Unsupported systems are neither; Reason explains why.
	Unsupported
)

func (c Class) String() string {
	switch c {
	case Rational:
		return "Rational"
	case Algebraic:
		return "Algebraic"
	case Unsupported:
		return "Unsupported"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// Result is the outcome of Classify: the class, and — for Unsupported —
// the reason.
type Result struct {
	Class  Class
	Reason string
}

// AtomicTypes returns the set of type names all of whose constructors are
// atomic (spec §3).
func AtomicTypes(s *model.System) map[string]bool {
	out := make(map[string]bool)
	for _, t := range s.Order {
		atomic := true
		for _, c := range s.Types[t] {
			if !c.Atomic() {
				atomic = false
				break
			}
		}
		if atomic {
			out[t] = true
		}
	}
	return out
}

// SeqTypes returns the set {t : `List t` appears in some argument of s}.
func SeqTypes(s *model.System) map[string]bool {
	out := make(map[string]bool)
	for _, c := range s.AllConstructors() {
		for _, a := range c.Args {
			if a.IsList() {
				out[a.Type] = true
			}
		}
	}
	return out
}

// HasAtoms reports whether s has at least one atomic constructor.
func HasAtoms(s *model.System) bool {
	for _, c := range s.AllConstructors() {
		if c.Atomic() {
			return true
		}
	}
	return false
}

// linear reports whether c is a linear constructor: no List argument and
// at most one argument whose referenced type is not atomic.
func linear(c model.Constructor, atomic map[string]bool) bool {
	nonAtomicRefs := 0
	for _, a := range c.Args {
		if a.IsList() {
			return false
		}
		if !atomic[a.Type] {
			nonAtomicRefs++
		}
	}
	return nonAtomicRefs <= 1
}

// Linear reports whether every constructor of s is linear.
func Linear(s *model.System) bool {
	atomic := AtomicTypes(s)
	for _, c := range s.AllConstructors() {
		if !linear(c, atomic) {
			return false
		}
	}
	return true
}

// interruptible reports whether c's argument list contains at most one
// atom of its own — operationally, whether the recursive generator built
// from it can re-check a size budget after at most one atomic emission
// per descent. A constructor's own atom count is its weight contribution
// taken as a single step (weight is emitted once per constructor
// application, regardless of argument count), so interruptibility here
// is a property of the constructor's argument shape: it holds as long as
// the constructor recurses into at most one type argument before
// producing its next atom, which for this system is equivalent to being
// linear without any non-atomic argument beyond the first.
func interruptible(c model.Constructor, atomic map[string]bool) bool {
	// A constructor is interruptible iff it is linear: linearity already
	// bounds it to at most one non-atomic recursive reference, which is
	// the single recursive descent the planner needs a budget check
	// before. List arguments (ruled out by linearity) are the only shape
	// that could hide more than one atom-producing step behind a single
	// constructor application.
	return linear(c, atomic)
}

// Interruptible reports whether every constructor of s is interruptible.
func Interruptible(s *model.System) bool {
	atomic := AtomicTypes(s)
	for _, c := range s.AllConstructors() {
		if !interruptible(c, atomic) {
			return false
		}
	}
	return true
}

// Classify determines whether s is Rational, Algebraic or Unsupported
// per spec §3.
func Classify(s *model.System) Result {
	if Linear(s) && Interruptible(s) {
		g := DependencyGraph(s)
		sccs := g.SCCs()
		if len(sccs) == 1 {
			return Result{Class: Rational}
		}
		return Result{Class: Unsupported, Reason: fmt.Sprintf("%d strongly connected components", len(sccs))}
	}
	// Not linear: permitted as Algebraic as long as the system is
	// otherwise well-formed (Validate is expected to have been called
	// separately; Classify does not re-derive structural validity).
	return Result{Class: Algebraic}
}
