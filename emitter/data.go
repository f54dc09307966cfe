package emitter

import (
	"fmt"

	"github.com/boltzmannbrain/bb/model"
	"github.com/boltzmannbrain/bb/planner"
)

// templateData is the view the code-generation template renders over: a
// flattened, Go-identifier-friendly projection of a planner.Plan.
type templateData struct {
	Module  string
	RunID   string
	WithIO  bool
	WithShow bool
	Rho     float64
	Types   []typeData
	Seqs    []seqData
}

type typeData struct {
	Name          string
	Interruptible bool
	Branches      []branchData
}

type branchData struct {
	CtorName   string
	StructName string
	Weight     int
	CumProb    float64
	NeedsTest  bool
	Children   []childData
}

type childData struct {
	FieldName string
	IsList    bool
	Target    string
}

type seqData struct {
	Element  string
	Continue float64
}

func buildTemplateData(module, runID string, p *planner.Plan, withIO, withShow bool) templateData {
	td := templateData{
		Module:   module,
		RunID:    runID,
		WithIO:   withIO,
		WithShow: withShow,
		Rho:      p.Rho,
	}

	for _, t := range p.Types {
		tdt := typeData{Name: t.Name, Interruptible: t.Interruptible}
		for _, b := range t.Branches {
			bd := branchData{
				CtorName:   b.Constructor.Name,
				StructName: t.Name + "_" + b.Constructor.Name,
				Weight:     b.Constructor.Weight,
				CumProb:    b.CumProb,
				NeedsTest:  b.NeedsTest,
			}
			for i, c := range b.Children {
				bd.Children = append(bd.Children, childData{
					FieldName: fieldName(i),
					IsList:    c.Kind == model.ListArg,
					Target:    c.Target,
				})
			}
			tdt.Branches = append(tdt.Branches, bd)
		}
		td.Types = append(td.Types, tdt)
	}

	for _, s := range p.Seqs {
		td.Seqs = append(td.Seqs, seqData{Element: s.Element, Continue: s.Continue})
	}

	return td
}

func fieldName(i int) string {
	return fmt.Sprintf("Arg%d", i)
}
