package emitter

// sourceTemplate renders a templateData into a single Go source file: one
// interface and one struct per constructor, a recursive generator and a
// rejection-sampler per type, a geometric-tail generator per sequence
// element, and (optionally) process-level entry points and Stringers.
//
// Grounded on the teacher's `_example/main.go` for the overall shape of a
// small, self-contained generated package, adapted here to a library
// with one generator/sampler pair per type instead of a single driver
// function.
const sourceTemplate = `// Code generated by bbc; DO NOT EDIT.
// run: {{.RunID}}
// rho: {{printf "%.17g" .Rho}}

package {{.Module}}

import (
	"fmt"
	"math/rand"
{{- if .WithIO}}
	"time"
{{- end}}
)

{{range .Types}}
{{- $t := .}}
// {{$t.Name}} is the sum type generated from the {{$t.Name}} constructors.
type {{$t.Name}} interface {
	is{{$t.Name}}()
{{- if $.WithShow}}
	String() string
{{- end}}
}
{{range $t.Branches}}
// {{.StructName}} is the {{.CtorName}} alternative of {{$t.Name}}.
type {{.StructName}} struct {
{{- range .Children}}
{{- if .IsList}}
	{{.FieldName}} []{{.Target}}
{{- else}}
	{{.FieldName}} {{.Target}}
{{- end}}
{{- end}}
}

func ({{.StructName}}) is{{$t.Name}}() {}
{{end}}
{{end}}

{{range .Types}}
{{- $t := .}}
// genRandom{{$t.Name}} draws one {{$t.Name}} value within budget ub,
// returning its size and whether generation stayed within budget.
func genRandom{{$t.Name}}(rnd *rand.Rand, ub int) ({{$t.Name}}, int, bool) {
	r := rnd.Float64()
	_ = r
{{range $i, $b := $t.Branches}}
	{{if $b.NeedsTest}}if r < {{printf "%.17g" $b.CumProb}} {{else}}if true {{end}}{
		remaining := ub - {{$b.Weight}}
		if remaining < 0 {
			var zero {{$t.Name}}
			return zero, 0, false
		}
		size := {{$b.Weight}}
		v := {{$b.StructName}}{}
{{range $b.Children}}
{{- if $t.Interruptible}}
		if remaining <= 0 {
			var zero {{$t.Name}}
			return zero, 0, false
		}
{{- end}}
{{- if .IsList}}
		{
			lst, sz, ok := genList{{.Target}}(rnd, remaining)
			if !ok {
				var zero {{$t.Name}}
				return zero, 0, false
			}
			v.{{.FieldName}} = lst
			remaining -= sz
			size += sz
		}
{{- else}}
		{
			cv, sz, ok := genRandom{{.Target}}(rnd, remaining)
			if !ok {
				var zero {{$t.Name}}
				return zero, 0, false
			}
			v.{{.FieldName}} = cv
			remaining -= sz
			size += sz
		}
{{- end}}
{{- end}}
		return v, size, true
	}
{{end}}
	var zero {{$t.Name}}
	return zero, 0, false
}

// Sample{{$t.Name}} draws a {{$t.Name}} value whose size lies in [lb, ub],
// retrying from scratch on any out-of-budget or out-of-range draw (spec
// §4.4's rejection loop).
func Sample{{$t.Name}}(rnd *rand.Rand, lb, ub int) ({{$t.Name}}, error) {
	if lb > ub {
		var zero {{$t.Name}}
		return zero, fmt.Errorf("{{$t.Name}}: lower bound %d exceeds upper bound %d", lb, ub)
	}
	for {
		v, sz, ok := genRandom{{$t.Name}}(rnd, ub)
		if ok && sz >= lb {
			return v, nil
		}
	}
}
{{if $.WithIO}}
// Sample{{$t.Name}}IO draws a {{$t.Name}} value using a process-seeded
// random source: a convenience wrapper for callers outside a sampling
// library.
func Sample{{$t.Name}}IO(lb, ub int) ({{$t.Name}}, error) {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	return Sample{{$t.Name}}(rnd, lb, ub)
}
{{end}}
{{end}}

{{range .Seqs}}
// genList{{.Element}} draws a ` + "`List {{.Element}}`" + ` value: at each
// step, with probability {{printf "%.17g" .Continue}} draws one more
// {{.Element}} and recurses, otherwise stops (spec §4.4's geometric tail).
func genList{{.Element}}(rnd *rand.Rand, ub int) ([]{{.Element}}, int, bool) {
	var out []{{.Element}}
	remaining := ub
	size := 0
	for remaining > 0 && rnd.Float64() < {{printf "%.17g" .Continue}} {
		v, sz, ok := genRandom{{.Element}}(rnd, remaining)
		if !ok {
			return nil, 0, false
		}
		out = append(out, v)
		remaining -= sz
		size += sz
	}
	return out, size, true
}
{{end}}

{{if .WithShow}}
{{range .Types}}
{{- $t := .}}
{{range $t.Branches}}
func (v {{.StructName}}) String() string {
{{- if .Children}}
	parts := make([]string, 0, {{len .Children}})
{{- range .Children}}
{{- if .IsList}}
	{
		elems := make([]string, len(v.{{.FieldName}}))
		for i, e := range v.{{.FieldName}} {
			elems[i] = fmt.Sprint(e)
		}
		parts = append(parts, "["+joinStrings(elems)+"]")
	}
{{- else}}
	parts = append(parts, fmt.Sprint(v.{{.FieldName}}))
{{- end}}
{{- end}}
	return fmt.Sprintf("{{.CtorName}}(%s)", joinStrings(parts))
{{- else}}
	return "{{.CtorName}}"
{{- end}}
}
{{end}}
{{end}}

func joinStrings(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
{{end}}
`
