// Package emitter renders a planner.Plan into Go source: one sum type and
// one struct per constructor, a recursive generator and rejection sampler
// per type, and a geometric-tail generator per sequence element (spec
// §4.5).
package emitter

import (
	"bytes"
	"go/format"
	"regexp"
	"text/template"

	"github.com/pkg/errors"

	"github.com/boltzmannbrain/bb/model"
	"github.com/boltzmannbrain/bb/planner"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var tmpl = template.Must(template.New("bb-sampler").Parse(sourceTemplate))

// Options controls optional emitted surface area, both read from a
// system's annotations (spec §9's emitter flags): "with_io" binds the
// generated samplers to a process-seeded math/rand source as well as the
// library-style rand.Rand-threaded form, and "with_show" derives a
// String() method per constructor.
type Options struct {
	Module   string
	RunID    string
	WithIO   bool
	WithShow bool
}

// OptionsFromAnnotations reads with_io/with_show from a system's
// annotations. Both default to true (spec §4.5): a system that never
// mentions them gets IO entry points and display deriving for free.
func OptionsFromAnnotations(a model.Annotations, module, runID string) Options {
	return Options{
		Module:   module,
		RunID:    runID,
		WithIO:   a.BoolOr("with_io", true),
		WithShow: a.BoolOr("with_show", true),
	}
}

// Emit renders plan as a formatted Go source file in package opts.Module.
func Emit(plan *planner.Plan, opts Options) ([]byte, error) {
	if !identRe.MatchString(opts.Module) {
		return nil, ErrInvalidModuleName.New(opts.Module)
	}

	data := buildTemplateData(opts.Module, opts.RunID, plan, opts.WithIO, opts.WithShow)

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, ErrTemplateExec.New(err.Error())
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		log.WithError(err).Warn("emitted source failed to gofmt, rejecting output")
		return nil, errors.Wrap(err, "emitter: gofmt")
	}
	return out, nil
}
