package emitter

import errors "gopkg.in/src-d/go-errors.v1"

// ErrTemplateExec is returned when rendering the code-generation template
// fails: a defect in the emitter itself, since the template is fixed and
// the input plan is always well-formed by the time it reaches here.
var ErrTemplateExec = errors.NewKind("emitter: template execution failed: %s")

// ErrInvalidModuleName is returned when the target package name supplied
// to Emit is not a valid bare Go identifier.
var ErrInvalidModuleName = errors.NewKind("emitter: %q is not a valid Go package name")
