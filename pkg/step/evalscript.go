package step

import (
	"fmt"

	"github.com/uipilot-dev/uipilot/pkg/cancel"
	"github.com/uipilot-dev/uipilot/pkg/report"
)

// IDEvalScript identifies the script evaluation step.
const IDEvalScript = "eval_script"

// evalScriptStep evaluates a script expression against the run's script
// engine, optionally storing the result into a run-local variable.
type evalScriptStep struct {
	base
	script         string
	resultVariable *string
}

func newEvalScript(rec Record) (Definition, error) {
	f := newFields(rec.ID, rec.Values)
	script, err := f.requireString("script")
	if err != nil {
		return nil, err
	}
	resultVariable, err := f.optString("resultVariable")
	if err != nil {
		return nil, err
	}
	return &evalScriptStep{
		base:           base{id: rec.ID, image: rec.Image},
		script:         script,
		resultVariable: resultVariable,
	}, nil
}

func (s *evalScriptStep) ToData() Record {
	values := map[string]interface{}{"script": s.script}
	if s.resultVariable != nil {
		values["resultVariable"] = *s.resultVariable
	}
	return s.record(values)
}

func (s *evalScriptStep) Execute(rt Runtime, token *cancel.Token, rep *report.Run) error {
	src, err := rt.Resolve(s.script)
	if err != nil {
		return err
	}

	result, err := rt.Eval(src)
	if err != nil {
		return err
	}

	if s.resultVariable != nil && result != nil {
		if err := rt.SetRunVariable(*s.resultVariable, result); err != nil {
			return err
		}
	}
	return nil
}

func (s *evalScriptStep) Describe(rt Runtime) string {
	if s.resultVariable != nil {
		return fmt.Sprintf("Evaluate script into %q", *s.resultVariable)
	}
	return "Evaluate script"
}
