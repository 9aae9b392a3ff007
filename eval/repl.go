package eval

import (
	"fmt"
	"io"

	"mal/core"
	"mal/printer"
	"mal/reader"
	"mal/types"
)

// REPL owns a global environment seeded with the core namespace.
// It is not safe for concurrent use.
type REPL struct {
	Env *types.Env
}

// New builds the global environment and evaluates the core prelude.
// Output from prn and println goes to out.
func New(out io.Writer) (*REPL, error) {
	env, _ := types.NewEnv(nil, nil, nil)
	for name, fn := range core.NS(out) {
		env.Set(name, &types.DNative{Name: name, Fn: fn})
	}

	r := &REPL{Env: env}
	for _, src := range core.Prelude {
		if _, err := r.Rep(src); err != nil {
			return nil, fmt.Errorf("prelude %q: %w", src, err)
		}
	}
	return r, nil
}

func Read(raw string) (types.Data, error) {
	return reader.ReadStr(raw)
}

func Print(form types.Data) string {
	return printer.PrintStr(form, true)
}

// Rep reads one form from input, evaluates it in the global environment
// and returns its readable printed form.
func (r *REPL) Rep(input string) (string, error) {
	form, err := Read(input)
	if err != nil {
		return "", err
	}

	evald, err := Eval(form, r.Env)
	if err != nil {
		return "", err
	}

	return Print(evald), nil
}
