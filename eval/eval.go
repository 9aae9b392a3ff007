// Package eval evaluates forms produced by the reader against a chain of
// environments.
package eval

import (
	. "mal/types"
)

type specialForm int

const (
	formNone specialForm = iota
	formDef
	formLet
	formDo
	formIf
	formFn
)

var specialForms = map[string]specialForm{
	"def!": formDef,
	"let*": formLet,
	"do":   formDo,
	"if":   formIf,
	"fn*":  formFn,
}

// Eval evaluates ast in env. The first error aborts evaluation; bindings
// made before it stay in place.
func Eval(ast Data, env *Env) (Data, error) {
	form, ok := ast.(*DList)
	if !ok {
		return evalAST(ast, env)
	}

	list := form.Members
	if len(list) == 0 {
		return ast, nil
	}

	if head, ok := list[0].(*DSymbol); ok {
		switch specialForms[head.Name] {
		case formDef:
			return evalDef(list, env)
		case formLet:
			return evalLet(list, env)
		case formDo:
			return evalDo(list, env)
		case formIf:
			return evalIf(list, env)
		case formFn:
			return evalFn(list, env)
		case formNone:
		}
	}

	evald, err := evalList(list, env)
	if err != nil {
		return nil, err
	}
	return Apply(evald[0], evald[1:])
}

// Apply calls f, a native function or closure, with already evaluated args.
func Apply(f Data, args []Data) (Data, error) {
	switch fn := f.(type) {
	case *DNative:
		return fn.Fn(args)
	case *DClosure:
		callEnv, err := NewEnv(fn.Env, fn.Params, args)
		if err != nil {
			return nil, err
		}
		return Eval(fn.Body, callEnv)
	}
	return nil, &NotCallableError{Value: f}
}

func evalAST(ast Data, env *Env) (Data, error) {
	switch d := ast.(type) {
	case *DSymbol:
		return env.Get(d.Name)

	case *DList:
		evald, err := evalList(d.Members, env)
		if err != nil {
			return nil, err
		}
		return &DList{Members: evald}, nil

	case *DVector:
		evald, err := evalList(d.Members, env)
		if err != nil {
			return nil, err
		}
		return &DVector{Members: evald}, nil

	case *DHashmap:
		// Keys are never evaluated.
		return d.MapValues(func(v Data) (Data, error) {
			return Eval(v, env)
		})
	}

	return ast, nil
}

func evalList(list []Data, env *Env) ([]Data, error) {
	ret := make([]Data, 0, len(list))
	for _, expr := range list {
		evald, err := Eval(expr, env)
		if err != nil {
			return nil, err
		}
		ret = append(ret, evald)
	}
	return ret, nil
}

func symbolName(form string, d Data) (string, error) {
	sym, ok := d.(*DSymbol)
	if !ok {
		return "", &TypeError{Name: form, Want: "symbol", Got: d}
	}
	return sym.Name, nil
}

// (def! sym expr)
func evalDef(list []Data, env *Env) (Data, error) {
	if len(list) != 3 {
		return nil, &ArityError{Name: "def!", Want: "2", Got: len(list) - 1}
	}

	name, err := symbolName("def!", list[1])
	if err != nil {
		return nil, err
	}

	evald, err := Eval(list[2], env)
	if err != nil {
		return nil, err
	}

	env.Set(name, evald)
	return evald, nil
}

// (let* (b0 v0 b1 v1 ...) expr)
func evalLet(list []Data, env *Env) (Data, error) {
	if len(list) != 3 {
		return nil, &ArityError{Name: "let*", Want: "2", Got: len(list) - 1}
	}

	bindings, ok := Members(list[1])
	if !ok {
		return nil, &TypeError{Name: "let*", Want: "binding list or vector", Got: list[1]}
	}
	if len(bindings)%2 != 0 {
		return nil, &ArityError{Name: "let* bindings", Want: "an even number of", Got: len(bindings)}
	}

	letEnv, _ := NewEnv(env, nil, nil)
	for i := 0; i < len(bindings); i += 2 {
		sym, err := symbolName("let*", bindings[i])
		if err != nil {
			return nil, err
		}

		evald, err := Eval(bindings[i+1], letEnv)
		if err != nil {
			return nil, err
		}

		letEnv.Set(sym, evald)
	}

	return Eval(list[2], letEnv)
}

// (do e0 e1 ... en); an empty body gives nil.
func evalDo(list []Data, env *Env) (Data, error) {
	var ret Data = Nil
	for _, expr := range list[1:] {
		evald, err := Eval(expr, env)
		if err != nil {
			return nil, err
		}
		ret = evald
	}
	return ret, nil
}

// (if cond then [else])
func evalIf(list []Data, env *Env) (Data, error) {
	if len(list) < 3 || len(list) > 4 {
		return nil, &ArityError{Name: "if", Want: "2 or 3", Got: len(list) - 1}
	}

	cond, err := Eval(list[1], env)
	if err != nil {
		return nil, err
	}

	if IsTruthy(cond) {
		return Eval(list[2], env)
	}
	if len(list) == 4 {
		return Eval(list[3], env)
	}
	return Nil, nil
}

// (fn* (p0 p1 ...) body) builds a closure over env.
func evalFn(list []Data, env *Env) (Data, error) {
	if len(list) != 3 {
		return nil, &ArityError{Name: "fn*", Want: "2", Got: len(list) - 1}
	}

	params, ok := Members(list[1])
	if !ok {
		return nil, &TypeError{Name: "fn*", Want: "parameter list or vector", Got: list[1]}
	}

	c := &DClosure{Env: env, Params: make([]string, 0, len(params)), Body: list[2]}
	for i, p := range params {
		name, err := symbolName("fn* parameter", p)
		if err != nil {
			return nil, err
		}

		if name == VariadicMarker && i != len(params)-2 {
			return nil, &ArityError{Name: "fn* &", Want: "exactly 1 name after &", Got: len(params) - i - 1}
		}
		c.Params = append(c.Params, name)
	}
	return c, nil
}
