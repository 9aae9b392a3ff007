package types

import (
	"sort"
	"strconv"
)

// VariadicMarker in a parameter list binds the following parameter to the
// remaining arguments.
const VariadicMarker = "&"

// Env is one frame of symbol bindings. Frames are shared by reference:
// closures keep the frame they were created in alive.
type Env struct {
	data  map[string]Data
	outer *Env
}

// NewEnv creates a frame under outer, binding binds to exprs positionally.
// A "&" in binds binds the next name to a list of the remaining exprs and
// ends binding. Exprs beyond the bound names are ignored.
func NewEnv(outer *Env, binds []string, exprs []Data) (*Env, error) {
	env := &Env{map[string]Data{}, outer}
	for i := 0; i < len(binds); i++ {
		if binds[i] == VariadicMarker {
			if i+1 >= len(binds) {
				return nil, &ArityError{Name: "bind", Want: "a name after &", Got: 0}
			}
			rest := []Data{}
			if i < len(exprs) {
				rest = append(rest, exprs[i:]...)
			}
			env.Set(binds[i+1], &DList{rest})
			break
		}

		if i >= len(exprs) {
			return nil, &ArityError{
				Name: "missing value for bind '" + binds[i] + "'",
				Want: requiredParams(binds),
				Got:  len(exprs),
			}
		}
		env.Set(binds[i], exprs[i])
	}
	return env, nil
}

func requiredParams(binds []string) string {
	for i, b := range binds {
		if b == VariadicMarker {
			return "at least " + strconv.Itoa(i)
		}
	}
	return strconv.Itoa(len(binds))
}

func (e *Env) Outer() *Env {
	return e.outer
}

// Set binds key in this frame only, shadowing any outer binding.
func (e *Env) Set(key string, value Data) {
	e.data[key] = value
}

// Find walks the chain and returns the value bound to key, or nil.
func (e *Env) Find(key string) Data {
	for env := e; env != nil; env = env.outer {
		if value, ok := env.data[key]; ok {
			return value
		}
	}
	return nil
}

func (e *Env) Get(key string) (Data, error) {
	value := e.Find(key)
	if value == nil {
		return nil, &UnboundSymbolError{key}
	}
	return value, nil
}

// Names returns every name visible from e, sorted and without duplicates.
func (e *Env) Names() []string {
	seen := map[string]bool{}
	var names []string
	for env := e; env != nil; env = env.outer {
		for k := range env.data {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	sort.Strings(names)
	return names
}
