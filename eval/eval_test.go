package eval

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"mal/reader"
	"mal/types"
)

func newREPL(t *testing.T) (*REPL, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r, err := New(&out)
	if err != nil {
		t.Fatal(err)
	}
	return r, &out
}

// run feeds each line to Rep and returns the output of the last one.
func run(t *testing.T, r *REPL, lines ...string) (string, error) {
	t.Helper()
	var got string
	var err error
	for _, line := range lines {
		got, err = r.Rep(line)
		if err != nil {
			return "", err
		}
	}
	return got, nil
}

type testPair struct {
	input    []string
	expected string
}

func in(lines ...string) []string {
	return lines
}

var tests = []testPair{
	// literals evaluate to themselves
	{in("1"), "1"},
	{in("-3"), "-3"},
	{in(`"abc"`), `"abc"`},
	{in(":kw"), ":kw"},
	{in("nil"), "nil"},
	{in("true"), "true"},
	{in("false"), "false"},
	{in("()"), "()"},

	// arithmetic
	{in("(+ 1 2)"), "3"},
	{in("(- 5 2)"), "3"},
	{in("(* 3 4)"), "12"},
	{in("(/ 10 2)"), "5"},
	{in("(+ (* 2 3) (- 10 4))"), "12"},

	// collections evaluate their members
	{in("[1 (+ 1 1) [(* 3 1)]]"), "[1 2 [3]]"},
	{in(`{:a (+ 1 2) "b" [(- 2 1)]}`), `{:a 3 "b" [1]}`},
	{in("(def! k :key)", "{k (+ 1 1)}"), "{k 2}"},

	// def!
	{in("(def! x 10)"), "10"},
	{in("(def! x 10)", "x"), "10"},
	{in("(def! x 10)", "(def! x (+ x 1))", "x"), "11"},

	// let*
	{in("(let* (a 2 b (* a a)) b)"), "4"},
	{in("(let* [a 1 b (+ a 1)] [a b])"), "[1 2]"},
	{in("(let* () 7)"), "7"},
	{in("(def! a 1)", "(let* (a 2) a)"), "2"},
	{in("(def! a 1)", "(let* (a 2) a)", "a"), "1"},
	{in("(let* (x 1) (let* (y (+ x 1)) (+ x y)))"), "3"},

	// do
	{in("(do)"), "nil"},
	{in("(do 1 2 3)"), "3"},
	{in("(do (def! d 5) (+ d 1))", "d"), "5"},

	// if
	{in("(if false 1)"), "nil"},
	{in("(if true 1 2)"), "1"},
	{in("(if false 1 2)"), "2"},
	{in("(if nil 1 2)"), "2"},
	{in("(if 0 1 2)"), "1"},
	{in(`(if "" 1 2)`), "1"},
	{in("(if () 1 2)"), "1"},
	{in("(if (< 1 2) :yes :no)"), ":yes"},

	// fn*
	{in("((fn* (a b) (+ a b)) 2 3)"), "5"},
	{in("((fn* [a] a) 7)"), "7"},
	{in("((fn* () 4))"), "4"},
	{in("((fn* (a & rest) (count rest)) 1 2 3 4)"), "3"},
	{in("((fn* (a & rest) rest) 1 2 3)"), "(2 3)"},
	{in("((fn* (& more) more))"), "()"},
	{in("((fn* (a) a) 1 2)"), "1"},
	{in("(def! add3 (fn* (a) (fn* (b) (+ a b))))", "((add3 4) 5)"), "9"},
	{in("(def! fact (fn* (n) (if (<= n 1) 1 (* n (fact (- n 1))))))", "(fact 10)"), "3628800"},
	{in("(def! fib (fn* (n) (if (< n 2) n (+ (fib (- n 1)) (fib (- n 2))))))", "(fib 15)"), "610"},

	// closures capture their defining scope
	{in("(def! f (let* (x 1) (fn* () x)))", "(let* (x 2) (f))"), "1"},
	{in("(let* (x 1) (do (def! f (fn* () x)) (let* (x 2) (f))))"), "1"},
	{in("(def! mk (fn* (n) (fn* () n)))", "(def! c1 (mk 1))", "(def! c2 (mk 2))", "(list (c1) (c2))"), "(1 2)"},
	{in("(def! y 1)", "(def! g (fn* () y))", "(def! y 2)", "(g)"), "2"},

	// prelude
	{in("(not false)"), "true"},
	{in("(not nil)"), "true"},
	{in("(not 0)"), "false"},

	// builtins through the evaluator
	{in("(= (list 1 2) (list 1 2))"), "true"},
	{in("(= (list 1 2) (list 1 3))"), "false"},
	{in("(= [1 2] (list 1 2))"), "false"},
	{in("(= {:a [1]} {:a [1]})"), "true"},
	{in("(list? (list))"), "true"},
	{in("(empty? [])"), "true"},
	{in("(count (list 1 2 3))"), "3"},
	{in(`(str "a" 1 :b "c")`), `"a1:bc"`},
	{in(`(pr-str "a" 1 "\n")`), `"\"a\" 1 \"\\n\""`},
	{in(`(keyword "k")`), ":k"},
	{in("(keyword? :k)"), "true"},
	{in("(nil? nil)"), "true"},
	{in("+"), "#<function +>"},
	{in("(fn* (a & b) a)"), "#<fn (a & b)>"},
}

func TestEval(t *testing.T) {
	for _, tt := range tests {
		r, _ := newREPL(t)
		got, err := run(t, r, tt.input...)
		if err != nil {
			t.Errorf("%q: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("%q = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestEvalLiteralsInAnyEnv(t *testing.T) {
	env, _ := types.NewEnv(nil, nil, nil)
	for _, d := range []types.Data{types.Number(4), types.String("s"), types.Keyword("k"), types.True, types.False, types.Nil} {
		got, err := Eval(d, env)
		if err != nil {
			t.Fatal(err)
		}
		if got != d {
			t.Errorf("Eval(%#v) = %#v, want the same value", d, got)
		}
	}
}

func TestDefInSameEnv(t *testing.T) {
	r, _ := newREPL(t)
	if _, err := r.Rep("(def! x 10)"); err != nil {
		t.Fatal(err)
	}
	v, err := r.Env.Get("x")
	if err != nil {
		t.Fatal(err)
	}
	if !types.Equal(v, types.Number(10)) {
		t.Errorf("x = %#v, want 10", v)
	}
}

func TestEvalErrors(t *testing.T) {
	var ue *types.UnboundSymbolError
	var ae *types.ArityError
	var te *types.TypeError
	var nc *types.NotCallableError
	var pe *types.ParseError
	var dz *types.DivideByZeroError

	tests := []struct {
		input  []string
		target any
	}{
		{in("undefined-sym"), &ue},
		{in("(+ 1 undefined-sym)"), &ue},
		{in("(let* (x 1) (def! f (fn* () x)))", "(f)"), &ue},
		{in("(let* (a) a)"), &ae},
		{in("(let* (a 1))"), &ae},
		{in("(let* a 1)"), &te},
		{in("(let* (1 2) 3)"), &te},
		{in("(def! x)"), &ae},
		{in(`(def! "x" 1)`), &te},
		{in("(if true)"), &ae},
		{in("(if true 1 2 3)"), &ae},
		{in("(fn* (a))"), &ae},
		{in("(fn* a 1)"), &te},
		{in("(fn* (1) 1)"), &te},
		{in("(fn* (a &) a)"), &ae},
		{in("(fn* (& a b) a)"), &ae},
		{in("((fn* (a b) a) 1)"), &ae},
		{in("(1 2)"), &nc},
		{in(`("f")`), &nc},
		{in("(+ 1 :a)"), &te},
		{in("(count 5)"), &te},
		{in("(/ 1 0)"), &dz},
		{in("(1 2"), &pe},
	}

	for _, tt := range tests {
		r, _ := newREPL(t)
		_, err := run(t, r, tt.input...)
		if err == nil || !errors.As(err, tt.target) {
			t.Errorf("%q: err = %v, want %T", tt.input, err, tt.target)
		}
	}
}

func TestUnboundSymbolName(t *testing.T) {
	r, _ := newREPL(t)
	_, err := r.Rep("undefined-sym")
	var ue *types.UnboundSymbolError
	if !errors.As(err, &ue) || ue.Name != "undefined-sym" {
		t.Fatalf("err = %v, want unbound 'undefined-sym'", err)
	}
	if !strings.Contains(err.Error(), "undefined-sym") {
		t.Errorf("message %q does not name the symbol", err.Error())
	}
}

func TestFailedFormKeepsEarlierDefs(t *testing.T) {
	r, _ := newREPL(t)
	if _, err := r.Rep("(do (def! leaked 1) undefined-sym)"); err == nil {
		t.Fatal("expected an error")
	}
	got, err := r.Rep("leaked")
	if err != nil {
		t.Fatal(err)
	}
	if got != "1" {
		t.Errorf("leaked = %s, want 1", got)
	}
}

func TestPrintOutput(t *testing.T) {
	r, out := newREPL(t)
	got, err := run(t, r, `(prn "a" [1 "b"])`, `(println "a" [1 "b"])`)
	if err != nil {
		t.Fatal(err)
	}
	if got != "nil" {
		t.Errorf("println result = %s, want nil", got)
	}
	want := "\"a\" [1 \"b\"]\n" + "a[1 b]\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestEmptyInput(t *testing.T) {
	r, _ := newREPL(t)
	if _, err := r.Rep("  ; just a comment"); !errors.Is(err, reader.ErrNoForm) {
		t.Errorf("err = %v, want ErrNoForm", err)
	}
}

func TestApplyNotCallable(t *testing.T) {
	_, err := Apply(types.Number(1), nil)
	var nc *types.NotCallableError
	if !errors.As(err, &nc) {
		t.Errorf("err = %v, want NotCallableError", err)
	}
}
