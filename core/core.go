// Package core holds the builtin functions installed in the global
// environment before any user code runs.
package core

import (
	"fmt"
	"io"
	"strings"

	"mal/printer"
	"mal/types"
)

// NS returns the builtin namespace. prn and println write to out.
func NS(out io.Writer) map[string]types.NativeFn {
	return map[string]types.NativeFn{
		"+": plus,
		"-": minus,
		"*": times,
		"/": div,

		// Output
		"pr-str":  prStr,
		"str":     str,
		"prn":     func(args []types.Data) (types.Data, error) { return emit(out, printList(args, true, " ")) },
		"println": func(args []types.Data) (types.Data, error) { return emit(out, printList(args, false, "")) },

		// Lists
		"list":   list,
		"list?":  listQ,
		"empty?": emptyQ,
		"count":  count,

		// Comparisons
		"=":      equal,
		"equal?": equal,
		"<":      lt,
		"<=":     lte,
		">":      gt,
		">=":     gte,
		"nil?":   nilQ,

		// Keywords
		"keyword":  keyword,
		"keyword?": keywordQ,
	}
}

// Prelude is evaluated after the namespace is installed.
var Prelude = []string{
	"(def! not (fn* (a) (if a false true)))",
}

func arity(name string, args []types.Data, want int) error {
	if len(args) != want {
		return &types.ArityError{Name: name, Want: fmt.Sprint(want), Got: len(args)}
	}
	return nil
}

// Expects two Number arguments; fails otherwise.
func prepNumbers(args []types.Data, op string) (int64, int64, error) {
	if err := arity(op, args, 2); err != nil {
		return 0, 0, err
	}

	x, ok := args[0].(*types.DNumber)
	if !ok {
		return 0, 0, &types.TypeError{Name: op, Want: "number", Got: args[0]}
	}
	y, ok := args[1].(*types.DNumber)
	if !ok {
		return 0, 0, &types.TypeError{Name: op, Want: "number", Got: args[1]}
	}
	return x.Num, y.Num, nil
}

func plus(args []types.Data) (types.Data, error) {
	x, y, err := prepNumbers(args, "+")
	if err != nil {
		return nil, err
	}
	return types.Number(x + y), nil
}

func minus(args []types.Data) (types.Data, error) {
	x, y, err := prepNumbers(args, "-")
	if err != nil {
		return nil, err
	}
	return types.Number(x - y), nil
}

func times(args []types.Data) (types.Data, error) {
	x, y, err := prepNumbers(args, "*")
	if err != nil {
		return nil, err
	}
	return types.Number(x * y), nil
}

// Integer division, truncating toward zero.
func div(args []types.Data) (types.Data, error) {
	x, y, err := prepNumbers(args, "/")
	if err != nil {
		return nil, err
	}
	if y == 0 {
		return nil, &types.DivideByZeroError{}
	}
	return types.Number(x / y), nil
}

// Output
func printList(args []types.Data, readable bool, sep string) string {
	strs := make([]string, len(args))
	for i, expr := range args {
		strs[i] = printer.PrintStr(expr, readable)
	}
	return strings.Join(strs, sep)
}

func prStr(args []types.Data) (types.Data, error) {
	return types.String(printList(args, true, " ")), nil
}

func str(args []types.Data) (types.Data, error) {
	return types.String(printList(args, false, "")), nil
}

func emit(out io.Writer, s string) (types.Data, error) {
	if _, err := fmt.Fprintln(out, s); err != nil {
		return nil, err
	}
	return types.Nil, nil
}

// Lists
func list(args []types.Data) (types.Data, error) {
	members := make([]types.Data, len(args))
	copy(members, args)
	return types.List(members...), nil
}

func listQ(args []types.Data) (types.Data, error) {
	if err := arity("list?", args, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(*types.DList)
	return types.Bool(ok), nil
}

func collectionLen(d types.Data) (int, bool) {
	if m, ok := d.(*types.DHashmap); ok {
		return m.Len(), true
	}
	members, ok := types.Members(d)
	return len(members), ok
}

func emptyQ(args []types.Data) (types.Data, error) {
	if err := arity("empty?", args, 1); err != nil {
		return nil, err
	}
	n, ok := collectionLen(args[0])
	if !ok {
		return nil, &types.TypeError{Name: "empty?", Want: "collection", Got: args[0]}
	}
	return types.Bool(n == 0), nil
}

func count(args []types.Data) (types.Data, error) {
	if len(args) > 1 {
		return nil, &types.ArityError{Name: "count", Want: "0 or 1", Got: len(args)}
	}
	if len(args) == 0 {
		return types.Number(0), nil
	}
	if _, ok := args[0].(*types.DNil); ok {
		return types.Number(0), nil
	}

	n, ok := collectionLen(args[0])
	if !ok {
		return nil, &types.TypeError{Name: "count", Want: "collection or nil", Got: args[0]}
	}
	return types.Number(int64(n)), nil
}

// Comparisons
func equal(args []types.Data) (types.Data, error) {
	if err := arity("=", args, 2); err != nil {
		return nil, err
	}
	return types.Bool(types.Equal(args[0], args[1])), nil
}

func nilQ(args []types.Data) (types.Data, error) {
	if err := arity("nil?", args, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(*types.DNil)
	return types.Bool(ok), nil
}

func lt(args []types.Data) (types.Data, error) {
	x, y, err := prepNumbers(args, "<")
	if err != nil {
		return nil, err
	}
	return types.Bool(x < y), nil
}

func gt(args []types.Data) (types.Data, error) {
	x, y, err := prepNumbers(args, ">")
	if err != nil {
		return nil, err
	}
	return types.Bool(x > y), nil
}

func lte(args []types.Data) (types.Data, error) {
	x, y, err := prepNumbers(args, "<=")
	if err != nil {
		return nil, err
	}
	return types.Bool(x <= y), nil
}

func gte(args []types.Data) (types.Data, error) {
	x, y, err := prepNumbers(args, ">=")
	if err != nil {
		return nil, err
	}
	return types.Bool(x >= y), nil
}

// Keywords
func keyword(args []types.Data) (types.Data, error) {
	if err := arity("keyword", args, 1); err != nil {
		return nil, err
	}
	switch a := args[0].(type) {
	case *types.DKeyword:
		return a, nil
	case *types.DString:
		return types.Keyword(a.Str), nil
	}
	return nil, &types.TypeError{Name: "keyword", Want: "string or keyword", Got: args[0]}
}

func keywordQ(args []types.Data) (types.Data, error) {
	if err := arity("keyword?", args, 1); err != nil {
		return nil, err
	}
	_, ok := args[0].(*types.DKeyword)
	return types.Bool(ok), nil
}
