package types

import "fmt"

// ParseError is returned by the reader for malformed or truncated input.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Msg
}

type UnboundSymbolError struct {
	Name string
}

func (e *UnboundSymbolError) Error() string {
	return fmt.Sprintf("'%s' not found", e.Name)
}

// ArityError reports a special form or function called with the wrong
// number of arguments. Want is a human readable description such as "2"
// or "at least 1".
type ArityError struct {
	Name string
	Want string
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: expected %s argument(s), got %d", e.Name, e.Want, e.Got)
}

type TypeError struct {
	Name string
	Want string
	Got  Data
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Name, e.Want, TypeName(e.Got))
}

type NotCallableError struct {
	Value Data
}

func (e *NotCallableError) Error() string {
	return fmt.Sprintf("cannot call non-function %s", TypeName(e.Value))
}

type DivideByZeroError struct{}

func (e *DivideByZeroError) Error() string {
	return "/: division by zero"
}
