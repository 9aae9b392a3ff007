package types

// Data is any value the interpreter can read, evaluate or print.
// The set of implementations is closed: only the D* types below.
type Data interface {
	data()
}

type DNil struct{}

type DBool struct {
	Value bool
}

type DNumber struct {
	Num int64
}

type DString struct {
	Str string
}

type DSymbol struct {
	Name string
}

// DKeyword holds the keyword name without its leading ':'.
type DKeyword struct {
	Name string
}

type DList struct {
	Members []Data
}

type DVector struct {
	Members []Data
}

// DHashmap keeps its entries in insertion order. A key that is set twice
// keeps its first position and takes the last value.
type DHashmap struct {
	index map[string]int
	keys  []Data
	vals  []Data
}

// NativeFn is the signature of builtin functions.
type NativeFn func(args []Data) (Data, error)

type DNative struct {
	Name string
	Fn   NativeFn
}

// DClosure is a user function created by fn*. Params holds the raw
// parameter names, including a "&" marker when the function is variadic.
type DClosure struct {
	Env    *Env
	Params []string
	Body   Data
}

func (*DNil) data() {}
func (*DBool) data() {}
func (*DNumber) data() {}
func (*DString) data() {}
func (*DSymbol) data() {}
func (*DKeyword) data() {}
func (*DList) data() {}
func (*DVector) data() {}
func (*DHashmap) data() {}
func (*DNative) data() {}
func (*DClosure) data() {}

var (
	Nil   Data = &DNil{}
	True  Data = &DBool{true}
	False Data = &DBool{false}
)

func Bool(b bool) Data {
	if b {
		return True
	}
	return False
}

func Number(n int64) Data {
	return &DNumber{n}
}

func String(s string) Data {
	return &DString{s}
}

func Symbol(name string) Data {
	return &DSymbol{name}
}

func Keyword(name string) Data {
	return &DKeyword{name}
}

func List(members ...Data) Data {
	if members == nil {
		members = []Data{}
	}
	return &DList{members}
}

func Vector(members ...Data) Data {
	if members == nil {
		members = []Data{}
	}
	return &DVector{members}
}

// IsTruthy reports whether d counts as true in a conditional: everything
// except nil and false.
func IsTruthy(d Data) bool {
	switch v := d.(type) {
	case *DNil:
		return false
	case *DBool:
		return v.Value
	}
	return true
}

// Members returns the elements of a List or Vector, and false for any
// other value.
func Members(d Data) ([]Data, bool) {
	switch v := d.(type) {
	case *DList:
		return v.Members, true
	case *DVector:
		return v.Members, true
	}
	return nil, false
}

// TypeName is the name used for d in error messages.
func TypeName(d Data) string {
	switch d.(type) {
	case *DNil:
		return "nil"
	case *DBool:
		return "boolean"
	case *DNumber:
		return "number"
	case *DString:
		return "string"
	case *DSymbol:
		return "symbol"
	case *DKeyword:
		return "keyword"
	case *DList:
		return "list"
	case *DVector:
		return "vector"
	case *DHashmap:
		return "hash-map"
	case *DNative, *DClosure:
		return "function"
	}
	return "unknown"
}
