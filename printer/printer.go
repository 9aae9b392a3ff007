package printer

import (
	"fmt"
	"strconv"
	"strings"

	"mal/types"
)

// PrintStr renders d as text. With readable set, strings are quoted and
// escaped so that reading the output gives back an equal value.
func PrintStr(di types.Data, readable bool) string {
	switch d := di.(type) {
	case *types.DNil:
		return "nil"

	case *types.DBool:
		if d.Value {
			return "true"
		}
		return "false"

	case *types.DNumber:
		return strconv.FormatInt(d.Num, 10)

	case *types.DString:
		if !readable {
			return d.Str
		}
		s := strings.ReplaceAll(d.Str, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		return "\"" + s + "\""

	case *types.DSymbol:
		return d.Name

	case *types.DKeyword:
		return ":" + d.Name

	case *types.DList:
		return "(" + printSeq(d.Members, readable) + ")"

	case *types.DVector:
		return "[" + printSeq(d.Members, readable) + "]"

	case *types.DHashmap:
		outs := make([]string, 0, 2*d.Len())
		_ = d.Each(func(k, v types.Data) error {
			outs = append(outs, PrintStr(k, readable), PrintStr(v, readable))
			return nil
		})
		return "{" + strings.Join(outs, " ") + "}"

	case *types.DNative:
		return "#<function " + d.Name + ">"

	case *types.DClosure:
		return "#<fn (" + strings.Join(d.Params, " ") + ")>"

	default:
		return fmt.Sprintf("#<%#v>", di)
	}
}

func printSeq(members []types.Data, readable bool) string {
	outs := make([]string, len(members))
	for i, m := range members {
		outs[i] = PrintStr(m, readable)
	}
	return strings.Join(outs, " ")
}
