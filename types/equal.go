package types

// Equal reports whether a and b are structurally equal. Values of
// different variants are never equal; in particular a List never equals a
// Vector, even with the same members. Functions are equal only to
// themselves.
func Equal(a, b Data) bool {
	switch x := a.(type) {
	case *DNil:
		_, ok := b.(*DNil)
		return ok
	case *DBool:
		y, ok := b.(*DBool)
		return ok && x.Value == y.Value
	case *DNumber:
		y, ok := b.(*DNumber)
		return ok && x.Num == y.Num
	case *DString:
		y, ok := b.(*DString)
		return ok && x.Str == y.Str
	case *DSymbol:
		y, ok := b.(*DSymbol)
		return ok && x.Name == y.Name
	case *DKeyword:
		y, ok := b.(*DKeyword)
		return ok && x.Name == y.Name
	case *DList:
		y, ok := b.(*DList)
		return ok && equalMembers(x.Members, y.Members)
	case *DVector:
		y, ok := b.(*DVector)
		return ok && equalMembers(x.Members, y.Members)
	case *DHashmap:
		y, ok := b.(*DHashmap)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i, k := range x.keys {
			yv, found := y.Get(k)
			if !found || !Equal(x.vals[i], yv) {
				return false
			}
		}
		return true
	}

	return a == b
}

func equalMembers(xs, ys []Data) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !Equal(xs[i], ys[i]) {
			return false
		}
	}
	return true
}
