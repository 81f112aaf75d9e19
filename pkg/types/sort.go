package types

type SortKey string

const (
	SortByName   SortKey = "name"
	SortByPrice  SortKey = "price"
	SortByRating SortKey = "rating"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortByName, SortByPrice, SortByRating:
		return true
	}
	return false
}

// ParseSortKey falls back to name ordering for unknown keys.
func ParseSortKey(s string) SortKey {
	k := SortKey(s)
	if k.Valid() {
		return k
	}
	return SortByName
}
