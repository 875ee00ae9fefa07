package planning

import (
	"sort"

	"github.com/shopspring/decimal"
)

func sortedIDs(m map[string]decimal.Decimal) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
