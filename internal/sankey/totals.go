package sankey

import (
	"sort"

	"github.com/xjtian/monarch-sankeymatic/internal/store"
)

// CategoryAmount is one category's whole-unit net spend. Spending is
// positive and income negative, matching the flow direction of the diagram.
type CategoryAmount struct {
	Category string
	Amount   int64
}

// NetSpend converts signed category sums into net spend amounts and applies
// per-category offsets. Sums arrive negated (an expense export row is
// negative) and truncated to whole units per SankeyMatic convention.
// An offset for a category with no transactions introduces the category;
// such entries are appended in sorted name order for determinism.
func NetSpend(sums []store.CategorySum, offsets map[string]int64) []CategoryAmount {
	net := make([]CategoryAmount, 0, len(sums))
	index := make(map[string]int, len(sums))
	for _, s := range sums {
		index[s.Category] = len(net)
		net = append(net, CategoryAmount{
			Category: s.Category,
			Amount:   s.Total.Neg().IntPart(),
		})
	}

	names := make([]string, 0, len(offsets))
	for name := range offsets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if i, ok := index[name]; ok {
			net[i].Amount += offsets[name]
		} else {
			net = append(net, CategoryAmount{Category: name, Amount: offsets[name]})
		}
	}
	return net
}
