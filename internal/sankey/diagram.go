// Package sankey folds net spend per category up through the configured
// hierarchy into SankeyMatic flow edges.
package sankey

import (
	"fmt"
	"strings"

	"github.com/xjtian/monarch-sankeymatic/internal/config"
)

// Diagram node names.
const (
	SpendingNode  = "Spending"
	NetIncomeNode = "Net Income"
	SavingsNode   = "Savings"
	TaxesNode     = "Taxes"
	SurplusNode   = "Yearly Surplus"
	DeficitNode   = "Yearly Deficit"
)

// Edge is one flow line of the diagram.
type Edge struct {
	Source string
	Amount int64
	Target string
}

// String formats the edge in SankeyMatic syntax.
func (e Edge) String() string {
	return fmt.Sprintf("%s [%d] %s", e.Source, e.Amount, e.Target)
}

// Render formats edges one per line.
func Render(edges []Edge) string {
	var b strings.Builder
	for _, e := range edges {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// BuildSpending walks the configured category tree rooted at the implicit
// Spending node and returns the flow edges plus total spend. A group's edge
// amount always equals the sum of its children's totals.
func BuildSpending(net []CategoryAmount, tree config.CategoryTree, minAmount int64) ([]Edge, int64, error) {
	amounts := make(map[string]int64, len(net))
	for _, ca := range net {
		amounts[ca.Category] = ca.Amount
	}
	return buildCategory(amounts, "", SpendingNode, tree.Nodes, minAmount)
}

func buildCategory(amounts map[string]int64, parent, name string, children []config.CategoryNode, minAmount int64) ([]Edge, int64, error) {
	// Leaf: the category must have a direct net spend amount.
	if len(children) == 0 {
		amt, ok := amounts[name]
		if !ok {
			return nil, 0, fmt.Errorf("no spend amount found for leaf category %q", name)
		}
		if amt < minAmount {
			// Under the threshold: no edge of its own, rolls into the
			// parent's misc bucket.
			return nil, amt, nil
		}
		return []Edge{{Source: parent, Amount: amt, Target: name}}, amt, nil
	}

	var edges []Edge
	var total, misc int64
	for _, child := range children {
		sub, subTotal, err := buildCategory(amounts, name, child.Name, child.Children, minAmount)
		if err != nil {
			return nil, 0, err
		}
		if len(sub) == 0 {
			misc += subTotal
		}
		edges = append(edges, sub...)
		total += subTotal
	}

	if misc > 0 {
		edges = append(edges, Edge{
			Source: name,
			Amount: misc,
			Target: fmt.Sprintf("Misc. %s spending", name),
		})
	}
	if parent != "" {
		edges = append(edges, Edge{Source: parent, Amount: total, Target: name})
	}
	return edges, total, nil
}

// BuildNetIncome renders income categories flowing into Net Income plus the
// Net Income -> Spending trunk edge. Income categories carry negative net
// spend, so amounts are negated back to positive inflows. Returns the edges
// and the total net income.
func BuildNetIncome(net []CategoryAmount, incomeCategories []string, totalSpend int64) ([]Edge, int64) {
	income := toSet(incomeCategories)

	var edges []Edge
	var total int64
	for _, ca := range net {
		if !income[ca.Category] {
			continue
		}
		edges = append(edges, Edge{Source: ca.Category, Amount: -ca.Amount, Target: NetIncomeNode})
		total += -ca.Amount
	}
	edges = append(edges, Edge{Source: NetIncomeNode, Amount: totalSpend, Target: SpendingNode})
	return edges, total
}

// Rollup groups the categories in filter under a single node named name,
// hanging off parent. Returns nil edges when no category matches.
func Rollup(net []CategoryAmount, parent, name string, filter []string) ([]Edge, int64) {
	members := toSet(filter)

	var matched []CategoryAmount
	var total int64
	for _, ca := range net {
		if members[ca.Category] {
			matched = append(matched, ca)
			total += ca.Amount
		}
	}
	if len(matched) == 0 {
		return nil, 0
	}

	edges := []Edge{{Source: parent, Amount: total, Target: name}}
	for _, ca := range matched {
		edges = append(edges, Edge{Source: name, Amount: ca.Amount, Target: ca.Category})
	}
	return edges, total
}

// BalanceGap returns the edge balancing net income against total outflows so
// node flows line up. Reports false when income and outflows already match.
func BalanceGap(netIncome, totalSpend, savings, taxes int64) (Edge, bool) {
	gap := netIncome - totalSpend - savings - taxes
	switch {
	case gap > 0:
		return Edge{Source: NetIncomeNode, Amount: gap, Target: SurplusNode}, true
	case gap < 0:
		return Edge{Source: DeficitNode, Amount: -gap, Target: NetIncomeNode}, true
	}
	return Edge{}, false
}

// UnmappedCategories returns categories that have a net amount but appear
// nowhere in the hierarchy or the income, saving, and tax lists. A non-empty
// result means the hierarchy config is incomplete.
func UnmappedCategories(net []CategoryAmount, tree config.CategoryTree, income, saving, tax []string) []string {
	known := toSet(income)
	for _, c := range saving {
		known[c] = true
	}
	for _, c := range tax {
		known[c] = true
	}
	addTreeNames(known, tree.Nodes)

	var unmapped []string
	for _, ca := range net {
		if !known[ca.Category] {
			unmapped = append(unmapped, ca.Category)
		}
	}
	return unmapped
}

func addTreeNames(set map[string]bool, nodes []config.CategoryNode) {
	for _, n := range nodes {
		set[n.Name] = true
		addTreeNames(set, n.Children)
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
