package sankey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xjtian/monarch-sankeymatic/internal/config"
)

func leaf(name string) config.CategoryNode {
	return config.CategoryNode{Name: name}
}

func group(name string, children ...config.CategoryNode) config.CategoryNode {
	return config.CategoryNode{Name: name, Children: children}
}

func tree(nodes ...config.CategoryNode) config.CategoryTree {
	return config.CategoryTree{Nodes: nodes}
}

func TestBuildSpending_FoodRollup(t *testing.T) {
	net := []CategoryAmount{
		{"Coffee Shops", 100},
		{"Fast Food", 50},
		{"Groceries", 400},
		{"Restaurants", 200},
	}
	food := tree(group("Food",
		leaf("Coffee Shops"), leaf("Fast Food"), leaf("Groceries"), leaf("Restaurants")))

	edges, total, err := BuildSpending(net, food, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(750), total)

	require.Len(t, edges, 5)
	assert.Equal(t, Edge{"Food", 100, "Coffee Shops"}, edges[0])
	assert.Equal(t, Edge{"Food", 50, "Fast Food"}, edges[1])
	assert.Equal(t, Edge{"Food", 400, "Groceries"}, edges[2])
	assert.Equal(t, Edge{"Food", 200, "Restaurants"}, edges[3])
	// Group total equals the sum of the four leaves.
	assert.Equal(t, Edge{"Spending", 750, "Food"}, edges[4])
}

func TestBuildSpending_RollupConsistency(t *testing.T) {
	net := []CategoryAmount{
		{"Rent", 2000},
		{"Electric", 120},
		{"Groceries", 400},
		{"Restaurants", 200},
	}
	h := tree(
		group("Housing", leaf("Rent"), group("Utilities", leaf("Electric"))),
		group("Food", leaf("Groceries"), leaf("Restaurants")),
	)

	edges, total, err := BuildSpending(net, h, 0)
	require.NoError(t, err)

	// Root total equals the sum of all leaves.
	assert.Equal(t, int64(2720), total)

	// Every group edge equals the sum of its children's totals.
	byTarget := make(map[string]int64)
	for _, e := range edges {
		byTarget[e.Target] = e.Amount
	}
	assert.Equal(t, int64(120), byTarget["Utilities"])
	assert.Equal(t, int64(2120), byTarget["Housing"])
	assert.Equal(t, int64(600), byTarget["Food"])
}

func TestBuildSpending_ConfigOrder(t *testing.T) {
	net := []CategoryAmount{
		{"Groceries", 400},
		{"Rent", 2000},
	}
	h := tree(group("Housing", leaf("Rent")), group("Food", leaf("Groceries")))

	edges, _, err := BuildSpending(net, h, 0)
	require.NoError(t, err)

	// Housing comes first because the config lists it first.
	require.Len(t, edges, 4)
	assert.Equal(t, "Rent", edges[0].Target)
	assert.Equal(t, "Housing", edges[1].Target)
	assert.Equal(t, "Groceries", edges[2].Target)
	assert.Equal(t, "Food", edges[3].Target)
}

func TestBuildSpending_MinAmountMiscRollup(t *testing.T) {
	net := []CategoryAmount{
		{"Coffee Shops", 60},
		{"Fast Food", 40},
		{"Groceries", 400},
	}
	food := tree(group("Food", leaf("Coffee Shops"), leaf("Fast Food"), leaf("Groceries")))

	edges, total, err := BuildSpending(net, food, 100)
	require.NoError(t, err)

	// The two under-threshold leaves fold into a misc node; the total is
	// preserved either way.
	assert.Equal(t, int64(500), total)
	require.Len(t, edges, 3)
	assert.Equal(t, Edge{"Food", 400, "Groceries"}, edges[0])
	assert.Equal(t, Edge{"Food", 100, "Misc. Food spending"}, edges[1])
	assert.Equal(t, Edge{"Spending", 500, "Food"}, edges[2])
}

func TestBuildSpending_UnmappedLeafFails(t *testing.T) {
	net := []CategoryAmount{{"Groceries", 400}}
	food := tree(group("Food", leaf("Groceries"), leaf("Restaurants")))

	_, _, err := BuildSpending(net, food, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Restaurants"`)
}

func TestBuildNetIncome(t *testing.T) {
	net := []CategoryAmount{
		{"Groceries", 400},
		{"Interest", -50},
		{"Paycheck", -1200},
	}

	edges, income := BuildNetIncome(net, []string{"Paycheck", "Interest"}, 750)
	assert.Equal(t, int64(1250), income)

	require.Len(t, edges, 3)
	assert.Equal(t, Edge{"Interest", 50, "Net Income"}, edges[0])
	assert.Equal(t, Edge{"Paycheck", 1200, "Net Income"}, edges[1])
	assert.Equal(t, Edge{"Net Income", 750, "Spending"}, edges[2])
}

func TestRollup(t *testing.T) {
	net := []CategoryAmount{
		{"Brokerage Deposit", 300},
		{"Groceries", 400},
		{"Retirement", 500},
	}

	edges, total := Rollup(net, NetIncomeNode, SavingsNode, []string{"Brokerage Deposit", "Retirement"})
	assert.Equal(t, int64(800), total)

	require.Len(t, edges, 3)
	assert.Equal(t, Edge{"Net Income", 800, "Savings"}, edges[0])
	assert.Equal(t, Edge{"Savings", 300, "Brokerage Deposit"}, edges[1])
	assert.Equal(t, Edge{"Savings", 500, "Retirement"}, edges[2])
}

func TestRollup_NoMatches(t *testing.T) {
	edges, total := Rollup([]CategoryAmount{{"Groceries", 400}}, NetIncomeNode, TaxesNode, []string{"Federal Tax"})
	assert.Nil(t, edges)
	assert.Zero(t, total)
}

func TestBalanceGap(t *testing.T) {
	surplus, ok := BalanceGap(1500, 750, 300, 200)
	require.True(t, ok)
	assert.Equal(t, Edge{"Net Income", 250, "Yearly Surplus"}, surplus)

	deficit, ok := BalanceGap(1000, 900, 200, 100)
	require.True(t, ok)
	assert.Equal(t, Edge{"Yearly Deficit", 200, "Net Income"}, deficit)

	_, ok = BalanceGap(1250, 750, 300, 200)
	assert.False(t, ok)
}

func TestUnmappedCategories(t *testing.T) {
	net := []CategoryAmount{
		{"Groceries", 400},
		{"Gambling", 90},
		{"Paycheck", -1200},
	}
	h := tree(group("Food", leaf("Groceries")))

	unmapped := UnmappedCategories(net, h, []string{"Paycheck"}, nil, nil)
	assert.Equal(t, []string{"Gambling"}, unmapped)
}

func TestUnmappedCategories_AllMapped(t *testing.T) {
	net := []CategoryAmount{
		{"Federal Tax", 300},
		{"Groceries", 400},
	}
	h := tree(group("Food", leaf("Groceries")))

	assert.Empty(t, UnmappedCategories(net, h, nil, nil, []string{"Federal Tax"}))
}

func TestEdgeString(t *testing.T) {
	e := Edge{Source: "Spending", Amount: 750, Target: "Food"}
	assert.Equal(t, "Spending [750] Food", e.String())
}

func TestRender(t *testing.T) {
	out := Render([]Edge{
		{"Food", 400, "Groceries"},
		{"Spending", 400, "Food"},
	})
	assert.Equal(t, "Food [400] Groceries\nSpending [400] Food\n", out)
}
