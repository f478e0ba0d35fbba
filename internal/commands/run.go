package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/xjtian/monarch-sankeymatic/internal/config"
	"github.com/xjtian/monarch-sankeymatic/internal/importer"
	"github.com/xjtian/monarch-sankeymatic/internal/sankey"
	"github.com/xjtian/monarch-sankeymatic/internal/store"
)

const (
	modeSankey = "sankey"
	modeRaw    = "raw"
)

type runOptions struct {
	configPath string
	mode       string
	onlySpend  bool
}

// run executes the load -> filter -> aggregate -> render pipeline, writing
// diagram or table output to w. Log output goes to the default slog logger
// so stdout stays pasteable into SankeyMatic.
func run(ctx context.Context, w io.Writer, opts runOptions) error {
	if opts.mode != modeSankey && opts.mode != modeRaw {
		return fmt.Errorf("unknown mode %q (expected %q or %q)", opts.mode, modeSankey, modeRaw)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	parser := importer.DefaultRegistry().Get("monarch")
	txns, err := importer.ParseFile(parser, cfg.TransactionsFile)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "transactions parsed", "file", cfg.TransactionsFile, "count", len(txns))

	st, err := store.Open(cfg.DBFile)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Replace(ctx, txns); err != nil {
		return err
	}
	sums, err := st.SumByCategory(ctx, cfg.Exclusions())
	if err != nil {
		return err
	}

	net := sankey.NetSpend(sums, cfg.CategoryOffsets)

	if opts.mode == modeRaw {
		renderRaw(w, net)
		return nil
	}

	unmapped := sankey.UnmappedCategories(net, cfg.Categories,
		cfg.NetIncomeCategories, cfg.SavingCategories, cfg.TaxCategories)
	if len(unmapped) > 0 {
		return fmt.Errorf("categories present in data but missing from the configured hierarchy: %s (run with --mode=raw to list net spend by category)",
			strings.Join(unmapped, ", "))
	}

	edges, totalSpend, err := sankey.BuildSpending(net, cfg.Categories, cfg.MinCategoryAmount)
	if err != nil {
		return fmt.Errorf("building spending diagram: %w", err)
	}

	if !opts.onlySpend {
		incomeEdges, netIncome := sankey.BuildNetIncome(net, cfg.NetIncomeCategories, totalSpend)
		edges = append(edges, incomeEdges...)

		savingEdges, savings := sankey.Rollup(net, sankey.NetIncomeNode, sankey.SavingsNode, cfg.SavingCategories)
		edges = append(edges, savingEdges...)

		taxEdges, taxes := sankey.Rollup(net, sankey.NetIncomeNode, sankey.TaxesNode, cfg.TaxCategories)
		edges = append(edges, taxEdges...)

		if gap, ok := sankey.BalanceGap(netIncome, totalSpend, savings, taxes); ok {
			slog.WarnContext(ctx, "gap between net income and outflows, adding a balancing node so flows line up",
				"edge", gap.String())
			edges = append(edges, gap)
		}
	}

	_, err = io.WriteString(w, sankey.Render(edges))
	return err
}

// renderRaw prints net spend per category as a table, in the same order the
// sankey mode would consume it.
func renderRaw(w io.Writer, net []sankey.CategoryAmount) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Category", "Net Spend"})
	for _, ca := range net {
		table.Append([]string{ca.Category, strconv.FormatInt(ca.Amount, 10)})
	}
	table.Render()
}
