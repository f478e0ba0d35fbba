package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xjtian/monarch-sankeymatic/internal/model"
)

// Config represents the top-level config.yaml configuration.
type Config struct {
	TransactionsFile    string           `yaml:"transactions_file"`
	DBFile              string           `yaml:"db_file,omitempty"`
	MinCategoryAmount   int64            `yaml:"min_category_amount,omitempty"`
	Categories          CategoryTree     `yaml:"categories"`
	NetIncomeCategories []string         `yaml:"net_income_categories,omitempty"`
	ExcludeCategories   []string         `yaml:"exclude_categories,omitempty"`
	ExcludeAccounts     []string         `yaml:"exclude_accounts,omitempty"`
	ExcludeLabels       []string         `yaml:"exclude_labels,omitempty"`
	CategoryOffsets     map[string]int64 `yaml:"category_offsets,omitempty"`
	SavingCategories    []string         `yaml:"saving_categories,omitempty"`
	TaxCategories       []string         `yaml:"tax_categories,omitempty"`
}

// CategoryNode is one category in the configured hierarchy.
// An empty Children list marks a leaf.
type CategoryNode struct {
	Name     string
	Children []CategoryNode
}

// Leaf reports whether the node has no subcategories.
func (n CategoryNode) Leaf() bool { return len(n.Children) == 0 }

// CategoryTree is an ordered category hierarchy. Unlike a plain
// map[string]any it preserves document order, which fixes the order
// categories are rendered in.
type CategoryTree struct {
	Nodes []CategoryNode
}

// Empty reports whether the tree has no categories.
func (t CategoryTree) Empty() bool { return len(t.Nodes) == 0 }

// UnmarshalYAML decodes a nested mapping of category name to subcategories,
// where a null value marks a leaf.
func (t *CategoryTree) UnmarshalYAML(value *yaml.Node) error {
	nodes, err := decodeCategoryNodes(value)
	if err != nil {
		return err
	}
	t.Nodes = nodes
	return nil
}

// MarshalYAML re-encodes the tree as an ordered mapping.
func (t CategoryTree) MarshalYAML() (interface{}, error) {
	return encodeCategoryNodes(t.Nodes), nil
}

func decodeCategoryNodes(n *yaml.Node) ([]CategoryNode, error) {
	if n.Tag == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: category hierarchy must be a mapping of name to subcategories", n.Line)
	}
	var nodes []CategoryNode
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		children, err := decodeCategoryNodes(val)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, CategoryNode{Name: key.Value, Children: children})
	}
	return nodes, nil
}

func encodeCategoryNodes(nodes []CategoryNode) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, n := range nodes {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: n.Name}
		var val *yaml.Node
		if n.Leaf() {
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: ""}
		} else {
			val = encodeCategoryNodes(n.Children)
		}
		m.Content = append(m.Content, key, val)
	}
	return m
}

// Load reads a config file from disk. Unknown keys are rejected so a typo'd
// exclusion list fails loudly instead of silently not excluding anything.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	var missing []string
	if c.TransactionsFile == "" {
		missing = append(missing, "transactions_file")
	}
	if c.Categories.Empty() {
		missing = append(missing, "categories")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required keys: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Exclusions returns the configured exclusion sets.
func (c *Config) Exclusions() model.Exclusions {
	return model.Exclusions{
		Categories: c.ExcludeCategories,
		Accounts:   c.ExcludeAccounts,
		Tags:       c.ExcludeLabels,
	}
}
