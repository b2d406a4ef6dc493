// Package budgetdoc reads and writes budget definition documents in YAML or JSON.
package budgetdoc

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/budget-dashboard/backend/internal/domain/entity"
)

// Document is the on-disk shape of a budget definition.
type Document struct {
	Income   []Node `yaml:"income" json:"income" validate:"required,dive"`
	Expenses []Node `yaml:"expenses" json:"expenses" validate:"required,dive"`
}

// Node is one category entry of a budget document.
type Node struct {
	Category      string  `yaml:"category" json:"category" validate:"notblank"`
	Amount        *Amount `yaml:"amount" json:"amount" validate:"required"`
	Subcategories []Node  `yaml:"subcategories,omitempty" json:"subcategories,omitempty" validate:"omitempty,dive"`
}

// Amount is either a number or the literal INHERITED (any case).
// Anything else decodes without error but fails validation, so that every bad
// amount in a document is reported together with its path.
type Amount struct {
	value *decimal.Decimal
	raw   string
	valid bool
}

// NewAmount returns an explicit amount.
func NewAmount(value decimal.Decimal) *Amount {
	return &Amount{value: &value, raw: value.String(), valid: true}
}

// InheritedAmount returns an amount derived from children.
func InheritedAmount() *Amount {
	return &Amount{raw: entity.InheritedAmountLiteral, valid: true}
}

// Decimal returns the explicit value, or nil when the amount is inherited.
func (a *Amount) Decimal() *decimal.Decimal {
	return a.value
}

// Valid reports whether the amount was a number or INHERITED.
func (a *Amount) Valid() bool {
	return a.valid
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Amount) UnmarshalYAML(value *yaml.Node) error {
	a.raw = value.Value
	a.valid = false
	a.value = nil

	if value.Kind != yaml.ScalarNode {
		a.raw = "<" + kindName(value.Kind) + ">"
		return nil
	}

	switch value.ShortTag() {
	case "!!str":
		if strings.EqualFold(strings.TrimSpace(value.Value), entity.InheritedAmountLiteral) {
			a.valid = true
		}
	case "!!int", "!!float":
		parsed, err := decimal.NewFromString(strings.ReplaceAll(value.Value, "_", ""))
		if err == nil {
			a.value = &parsed
			a.valid = true
		}
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (a *Amount) MarshalYAML() (interface{}, error) {
	if a.value == nil {
		return entity.InheritedAmountLiteral, nil
	}
	tag := "!!float"
	if a.value.IsInteger() {
		tag = "!!int"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: a.value.String()}, nil
}

// MarshalJSON implements json.Marshaler.
func (a *Amount) MarshalJSON() ([]byte, error) {
	if a.value == nil {
		return json.Marshal(entity.InheritedAmountLiteral)
	}
	return []byte(a.value.String()), nil
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}

// toEntity builds the category subtree. The node must already be validated.
func (n Node) toEntity() *entity.Category {
	category := &entity.Category{Name: strings.TrimSpace(n.Category)}
	if value := n.Amount.Decimal(); value != nil {
		category.SetAmount(*value)
	}
	if len(n.Subcategories) > 0 {
		category.Children = make([]*entity.Category, len(n.Subcategories))
		for i, sub := range n.Subcategories {
			category.Children[i] = sub.toEntity()
		}
	}
	return category
}

func fromEntity(category *entity.Category) Node {
	node := Node{Category: category.Name, Amount: InheritedAmount()}
	if category.Amount != nil {
		node.Amount = NewAmount(*category.Amount)
	}
	for _, child := range category.Children {
		node.Subcategories = append(node.Subcategories, fromEntity(child))
	}
	return node
}
