package budgetdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/budget-dashboard/backend/internal/domain/entity"
	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
)

// Format is a budget document serialization.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat resolves a user-supplied format name. An empty name means YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", domainerror.NewBudgetError(
			domainerror.ErrCodeUnsupportedFormat,
			fmt.Sprintf("unsupported document format %q", name),
			domainerror.ErrUnsupportedDocumentFormat,
		)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "application/yaml"
}

// Encode writes the budget as a document. Inherited amounts are written as INHERITED.
func Encode(budget *entity.Budget, format Format) ([]byte, error) {
	doc := Document{
		Income:   make([]Node, 0, len(budget.Income)),
		Expenses: make([]Node, 0, len(budget.Expenses)),
	}
	for _, category := range budget.Income {
		doc.Income = append(doc.Income, fromEntity(category))
	}
	for _, category := range budget.Expenses {
		doc.Expenses = append(doc.Expenses, fromEntity(category))
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode budget as json: %w", err)
		}
		return data, nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode budget as yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode budget as yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeUnsupportedFormat,
			fmt.Sprintf("unsupported document format %q", format),
			domainerror.ErrUnsupportedDocumentFormat,
		)
	}
}

// Codec pairs a Decoder with Encode.
type Codec struct {
	decoder *Decoder
}

// NewCodec creates a new budget document codec.
func NewCodec() *Codec {
	return &Codec{decoder: NewDecoder()}
}

// Decode validates and parses a YAML or JSON document.
func (c *Codec) Decode(data []byte) (*entity.Budget, error) {
	return c.decoder.Decode(data)
}

// Encode writes the budget in the named format and returns its content type.
func (c *Codec) Encode(budget *entity.Budget, format string) ([]byte, string, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, "", err
	}
	data, err := Encode(budget, f)
	if err != nil {
		return nil, "", err
	}
	return data, f.ContentType(), nil
}
