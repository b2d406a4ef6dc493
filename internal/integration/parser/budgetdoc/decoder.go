package budgetdoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/budget-dashboard/backend/internal/domain/entity"
	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
)

// Decoder parses budget documents and validates them before any tree is built.
type Decoder struct {
	validate *validator.Validate
}

// NewDecoder creates a new budget document decoder.
func NewDecoder() *Decoder {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	validate.RegisterStructValidation(validateNodeAmount, Node{})

	return &Decoder{validate: validate}
}

func validateNodeAmount(sl validator.StructLevel) {
	node := sl.Current().Interface().(Node)
	if node.Amount != nil && !node.Amount.Valid() {
		sl.ReportError(node.Amount.raw, "amount", "Amount", "budgetamount", "")
	}
}

// Decode parses a YAML or JSON budget document. JSON is accepted because it is
// read as YAML 1.2.
func (d *Decoder) Decode(data []byte) (*entity.Budget, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidDocument,
			[]string{"document is empty"},
			domainerror.ErrInvalidBudgetDocument,
		)
	}

	// Compacting strips tab indentation, which YAML rejects outside flow content.
	if json.Valid(data) {
		var compact bytes.Buffer
		if err := json.Compact(&compact, data); err == nil {
			data = compact.Bytes()
		}
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, domainerror.NewValidationError(
				domainerror.ErrCodeInvalidDocument,
				typeErr.Errors,
				domainerror.ErrInvalidBudgetDocument,
			)
		}
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidDocument,
			[]string{err.Error()},
			domainerror.ErrInvalidBudgetDocument,
		)
	}

	return d.Build(&doc)
}

// DecodeReader reads the whole reader and decodes it.
func (d *Decoder) DecodeReader(r io.Reader) (*entity.Budget, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read budget document: %w", err)
	}
	return d.Decode(data)
}

// Build validates a parsed document and constructs the budget with its indexes.
func (d *Decoder) Build(doc *Document) (*entity.Budget, error) {
	if err := d.validate.Struct(doc); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("failed to validate budget document: %w", err)
		}
		return nil, domainerror.NewValidationError(
			codeFor(fieldErrs),
			describe(fieldErrs),
			domainerror.ErrInvalidBudgetDocument,
		)
	}

	income := make([]*entity.Category, len(doc.Income))
	for i, node := range doc.Income {
		income[i] = node.toEntity()
	}
	expenses := make([]*entity.Category, len(doc.Expenses))
	for i, node := range doc.Expenses {
		expenses[i] = node.toEntity()
	}

	if duplicates := entity.DuplicateNames(income, expenses); len(duplicates) > 0 {
		violations := make([]string, len(duplicates))
		for i, name := range duplicates {
			violations[i] = fmt.Sprintf("category %q is defined more than once", name)
		}
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeDuplicateCategory,
			violations,
			domainerror.ErrDuplicateCategoryName,
		)
	}

	return entity.NewBudget(income, expenses), nil
}

func codeFor(fieldErrs validator.ValidationErrors) domainerror.BudgetErrorCode {
	for _, fe := range fieldErrs {
		if fe.Tag() == "budgetamount" {
			return domainerror.ErrCodeInvalidAmountType
		}
	}
	return domainerror.ErrCodeMissingField
}

func describe(fieldErrs validator.ValidationErrors) []string {
	violations := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := fe.Namespace()
		if idx := strings.Index(path, "."); idx >= 0 {
			path = path[idx+1:]
		}

		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "notblank":
			msg = "must not be blank"
		case "budgetamount":
			msg = fmt.Sprintf("must be a number or %q, got %q", entity.InheritedAmountLiteral, fmt.Sprint(fe.Value()))
		default:
			msg = "failed " + fe.Tag() + " validation"
		}
		violations = append(violations, path+" "+msg)
	}
	return violations
}
