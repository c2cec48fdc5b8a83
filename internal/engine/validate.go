package engine

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/donaldgifford/stock-tracker/pkg/status"
	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

// Candidate is a record as entered by an operator or read from an import
// row, before normalization. Status is free text.
type Candidate struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
	Supplier string `json:"supplier"`
	Note     string `json:"note"`
	Status   string `json:"status"`
}

// MaxQuantity is the largest quantity a row can hold; the quantite column is
// a 32-bit INTEGER.
const MaxQuantity = math.MaxInt32

// candidateRules carries the validation tags applied to a normalized
// candidate.
type candidateRules struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Type     string `json:"type"     validate:"max=255"`
	Quantity int    `json:"quantity" validate:"gte=0,lte=2147483647"`
	Supplier string `json:"supplier" validate:"max=255"`
	Status   string `json:"status"   validate:"canonical_status"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("canonical_status", func(fl validator.FieldLevel) bool {
		return domain.Status(fl.Field().String()).Valid()
	}); err != nil {
		panic("registering canonical_status validation: " + err.Error())
	}

	return v
}

// normalize trims the text fields and maps the status onto the canonical
// vocabulary. It never fails.
func (c *Candidate) normalize() domain.Equipment {
	return domain.Equipment{
		Name:     strings.TrimSpace(c.Name),
		Type:     strings.TrimSpace(c.Type),
		Quantity: c.Quantity,
		Supplier: strings.TrimSpace(c.Supplier),
		Note:     strings.TrimSpace(c.Note),
		Status:   status.Normalize(c.Status),
	}
}

// prepare normalizes and validates c.
func (c *Candidate) prepare() (domain.Equipment, error) {
	e := c.normalize()
	if err := validateEquipment(&e); err != nil {
		return domain.Equipment{}, err
	}
	return e, nil
}

func validateEquipment(e *domain.Equipment) error {
	err := validate.Struct(candidateRules{
		Name:     e.Name,
		Type:     e.Type,
		Quantity: e.Quantity,
		Supplier: e.Supplier,
		Status:   string(e.Status),
	})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: err.Error(), Err: err}
	}

	fe := verrs[0]
	return &ValidationError{Field: fe.Field(), Message: fieldMessage(fe), Err: err}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "canonical_status":
		return fmt.Sprintf("must be one of %q, %q, %q",
			domain.StatusFunctional, domain.StatusBroken, domain.StatusMaintenance)
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

func requireID(id int64) error {
	if id <= 0 {
		return &ValidationError{Field: "id", Message: ErrNoSelection.Error(), Err: ErrNoSelection}
	}
	return nil
}
