// Package form turns the pending text of the log form into a food entry.
package form

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xolan/nutritrack/internal/food"
)

// ErrIncomplete is returned when name or calories is empty.
var ErrIncomplete = errors.New("name and calories are required")

// Field names used in FieldError.
const (
	FieldName     = "name"
	FieldCategory = "category"
	FieldCalories = "calories"
	FieldProtein  = "protein"
	FieldCarbs    = "carbs"
	FieldFat      = "fat"
)

// FieldError reports a field whose text could not be used.
type FieldError struct {
	Field string
	Value string
}

func (e *FieldError) Error() string {
	if e.Field == FieldCategory {
		return fmt.Sprintf("unknown category %q", e.Value)
	}
	return fmt.Sprintf("%s: %q is not a number", e.Field, e.Value)
}

// Fields is the pending, unvalidated form input.
type Fields struct {
	Name     string
	Category string
	Calories string
	Protein  string
	Carbs    string
	Fat      string
}

// DefaultFields returns empty text with the default category selected.
func DefaultFields() Fields {
	return Fields{Category: string(food.DefaultCategory())}
}

// Adder receives the entry built by a successful submit.
type Adder interface {
	Add(e food.Entry) error
}

// Controller owns the pending fields between submits.
type Controller struct {
	Fields Fields
	Now    func() time.Time
	NewID  func() string
}

// NewController returns a controller with default fields, the wall clock
// and random UUIDs.
func NewController() *Controller {
	return &Controller{
		Fields: DefaultFields(),
		Now:    time.Now,
		NewID:  uuid.NewString,
	}
}

// Reset puts the fields back to their defaults.
func (c *Controller) Reset() {
	c.Fields = DefaultFields()
}

// Build validates the fields and returns the entry they describe
// without touching any store.
func (c *Controller) Build() (food.Entry, error) {
	return Build(c.Fields, c.Now(), c.NewID())
}

// Submit builds the entry, hands it to adder and resets the fields.
// On any error the fields are left as they were.
func (c *Controller) Submit(adder Adder) (*food.Entry, error) {
	e, err := c.Build()
	if err != nil {
		return nil, err
	}
	if err := adder.Add(e); err != nil {
		return nil, err
	}
	c.Reset()
	return &e, nil
}

// Build validates f and returns the entry it describes.
// Name and calories are required; the other macros default to 0.
func Build(f Fields, now time.Time, id string) (food.Entry, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" || strings.TrimSpace(f.Calories) == "" {
		return food.Entry{}, ErrIncomplete
	}

	category := food.DefaultCategory()
	if strings.TrimSpace(f.Category) != "" {
		c, ok := food.ParseCategory(f.Category)
		if !ok || !c.IsValid() {
			return food.Entry{}, &FieldError{Field: FieldCategory, Value: f.Category}
		}
		category = c
	}

	calories, err := Coerce(FieldCalories, f.Calories)
	if err != nil {
		return food.Entry{}, err
	}
	protein, err := Coerce(FieldProtein, f.Protein)
	if err != nil {
		return food.Entry{}, err
	}
	carbs, err := Coerce(FieldCarbs, f.Carbs)
	if err != nil {
		return food.Entry{}, err
	}
	fat, err := Coerce(FieldFat, f.Fat)
	if err != nil {
		return food.Entry{}, err
	}

	return food.Entry{
		ID:        id,
		Name:      name,
		Category:  category,
		Calories:  calories,
		Protein:   protein,
		Carbs:     carbs,
		Fat:       fat,
		Timestamp: now.UTC(),
	}, nil
}

// Coerce converts the text of a numeric field. Blank text is 0.
// Anything that is not a finite decimal number is a *FieldError.
func Coerce(field, text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0, &FieldError{Field: field, Value: text}
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) {
		return 0, &FieldError{Field: field, Value: text}
	}
	return f, nil
}
