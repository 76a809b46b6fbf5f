package book

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"bookcatalog/internal/entity"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("notblank", validateNotBlank)
	// Decimals are checked by sign.
	validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
		return v.Interface().(decimal.Decimal).Sign()
	}, decimal.Decimal{})
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Field order is the order rules are reported in.
type bookRules struct {
	ISBN     string          `validate:"notblank"`
	Title    string          `validate:"notblank"`
	Category string          `validate:"notblank"`
	Authors  []string        `validate:"min=1,dive,notblank"`
	Year     int             `validate:"gt=0"`
	Price    decimal.Decimal `validate:"gte=0"`
}

// Validate checks b against the required-field rules and reports the first
// rule it breaks.
func Validate(b *entity.Book) error {
	if b == nil {
		return validationErr("book", "book cannot be null")
	}

	err := validate.Struct(bookRules{
		ISBN:     b.ISBN,
		Title:    b.Title,
		Category: b.Category,
		Authors:  b.Authors,
		Year:     b.Year,
		Price:    b.Price,
	})
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}

	first := verrs[0]
	switch field := first.StructField(); {
	case field == "ISBN":
		return validationErr(TagISBN, "isbn cannot be empty")
	case field == "Title":
		return validationErr(TagTitle, "title cannot be empty")
	case field == "Category":
		return validationErr(AttrCategory, "category cannot be empty")
	case strings.HasPrefix(field, "Authors"):
		return validationErr("authors", "authors cannot be empty or contain empty values")
	case field == "Year":
		return validationErr(TagYear, "year must be a positive number")
	case field == "Price":
		return validationErr(TagPrice, "price cannot be negative")
	default:
		return validationErr(strings.ToLower(field), field+" is invalid")
	}
}
