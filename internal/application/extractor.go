package application

import (
	"encoding/json"
	"fmt"
	"math"

	"swapwatch/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	FieldPrice           = "price"
	FieldGuaranteedPrice = "guaranteedPrice"
)

// JSONExtractor reads a single string field out of a quote response.
// Float additionally requires the value to fit in a float64.
type JSONExtractor struct {
	Field   string
	Numeric bool
	Float   bool
}

var _ PriceExtractor = JSONExtractor{}

func NewJSONExtractor(field string, numeric bool) JSONExtractor {
	if field == "" {
		field = FieldPrice
	}
	return JSONExtractor{Field: field, Numeric: numeric}
}

// ExtractorFor builds the extractor a comparison strategy needs.
func ExtractorFor(field string, cmp Comparator) JSONExtractor {
	x := NewJSONExtractor(field, cmp.Numeric())
	x.Float = cmp.Name() == CompareFloat
	return x
}

func (x JSONExtractor) Extract(raw string) (domain.Price, error) {
	field := x.Field
	if field == "" {
		field = FieldPrice
	}
	if !json.Valid([]byte(raw)) {
		return domain.Price{}, fmt.Errorf("%w: response is not valid json", domain.ErrInvalidPayload)
	}

	// Valid JSON that is not an object has no fields at all.
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return domain.Price{}, fmt.Errorf("%w: %q", domain.ErrMissingField, field)
	}
	v, ok := obj[field]
	if !ok {
		return domain.Price{}, fmt.Errorf("%w: %q", domain.ErrMissingField, field)
	}
	var val any
	if err := json.Unmarshal(v, &val); err != nil {
		return domain.Price{}, fmt.Errorf("%w: %q: %v", domain.ErrInvalidPayload, field, err)
	}
	text, ok := val.(string)
	if !ok {
		return domain.Price{}, fmt.Errorf("%w: %q is not a string", domain.ErrMissingField, field)
	}

	p := domain.TextPrice(text)
	if !x.Numeric {
		return p, nil
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return domain.Price{}, fmt.Errorf("%w: %q: %v", domain.ErrNotNumeric, text, err)
	}
	if x.Float && math.IsInf(d.InexactFloat64(), 0) {
		return domain.Price{}, fmt.Errorf("%w: %q overflows float64", domain.ErrNotNumeric, text)
	}
	p.Value, p.Numeric = d, true
	return p, nil
}
