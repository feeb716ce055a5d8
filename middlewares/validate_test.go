package middlewares

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestValidateStruct(t *testing.T) {
	type line struct {
		Description string  `validate:"required"`
		Quantity    float64 `validate:"gte=0"`
		UnitPrice   float64 `validate:"gte=0"`
	}

	if err := ValidateStruct(&line{Description: "Gravel", Quantity: 10, UnitPrice: 100}); err != nil {
		t.Fatalf("valid line rejected: %v", err)
	}
	if err := ValidateStruct(&line{Description: "Ballast", Quantity: 0, UnitPrice: 0}); err != nil {
		t.Fatalf("zero quantity and price rejected: %v", err)
	}

	tests := []struct {
		name      string
		in        line
		wantField string
	}{
		{name: "negative quantity", in: line{Description: "Gravel", Quantity: -1, UnitPrice: 100}, wantField: "Quantity"},
		{name: "negative unit price", in: line{Description: "Gravel", Quantity: 1, UnitPrice: -100}, wantField: "UnitPrice"},
		{name: "missing description", in: line{Quantity: 1, UnitPrice: 100}, wantField: "Description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.in)
			ve, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("want validator.ValidationErrors, got %v", err)
			}
			if len(ve) != 1 || ve[0].Field() != tt.wantField {
				t.Errorf("failed fields = %v, want %s", ve, tt.wantField)
			}
		})
	}
}
