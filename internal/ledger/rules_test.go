package ledger

import (
	"errors"
	"testing"

	"gofermarket/internal/models"
)

func validInput() ListingInput {
	return ListingInput{
		Items: []models.Item{
			{ID: 1, Name: "Milk", Price: 30, Quantity: 2},
			{ID: 2, Name: "Bread", Price: 15, Quantity: 1},
		},
		Commission:   20,
		DeliveryTime: "today 18:00",
		Address: models.Address{
			Street:  "Oak Street",
			City:    "Springfield",
			HouseNo: "12",
		},
	}
}

func TestOrderTotal(t *testing.T) {
	items := []models.Item{
		{Name: "Milk", Price: 30, Quantity: 2},
		{Name: "Bread", Price: 15, Quantity: 1},
	}
	if got := OrderTotal(items, 20); got != 95 {
		t.Fatalf("expected total 95, got %v", got)
	}
}

func TestOrderTotalSingleItemWithCommission(t *testing.T) {
	items := []models.Item{{Name: "Groceries", Price: 50, Quantity: 2}}
	if got := OrderTotal(items, 20); got != 120 {
		t.Fatalf("expected total 120, got %v", got)
	}
}

func TestOrderTotalZeroCommission(t *testing.T) {
	items := []models.Item{{Name: "Eggs", Price: 4.5, Quantity: 10}}
	if got := OrderTotal(items, 0); got != 45 {
		t.Fatalf("expected total 45, got %v", got)
	}
}

func TestValidateListingInputAccepted(t *testing.T) {
	if err := ValidateListingInput(validInput()); err != nil {
		t.Fatalf("expected valid input to pass, got %v", err)
	}
}

func TestValidateListingInputRejectsEmptyItems(t *testing.T) {
	input := validInput()
	input.Items = nil
	if err := ValidateListingInput(input); err == nil {
		t.Fatal("expected validation error for empty items")
	}
}

func TestValidateListingInputRejectsBadItems(t *testing.T) {
	tests := []struct {
		name string
		item models.Item
	}{
		{"missing name", models.Item{Name: "  ", Price: 10, Quantity: 1}},
		{"negative price", models.Item{Name: "Milk", Price: -1, Quantity: 1}},
		{"zero quantity", models.Item{Name: "Milk", Price: 10, Quantity: 0}},
	}
	for _, tt := range tests {
		input := validInput()
		input.Items = []models.Item{tt.item}
		err := ValidateListingInput(input)
		if err == nil {
			t.Fatalf("%s: expected validation error", tt.name)
		}
		var invalid InvalidInputError
		if !errors.As(err, &invalid) {
			t.Fatalf("%s: expected InvalidInputError, got %T", tt.name, err)
		}
	}
}

func TestValidateListingInputRejectsNegativeCommission(t *testing.T) {
	input := validInput()
	input.Commission = -5
	if err := ValidateListingInput(input); err == nil {
		t.Fatal("expected validation error for negative commission")
	}
}

func TestValidateListingInputRejectsEmptyDeliveryTime(t *testing.T) {
	input := validInput()
	input.DeliveryTime = "   "
	if err := ValidateListingInput(input); err == nil {
		t.Fatal("expected validation error for empty deliveryTime")
	}
}

func TestValidateAddressRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		addr models.Address
	}{
		{"missing street", models.Address{City: "Springfield", HouseNo: "12"}},
		{"missing city", models.Address{Street: "Oak Street", HouseNo: "12"}},
		{"missing houseNo", models.Address{Street: "Oak Street", City: "Springfield"}},
	}
	for _, tt := range tests {
		if err := ValidateAddress(tt.addr); err == nil {
			t.Fatalf("%s: expected validation error", tt.name)
		}
	}
}

func TestValidateAddressRoomNoOptional(t *testing.T) {
	addr := models.Address{Street: "Oak Street", City: "Springfield", HouseNo: "12"}
	if err := ValidateAddress(addr); err != nil {
		t.Fatalf("expected address without roomNo to pass, got %v", err)
	}
}
