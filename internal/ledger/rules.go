package ledger

import (
	"strings"

	"gofermarket/internal/models"
)

// ListingInput carries the caller-supplied fields of a new listing.
type ListingInput struct {
	Items        []models.Item
	Commission   float64
	DeliveryTime string
	Address      models.Address
}

// OrderTotal computes the amount owed to the fulfiller: the sum of
// price times quantity over all items, plus the commission.
func OrderTotal(items []models.Item, commission float64) float64 {
	total := commission
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ValidateListingInput checks the create-listing preconditions.
func ValidateListingInput(input ListingInput) error {
	if len(input.Items) == 0 {
		return invalidInput("at least one item is required")
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.Name) == "" {
			return invalidInput("item name is required")
		}
		if item.Price < 0 {
			return invalidInput("item price cannot be negative")
		}
		if item.Quantity <= 0 {
			return invalidInput("item quantity must be greater than zero")
		}
	}
	if input.Commission < 0 {
		return invalidInput("commission cannot be negative")
	}
	if strings.TrimSpace(input.DeliveryTime) == "" {
		return invalidInput("deliveryTime is required")
	}
	return ValidateAddress(input.Address)
}

// ValidateAddress checks the fields a deliverable address must carry.
// roomNo stays optional.
func ValidateAddress(addr models.Address) error {
	if strings.TrimSpace(addr.Street) == "" {
		return invalidInput("address street is required")
	}
	if strings.TrimSpace(addr.City) == "" {
		return invalidInput("address city is required")
	}
	if strings.TrimSpace(addr.HouseNo) == "" {
		return invalidInput("address houseNo is required")
	}
	return nil
}
