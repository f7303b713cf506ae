package billing

import "innkeep/models"

// MaxMattresses caps how many extra mattresses a stay may request.
const MaxMattresses = 4

var premiumCategories = map[string]bool{
	models.CategoryPresidential: true,
	models.CategoryDuluxePlus:   true,
	models.CategoryDeluxe:       true,
	models.CategoryExecutive:    true,
}

// FreeMattressAllowance returns how many extra mattresses come free with a
// room. Two-bed premium rooms carry 2, one-bed premium rooms carry 1,
// Standard and Studio rooms carry none.
func FreeMattressAllowance(category, bedType string) int {
	if !premiumCategories[category] {
		return 0
	}
	switch bedType {
	case models.BedTwo:
		return 2
	case models.BedOne:
		return 1
	default:
		return 0
	}
}

// ClampMattresses bounds a requested mattress count to [0, MaxMattresses].
func ClampMattresses(requested int) int {
	if requested < 0 {
		return 0
	}
	if requested > MaxMattresses {
		return MaxMattresses
	}
	return requested
}

// ChargeableMattresses returns how many of the requested mattresses incur the
// surcharge after the free allowance.
func ChargeableMattresses(requested int, category, bedType string) int {
	n := ClampMattresses(requested) - FreeMattressAllowance(category, bedType)
	if n < 0 {
		return 0
	}
	return n
}
