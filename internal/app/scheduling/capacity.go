package scheduling

import "registrar/internal/pkg/apperrors"

// Default enrollment bounds applied when a creation request omits both
// capacity fields.
const (
	DefaultMaxCapacity       = 30
	DefaultRemainingCapacity = 30
)

// ValidateCapacity checks the (max, remaining) enrollment pair. The fields
// travel together: supplying exactly one of them is rejected, supplying both
// requires remaining <= max, and supplying neither is left to the caller
// (creation applies the catalog defaults, update means "leave unchanged").
func ValidateCapacity(maxCapacity, remainingCapacity *int) error {
	switch {
	case maxCapacity != nil && remainingCapacity != nil:
		if *remainingCapacity > *maxCapacity {
			return apperrors.NewBadRequestError("Remaining capacity cannot be greater than max capacity")
		}
	case maxCapacity != nil || remainingCapacity != nil:
		return apperrors.NewBadRequestError("Please enter both max capacity and remaining capacity")
	}
	return nil
}
