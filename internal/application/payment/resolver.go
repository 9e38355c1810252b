package payment

import (
	"github.com/dukapoint/pos-engine/internal/domain/enum"
	"github.com/dukapoint/pos-engine/pkg/apperror"
)

// creditEpsilonCents absorbs currency rounding noise at the API boundary.
// With amounts held in integer cents, anything above one cent is a real
// outstanding balance.
const creditEpsilonCents int64 = 1

// Resolution is the outcome of resolving a tendered payment against a total
type Resolution struct {
	Status   enum.PaymentStatus
	DueCents int64
}

// Resolve derives the payment status and due amount for a sale about to be
// completed. It must run and succeed before an OfflineSale is constructed: a
// sale that leaves a due amount above the epsilon can only be completed with
// a bound customer, otherwise the checkout is rejected with no state change.
func Resolve(totalCents, tenderedCents int64, hasCustomer bool) (Resolution, error) {
	due := totalCents - tenderedCents

	if due > creditEpsilonCents {
		if !hasCustomer {
			return Resolution{}, apperror.ErrCustomerRequiredForCredit
		}
		return Resolution{Status: enum.PaymentStatusPartial, DueCents: due}, nil
	}

	if tenderedCents <= 0 && totalCents > creditEpsilonCents {
		if due < 0 {
			due = 0
		}
		return Resolution{Status: enum.PaymentStatusUnpaid, DueCents: due}, nil
	}

	return Resolution{Status: enum.PaymentStatusPaid, DueCents: 0}, nil
}
