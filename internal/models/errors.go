package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrGeneral             = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound    = errors.New("there is no")
	ErrValidation          = errors.New("invalid input")
	ErrPersistence         = errors.New("could not save or load data")
	ErrInsufficientBalance = errors.New("insufficient balance in the goals wallet")
)

var (
	ErrAmountNotPositive       = fmt.Errorf("%w: the amount must be larger than zero", ErrValidation)
	ErrAmountInvalid           = fmt.Errorf("%w: the amount is not a valid number", ErrValidation)
	ErrGoalTitleEmpty          = fmt.Errorf("%w: the goal title must not be empty", ErrValidation)
	ErrGoalTargetNotPositive   = fmt.Errorf("%w: goal target amounts must be larger than zero", ErrValidation)
	ErrExpenseCategoryUnknown  = fmt.Errorf("%w: unknown expense category", ErrValidation)
	ErrIncomeSourceUnknown     = fmt.Errorf("%w: unknown income source", ErrValidation)
	ErrGoalCategoryUnknown     = fmt.Errorf("%w: unknown goal category", ErrValidation)
	ErrGoalColorUnknown        = fmt.Errorf("%w: unknown goal color", ErrValidation)
	ErrGoalIconUnknown         = fmt.Errorf("%w: unknown goal icon", ErrValidation)
	ErrDateInvalid             = fmt.Errorf("%w: the date must be in YYYY-MM-DD format", ErrValidation)
	ErrMonthInvalid            = fmt.Errorf("%w: the month must be in YYYY-MM format", ErrValidation)
	ErrViewingMonthNotSet      = fmt.Errorf("%w: the viewing month must be set", ErrValidation)
	ErrIDInvalid               = fmt.Errorf("%w: the id must be a millisecond timestamp no more than a day ahead", ErrValidation)
)

// NotFound returns an error wrapping ErrResourceNotFound for the named resource.
func NotFound(resource string, id any) error {
	return fmt.Errorf("%w %s with id %v", ErrResourceNotFound, resource, id)
}

// InsufficientBalanceError is returned when an allocation or goal completion
// needs more money than the goals wallet holds.
type InsufficientBalanceError struct {
	RequiredAmount decimal.Decimal `json:"requiredAmount"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	Shortfall      decimal.Decimal `json:"shortfall"`
}

// NewInsufficientBalanceError computes the shortfall for a required amount and the current balance.
func NewInsufficientBalanceError(required, balance decimal.Decimal) *InsufficientBalanceError {
	return &InsufficientBalanceError{
		RequiredAmount: required,
		CurrentBalance: balance,
		Shortfall:      required.Sub(balance),
	}
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: %s required, %s available, add %s in savings", ErrInsufficientBalance, e.RequiredAmount.StringFixed(2), e.CurrentBalance.StringFixed(2), e.Shortfall.StringFixed(2))
}

// Is makes errors.Is(err, ErrInsufficientBalance) match.
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}
