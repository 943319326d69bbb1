package core

import "fmt"

// Kind classifies engine failures so the presentation layer can map
// them to a user-facing response without parsing messages.
type Kind string

const (
	KindValidation          Kind = "validation_failed"
	KindInsufficientStock   Kind = "insufficient_stock"
	KindProductNotFound     Kind = "product_not_found"
	KindInvoiceNotFound     Kind = "invoice_not_found"
	KindItemNotFound        Kind = "item_not_found"
	KindPaymentNotFound     Kind = "payment_not_found"
	KindReturnNotFound      Kind = "return_not_found"
	KindReturnWindowExpired Kind = "return_window_expired"
	KindExceedsSoldQuantity Kind = "exceeds_sold_quantity"
)

// Error is a structured engine failure: a kind plus a human message.
// Every compound operation that returns one has already rolled back.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches by kind, so errors.Is(err, ErrInsufficientStock) works on
// any instance regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrValidation          = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrInsufficientStock   = &Error{Kind: KindInsufficientStock, Message: "insufficient stock"}
	ErrProductNotFound     = &Error{Kind: KindProductNotFound, Message: "product not found"}
	ErrInvoiceNotFound     = &Error{Kind: KindInvoiceNotFound, Message: "invoice not found"}
	ErrItemNotFound        = &Error{Kind: KindItemNotFound, Message: "invoice item not found"}
	ErrPaymentNotFound     = &Error{Kind: KindPaymentNotFound, Message: "payment not found"}
	ErrReturnNotFound      = &Error{Kind: KindReturnNotFound, Message: "return not found"}
	ErrReturnWindowExpired = &Error{Kind: KindReturnWindowExpired, Message: "return window expired"}
	ErrExceedsSoldQuantity = &Error{Kind: KindExceedsSoldQuantity, Message: "cannot return more than sold"}
)

func errf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
