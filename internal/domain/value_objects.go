package domain

// Bank is an issuing bank that supports iDEAL payments.
type Bank struct {
	ID   string
	Name string
}

// Order is a payment created at the gateway. The payer is redirected to URL.
type Order struct {
	TransactionID string
	Amount        int64 // cents
	Currency      string
	URL           string
	Message       string
}

// OrderStatus is the status text the gateway reports when an order is checked.
// Values are kept verbatim.
type OrderStatus string

const (
	StatusOpen          OrderStatus = "Open"
	StatusSuccess       OrderStatus = "Success"
	StatusCancelled     OrderStatus = "Cancelled"
	StatusFailure       OrderStatus = "Failure"
	StatusExpired       OrderStatus = "Expired"
	StatusCheckedBefore OrderStatus = "CheckedBefore"
)

// Customer holds the payer details the gateway returns for a paid order.
type Customer struct {
	Name    string
	Account string
	City    string
}

// OrderResult is the outcome of checking an order.
type OrderResult struct {
	TransactionID string
	Amount        int64
	Currency      string
	Paid          bool
	Message       string
	Status        OrderStatus

	// Customer is nil unless Paid is true.
	Customer *Customer
}

// CustomerName returns the payer name, or "" when the order was not paid.
func (r *OrderResult) CustomerName() string {
	if r.Customer == nil {
		return ""
	}
	return r.Customer.Name
}

func (r *OrderResult) CustomerAccount() string {
	if r.Customer == nil {
		return ""
	}
	return r.Customer.Account
}

func (r *OrderResult) CustomerCity() string {
	if r.Customer == nil {
		return ""
	}
	return r.Customer.City
}

// NewOrderRequest is the keyword form of a new order. Empty ReturnURL or
// ReportURL fall back to the configured values.
type NewOrderRequest struct {
	Amount      int64  `validate:"gt=0"`
	Description string `validate:"required"`
	BankID      string `validate:"required"`
	ReturnURL   string `validate:"omitempty,url"`
	ReportURL   string `validate:"omitempty,url"`
}
