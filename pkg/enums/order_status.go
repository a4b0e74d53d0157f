package enums

// OrderStatus tracks an order (or line item) through the payment and
// production workflow.
type OrderStatus string

const (
	OrderStatusPending          OrderStatus = "PENDING"
	OrderStatusPaymentUploaded  OrderStatus = "PAYMENT_UPLOADED"
	OrderStatusPaymentConfirmed OrderStatus = "PAYMENT_CONFIRMED"
	OrderStatusPaymentRejected  OrderStatus = "PAYMENT_REJECTED"
	OrderStatusProcess          OrderStatus = "PROCESS"
	OrderStatusCompleted        OrderStatus = "COMPLETED"
	OrderStatusCanceled         OrderStatus = "CANCELED"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaymentUploaded, OrderStatusPaymentConfirmed,
		OrderStatusPaymentRejected, OrderStatusProcess, OrderStatusCompleted, OrderStatusCanceled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCanceled
}

func (s OrderStatus) String() string {
	return string(s)
}
