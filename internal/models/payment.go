package models

import "time"

type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodIdeal        PaymentMethod = "ideal"
	MethodCash         PaymentMethod = "cash"
	MethodCard         PaymentMethod = "card"
	MethodVoucher      PaymentMethod = "voucher"
	MethodOnline       PaymentMethod = "online"
)

type RefundReason string

const (
	RefundCancellation   RefundReason = "cancellation"
	RefundDownsize       RefundReason = "downsize"
	RefundGoodwill       RefundReason = "goodwill"
	RefundOverpayment    RefundReason = "overpayment"
	RefundEventCancelled RefundReason = "event_cancelled"
)

// Payment is immutable once recorded. There is no update or delete path,
// corrections go through refunds.
type Payment struct {
	ID            int           `json:"id"`
	ReservationID int           `json:"reservation_id"`
	ReceiptNumber string        `json:"receipt_number"`
	Amount        float64       `json:"amount"`
	Method        PaymentMethod `json:"method"`
	Category      string        `json:"category,omitempty"`
	Reference     string        `json:"reference,omitempty"`
	Note          string        `json:"note,omitempty"`
	ProcessedBy   string        `json:"processed_by,omitempty"`
	PaidAt        time.Time     `json:"paid_at"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Refund is immutable once recorded, same as Payment.
type Refund struct {
	ID            int           `json:"id"`
	ReservationID int           `json:"reservation_id"`
	ReceiptNumber string        `json:"receipt_number"`
	Amount        float64       `json:"amount"`
	Reason        RefundReason  `json:"reason"`
	Method        PaymentMethod `json:"method"`
	Reference     string        `json:"reference,omitempty"`
	Note          string        `json:"note,omitempty"`
	ProcessedBy   string        `json:"processed_by,omitempty"`
	RefundedAt    time.Time     `json:"refunded_at"`
	CreatedAt     time.Time     `json:"created_at"`
}

type CreatePaymentRequest struct {
	Amount    float64       `json:"amount" validate:"required,gt=0"`
	Method    PaymentMethod `json:"method" validate:"required,oneof=bank_transfer ideal cash card voucher online"`
	Category  string        `json:"category"`
	Reference string        `json:"reference"`
	Note      string        `json:"note"`
	PaidAt    *time.Time    `json:"paid_at"`
}

type CreateRefundRequest struct {
	Amount    float64       `json:"amount" validate:"required,gt=0"`
	Reason    RefundReason  `json:"reason" validate:"required,oneof=cancellation downsize goodwill overpayment event_cancelled"`
	Method    PaymentMethod `json:"method" validate:"required,oneof=bank_transfer ideal cash card voucher online"`
	Reference string        `json:"reference"`
	Note      string        `json:"note"`
}

type PaymentLinkStatus string

const (
	PaymentLinkCreated   PaymentLinkStatus = "created"
	PaymentLinkPaid      PaymentLinkStatus = "paid"
	PaymentLinkExpired   PaymentLinkStatus = "expired"
	PaymentLinkCancelled PaymentLinkStatus = "cancelled"
)

// PaymentLink tracks an online payment order created for the open balance of
// a reservation. The gateway webhook flips it to paid and records a Payment.
type PaymentLink struct {
	ID            int               `json:"id"`
	ReservationID int               `json:"reservation_id"`
	OrderID       string            `json:"order_id"`
	ShortURL      string            `json:"short_url,omitempty"`
	Amount        float64           `json:"amount"`
	Status        PaymentLinkStatus `json:"status"`
	CreatedBy     string            `json:"created_by,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	PaidAt        *time.Time        `json:"paid_at,omitempty"`
}
