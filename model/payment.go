package model

// Payment statuses reported by the processor.
const (
	PaymentStatusDraft      = "draft"
	PaymentStatusProcessing = "processing"
	PaymentStatusSucceeded  = "succeeded"
	PaymentStatusFailed     = "failed"
	PaymentStatusCanceled   = "canceled"
)

type Address struct {
	City    string `json:"city"`
	Country string `json:"country"`
	Line1   string `json:"line1,omitempty"`
	Line2   string `json:"line2,omitempty"`
	Zipcode string `json:"zipcode"`
	State   string `json:"state"`
}

type ReceiptBalance struct {
	ID      int    `json:"id"`
	Snap    string `json:"snap"`
	Cash    string `json:"non_snap"`
	Updated string `json:"updated"`
}

type Receipt struct {
	RefNumber       string          `json:"ref_number"`
	IsVoided        bool            `json:"is_voided"`
	SnapAmount      string          `json:"snap_amount"`
	EBTCashAmount   string          `json:"ebt_cash_amount"`
	OtherAmount     string          `json:"other_amount"`
	SalesTaxApplied string          `json:"sales_tax_applied"`
	Balance         *ReceiptBalance `json:"balance,omitempty"`
	Last4           string          `json:"last_4"`
	Message         string          `json:"message"`
	TransactionType string          `json:"transaction_type"`
	Created         string          `json:"created"`
}

// Payment represents a payment against a tokenized EBT card.
type Payment struct {
	Ref                 string            `json:"ref"`
	MerchantID          string            `json:"merchant"`
	FundingType         string            `json:"funding_type"`
	Amount              string            `json:"amount"`
	Description         string            `json:"description"`
	Metadata            map[string]string `json:"metadata,omitempty"`
	PaymentMethodRef    string            `json:"payment_method"`
	DeliveryAddress     *Address          `json:"delivery_address,omitempty"`
	IsDelivery          bool              `json:"is_delivery"`
	Created             string            `json:"created"`
	Updated             string            `json:"updated"`
	Status              string            `json:"status"`
	SuccessDate         string            `json:"success_date,omitempty"`
	LastProcessingError string            `json:"last_processing_error,omitempty"`
	Receipt             *Receipt          `json:"receipt,omitempty"`
	Refunds             []string          `json:"refunds,omitempty"`
}
