package models

// OrderLine is one invoice line: a car reference plus quantity and unit
// price in minor units. Quantity >= 1 and UnitPriceCents >= 0 are enforced
// when the order is loaded.
type OrderLine struct {
	CarID          int64  `json:"carId"`
	Description    string `json:"description"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// Order is the header an invoice document is generated from. Invoices are
// built from a single already-known order, not a filtered query.
type Order struct {
	ID            int64       `json:"id"`
	Number        string      `json:"number"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail,omitempty"`
	CreatedAt     string      `json:"createdAt"` // YYYY-MM-DD
	Status        string      `json:"status"`
	Lines         []OrderLine `json:"lines"`
}

// StockBatch is an inbound stock delivery; stock invoices share the order
// line shape.
type StockBatch struct {
	ID           int64       `json:"id"`
	Number       string      `json:"number"`
	SupplierName string      `json:"supplierName"`
	ReceivedAt   string      `json:"receivedAt"` // YYYY-MM-DD
	Lines        []OrderLine `json:"lines"`
}
