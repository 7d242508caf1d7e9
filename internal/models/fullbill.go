package models

import "time"

// FullBill is the enriched read model returned by the aggregation service:
// a stored bill with its remote customer and per-item products resolved.
// The foreign identifiers (customerID, productID) are write-only and do not
// appear in this shape.
type FullBill struct {
	ID          int64             `json:"id"`
	BillingDate time.Time         `json:"billingDate"`
	Items       []FullProductItem `json:"productItems"`
	Customer    *Customer         `json:"customer"`
}

// FullProductItem is one enriched invoiced line. Price and Quantity are the
// locally stored values, not the remote product's current price.
type FullProductItem struct {
	ID       int64    `json:"id"`
	Price    float64  `json:"price"`
	Quantity float64  `json:"quantity"`
	Product  *Product `json:"product"`
}
