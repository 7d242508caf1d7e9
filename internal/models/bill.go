package models

import "time"

// Bill represents an invoice owned by this service.
type Bill struct {
	// ID is the unique identifier for the bill, assigned by storage on save.
	ID int64 `json:"id"`

	// BillingDate is the timestamp of issuance.
	BillingDate time.Time `json:"billingDate"`

	// CustomerID references a customer owned by the customer service.
	// It is stored as-is and never validated against the remote system
	// at write time.
	CustomerID int64 `json:"customerID"`

	// Items are the invoiced lines belonging to this bill.
	Items []ProductItem `json:"productItems,omitempty"`
}

// ProductItem represents a single invoiced line on a bill.
//
// Price and Quantity are local copies captured when the line was created.
// Later price changes in the inventory service do not retroactively change
// stored lines.
type ProductItem struct {
	// ID is the unique identifier for the item, assigned by storage on save.
	ID int64 `json:"id"`

	// BillID is the owning bill. An item cannot exist without one.
	BillID int64 `json:"billID"`

	// ProductID references a product owned by the inventory service.
	ProductID int64 `json:"productID"`

	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}
