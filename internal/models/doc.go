// Package models defines the domain models for the billing service.
//
// # Persisted Models
//
//   - Bill: an invoice owned by this service, referencing a remote customer
//   - ProductItem: one invoiced line on a bill, referencing a remote product
//
// # Remote-Owned Values
//
//   - Customer: owned by the customer service, fetched by id at read time
//   - Product: owned by the inventory service, fetched by id at read time
//
// Customer and Product are never persisted locally. Bills and product items
// store only the foreign identifiers (CustomerID, ProductID); the referenced
// records live in other services and may change or disappear independently,
// so no local referential integrity is enforced on them.
//
// # Enriched Views
//
//   - FullBill / FullProductItem: the aggregation read model
//
// Rather than hanging sometimes-present "hydration" fields off the persisted
// types, the enriched response is a separate view built only by the
// aggregation service. Persisted shapes never carry remote data; view shapes
// never hit storage.
package models
