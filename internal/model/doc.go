// Package model defines shared data types used across the portfolio importer.
//
// Conventions:
//   - Amounts: decimal.Decimal (exchange APIs return them as strings)
//   - Timestamps: time.Time in UTC, converted from exchange-native units
//     (epoch millis or ISO 8601) by the mappers in internal/importer
//   - External ids: "<source_kind>__<native_id>", unique per portfolio
package model
