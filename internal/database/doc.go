// Package database provides connection pool management for PostgreSQL.
//
// The importer keeps everything in one database: transactions, portfolios
// and exchange credentials. Pools register the shopspring decimal codec so
// numeric columns scan directly into decimal.Decimal.
package database
