// Package store provides PostgreSQL persistence for portfolios'
// transactions and exchange credentials.
package store
