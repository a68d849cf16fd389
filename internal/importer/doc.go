// Package importer normalizes exchange history into portfolio transactions.
//
// The Mapper translates each exchange-native record shape into the
// canonical Transaction; the Importer drives one full import session for
// one portfolio: fetch each source kind in a fixed order, dedupe against
// the known external-id set, and commit staged rows at the end of each
// step so a failing step never takes earlier steps down with it.
package importer
