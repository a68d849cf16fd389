// Package daemon schedules recurring exchange imports.
//
// The Daemon wakes on a short interval but runs at most one sweep per
// UTC calendar day: each sweep imports recent history for every stored
// exchange credential, isolating failures so one bad credential never
// blocks the rest.
package daemon
