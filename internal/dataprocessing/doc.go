// Package dataprocessing turns raw EMO roster files into validated records.
//
// The package has two stages:
//
// Parser: reads XLSX or CSV rosters, locates the header row by matching
// known column aliases, and produces RawRows keyed by canonical field name.
// A structurally unreadable file is a fatal input error.
//
// Cleaner: validates each RawRow into a domain.EmoRecord, normalizing
// names and areas, parsing dates, enforcing field constraints and the
// expiration-after-exam invariant, and dropping duplicate (employee, area)
// rows. Rejected rows are reported as domain.RowErrors; they never abort
// the batch.
package dataprocessing
