// Package tracker keeps the file-backed ledger of today's breaks and the
// muscle groups they worked. The record rolls over to a zeroed one on the
// first access after the calendar date changes.
package tracker
