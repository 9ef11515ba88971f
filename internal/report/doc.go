// Package report renders a day's break record as text for the host UI and
// exports closed days as XLSX workbooks.
package report
