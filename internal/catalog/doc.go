// Package catalog loads the embedded stretch and exercise catalog, filters
// it by position preference and rescales item doses to the time a break
// allots. The catalog is immutable after Load.
package catalog
