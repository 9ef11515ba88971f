// Package selector picks one stretch or exercise per request from the
// position-filtered catalog, favoring items that work today's least-worked
// muscle groups.
package selector
