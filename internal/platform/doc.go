// Package platform contains OS integration glue: the per-user data
// directory, directory creation, atomic file replacement and opening
// folders in the system file manager.
package platform
