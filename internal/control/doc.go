// Package control lets other processes drive a running instance by
// dropping command files into a directory. It also reports external edits
// of the settings file.
package control
