// Package rename moves files on disk for a planned rename. Transient
// errno values such as EBUSY are retried with exponential backoff; any
// other error fails the file immediately. Existing targets are never
// overwritten unless forced.
package rename
