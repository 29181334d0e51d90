// Package scorg holds module-wide metadata.
package scorg

// Version is the release version of the scorg module.
const Version = "0.1.0"
