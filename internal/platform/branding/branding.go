// Package branding centralizes user-facing product naming.
package branding

// SiteName is the canonical site name shown in page titles and admin chrome.
const SiteName = "The Spark Playhouse"
