// Package sanitizer cleans untrusted text before it leaves the process, for
// example notification titles handed to a desktop notification command.
//
// Helpers are plain string transforms and can be chained with Compose:
//
//	clean := sanitizer.Compose(
//		sanitizer.StripHTML,
//		sanitizer.RemoveControlChars,
//		sanitizer.SingleLine,
//		sanitizer.MaxLength(120),
//	)
//	title := clean(n.Title)
package sanitizer
