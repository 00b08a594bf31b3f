// Package toast implements a bounded, auto-expiring toast queue.
//
// Toasts are kept newest first. When more than the configured maximum are
// pushed, the oldest visible toast is evicted. Each non-persistent toast gets
// an independent timer; closing or acting on a toast cancels it immediately.
//
// Every toast walks pending -> visible -> one of expired, dismissed, actioned,
// evicted or cleared, and is then gone for good. OnClose and OnAction run
// exactly once for the matching user interaction and never for expiry,
// eviction or Clear.
//
//	q := toast.NewQueue(toast.WithMaxToasts(3))
//	id := q.Push(toast.Toast{Severity: toast.SeverityInfo, Message: "Saved"})
//	q.Close(id)
package toast
