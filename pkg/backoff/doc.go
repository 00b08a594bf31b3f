// Package backoff provides retry delay strategies and an attempt-capped
// Policy used by the socket transport's reconnection loop.
//
//	p := backoff.NewPolicy(time.Second, 5)
//	delay, ok := p.Delay(3) // 4s, true
//	_, ok = p.Delay(6)      // false: give up
package backoff
