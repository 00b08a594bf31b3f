package toast_test

import (
	"fmt"

	"github.com/dmitrymomot/socialkit/pkg/logger"
	"github.com/dmitrymomot/socialkit/pkg/toast"
)

func ExampleQueue() {
	q := toast.NewQueue(toast.WithMaxToasts(2), toast.WithLogger(logger.Discard()))
	defer q.Shutdown()

	q.On(toast.EventRemoved, func(e toast.Event) {
		fmt.Printf("removed %q: %s\n", e.Toast.Title, e.Reason)
	})

	q.Push(toast.Toast{Title: "first"})
	q.Push(toast.Toast{Title: "second"})
	id := q.Push(toast.Toast{
		Title:   "third",
		OnClose: func() { fmt.Println("closed by user") },
	})
	q.Close(id)

	for _, t := range q.Active() {
		fmt.Println("visible:", t.Title)
	}

	// Output:
	// removed "first": evicted
	// closed by user
	// removed "third": dismissed
	// visible: second
}
