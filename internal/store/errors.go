package store

import "fmt"

// NotFoundError is returned when a mutation targets an id that is not in the collection.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ID)
}
