package todo

import (
	"context"
)

// Item is a single todo entry.
type Item struct {
	Text string `json:"text"`
}

// Store holds one ordered todo list per provider user id. List returns a nil
// slice for a user with no list yet.
//
// List followed by Put is not atomic: two requests appending for the same
// user can race and the later Put wins the whole list. Callers must treat
// lost appends under concurrent writers as an accepted property of this
// contract.
type Store interface {
	List(ctx context.Context, userID string) ([]Item, error)
	Put(ctx context.Context, userID string, items []Item) error
	Clear(ctx context.Context, userID string) error
}
