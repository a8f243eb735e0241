package domain

import "context"

// Transactor runs fn atomically. Repository calls made with the ctx handed to fn
// take part in the same transaction; any error from fn undoes them.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
