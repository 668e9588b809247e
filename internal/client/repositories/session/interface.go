// Package session persists the bearer token pair in the state database.
// It satisfies the transport layer's TokenStore contract.
package session

import "context"

type Repository interface {
	Tokens(ctx context.Context) (access, refresh string, err error)
	Save(ctx context.Context, access, refresh string) error
	Clear(ctx context.Context) error
}
