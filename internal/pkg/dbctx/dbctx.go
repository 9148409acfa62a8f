package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context is what every repo method takes: the request context plus an
// optional transaction. Tx is set when a service groups writes (message
// append + session bump, entry delete) and nil for standalone queries, in
// which case the repo falls back to its own handle.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}
