package analyzer

import (
	"context"

	"github.com/ludo-technologies/godscn/domain"
	"github.com/ludo-technologies/godscn/internal/source"
)

// ProjectInfo is the read-only scope of an analysis run
type ProjectInfo interface {
	Classes() []*source.Class
}

// IsCancelled reports whether ctx has been cancelled or has expired
func IsCancelled(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	return ctx.Err() != nil
}

// CheckCancelled returns a domain.ErrCancelled error once ctx is done
func CheckCancelled(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return domain.NewCancelledError(err)
	}
	return nil
}
