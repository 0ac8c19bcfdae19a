package analyzer

import (
	"context"
	"time"
)

// MarkerFile is the file whose presence at the repository root exempts it from archiving.
const MarkerFile = ".NOARCHIVE"

// Repository describes one repository on the hosting platform.
// Everything except Archive is a read and must not change remote state.
type Repository interface {
	FullName() string
	CreatedAt() time.Time
	Archived() bool

	// HasFile reports whether path exists at the repository root. A missing
	// file is reported as an error wrapping ErrNotFound.
	HasFile(ctx context.Context, path string) (bool, error)
	Topics(ctx context.Context) ([]string, error)
	// CommitsSince counts commits on the default branch made after since.
	CommitsSince(ctx context.Context, since time.Time) (int, error)

	// Archive sets the repository read-only. Archiving an archived repository is a no-op.
	Archive(ctx context.Context) error
}

// Provider enumerates the repositories of the authenticated account.
type Provider interface {
	Repositories(ctx context.Context) ([]Repository, error)
}
