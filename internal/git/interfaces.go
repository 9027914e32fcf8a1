package git

import "context"

// Repository provides the version-control operations a release needs.
// This is the key abstraction point for testing and backend swapping.
// Local operations work on the repository object store; the methods taking
// a context talk to a remote and may block on the network.
type Repository interface {
	// WorkingDirectory returns the path to the working directory.
	WorkingDirectory() string

	// CurrentBranch returns the short name of the checked out branch.
	// Returns an empty string when HEAD is detached.
	CurrentBranch() (string, error)

	// CheckoutBranch switches HEAD to an existing local branch.
	CheckoutBranch(name string) error

	// CreateBranch creates a branch at HEAD and checks it out.
	CreateBranch(name string) error

	// WorkingTreeStatus returns a short status listing of modified, staged
	// and untracked entries. An empty string means the tree is clean.
	WorkingTreeStatus() (string, error)

	// HeadSha returns the SHA of the commit HEAD points to.
	HeadSha() (string, error)

	// IsAncestor reports whether ancestor is reachable from descendant.
	// A commit missing from the local object store is not an ancestor.
	IsAncestor(ancestor, descendant string) (bool, error)

	// LocalTagExists reports whether a tag with exactly this name exists.
	LocalTagExists(name string) (bool, error)

	// CommitFiles stages the given paths and commits them with message.
	// Returns the new commit SHA.
	CommitFiles(message string, paths ...string) (string, error)

	// CreateTag creates a lightweight tag at HEAD.
	CreateTag(name string) error

	// RemoteURL returns the first fetch URL configured for remote.
	RemoteURL(remote string) (string, error)

	// RestoreFile discards working-tree edits to path, restoring the
	// content recorded in HEAD. path is relative to the working directory
	// or an absolute path inside it.
	RestoreFile(path string) error

	// ResolveRevision resolves a branch, tag or SHA to a commit SHA.
	ResolveRevision(rev string) (string, error)

	// CommitLog returns commits reachable from 'to' but not from 'from',
	// in reverse chronological order. If from is empty, all ancestors of
	// 'to' are returned.
	CommitLog(from, to string) ([]Commit, error)

	// RemoteHeadRef returns the SHA the remote's HEAD points to, or "" for
	// a remote nothing has been pushed to.
	RemoteHeadRef(ctx context.Context, remote string) (string, error)

	// RemoteTagExists reports whether refs/tags/<name> exists on remote.
	RemoteTagExists(ctx context.Context, remote, name string) (bool, error)

	// Push pushes refs to a remote and returns the command output.
	Push(ctx context.Context, opts PushOptions) (string, error)
}
