package git

import "context"

// Compile-time check that MockRepository implements Repository.
var _ Repository = (*MockRepository)(nil)

// MockRepository is a configurable mock implementation of Repository for testing.
// Each method is backed by a function field. If the function field is nil,
// the method behaves like a clean repository that is up to date with its
// remote and has no tags.
type MockRepository struct {
	WorkingDirectoryFunc  func() string
	CurrentBranchFunc     func() (string, error)
	CheckoutBranchFunc    func(string) error
	CreateBranchFunc      func(string) error
	WorkingTreeStatusFunc func() (string, error)
	HeadShaFunc           func() (string, error)
	IsAncestorFunc        func(string, string) (bool, error)
	LocalTagExistsFunc    func(string) (bool, error)
	CommitFilesFunc       func(string, ...string) (string, error)
	CreateTagFunc         func(string) error
	RemoteURLFunc         func(string) (string, error)
	RestoreFileFunc       func(string) error
	ResolveRevisionFunc   func(string) (string, error)
	CommitLogFunc         func(string, string) ([]Commit, error)
	RemoteHeadRefFunc     func(context.Context, string) (string, error)
	RemoteTagExistsFunc   func(context.Context, string, string) (bool, error)
	PushFunc              func(context.Context, PushOptions) (string, error)
}

func (m *MockRepository) WorkingDirectory() string {
	if m.WorkingDirectoryFunc != nil {
		return m.WorkingDirectoryFunc()
	}
	return ""
}

func (m *MockRepository) CurrentBranch() (string, error) {
	if m.CurrentBranchFunc != nil {
		return m.CurrentBranchFunc()
	}
	return "", nil
}

func (m *MockRepository) CheckoutBranch(name string) error {
	if m.CheckoutBranchFunc != nil {
		return m.CheckoutBranchFunc(name)
	}
	return nil
}

func (m *MockRepository) CreateBranch(name string) error {
	if m.CreateBranchFunc != nil {
		return m.CreateBranchFunc(name)
	}
	return nil
}

func (m *MockRepository) WorkingTreeStatus() (string, error) {
	if m.WorkingTreeStatusFunc != nil {
		return m.WorkingTreeStatusFunc()
	}
	return "", nil
}

func (m *MockRepository) HeadSha() (string, error) {
	if m.HeadShaFunc != nil {
		return m.HeadShaFunc()
	}
	return "", nil
}

func (m *MockRepository) IsAncestor(ancestor, descendant string) (bool, error) {
	if m.IsAncestorFunc != nil {
		return m.IsAncestorFunc(ancestor, descendant)
	}
	return true, nil
}

func (m *MockRepository) LocalTagExists(name string) (bool, error) {
	if m.LocalTagExistsFunc != nil {
		return m.LocalTagExistsFunc(name)
	}
	return false, nil
}

func (m *MockRepository) CommitFiles(message string, paths ...string) (string, error) {
	if m.CommitFilesFunc != nil {
		return m.CommitFilesFunc(message, paths...)
	}
	return "", nil
}

func (m *MockRepository) CreateTag(name string) error {
	if m.CreateTagFunc != nil {
		return m.CreateTagFunc(name)
	}
	return nil
}

func (m *MockRepository) RemoteURL(remote string) (string, error) {
	if m.RemoteURLFunc != nil {
		return m.RemoteURLFunc(remote)
	}
	return "", nil
}

func (m *MockRepository) RestoreFile(path string) error {
	if m.RestoreFileFunc != nil {
		return m.RestoreFileFunc(path)
	}
	return nil
}

func (m *MockRepository) ResolveRevision(rev string) (string, error) {
	if m.ResolveRevisionFunc != nil {
		return m.ResolveRevisionFunc(rev)
	}
	return rev, nil
}

func (m *MockRepository) CommitLog(from, to string) ([]Commit, error) {
	if m.CommitLogFunc != nil {
		return m.CommitLogFunc(from, to)
	}
	return nil, nil
}

func (m *MockRepository) RemoteHeadRef(ctx context.Context, remote string) (string, error) {
	if m.RemoteHeadRefFunc != nil {
		return m.RemoteHeadRefFunc(ctx, remote)
	}
	return "", nil
}

func (m *MockRepository) RemoteTagExists(ctx context.Context, remote, name string) (bool, error) {
	if m.RemoteTagExistsFunc != nil {
		return m.RemoteTagExistsFunc(ctx, remote, name)
	}
	return false, nil
}

func (m *MockRepository) Push(ctx context.Context, opts PushOptions) (string, error) {
	if m.PushFunc != nil {
		return m.PushFunc(ctx, opts)
	}
	return "", nil
}
