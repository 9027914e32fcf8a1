// Package prompt asks the operator for the choices a release cannot make on
// its own: the version to publish, the first-publish access level and the
// go-ahead for branch releases. Every prompt can be cancelled; cancellation
// is reported as release.ErrCancelled.
package prompt

import (
	"context"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
)

// Provider is the prompt collaborator of the release stages.
type Provider interface {
	// SelectVersion asks for one of choices.
	SelectVersion(ctx context.Context, choices []release.VersionChoice) (release.VersionChoice, error)
	// SelectAccess asks for the publish access level. AccessUnset means the
	// operator chose to skip it.
	SelectAccess(ctx context.Context) (release.Access, error)
	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, message string) (bool, error)
}

// Compile-time check that MockProvider implements Provider.
var _ Provider = (*MockProvider)(nil)

// MockProvider is a configurable Provider for testing. Nil function fields
// pick the first version choice, skip access and confirm.
type MockProvider struct {
	SelectVersionFunc func(context.Context, []release.VersionChoice) (release.VersionChoice, error)
	SelectAccessFunc  func(context.Context) (release.Access, error)
	ConfirmFunc       func(context.Context, string) (bool, error)
}

func (m *MockProvider) SelectVersion(ctx context.Context, choices []release.VersionChoice) (release.VersionChoice, error) {
	if m.SelectVersionFunc != nil {
		return m.SelectVersionFunc(ctx, choices)
	}
	if len(choices) == 0 {
		return release.VersionChoice{}, release.ErrCancelled
	}
	return choices[0], nil
}

func (m *MockProvider) SelectAccess(ctx context.Context) (release.Access, error) {
	if m.SelectAccessFunc != nil {
		return m.SelectAccessFunc(ctx)
	}
	return release.AccessUnset, nil
}

func (m *MockProvider) Confirm(ctx context.Context, message string) (bool, error) {
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx, message)
	}
	return true, nil
}

// Compile-time check that Unattended implements Provider.
var _ Provider = Unattended{}

// Unattended is a Provider for runs without an operator. Version selection
// and confirmation fail with ErrNotInteractive; access is skipped.
type Unattended struct{}

func (Unattended) SelectVersion(context.Context, []release.VersionChoice) (release.VersionChoice, error) {
	return release.VersionChoice{}, ErrNotInteractive
}

func (Unattended) SelectAccess(context.Context) (release.Access, error) {
	return release.AccessUnset, nil
}

func (Unattended) Confirm(context.Context, string) (bool, error) {
	return false, ErrNotInteractive
}
