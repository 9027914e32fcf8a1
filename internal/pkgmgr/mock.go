package pkgmgr

import "context"

// Compile-time check that MockClient implements Client.
var _ Client = (*MockClient)(nil)

// MockClient is a configurable mock implementation of Client for testing.
// Nil function fields succeed without doing anything.
type MockClient struct {
	NameFunc       func() string
	InstallAllFunc func(context.Context, bool) error
	RunScriptFunc  func(context.Context, string) error
	PublishFunc    func(context.Context, PublishOptions) error
}

func (m *MockClient) Name() string {
	if m.NameFunc != nil {
		return m.NameFunc()
	}
	return Yarn
}

func (m *MockClient) InstallAll(ctx context.Context, forceClean bool) error {
	if m.InstallAllFunc != nil {
		return m.InstallAllFunc(ctx, forceClean)
	}
	return nil
}

func (m *MockClient) RunScript(ctx context.Context, name string) error {
	if m.RunScriptFunc != nil {
		return m.RunScriptFunc(ctx, name)
	}
	return nil
}

func (m *MockClient) Publish(ctx context.Context, opts PublishOptions) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, opts)
	}
	return nil
}
