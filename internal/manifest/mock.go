package manifest

// Compile-time check that MockStore implements Store.
var _ Store = (*MockStore)(nil)

// MockStore is a configurable mock implementation of Store for testing.
// Nil function fields return Manifest (Read) or succeed.
type MockStore struct {
	Manifest Manifest

	ReadFunc               func() (Manifest, error)
	WriteVersionFunc       func(string) error
	WritePublishConfigFunc func(string) error
	RevertFunc             func() error
	PathFunc               func() string
}

func (m *MockStore) Read() (Manifest, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc()
	}
	return m.Manifest, nil
}

func (m *MockStore) WriteVersion(version string) error {
	if m.WriteVersionFunc != nil {
		return m.WriteVersionFunc(version)
	}
	return nil
}

func (m *MockStore) WritePublishConfig(registry string) error {
	if m.WritePublishConfigFunc != nil {
		return m.WritePublishConfigFunc(registry)
	}
	return nil
}

func (m *MockStore) Revert() error {
	if m.RevertFunc != nil {
		return m.RevertFunc()
	}
	return nil
}

func (m *MockStore) Path() string {
	if m.PathFunc != nil {
		return m.PathFunc()
	}
	return DefaultFile
}
