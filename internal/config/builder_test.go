package config

import (
	"testing"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/stretchr/testify/require"
)

func TestBuilder_NoOverrides(t *testing.T) {
	cfg, err := NewBuilder().Build()
	require.NoError(t, err)
	require.Equal(t, CreateDefaultConfiguration(), cfg)
}

func TestBuilder_LaterOverridesWin(t *testing.T) {
	file := &Config{
		Registries: []string{"github"},
		Remote:     ptr("upstream"),
		Yolo:       ptr(true),
	}
	flags := &Config{
		Yolo:   ptr(false),
		Access: ptr(release.AccessPublic),
	}

	cfg, err := NewBuilder().Add(file).Add(nil).Add(flags).Build()
	require.NoError(t, err)
	require.Equal(t, []string{"github"}, cfg.Registries)
	require.Equal(t, "upstream", *cfg.Remote)
	require.False(t, *cfg.Yolo)
	require.Equal(t, release.AccessPublic, *cfg.Access)
	// Defaults still present for fields no layer sets.
	require.Equal(t, "master", *cfg.MainBranch)
}

func TestBuilder_DoesNotAliasOverrides(t *testing.T) {
	override := &Config{Remote: ptr("upstream"), Registries: []string{"npm"}}
	cfg, err := NewBuilder().Add(override).Build()
	require.NoError(t, err)

	*cfg.Remote = "changed"
	cfg.Registries[0] = "changed"
	require.Equal(t, "upstream", *override.Remote)
	require.Equal(t, "npm", override.Registries[0])
}

func TestBuilder_Normalizes(t *testing.T) {
	cfg, err := NewBuilder().Add(&Config{
		Registries:     []string{" npm ", "", "github"},
		LogLevel:       ptr("DEBUG"),
		PackageManager: ptr(" NPM"),
	}).Build()
	require.NoError(t, err)
	require.Equal(t, []string{"npm", "github"}, cfg.Registries)
	require.Equal(t, "debug", *cfg.LogLevel)
	require.Equal(t, "npm", *cfg.PackageManager)
}

func TestBuilder_Validation(t *testing.T) {
	tests := []struct {
		name     string
		override *Config
		wantErr  string
	}{
		{"empty registries", &Config{Registries: []string{}}, "registries"},
		{"blank registries", &Config{Registries: []string{" "}}, "registries"},
		{"log level", &Config{LogLevel: ptr("loud")}, "invalid log-level"},
		{"empty log level", &Config{LogLevel: ptr("")}, "invalid log-level"},
		{"package manager", &Config{PackageManager: ptr("bun")}, "invalid package-manager"},
		{"tag prefix", &Config{TagPrefix: ptr("v ")}, "invalid tag-prefix"},
		{"remote", &Config{Remote: ptr("")}, "remote"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder().Add(tt.override).Build()
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
