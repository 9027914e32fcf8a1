package semver

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestIncrementKind_String(t *testing.T) {
	tests := []struct {
		kind IncrementKind
		want string
	}{
		{IncrementNone, "None"},
		{IncrementPatch, "Patch"},
		{IncrementMinor, "Minor"},
		{IncrementMajor, "Major"},
		{IncrementPrePatch, "PrePatch"},
		{IncrementPreMinor, "PreMinor"},
		{IncrementPreMajor, "PreMajor"},
		{IncrementPreRelease, "PreRelease"},
		{IncrementKind(99), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestIncrementKind_Title(t *testing.T) {
	require.Equal(t, "Patch", IncrementPatch.Title())
	require.Equal(t, "Pre-patch", IncrementPrePatch.Title())
	require.Equal(t, "Pre-release", IncrementPreRelease.Title())
}

func TestIncrementKind_IsPreRelease(t *testing.T) {
	require.False(t, IncrementPatch.IsPreRelease())
	require.False(t, IncrementMinor.IsPreRelease())
	require.False(t, IncrementMajor.IsPreRelease())
	require.True(t, IncrementPrePatch.IsPreRelease())
	require.True(t, IncrementPreMinor.IsPreRelease())
	require.True(t, IncrementPreMajor.IsPreRelease())
	require.True(t, IncrementPreRelease.IsPreRelease())
}

func TestParseIncrementKind(t *testing.T) {
	tests := []struct {
		input string
		want  IncrementKind
	}{
		{"", IncrementNone},
		{"patch", IncrementPatch},
		{"Minor", IncrementMinor},
		{"MAJOR", IncrementMajor},
		{"prepatch", IncrementPrePatch},
		{"pre-minor", IncrementPreMinor},
		{"PreMajor", IncrementPreMajor},
		{"pre-release", IncrementPreRelease},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseIncrementKind(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseIncrementKind_Invalid(t *testing.T) {
	_, err := ParseIncrementKind("huge")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown increment kind")
}

func TestIncrementKind_YAML(t *testing.T) {
	var holder struct {
		Increment IncrementKind `yaml:"increment"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("increment: pre-minor\n"), &holder))
	require.Equal(t, IncrementPreMinor, holder.Increment)

	err := yaml.Unmarshal([]byte("increment: sideways\n"), &holder)
	require.Error(t, err)

	out, err := yaml.Marshal(holder)
	require.NoError(t, err)
	require.Equal(t, "increment: PreMinor\n", string(out))
}

func TestIncrementKind_MarshalText(t *testing.T) {
	text, err := IncrementPreRelease.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "PreRelease", string(text))
}
