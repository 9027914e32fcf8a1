package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommit_IsMerge(t *testing.T) {
	tests := []struct {
		name    string
		parents []string
		expect  bool
	}{
		{"no parents (root)", nil, false},
		{"one parent", []string{"a"}, false},
		{"two parents", []string{"a", "b"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Commit{Parents: tt.parents}
			require.Equal(t, tt.expect, c.IsMerge())
		})
	}
}

func TestCommit_ShortSha(t *testing.T) {
	require.Equal(t, "abc1234", Commit{Sha: "abc1234567890"}.ShortSha())
	require.Equal(t, "abc", Commit{Sha: "abc"}.ShortSha())
}

func TestCommit_Subject(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"fix: handle empty scripts\n\nlonger body", "fix: handle empty scripts"},
		{"  single line  ", "single line"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, Commit{Message: tt.message}.Subject())
		})
	}
}

func TestCommit_IsEmpty(t *testing.T) {
	require.True(t, Commit{}.IsEmpty())
	require.False(t, Commit{Sha: "a"}.IsEmpty())
}

func TestRefNames(t *testing.T) {
	require.Equal(t, "refs/tags/1.0.0", TagRef("1.0.0"))
	require.Equal(t, "refs/heads/master", BranchRef("master"))
}

func TestPushOptions_Args(t *testing.T) {
	tests := []struct {
		name string
		opts PushOptions
		want []string
	}{
		{
			"upstream branch push",
			PushOptions{Refspecs: []string{"HEAD"}, SetUpstream: true},
			[]string{"push", "-u", "origin", "HEAD"},
		},
		{
			"tag push to named remote",
			PushOptions{Remote: "upstream", Refspecs: []string{"refs/tags/1.0.0"}},
			[]string{"push", "upstream", "refs/tags/1.0.0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.opts.Args())
		})
	}
}

func TestParseLsRemote(t *testing.T) {
	require.Equal(t, "abc123", parseLsRemote("abc123\tHEAD"))
	require.Equal(t, "abc123", parseLsRemote("abc123\trefs/tags/1.0.0\ndef456\trefs/tags/1.0.0^{}"))
	require.Empty(t, parseLsRemote(""))
}
