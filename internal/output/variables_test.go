package output

import (
	"testing"

	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/pipeline"
	"github.com/MyCarrier-DevOps/go-pkgrelease/internal/release"
	"github.com/stretchr/testify/require"
)

func TestGetVariables(t *testing.T) {
	vars := GetVariables(&pipeline.Result{
		State:           release.StateDone,
		Name:            "widget",
		PreviousVersion: "1.2.3",
		Version:         "2.0.0-rc.0",
		Tag:             "v2.0.0-rc.0",
		Prerelease:      true,
		Tagged:          true,
		Commit:          "abc123",
		Registries:      []string{"npm", "github"},
		ReleaseURL:      "https://github.com/acme/widget/releases/new?tag=v2.0.0-rc.0",
	})

	require.Equal(t, "Done", vars["State"])
	require.Equal(t, "2.0.0-rc.0", vars["Version"])
	require.Equal(t, "v2.0.0-rc.0", vars["Tag"])
	require.Equal(t, "true", vars["Prerelease"])
	require.Equal(t, "false", vars["FirstRelease"])
	require.Equal(t, "true", vars["Tagged"])
	require.Equal(t, "npm,github", vars["Registries"])
	require.Equal(t, "", vars["Branch"])
	require.Len(t, vars, 13)
}
