package git

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// globalExcludes returns the ignore patterns git applies from outside the
// repository: core.excludesFile of the system and user configuration, or
// the XDG ignore file when the user configures none.
func globalExcludes() []gitignore.Pattern {
	root := osfs.New("/")

	var patterns []gitignore.Pattern
	if system, err := gitignore.LoadSystemPatterns(root); err == nil {
		patterns = append(patterns, system...)
	}
	if user, err := gitignore.LoadGlobalPatterns(root); err == nil && len(user) > 0 {
		return append(patterns, user...)
	}

	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return patterns
		}
		dir = filepath.Join(home, ".config")
	}
	data, err := util.ReadFile(root, filepath.Join(dir, "git", "ignore"))
	if err != nil {
		return patterns
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return patterns
}
