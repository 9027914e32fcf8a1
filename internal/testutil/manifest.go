package testutil

import (
	"fmt"
	"sort"
	"strings"
)

// PackageJSON renders a two-space indented package.json the way npm writes it.
func PackageJSON(name, version string, scripts map[string]string) string {
	var b strings.Builder
	b.WriteString("{\n")
	fmt.Fprintf(&b, "  \"name\": %q,\n", name)
	fmt.Fprintf(&b, "  \"version\": %q", version)
	if len(scripts) > 0 {
		keys := make([]string, 0, len(scripts))
		for k := range scripts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString(",\n  \"scripts\": {\n")
		for i, k := range keys {
			fmt.Fprintf(&b, "    %q: %q", k, scripts[k])
			if i < len(keys)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString("  }")
	}
	b.WriteString("\n}\n")
	return b.String()
}
