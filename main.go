// Command release publishes a versioned package: it checks the repository,
// bumps and tags the version, runs the quality gates and publishes to each
// configured registry.
package main

import "github.com/MyCarrier-DevOps/go-pkgrelease/cmd"

func main() {
	cmd.Execute()
}
