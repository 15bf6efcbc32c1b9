package main

import "github.com/cmmoran/pyscaffold/cmd"

var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
