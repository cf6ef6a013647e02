package main

import "github.com/LegacyCodeHQ/depclosure/cmd"

func main() {
	cmd.Execute()
}
