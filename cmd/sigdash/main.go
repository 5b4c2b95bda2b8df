package main

import "github.com/RMahshie/sigdash/internal/cmd"

func main() {
	cmd.Execute()
}
