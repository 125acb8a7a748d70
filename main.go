package main

import (
	"os"

	"github.com/automoto/oshu/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
