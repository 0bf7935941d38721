package main

import (
	"fmt"
	"os"

	"github.com/maplebudget/mapleparse/cmd"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("mapleparse version %s\n", version)
		os.Exit(0)
	}

	cmd.Execute()
}
