package main

import (
	"os"

	"melodyd/internal/melodyctl"
)

func main() {
	if err := melodyctl.Execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
