package main

import (
	"os"

	"github.com/trofos-project/trofos/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
