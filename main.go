package main

import (
	"fmt"
	"os"

	"github.com/bvisness/flowwire/app"
)

func main() {
	if len(os.Args) > 1 {
		if os.Args[1] == "replay" {
			if len(os.Args) < 3 {
				fmt.Println("Usage: flowwire replay <script>")
				return
			}
			if err := app.HeadlessReplay(os.Args[2]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}
	app.Main()
}
