/*
Package gridpath enumerates the monotone paths between two cells of a rectangular grid
and renders them as a looping animation, one frame per path.

A path moves one cell at a time, either right or down. The search tries the right move
before the down move, so the paths are always returned in the same order, and it stops
as soon as the requested number of paths has been collected.

The package provides a command line interface. To check the supported flags type:

	$ gridpath --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"context"
		"fmt"
		"os"

		"github.com/esimov/gridpath"
	)

	func main() {
		paths := gridpath.Enumerate(gridpath.Cell{}, gridpath.Cell{Row: 4, Col: 4}, 5, 5, 10)
		for _, p := range paths {
			fmt.Println(p.Moves())
		}

		proc := gridpath.NewProcessor(5, 5)
		f, _ := os.Create("paths.gif")
		defer f.Close()

		if _, err := proc.Process(context.Background(), f); err != nil {
			fmt.Printf("Error rendering the paths: %s", err.Error())
		}
	}
*/
package gridpath
