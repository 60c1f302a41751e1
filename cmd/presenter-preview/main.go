// Command presenter-preview renders presenters for YAML record fixtures. It
// prints the string form, locations and attribute markup of a record, or
// serves the same previews over HTTP together with resolution metrics.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
