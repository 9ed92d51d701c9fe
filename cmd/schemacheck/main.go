// Command schemacheck verifies that the committed swagger document and the
// shared Go types in internal/api still describe the same shapes. It exits
// non-zero on any drift, which makes it suitable as a CI gate.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/swaggo/swag"

	_ "userdir/docs" // registers the swagger document
	"userdir/internal/api"
)

func main() {
	doc, err := swag.ReadDoc()
	if err != nil {
		log.Fatalf("read swagger document: %v", err)
	}

	drifts, err := api.CheckSchemas([]byte(doc))
	if err != nil {
		log.Fatalf("schema check: %v", err)
	}

	if len(drifts) > 0 {
		fmt.Fprintf(os.Stderr, "schema drift detected (%d issues):\n", len(drifts))
		for _, d := range drifts {
			fmt.Fprintf(os.Stderr, "  - %s\n", d)
		}
		os.Exit(1)
	}

	fmt.Printf("schema check passed: %d shared schemas match the swagger document\n", len(api.Schemas))
}
