package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/buzzline/consumer/internal/normalize"
)

// CLI that checks a JSONL feed offline: normalizable lines are echoed in
// canonical form, malformed lines are counted.
func main() {
	inputPath := flag.String("in", "", "path to input (.jsonl). If empty, reads from stdin.")
	flag.Parse()

	ctx := context.Background()
	n := normalize.NewNormalizer()

	path := *inputPath
	if path == "" {
		path = "-"
	}

	summary, err := normalize.CheckFile(ctx, n, path, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "check: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "check ok (%s)\n", summary)
}
