package normalize

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/buzzline/consumer/internal/ports"
)

// JSONLResult holds the statistics of one JSONL stream check.
type JSONLResult struct {
	ValidLinesCount   int
	InvalidLinesCount int
}

func (r JSONLResult) String() string {
	return fmt.Sprintf("%d valid / %d invalid", r.ValidLinesCount, r.InvalidLinesCount)
}

// CheckJSONLStream reads JSONL from ir, normalizes every line and writes each
// accepted record as one line of canonical JSON to ow. Rejected lines are
// counted, not returned as errors. Blank lines are skipped silently.
func CheckJSONLStream(ctx context.Context, n ports.MessageNormalizer, ir io.Reader, ow io.Writer) (JSONLResult, error) {
	var res JSONLResult

	scanner := bufio.NewScanner(ir)
	// headroom for long lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if !LooksLikeObject(line) {
			if len(bytes.TrimSpace(line)) > 0 {
				res.InvalidLinesCount++
			}
			continue
		}

		msg, err := n.Normalize(ctx, line)
		if err != nil {
			res.InvalidLinesCount++
			continue
		}

		canonical, _ := json.Marshal(msg)
		if _, err := ow.Write(canonical); err != nil {
			return res, fmt.Errorf("write valid line: %w", err)
		}
		if _, err := ow.Write([]byte("\n")); err != nil {
			return res, fmt.Errorf("write newline: %w", err)
		}
		res.ValidLinesCount++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}

// CheckFile opens path (or stdin for "-") and runs CheckJSONLStream over it.
func CheckFile(ctx context.Context, n ports.MessageNormalizer, path string, ow io.Writer) (JSONLResult, error) {
	if path == "-" {
		return CheckJSONLStream(ctx, n, os.Stdin, ow)
	}

	file, err := os.Open(path)
	if err != nil {
		return JSONLResult{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return CheckJSONLStream(ctx, n, file, ow)
}
