package normalize_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/buzzline/consumer/internal/normalize"
)

func TestCheckJSONLStream(t *testing.T) {
	t.Parallel()

	in := strings.Join([]string{
		`{"message":"hello!","author":"A","timestamp":"t1","category":"c","sentiment":0.9,"keyword_mentioned":"k","message_length":6}`,
		``,
		`garbage line`,
		`{"message":"second","sentiment":"bad"}`,
	}, "\n")

	var out bytes.Buffer
	res, err := normalize.CheckJSONLStream(context.Background(), normalize.NewNormalizer(), strings.NewReader(in), &out)
	if err != nil {
		t.Fatalf("CheckJSONLStream: %v", err)
	}

	if res.ValidLinesCount != 2 || res.InvalidLinesCount != 1 {
		t.Fatalf("summary wrong: %s", res)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 canonical lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], `"sentiment":0.9`) {
		t.Errorf("first canonical line wrong: %s", lines[0])
	}
	// coerced defaults survive the canonical form
	if !strings.Contains(lines[1], `"sentiment":0`) || !strings.Contains(lines[1], `"message_length":6`) {
		t.Errorf("second canonical line wrong: %s", lines[1])
	}
}
