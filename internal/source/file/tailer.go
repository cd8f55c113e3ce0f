package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/buzzline/consumer/internal/ports"
	"github.com/buzzline/consumer/pkg/metrics"
)

var _ ports.MessageSource = (*Tailer)(nil)

// unit is one complete line. size is the raw byte span the line occupied in
// the file including its terminator; committing the unit advances the cursor
// by exactly that span.
type unit struct {
	data []byte
	size int64
}

func (u unit) Bytes() []byte { return u.data }

// Tailer polls a growing JSONL file from the last committed offset. The file
// is opened per poll, so rotation by replacement is picked up naturally; a
// shrink of the file is treated as truncation, not as an error.
type Tailer struct {
	path string
	cur  Cursor
	log  ports.Logger
}

func NewTailer(path string, log ports.Logger) *Tailer {
	return &Tailer{path: path, log: log}
}

func (t *Tailer) Name() string { return "file" }

// Cursor exposes the current position for logging and tests.
func (t *Tailer) Cursor() Cursor { return t.cur }

// Poll reads everything between the committed offset and the current end of
// file and splits it into complete lines. The trailing fragment is withheld
// until a later poll sees its terminator: the file may be mid-write by a
// concurrent appender and a half-written line must never be parsed.
func (t *Tailer) Poll(ctx context.Context) ([]ports.RawUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ports.ErrSourceAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("stat source: %w", err)
	}

	if info.Size() < t.cur.Offset() {
		t.log.Infof(ctx, "source truncated size=%d offset=%d, resetting to start (epoch=%d)",
			info.Size(), t.cur.Offset(), t.cur.Epoch()+1)
		metrics.SourceTruncations.Inc()
		t.cur.Reset()
		metrics.CursorOffset.Set(0)
	}

	f, err := os.Open(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ports.ErrSourceAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	if _, err := f.Seek(t.cur.Offset(), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek source: %w", err)
	}

	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	return splitComplete(buf), nil
}

// Commit advances the cursor past one previously polled line. Units must be
// committed in the order they were returned.
func (t *Tailer) Commit(_ context.Context, u ports.RawUnit) error {
	lu, ok := u.(unit)
	if !ok {
		return fmt.Errorf("commit: unit does not belong to this source")
	}
	t.cur.Advance(lu.size)
	metrics.CursorOffset.Set(float64(t.cur.Offset()))
	return nil
}

// Close is a no-op: the tailer holds no handle between polls.
func (t *Tailer) Close() error { return nil }

// splitComplete cuts buf into newline-terminated units, dropping a trailing
// carriage return from the payload while still accounting it in the byte span.
// An unterminated tail fragment is not returned.
func splitComplete(buf []byte) []ports.RawUnit {
	var units []ports.RawUnit
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimSuffix(buf[:i], []byte("\r"))
		units = append(units, unit{data: line, size: int64(i + 1)})
		buf = buf[i+1:]
	}
	return units
}
