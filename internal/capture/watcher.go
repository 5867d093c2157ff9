package capture

import (
	"bufio"
	"bytes"
	"database/sql"
	"io"
	"log"

	"github.com/clipstash/clipstash/internal/config"
	"github.com/clipstash/clipstash/internal/ops"
)

// maxChunkBytes bounds a single captured chunk. Anything larger would be
// rejected by the clip size limit regardless.
const maxChunkBytes = 4 * 1024 * 1024

// Options controls how captured input is delimited.
type Options struct {
	// NullDelimited splits input on NUL bytes instead of newlines, for
	// sources like `wl-paste --watch` that emit multiline clips. With
	// newline framing a multiline clip arrives as separate entries.
	NullDelimited bool
}

// Summary reports what a capture run did.
type Summary struct {
	Captured int `json:"captured"` // new records
	Touched  int `json:"touched"`  // duplicates that bubbled up
	Failed   int `json:"failed"`
}

// Run consumes delimited chunks from r until EOF, feeding each through the
// store. Dedup and retention apply per chunk. A chunk that fails to store
// is logged and counted but does not stop the run; only a read error does.
func Run(r io.Reader, database *sql.DB, cfg *config.Config, opts Options) (*Summary, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxChunkBytes)
	if opts.NullDelimited {
		scanner.Split(scanNull)
	}

	summary := &Summary{}
	for scanner.Scan() {
		content := scanner.Text()
		if content == "" {
			continue
		}

		out, err := ops.Add(database, cfg, ops.AddInput{Content: content})
		if err != nil {
			summary.Failed++
			log.Printf("capture: dropped chunk: %v", err)
			continue
		}
		if out.Created {
			summary.Captured++
		} else {
			summary.Touched++
		}
	}
	if err := scanner.Err(); err != nil {
		return summary, err
	}

	return summary, nil
}

// scanNull is a bufio.SplitFunc for NUL-delimited input.
func scanNull(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
