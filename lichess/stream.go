package lichess

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/rs/zerolog/log"
)

// Streamed lines are usually tiny, but gameFull records for long games
// can grow; allow up to 1MB per line.
const maxStreamLine = 1 << 20

// scanStream reads newline-delimited records from body and hands each
// non-empty line to deliver. Blank lines are the server's keep-alives.
// It returns nil on a clean end of stream, the transport error
// otherwise. deliver returning false stops the scan.
func scanStream(ctx context.Context, body io.Reader, deliver func(line []byte) bool) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStreamLine)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !deliver(line) {
			return ctx.Err()
		}
	}
	return scanner.Err()
}

func logDiscardedLine(stream string, line []byte, err error) {
	log.Debug().
		Str("stream", stream).
		Bytes("line", line).
		Err(err).
		Msg("discarding line that failed to parse")
}
