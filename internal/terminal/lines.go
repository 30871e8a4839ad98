package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

type lineResult struct {
	line string
	err  error
}

// LineReader reads newline-terminated input in cooked mode. It is not safe
// for concurrent use.
type LineReader struct {
	r   *bufio.Reader
	out io.Writer

	// pending carries a read abandoned by a cancelled ReadLine; the next
	// call collects it instead of starting a second reader.
	pending chan lineResult
}

// NewLineReader returns a LineReader over in that writes prompts to out.
func NewLineReader(in io.Reader, out io.Writer) *LineReader {
	return &LineReader{r: bufio.NewReader(in), out: out}
}

// ReadLine prints prompt and returns the next line without its terminator.
// A final line without a newline is returned as is; io.EOF is returned only
// when nothing was read. Cancelling ctx unblocks the call with ctx.Err().
func (l *LineReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(l.out, prompt)

	if l.pending == nil {
		ch := make(chan lineResult, 1)
		go func() {
			line, err := l.r.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
		l.pending = ch
	}

	var res lineResult
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res = <-l.pending:
		l.pending = nil
	}

	if res.err != nil {
		if errors.Is(res.err, io.EOF) && res.line != "" {
			return strings.TrimRight(res.line, "\r"), nil
		}
		return "", res.err
	}
	return strings.TrimRight(res.line, "\r\n"), nil
}
