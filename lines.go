package csvsearch

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/ergochat/readline"
)

// LineReader supplies one line of interactive input at a time.
// ReadLine returns io.EOF once the input is exhausted.
type LineReader interface {
	ReadLine() (string, error)
	Close() error
}

// promptReader reads lines from a plain stream, writing the prompt marker
// before each read.
type promptReader struct {
	r      *bufio.Reader
	w      io.Writer
	prompt string
}

// NewPromptReader returns a LineReader over r that writes prompt to w before
// every line.
func NewPromptReader(r io.Reader, w io.Writer, prompt string) LineReader {
	return &promptReader{r: bufio.NewReader(r), w: w, prompt: prompt}
}

// ReadLine implements LineReader.
func (p *promptReader) ReadLine() (string, error) {
	if _, err := io.WriteString(p.w, p.prompt); err != nil {
		return "", err
	}
	line, err := p.r.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}
	return strings.TrimRight(line, "\r\n"), err
}

// Close implements LineReader.
func (p *promptReader) Close() error {
	return nil
}

// terminalReader reads lines through a line editor with history.
type terminalReader struct {
	rl *readline.Instance
}

// NewTerminalReader returns a line-editing LineReader for an interactive
// terminal. An empty historyFile disables history.
func NewTerminalReader(prompt, historyFile string) (LineReader, error) {
	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:      prompt,
		HistoryFile: historyFile,
	})
	if err != nil {
		return nil, err
	}
	return &terminalReader{rl: rl}, nil
}

// ReadLine implements LineReader. Ctrl-C discards the current line.
func (t *terminalReader) ReadLine() (string, error) {
	line, err := t.rl.ReadLine()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", nil
	}
	return line, err
}

// Close implements LineReader.
func (t *terminalReader) Close() error {
	return t.rl.Close()
}
