package sender

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stdout implements the Sender interface by writing messages to standard
// output. Intended for development and debugging; messages are never
// actually delivered.
type Stdout struct {
	writer io.Writer
}

// NewStdout creates a Stdout sender that prints messages to os.Stdout.
func NewStdout() *Stdout {
	return &Stdout{writer: os.Stdout}
}

func (s *Stdout) GetName() string { return "stdout" }

// Send prints the message to stdout and reports success.
func (s *Stdout) Send(_ context.Context, recipientID, text string) error {
	var b strings.Builder
	b.WriteString("--- stdout sender: message ---\n")
	fmt.Fprintf(&b, "Recipient: %s\n", recipientID)
	fmt.Fprintf(&b, "Text:      %s\n", text)
	b.WriteString("--- end ---\n")

	if _, err := io.WriteString(s.writer, b.String()); err != nil {
		return fmt.Errorf("stdout: write: %w", err)
	}
	return nil
}
