package printer

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/ruteri/paper-custody-kit/interfaces"
)

const (
	DefaultCommand     = "lp"
	DefaultListCommand = "lpstat"
)

// LPSpooler hands documents to the CUPS lp client. The document is piped
// through stdin and never written to disk by this process.
type LPSpooler struct {
	command string
	printer string
	log     *slog.Logger
}

func NewLPSpooler(command, printer string, log *slog.Logger) (*LPSpooler, error) {
	if printer == "" {
		return nil, fmt.Errorf("%w: Printer name was not set", interfaces.ErrConfig)
	}
	if command == "" {
		command = DefaultCommand
	}
	return &LPSpooler{command: command, printer: printer, log: log}, nil
}

func (s *LPSpooler) Name() string {
	return s.printer
}

// Spool runs `lp -d <printer> -t <title> -` with the document on stdin.
func (s *LPSpooler) Spool(ctx context.Context, title string, document io.Reader) error {
	cmd := exec.CommandContext(ctx, s.command, "-d", s.printer, "-t", title, "-")
	cmd.Stdin = document

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("%w: %s to %q: %w: %s", interfaces.ErrSpool, s.command, s.printer, err, strings.TrimSpace(stderr.String()))
	}

	s.log.Info("Document spooled", "printer", s.printer, "output", strings.TrimSpace(string(out)))
	return nil
}

// ListPrinters runs the given lpstat-like command and returns the first field
// of every non-empty output line. Without arguments it runs `lpstat -e`.
func ListPrinters(ctx context.Context, command string, args ...string) ([]string, error) {
	if command == "" {
		command = DefaultListCommand
		args = []string{"-e"}
	}

	out, err := exec.CommandContext(ctx, command, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", interfaces.ErrSpool, command, err)
	}

	var printers []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		printers = append(printers, fields[0])
	}
	return printers, scanner.Err()
}
