package storage

import (
	"errors"
	"fmt"
	"io"

	"github.com/dutchcoders/go-clamd"
)

// ErrInfected is returned when clamd flags an upload.
var ErrInfected = errors.New("malicious file detected")

// Scanner streams uploads through clamd before they are stored.
type Scanner struct {
	client *clamd.Clamd
}

// NewScanner returns a scanner for addr (e.g. "tcp://clamav:3310"), or nil
// when addr is empty. A nil *Scanner accepts everything.
func NewScanner(addr string) *Scanner {
	if addr == "" {
		return nil
	}
	return &Scanner{client: clamd.NewClamd(addr)}
}

// Scan reports ErrInfected if any signature matches r.
func (s *Scanner) Scan(r io.Reader) error {
	if s == nil {
		return nil
	}

	abort := make(chan bool)
	defer close(abort)

	results, err := s.client.ScanStream(r, abort)
	if err != nil {
		return fmt.Errorf("scan stream: %w", err)
	}
	for result := range results {
		switch result.Status {
		case clamd.RES_OK:
		case clamd.RES_FOUND:
			return ErrInfected
		default:
			return fmt.Errorf("clamd: %s %s", result.Status, result.Description)
		}
	}
	return nil
}
