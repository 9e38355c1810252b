package service

import (
	"sync"
	"time"

	"github.com/dukapoint/pos-engine/internal/application/scan"
	"github.com/dukapoint/pos-engine/pkg/apperror"
)

// KeyEvent is one timestamped event from the host input layer. Enter marks
// the terminator keystroke; otherwise Char carries a single printable rune.
type KeyEvent struct {
	Char  string    `json:"char,omitempty"`
	Enter bool      `json:"enter,omitempty"`
	At    time.Time `json:"at"`
}

// ScanResult reports what happened to one detected scan
type ScanResult struct {
	SKU   string `json:"sku"`
	Added bool   `json:"added"`
	Error string `json:"error,omitempty"`
}

// ScanService feeds the raw keystroke stream through the timing classifier
// and routes detected SKUs into the active session. The classifier itself is
// single-threaded; the mutex serializes batches arriving over HTTP.
type ScanService struct {
	mu         sync.Mutex
	classifier *scan.Classifier
	session    *SessionService
}

// NewScanService creates a scan service around the given classifier
func NewScanService(classifier *scan.Classifier, session *SessionService) *ScanService {
	return &ScanService{classifier: classifier, session: session}
}

// SetFocus disables classification while a manual text input has focus
func (s *ScanService) SetFocus(inTextInput bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classifier.SetEnabled(!inTextInput)
}

// Feed processes a batch of keystroke events in order. Every detected scan is
// added to the session as one unit of the matched variant; catalog misses are
// reported per scan instead of failing the whole batch.
func (s *ScanService) Feed(events []KeyEvent) []ScanResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []ScanResult
	for _, ev := range events {
		if !ev.Enter {
			for _, r := range ev.Char {
				s.classifier.Keystroke(r, ev.At)
				break // one printable rune per event
			}
			continue
		}
		sku, ok := s.classifier.Enter(ev.At)
		if !ok {
			continue
		}
		result := ScanResult{SKU: sku}
		if _, err := s.session.AddItemBySKU(sku, 1); err != nil {
			result.Error = apperror.GetAppError(err).Message
		} else {
			result.Added = true
		}
		results = append(results, result)
	}
	return results
}
