package scan

import (
	"time"
)

// DefaultGapThreshold separates scanner bursts from human typing. Barcode
// scanners emit keystrokes a few milliseconds apart; a gap above this means a
// person is typing and the buffer is not a scan.
const DefaultGapThreshold = 100 * time.Millisecond

type state int

const (
	stateIdle state = iota
	stateAccumulating
)

// Classifier turns a raw timestamped keystroke stream into discrete SKU scan
// events. It holds no references to the rest of the engine; callers feed it
// keystrokes and act on the returned SKUs.
//
// Not safe for concurrent use; the host input layer delivers keystrokes
// sequentially.
type Classifier struct {
	threshold time.Duration
	state     state
	buf       []rune
	lastKey   time.Time
	disabled  bool
}

// NewClassifier creates a classifier with the given inter-keystroke gap
// threshold. A non-positive threshold falls back to the default.
func NewClassifier(threshold time.Duration) *Classifier {
	if threshold <= 0 {
		threshold = DefaultGapThreshold
	}
	return &Classifier{threshold: threshold}
}

// SetEnabled toggles the classifier. While a manual text input has focus the
// host disables it so ordinary typing is never misread as a scan; keystrokes
// arriving while disabled are ignored and any partial buffer is dropped.
func (c *Classifier) SetEnabled(enabled bool) {
	c.disabled = !enabled
	if c.disabled {
		c.reset()
	}
}

// Enabled reports whether keystrokes are currently being classified
func (c *Classifier) Enabled() bool {
	return !c.disabled
}

// Keystroke feeds one printable keystroke. A gap above the threshold discards
// the accumulated buffer and restarts accumulation from this key.
func (c *Classifier) Keystroke(r rune, at time.Time) {
	if c.disabled {
		return
	}
	switch c.state {
	case stateIdle:
		c.state = stateAccumulating
		c.buf = append(c.buf[:0], r)
	case stateAccumulating:
		if at.Sub(c.lastKey) > c.threshold {
			// Too slow for a scanner: treat everything so far as manual
			// typing and start over from the current key.
			c.buf = append(c.buf[:0], r)
		} else {
			c.buf = append(c.buf, r)
		}
	}
	c.lastKey = at
}

// Enter terminates a burst. If the buffer is non-empty and the final gap is
// within the threshold, the buffered runes are emitted as a scanned SKU.
func (c *Classifier) Enter(at time.Time) (sku string, ok bool) {
	if c.disabled || c.state != stateAccumulating || len(c.buf) == 0 {
		c.reset()
		return "", false
	}
	if at.Sub(c.lastKey) > c.threshold {
		c.reset()
		return "", false
	}
	sku = string(c.buf)
	c.reset()
	return sku, true
}

func (c *Classifier) reset() {
	c.state = stateIdle
	c.buf = c.buf[:0]
}
