package scan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

// feed pushes the runes with a constant inter-keystroke gap and returns the
// timestamp following the last rune.
func feed(c *Classifier, s string, start time.Time, gap time.Duration) time.Time {
	at := start
	for _, r := range s {
		c.Keystroke(r, at)
		at = at.Add(gap)
	}
	return at
}

func TestScannerBurstDetected(t *testing.T) {
	c := NewClassifier(0)
	at := feed(c, "4006381333931", base, 5*time.Millisecond)

	sku, ok := c.Enter(at)

	assert.True(t, ok)
	assert.Equal(t, "4006381333931", sku)
}

func TestSlowTypingDiscarded(t *testing.T) {
	c := NewClassifier(0)
	// 300ms between keys is a human typing, not a scanner
	at := feed(c, "abc", base, 300*time.Millisecond)

	sku, ok := c.Enter(at.Add(5 * time.Millisecond))

	// Only the final keystroke survives each slow gap; a single trailing
	// rune within threshold still forms a (short) burst
	assert.True(t, ok)
	assert.Equal(t, "c", sku)
}

func TestSlowGapRestartsAccumulation(t *testing.T) {
	c := NewClassifier(0)
	at := feed(c, "xy", base, 500*time.Millisecond)
	// A fast burst after the slow prefix should come through clean
	at = feed(c, "123", at.Add(500*time.Millisecond), 5*time.Millisecond)

	sku, ok := c.Enter(at)

	assert.True(t, ok)
	assert.Equal(t, "123", sku)
}

func TestEnterAfterLongPauseDiscards(t *testing.T) {
	c := NewClassifier(0)
	at := feed(c, "999", base, 5*time.Millisecond)

	_, ok := c.Enter(at.Add(2 * time.Second))

	assert.False(t, ok)
}

func TestEnterWithEmptyBuffer(t *testing.T) {
	c := NewClassifier(0)

	_, ok := c.Enter(base)

	assert.False(t, ok)
}

func TestDisabledWhileTextInputFocused(t *testing.T) {
	c := NewClassifier(0)
	c.SetEnabled(false)

	at := feed(c, "4006381333931", base, 5*time.Millisecond)
	_, ok := c.Enter(at)

	assert.False(t, ok)
	assert.False(t, c.Enabled())
}

func TestDisablingDropsPartialBuffer(t *testing.T) {
	c := NewClassifier(0)
	at := feed(c, "400638", base, 5*time.Millisecond)

	c.SetEnabled(false)
	c.SetEnabled(true)

	at = feed(c, "1", at.Add(5*time.Millisecond), 5*time.Millisecond)
	sku, ok := c.Enter(at)

	assert.True(t, ok)
	assert.Equal(t, "1", sku)
}

func TestClassifierReusableAcrossScans(t *testing.T) {
	c := NewClassifier(0)

	at := feed(c, "111", base, 5*time.Millisecond)
	sku, ok := c.Enter(at)
	assert.True(t, ok)
	assert.Equal(t, "111", sku)

	at = feed(c, "222", at.Add(3*time.Second), 5*time.Millisecond)
	sku, ok = c.Enter(at)
	assert.True(t, ok)
	assert.Equal(t, "222", sku)
}

func TestCustomThreshold(t *testing.T) {
	c := NewClassifier(10 * time.Millisecond)
	at := feed(c, "ab", base, 50*time.Millisecond)

	sku, ok := c.Enter(at)

	// 50ms gaps exceed the 10ms threshold, so only "b" accumulates
	assert.True(t, ok)
	assert.Equal(t, "b", sku)
}
