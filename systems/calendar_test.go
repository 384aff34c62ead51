package systems

import "testing"

func TestClock(t *testing.T) {
	c := NewClock(30, 12)
	if c.Elapsed() != 0 || c.Day() != 0 || c.Month() != 0 || c.Year() != 0 {
		t.Fatalf("new clock not at zero: %s", c)
	}

	for i := 0; i < 29; i++ {
		c.Advance()
	}
	if !c.MonthEnd() {
		t.Errorf("day %d should be month end", c.Elapsed())
	}
	c.Advance()
	if c.MonthEnd() || c.Month() != 1 || c.Day() != 0 {
		t.Errorf("after 30 days: %s, want month 2 day 1", c)
	}
	if c.DayOfYear() != 30 {
		t.Errorf("DayOfYear = %d, want 30", c.DayOfYear())
	}

	for i := 0; i < 330; i++ {
		c.Advance()
	}
	if c.Year() != 1 || c.Month() != 0 {
		t.Errorf("after 360 days: %s, want year 1 month 1", c)
	}
	if got := c.String(); got != "Y1 M01 D01" {
		t.Errorf("String = %q", got)
	}
}

func TestClockCopyIsReadable(t *testing.T) {
	c := NewClock(30, 12)
	c.Advance()
	snap := *c
	c.Advance()
	if snap.Elapsed() != 1 || snap.Day() != 1 || snap.MonthEnd() {
		t.Errorf("copy = %s, want day 2 of month 1", snap)
	}
	if c.Elapsed() != 2 {
		t.Errorf("Elapsed = %d, want 2", c.Elapsed())
	}
}
