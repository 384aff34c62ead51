package systems

import "fmt"

// Clock is the monotonically increasing simulation calendar.
type Clock struct {
	daysPerMonth  int
	monthsPerYear int
	elapsed       int
}

// NewClock creates a clock at day zero.
func NewClock(daysPerMonth, monthsPerYear int) *Clock {
	return &Clock{daysPerMonth: daysPerMonth, monthsPerYear: monthsPerYear}
}

// Advance moves the clock forward one day.
func (c *Clock) Advance() {
	c.elapsed++
}

// Elapsed returns days since the start.
func (c Clock) Elapsed() int { return c.elapsed }

// Day returns the day within the month.
func (c Clock) Day() int { return c.elapsed % c.daysPerMonth }

// Month returns the month within the year.
func (c Clock) Month() int { return (c.elapsed / c.daysPerMonth) % c.monthsPerYear }

// Year returns whole years elapsed.
func (c Clock) Year() int { return c.elapsed / (c.daysPerMonth * c.monthsPerYear) }

// DayOfYear returns the day index used by the seasonal curve.
func (c Clock) DayOfYear() int { return c.Month() * c.daysPerMonth }

// MonthEnd reports whether today is the last day of the month.
func (c Clock) MonthEnd() bool { return c.Day() == c.daysPerMonth-1 }

func (c Clock) String() string {
	return fmt.Sprintf("Y%d M%02d D%02d", c.Year(), c.Month()+1, c.Day()+1)
}
