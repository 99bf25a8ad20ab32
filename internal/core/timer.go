package core

import "time"

// Speed levels map to the number of frames between generations.
var tickLengths = [...]int{40, 20, 10, 5, 2}

// DefaultSpeed is the speed level used when none has been chosen.
const DefaultSpeed = 3

// TickLength returns the frames per generation for speed level 1..5.
// Out-of-range levels clamp to the nearest end.
func TickLength(level int) int {
	if level < 1 {
		level = 1
	}
	if level > len(tickLengths) {
		level = len(tickLengths)
	}
	return tickLengths[level-1]
}

// Cadence decides on which frames a running simulation advances. The
// driver calls Tick once per rendered frame.
type Cadence struct {
	every int
	frame int
}

// NewCadence constructs a Cadence that fires every n frames.
func NewCadence(n int) *Cadence {
	c := &Cadence{}
	c.SetEvery(n)
	return c
}

// SetEvery changes the number of frames per step. It is safe to call
// while running; the frame counter is kept.
func (c *Cadence) SetEvery(n int) {
	if n <= 0 {
		n = 1
	}
	c.every = n
}

// Every returns the current frames per step.
func (c *Cadence) Every() int { return c.every }

// Reset restarts counting so that the next Tick fires.
func (c *Cadence) Reset() { c.frame = 0 }

// Tick advances the frame counter and reports whether to step now.
func (c *Cadence) Tick() bool {
	fire := c.frame%c.every == 0
	c.frame++
	return fire
}

// TickInterval converts a speed level into wall-clock time between
// generations for a driver running at tps frames per second.
func TickInterval(level, tps int) time.Duration {
	if tps <= 0 {
		tps = 60
	}
	return time.Duration(TickLength(level)) * time.Second / time.Duration(tps)
}
