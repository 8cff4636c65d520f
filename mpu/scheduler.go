package mpu

// completion is the single pending completion event. Issuing or
// acknowledging a command while one is armed replaces it; once armed an
// event always fires, there is no cancellation
type completion struct {
	due int64
}

// arm schedules the completion interrupt delay units from now, replacing
// any pending event. The delay is always at least one unit so a completion
// can never be observed within the dispatch that armed it
func (s *System) arm(delay int64) {
	if delay < 1 {
		delay = 1
	}
	s.pending = &completion{due: s.clock + delay}
}

// Advance moves emulated time forward by the given number of units, firing
// the completion interrupt if it falls due within the span
func (s *System) Advance(units int64) {
	target := s.clock + units

	if s.pending != nil && s.pending.due <= target {
		s.clock = s.pending.due
		s.pending = nil
		if s.irq != nil {
			s.irq(MCUIRQ)
		}
	}

	s.clock = target
}

// SpinUntilInterrupt advances time directly to the pending completion, if
// any. It is the speed-up path for the main CPU busy-polling loop and is
// indistinguishable in effect from calling Advance until the interrupt
// fires
func (s *System) SpinUntilInterrupt() {
	if s.pending == nil {
		return
	}
	s.Advance(s.pending.due - s.clock)
}

// VBlank raises the per-frame interrupt; the frontend calls it once per
// video frame
func (s *System) VBlank() {
	if s.irq != nil {
		s.irq(VBlankIRQ)
	}
}

// Now returns the current emulated time in units
func (s *System) Now() int64 {
	return s.clock
}

func (s *System) rtcSeconds() uint32 {
	return uint32(s.clock / unitsPerSecond)
}
