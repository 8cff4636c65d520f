package mpu

// MPU protocol command bytes. The 0xC0-0xC9 family is IC card related;
// the byte 1 argument selects the target slot
const (
	cmdFetchResult   = 0xf6
	cmdLoopback      = 0xe0
	cmdShareAccess   = 0xe1
	cmdCardPresence  = 0xc0
	cmdCardBusy      = 0xc1
	cmdCardRead      = 0xc2
	cmdCardWrite     = 0xc3
	cmdCardUnused1   = 0xc4
	cmdCardPassword  = 0xc5
	cmdCardUnused2   = 0xc6
	cmdCardIdentity  = 0xc7
	cmdCardWriteByte = 0xc8
	cmdCardAuth      = 0xc9
)

// Completion statuses packed into bits 16-23 of mailbox register 3.
// statusNoCard doubles as the generic error status
const (
	statusDone     = 0xf2
	statusNoCard   = 0xf4
	statusAccepted = 0xf7
)

// Completion delays in time units. Most commands complete after one unit;
// the loopback self test needs a longer window for the debug code check
// routine, and an acknowledge completes on a short fixed delay
const (
	defaultDelay  = 1
	loopbackDelay = 30
	ackDelay      = 100
)

// cardIdentity is the fixed identity constant reported for a new card
const cardIdentity = 0xf81f0000

// handler processes one command and returns the completion status and the
// delay before the completion interrupt is raised. Results are left in the
// result mailbox state, not the registers; the main CPU collects them with
// a fetch result command
type handler func(s *System, arg1, arg2, arg3 uint8) (status uint8, delay int64)

var commands = map[uint8]handler{
	cmdFetchResult:   fetchResult,
	cmdLoopback:      loopback,
	cmdShareAccess:   shareAccess,
	cmdCardPresence:  cardPresence,
	cmdCardBusy:      cardStub,
	cmdCardRead:      cardRead,
	cmdCardWrite:     cardWrite,
	cmdCardUnused1:   cardStub,
	cmdCardPassword:  cardStub,
	cmdCardUnused2:   cardStub,
	cmdCardIdentity:  cardIdentityCmd,
	cmdCardWriteByte: cardWriteByte,
	cmdCardAuth:      cardStub,
}

// issue handles a nonzero write to the issue strobe register. Only one
// command can be outstanding; issuing while one is pending overwrites it,
// which mirrors the observed hardware behaviour even if the real MPU may
// prevent it through handshake discipline
func (s *System) issue() {
	cmd := uint8(s.mcuRegs[0])
	arg1 := uint8(s.mcuRegs[0] >> 8)
	arg2 := uint8(s.mcuRegs[0] >> 16)
	arg3 := uint8(s.mcuRegs[0] >> 24)

	s.lastCmd = cmd

	status, delay := uint8(statusAccepted), int64(defaultDelay)
	if fn, ok := commands[cmd]; ok {
		status, delay = fn(s, arg1, arg2, arg3)
	} else {
		if s.logger != nil {
			s.logger.Printf("MPU unknown command %08x %08x", s.mcuRegs[0], s.mcuRegs[1])
		}
		status = statusNoCard
	}

	s.mcuRegs[3] = s.mcuRegs[3]&0xff00ffff | uint32(status)<<16
	s.arm(delay)
}

// acknowledge handles a nonzero write to the acknowledge strobe register,
// written by the main CPU at the end of its interrupt handler. With no
// command pending it is a no-op
func (s *System) acknowledge() {
	if s.lastCmd == 0 {
		return
	}

	s.mcuRegs[3] = s.mcuRegs[3]&0xff00ffff | statusDone<<16
	s.arm(ackDelay)
	s.lastCmd = 0
}

// fetchResult copies the last computed results into the mailbox registers
// and retires the command. No card I/O happens
func fetchResult(s *System, _, _, _ uint8) (uint8, int64) {
	s.mcuRegs[3] = s.result0
	s.mcuRegs[4] = s.result1
	s.lastCmd = 0
	return statusAccepted, defaultDelay
}

// loopback echoes both input registers back, used by the startup self test
func loopback(s *System, _, _, _ uint8) (uint8, int64) {
	s.result0 = s.mcuRegs[0]
	s.result1 = s.mcuRegs[1]
	return statusAccepted, loopbackDelay
}

// shareAccess gives the MPU access to its half of the share RAM. Mode 2 is
// a write; it fills the whole opposite bank with the data byte, there is
// no evidence the hardware honours an offset here
func shareAccess(s *System, _, mode, data uint8) (uint8, int64) {
	if mode == 2 {
		bank := s.mcuBank()
		for i := 0; i < shareBankSize; i++ {
			s.shareRAM[bank+i] = data
		}
	}

	s.result0 = cmdShareAccess
	s.result1 = 0
	return statusAccepted, defaultDelay
}

// cardPresence reports whether the slot holds a card
func cardPresence(s *System, arg1, _, _ uint8) (uint8, int64) {
	s.result0 = cmdCardPresence

	if s.card(arg1) == nil {
		return statusNoCard, defaultDelay
	}
	return statusAccepted, defaultDelay
}

// cardStub acknowledges the busy/ready check and the password and
// authentication commands without implementing them
func cardStub(s *System, _, _, _ uint8) (uint8, int64) {
	s.result0 = uint32(s.mcuRegs[0] & 0xff)
	return statusAccepted, defaultDelay
}

// cardRead copies arg3 bytes from the card at offset arg2 into the start
// of the MPU bank of the share RAM. An empty slot is silently skipped
func cardRead(s *System, arg1, arg2, arg3 uint8) (uint8, int64) {
	if c := s.card(arg1); c != nil {
		bank := s.mcuBank()
		for i := 0; i < int(arg3) && i < shareBankSize; i++ {
			s.shareRAM[bank+i] = c.Read(arg2 + uint8(i))
		}
	}

	s.result0 = cmdCardRead
	return statusAccepted, defaultDelay
}

// cardWrite copies arg3 bytes from the MPU bank of the share RAM to the
// card at offset arg2
func cardWrite(s *System, arg1, arg2, arg3 uint8) (uint8, int64) {
	if c := s.card(arg1); c != nil {
		bank := s.mcuBank()
		for i := 0; i < int(arg3) && i < shareBankSize; i++ {
			c.Write(arg2+uint8(i), s.shareRAM[bank+i])
		}
	}

	s.result0 = cmdCardWrite
	return statusAccepted, defaultDelay
}

// cardIdentityCmd reports the fixed identity constant expected of a new
// card
func cardIdentityCmd(s *System, _, _, _ uint8) (uint8, int64) {
	s.result1 = cardIdentity
	s.result0 = cmdCardIdentity
	return statusAccepted, defaultDelay
}

// cardWriteByte writes the single byte arg3 to the card at offset arg2
func cardWriteByte(s *System, arg1, arg2, arg3 uint8) (uint8, int64) {
	if c := s.card(arg1); c != nil {
		c.Write(arg2, arg3)
	}

	s.result0 = cmdCardWriteByte
	return statusAccepted, defaultDelay
}
