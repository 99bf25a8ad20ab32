// Package session holds the editing state shared by the graphical and
// terminal drivers: the selection, the clipboard, and run/stop with
// rollback to the grid as it was before the run started.
package session

import (
	"errors"

	"force-ca/internal/core"
	"force-ca/internal/sims/forces"
)

// ErrRunning is returned by edits attempted while the grid is running.
var ErrRunning = errors.New("session: grid is running")

// EditKeys maps editing keys to the kind they place.
var EditKeys = map[rune]forces.Kind{
	'w': forces.KindWall,
	'e': forces.KindBox,
	'f': forces.KindBoard,
	'd': forces.KindDestroyer,
	'r': forces.KindRotator,
	'q': forces.KindPusher,
	's': forces.KindShifter,
	'a': forces.KindGenerator,
}

// Session is not safe for concurrent use. The terminal driver serialises
// access through its runner.
type Session struct {
	machine *forces.Machine

	anchor forces.Pos
	cursor forces.Pos

	running   bool
	backup    forces.Snapshot
	backupGen int

	clipboard string
	speed     int
	cadence   *core.Cadence
}

// New returns a paused session editing m with the selection at the
// top-left cell.
func New(m *forces.Machine) *Session {
	return &Session{
		machine: m,
		speed:   core.DefaultSpeed,
		cadence: core.NewCadence(core.TickLength(core.DefaultSpeed)),
	}
}

// Machine returns the simulation being edited.
func (s *Session) Machine() *forces.Machine { return s.machine }

// Grid returns the grid being edited.
func (s *Session) Grid() *forces.Grid { return s.machine.Grid() }

// Running reports whether the grid is advancing.
func (s *Session) Running() bool { return s.running }

// Region returns the normalised selection.
func (s *Session) Region() forces.Region {
	return forces.NewRegion(s.anchor.Row, s.anchor.Col, s.cursor.Row, s.cursor.Col)
}

// Anchor returns the cell where the selection started.
func (s *Session) Anchor() forces.Pos { return s.anchor }

// Cursor returns the cell where the selection ends.
func (s *Session) Cursor() forces.Pos { return s.cursor }

// Selected reports whether (row, col) should be drawn highlighted.
// Nothing is highlighted while running.
func (s *Session) Selected(row, col int) bool {
	return !s.running && s.Region().Contains(row, col)
}

// Select collapses the selection onto (row, col). Ignored while running.
func (s *Session) Select(row, col int) {
	if s.running {
		return
	}
	s.anchor = forces.Pos{Row: row, Col: col}
	s.cursor = s.anchor
}

// Drag moves the selection cursor to (row, col), keeping the anchor.
func (s *Session) Drag(row, col int) {
	if s.running {
		return
	}
	s.cursor = forces.Pos{Row: row, Col: col}
}

// MoveSelection shifts the whole selection one cell in d. The selection may
// leave the grid; edits then only touch the part still inside.
func (s *Session) MoveSelection(d forces.D4) {
	if s.running {
		return
	}
	s.anchor = s.anchor.Move(d)
	s.cursor = s.cursor.Move(d)
}

// Apply edits the selection with kind k.
func (s *Session) Apply(k forces.Kind) error {
	if s.running {
		return ErrRunning
	}
	s.Grid().Edit(s.Region(), k)
	return nil
}

// ApplyKey edits the selection for an editing key. It reports whether the
// key is an editing key at all.
func (s *Session) ApplyKey(key rune) (bool, error) {
	k, ok := EditKeys[key]
	if !ok {
		return false, nil
	}
	return true, s.Apply(k)
}

// Start begins a run, remembering the grid so that Stop can rewind it.
func (s *Session) Start() {
	if s.running {
		return
	}
	s.backup = s.Grid().Snapshot()
	s.backupGen = s.machine.Generation()
	s.cadence.Reset()
	s.running = true
}

// Stop ends a run and puts back the grid as it was when the run started.
func (s *Session) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.machine.Rewind(s.backup, s.backupGen)
	s.backup = forces.Snapshot{}
}

// Toggle starts a paused session or stops a running one.
func (s *Session) Toggle() {
	if s.running {
		s.Stop()
		return
	}
	s.Start()
}

// Tick is called once per frame and advances the grid when the cadence for
// the current speed fires. It reports whether a generation was computed.
func (s *Session) Tick() bool {
	if !s.running || !s.cadence.Tick() {
		return false
	}
	s.machine.Step()
	return true
}

// Step advances one generation regardless of the run state.
func (s *Session) Step() { s.machine.Step() }

// Generation returns the machine's generation counter.
func (s *Session) Generation() int { return s.machine.Generation() }

// Population returns the number of non-empty cells.
func (s *Session) Population() int { return s.machine.Population() }

// StepOnce advances a paused grid by a single generation.
func (s *Session) StepOnce() error {
	if s.running {
		return ErrRunning
	}
	s.machine.Step()
	return nil
}

// Speed returns the current speed level.
func (s *Session) Speed() int { return s.speed }

// SetSpeed selects speed level 1..5. It can be changed while running.
func (s *Session) SetSpeed(level int) {
	s.speed = max(1, min(level, 5))
	s.cadence.SetEvery(core.TickLength(s.speed))
}

// SpeedKey handles the digit keys '1'..'5'. It reports whether key was one.
func (s *Session) SpeedKey(key rune) bool {
	if key < '1' || key > '5' {
		return false
	}
	s.SetSpeed(int(key - '0'))
	return true
}

// Clipboard returns the text held by the last Copy or Cut.
func (s *Session) Clipboard() string { return s.clipboard }

// SetClipboard replaces the clipboard text, for example with a pattern
// loaded from disk.
func (s *Session) SetClipboard(text string) { s.clipboard = text }

// Copy encodes the selection into the clipboard and returns the text.
func (s *Session) Copy() string {
	s.clipboard = s.Grid().Encode(s.Region())
	return s.clipboard
}

// Cut copies the selection and then empties it.
func (s *Session) Cut() (string, error) {
	if s.running {
		return "", ErrRunning
	}
	text := s.Copy()
	s.Grid().EditEmpty(s.Region())
	return text, nil
}

// Paste decodes text with the selection's top-left corner as the anchor.
func (s *Session) Paste(text string) error {
	if s.running {
		return ErrRunning
	}
	s.Grid().Decode(s.Region(), text)
	return nil
}

// PasteClipboard pastes the session clipboard.
func (s *Session) PasteClipboard() error { return s.Paste(s.clipboard) }

// Reset stops any run and reseeds the machine.
func (s *Session) Reset(seed int64) {
	s.running = false
	s.backup = forces.Snapshot{}
	s.machine.Reset(seed)
}
