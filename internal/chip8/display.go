package chip8

// Display dimensions in cells.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the monochrome pixel grid of the machine. Cells are stored
// row-major. A pending refresh flag records whether the grid changed since
// the host last consumed it; only the clear and draw opcodes mutate the
// grid, so only they mark it.
type Display struct {
	cells   [DisplayWidth * DisplayHeight]bool
	refresh bool
}

// Lit reports whether the cell at the given coordinates is lit. Renderers
// iterate the grid read-only through this accessor.
func (d *Display) Lit(x, y int) bool {
	return d.cells[y*DisplayWidth+x]
}

// flip toggles the cell at the given coordinates and reports whether it was
// lit before, which the draw opcode uses for collision detection.
func (d *Display) flip(x, y int) bool {
	index := y*DisplayWidth + x
	lit := d.cells[index]
	d.cells[index] = !lit
	return lit
}

// clear unlights every cell and marks the display for refresh.
func (d *Display) clear() {
	d.cells = [DisplayWidth * DisplayHeight]bool{}
	d.refresh = true
}

// markRefresh records that the grid content changed.
func (d *Display) markRefresh() {
	d.refresh = true
}

// ConsumeRefresh reports whether the display changed since the last call and
// resets the flag. Hosts call it once per tick to decide whether to redraw.
func (d *Display) ConsumeRefresh() bool {
	refresh := d.refresh
	d.refresh = false
	return refresh
}
