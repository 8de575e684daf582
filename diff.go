package promptcore

import "sort"

// cursorMove is one of the six ways ScreenDiff can reposition the cursor;
// planMove picks whichever escape sequence is fewest bytes, with the
// absolute form as the tie-break (spec §4.3). emitMove writes moveCHA
// through Output.CursorGoto, because Output has no column-only move, so a
// CHA plan reaches the terminal as a full CUP and the bytes written are
// not always the shortest of the candidates.
type cursorMove int

const (
	moveNone cursorMove = iota
	moveCUP             // absolute: row+col
	moveCHA             // same row, absolute column
	moveCUU             // up n
	moveCUD             // down n
	moveCUF             // forward n
	moveCUB             // back n
)

// planMove decides how to move the cursor from (fromRow, fromCol) to
// (toRow, toCol), returning the move kind and its delta/target, by
// comparing the escape-sequence byte length of each candidate and
// breaking ties toward the absolute CUP form (spec §4.3, testable
// property 5).
func planMove(fromRow, fromCol, toRow, toCol int) (cursorMove, int) {
	if fromRow == toRow && fromCol == toCol {
		return moveNone, 0
	}

	cupLen := seqLen("\x1b[%d;%dH", toRow+1, toCol+1)
	best := moveCUP
	bestLen := cupLen

	if fromRow == toRow {
		chaLen := seqLen("\x1b[%dG", toCol+1)
		if chaLen < bestLen {
			best, bestLen = moveCHA, chaLen
		}
		if toCol > fromCol {
			n := toCol - fromCol
			if l := seqLen("\x1b[%dC", n); l < bestLen {
				best, bestLen = moveCUF, l
			}
		} else if toCol < fromCol {
			n := fromCol - toCol
			if l := seqLen("\x1b[%dD", n); l < bestLen {
				best, bestLen = moveCUB, l
			}
		}
		return best, deltaFor(best, fromRow, fromCol, toRow, toCol)
	}

	if fromCol == toCol {
		if toRow > fromRow {
			n := toRow - fromRow
			if l := seqLen("\x1b[%dB", n); l < bestLen {
				best, bestLen = moveCUD, l
			}
		} else {
			n := fromRow - toRow
			if l := seqLen("\x1b[%dA", n); l < bestLen {
				best, bestLen = moveCUU, l
			}
		}
	}

	return best, deltaFor(best, fromRow, fromCol, toRow, toCol)
}

func deltaFor(m cursorMove, fromRow, fromCol, toRow, toCol int) int {
	switch m {
	case moveCHA:
		return toCol
	case moveCUU:
		return fromRow - toRow
	case moveCUD:
		return toRow - fromRow
	case moveCUF:
		return toCol - fromCol
	case moveCUB:
		return fromCol - toCol
	default:
		return 0
	}
}

// seqLen returns the byte length of an escape sequence template with one
// or two integer parameters, without actually allocating the string via
// fmt.Sprintf on every comparison.
func seqLen(template string, args ...int) int {
	n := len(template) - 2*len(args) // minus the "%d" placeholders
	for _, a := range args {
		n += digitCount(a)
	}
	return n
}

func digitCount(n int) int {
	if n < 0 {
		n = -n
	}
	if n < 10 {
		return 1
	}
	c := 0
	for n > 0 {
		c++
		n /= 10
	}
	return c
}

func emitMove(output Output, m cursorMove, delta, toRow, toCol int) {
	switch m {
	case moveNone:
		return
	case moveCUP:
		output.CursorGoto(toRow, toCol)
	case moveCHA:
		output.CursorGoto(toRow, toCol)
	case moveCUU:
		output.CursorUp(delta)
	case moveCUD:
		output.CursorDown(delta)
	case moveCUF:
		output.CursorForward(delta)
	case moveCUB:
		output.CursorBackward(delta)
	}
}

// RenderScreenDiff writes the minimal sequence of escape codes that turns
// prev (the previously rendered screen state, or nil for a full redraw)
// into cur, driving output directly. cursorRow/cursorCol is where the
// terminal's cursor is assumed to sit before this call (and is updated by
// the caller's Renderer afterward) — spec §4.3.
func RenderScreenDiff(output Output, prev, cur *Screen, cursorRow, cursorCol int, fullRedraw bool) (endRow, endCol int) {
	row, col := cursorRow, cursorCol
	var lastStyle *Style

	rows := dirtyRows(prev, cur, fullRedraw)
	for _, r := range rows {
		cols := dirtyCols(prev, cur, r, fullRedraw)
		for _, c := range cols {
			if isWideShadow(cur, r, c) {
				continue
			}
			ch := cur.Get(r, c)

			m, delta := planMove(row, col, r, c)
			emitMove(output, m, delta, r, c)
			row, col = r, c

			resolved := ch.Style().ResolveBasic()
			if lastStyle == nil || !lastStyle.Equal(resolved) {
				output.SetAttributes(resolved)
				s := resolved
				lastStyle = &s
			}

			output.Write(ch.Character())
			col += ch.Width()

			if esc := cur.GetZeroWidthEscapes(r, c); esc != "" {
				output.WriteRaw(esc)
			}
		}
	}

	if lastStyle != nil {
		output.ResetAttributes()
	}

	return row, col
}

// isWideShadow reports whether (row, col) is the trailing placeholder
// column of a double-width character written at col-1, which must never
// be written to directly (spec §4.3).
func isWideShadow(cur *Screen, row, col int) bool {
	if col == 0 {
		return false
	}
	left := cur.Get(row, col-1)
	if left.Width() != 2 {
		return false
	}
	_, hasOwn := cellExists(cur, row, col)
	return !hasOwn
}

// cellExists reports whether (row, col) has an explicitly written cell
// (as opposed to reading back as default_char).
func cellExists(s *Screen, row, col int) (Char, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cols, ok := s.grid[row]; ok {
		if c, ok := cols[col]; ok {
			return c, true
		}
	}
	return Char{}, false
}

func dirtyRows(prev, cur *Screen, fullRedraw bool) []int {
	if fullRedraw || prev == nil {
		h := cur.Height()
		rows := make([]int, h)
		for i := range rows {
			rows[i] = i
		}
		return rows
	}
	seen := map[int]bool{}
	cur.mu.Lock()
	for r := range cur.grid {
		seen[r] = true
	}
	cur.mu.Unlock()
	prev.mu.Lock()
	for r := range prev.grid {
		seen[r] = true
	}
	prev.mu.Unlock()
	rows := make([]int, 0, len(seen))
	for r := range seen {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows
}

func dirtyCols(prev, cur *Screen, row int, fullRedraw bool) []int {
	if fullRedraw || prev == nil {
		w := cur.Width()
		cols := make([]int, w)
		for i := range cols {
			cols[i] = i
		}
		return cols
	}
	seen := map[int]bool{}
	curC, curOK := rowCols(cur, row)
	prevC, prevOK := rowCols(prev, row)
	if curOK {
		for c := range curC {
			seen[c] = true
		}
	}
	if prevOK {
		for c := range prevC {
			seen[c] = true
		}
	}
	cols := make([]int, 0, len(seen))
	for c := range seen {
		newCell := cur.Get(row, c)
		oldCell := Char{}
		if prevOK {
			if v, ok := prevC[c]; ok {
				oldCell = v
			}
		}
		if !newCell.Equal(oldCell) {
			cols = append(cols, c)
		}
	}
	sort.Ints(cols)
	return cols
}

func rowCols(s *Screen, row int) (map[int]Char, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cols, ok := s.grid[row]
	return cols, ok
}
