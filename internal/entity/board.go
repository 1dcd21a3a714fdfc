package entity

type Mark string

const (
	// PlayerX is the human player's mark. The human always moves first.
	PlayerX Mark = "X"
	// PlayerO is the computer opponent's mark.
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const (
	BoardSize = 9

	CenterCell = 4
	// NoCell marks the absence of a cell, e.g. when there is no hint to show.
	NoCell = -1
)

// Line is a triple of cell indices that wins the game when one mark holds all of them.
type Line [3]int

var (
	// WinLines are enumerated rows first, then columns, then diagonals.
	WinLines = [8]Line{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}

	Corners = [4]int{0, 2, 6, 8}
	Edges   = [4]int{1, 3, 5, 7}
)

// Board is a 3x3 grid stored row-major.
type Board [BoardSize]Mark

func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

func (that *Board) IsEmpty(cell int) bool {
	return IsValidCell(cell) && that[cell] == EmptyCell
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// FirstEmpty returns the first empty cell among cells, in the given order.
func (that *Board) FirstEmpty(cells ...int) (int, bool) {
	for _, cell := range cells {
		if that.IsEmpty(cell) {
			return cell, true
		}
	}

	return NoCell, false
}

// Count returns how many cells of the line hold the mark.
func (that *Board) Count(line Line, mark Mark) int {
	count := 0
	for _, cell := range line {
		if that[cell] == mark {
			count++
		}
	}

	return count
}
