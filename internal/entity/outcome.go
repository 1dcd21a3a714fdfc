package entity

// FindWinningLine returns the first line in WinLines order fully held by mark.
func FindWinningLine(board Board, mark Mark) (Line, bool) {
	if mark == EmptyCell {
		return Line{}, false
	}

	for _, line := range WinLines {
		if board.Count(line, mark) == len(line) {
			return line, true
		}
	}

	return Line{}, false
}

// IsDraw reports a full board without a winning line for either player.
func IsDraw(board Board) bool {
	if !board.IsFull() {
		return false
	}

	// the game continues until somebody completes a line or the squares run out
	for _, mark := range []Mark{PlayerX, PlayerO} {
		if _, ok := FindWinningLine(board, mark); ok {
			return false
		}
	}

	return true
}
