package entity

import "fmt"

const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusDraw       = "draw"

	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

// WinCombos lists the winning lines in the order they are checked:
// rows top to bottom, columns left to right, then both diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Game is a hot-seat tic-tac-toe board. Both players move through the same instance.
type Game struct {
	Board  [9]string `json:"board"`
	Turn   string    `json:"turn"`
	Status string    `json:"status"`
	Winner string    `json:"winner,omitempty"`
	Line   []int     `json:"winning_line,omitempty"`
}

func NewGame() *Game {
	game := &Game{}
	game.Restart()

	return game
}

// Restart - returns the game to its initial state regardless of the current one.
func (that *Game) Restart() {
	that.Board = [9]string{EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell}
	that.Turn = PlayerX
	that.Status = StatusInProgress
	that.Winner = ""
	that.Line = nil
}

// AttemptMove - places the current player's mark into cell.
// Out-of-range cells, occupied cells and finished games are ignored; the result reports whether the board changed.
func (that *Game) AttemptMove(cell int) bool {
	if that.IsFinished() {
		return false
	}

	if cell < 0 || cell >= len(that.Board) {
		return false
	}

	if that.Board[cell] != EmptyCell {
		return false
	}

	that.Board[cell] = that.Turn
	that.updateGameState()

	return true
}

func (that *Game) updateGameState() {
	if line, ok := WinningLine(that.Board); ok {
		that.Status = StatusWon
		that.Winner = that.Turn
		that.Line = line[:]
		return
	}

	if isFull(that.Board) {
		that.Status = StatusDraw
		return
	}

	that.Turn = toggleMark(that.Turn)
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

// IsCellDisabled - reports whether the rendering surface should refuse clicks on cell.
func (that *Game) IsCellDisabled(cell int) bool {
	return that.IsFinished() || that.Board[cell] != EmptyCell
}

func (that *Game) StatusText() string {
	switch that.Status {
	case StatusWon:
		return fmt.Sprintf("%s wins!", that.Winner)
	case StatusDraw:
		return "Draw!"
	default:
		return fmt.Sprintf("%s’s turn", that.Turn)
	}
}

// WinningLine - returns the first line, in WinCombos order, held by a single mark.
func WinningLine(board [9]string) ([3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return combo, true
		}
	}

	return [3]int{}, false
}

func isFull(board [9]string) bool {
	for _, cell := range board {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func toggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
