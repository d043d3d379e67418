package entity

// View is everything the rendering surface needs after an event.
type View struct {
	Board       [9]string  `json:"board"`
	Disabled    [9]bool    `json:"disabled"`
	Turn        string     `json:"turn"`
	Finished    bool       `json:"finished"`
	Status      string     `json:"status"`
	StatusText  string     `json:"status_text"`
	Winner      string     `json:"winner,omitempty"`
	WinningLine []int      `json:"winning_line,omitempty"`
	Appearance  Appearance `json:"appearance"`
}

func NewView(game *Game, appearance *Appearance) View {
	view := View{
		Board:      game.Board,
		Turn:       game.Turn,
		Finished:   game.IsFinished(),
		Status:     game.Status,
		StatusText: game.StatusText(),
		Winner:     game.Winner,
		Appearance: *appearance,
	}

	for cell := range game.Board {
		view.Disabled[cell] = game.IsCellDisabled(cell)
	}

	if len(game.Line) > 0 {
		view.WinningLine = append([]int(nil), game.Line...)
	}

	return view
}

// IsWinningCell - reports whether cell should be highlighted.
func (that View) IsWinningCell(cell int) bool {
	for _, idx := range that.WinningLine {
		if idx == cell {
			return true
		}
	}

	return false
}
