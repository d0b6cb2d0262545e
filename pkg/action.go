package pkg

// Action is an entry of the main menu.
type Action string

const (
	ActionNewGame    Action = "new_game"
	ActionLoadGame   Action = "load_game"
	ActionSaveGame   Action = "save_game"
	ActionHighscores Action = "highscores"
	ActionSettings   Action = "settings"
	ActionExit       Action = "exit"
)

// MenuActions lists the main menu top to bottom.
var MenuActions = []Action{
	ActionNewGame,
	ActionLoadGame,
	ActionSaveGame,
	ActionHighscores,
	ActionSettings,
	ActionExit,
}

// NeedsGame reports whether the action only makes sense with a game running.
func (a Action) NeedsGame() bool {
	return a == ActionSaveGame
}
