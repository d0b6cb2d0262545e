package event

// Command is a discrete player input applied to a game.
type Command int

const (
	CommandNone Command = iota
	CommandMoveLeft
	CommandMoveRight
	CommandRotate
	CommandSoftDrop
	CommandHardDrop
	CommandPause
	CommandRestart
	CommandSave
	CommandLoad
)

func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandMoveLeft:
		return "MoveLeft"
	case CommandMoveRight:
		return "MoveRight"
	case CommandRotate:
		return "Rotate"
	case CommandSoftDrop:
		return "SoftDrop"
	case CommandHardDrop:
		return "HardDrop"
	case CommandPause:
		return "Pause"
	case CommandRestart:
		return "Restart"
	case CommandSave:
		return "Save"
	case CommandLoad:
		return "Load"
	default:
		return "Unknown"
	}
}
