package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Goal   func(GoalArgs) (Result, error)
	Task   func(TaskArgs) (Result, error)
	Water  func(WaterArgs) (Result, error)
	Weight func(WeightArgs) (Result, error)
	Earn   func(EarnArgs) (Result, error)
	Note   func(NoteArgs) (Result, error)
	Theme  func(ThemeArgs) (Result, error)
	Import func(ImportArgs) (Result, error)
	Reset  func(ResetArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeGoal:
		if handlers.Goal == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "goal handler not configured"}
		}
		return handlers.Goal(*cmd.Goal)
	case TypeTask:
		if handlers.Task == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "task handler not configured"}
		}
		return handlers.Task(*cmd.Task)
	case TypeWater:
		if handlers.Water == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "water handler not configured"}
		}
		return handlers.Water(*cmd.Water)
	case TypeWeight:
		if handlers.Weight == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "weight handler not configured"}
		}
		return handlers.Weight(*cmd.Weight)
	case TypeEarn:
		if handlers.Earn == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "earn handler not configured"}
		}
		return handlers.Earn(*cmd.Earn)
	case TypeNote:
		if handlers.Note == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "note handler not configured"}
		}
		return handlers.Note(*cmd.Note)
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "theme handler not configured"}
		}
		return handlers.Theme(*cmd.Theme)
	case TypeImport:
		if handlers.Import == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "import handler not configured"}
		}
		return handlers.Import(*cmd.Import)
	case TypeReset:
		if handlers.Reset == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "reset handler not configured"}
		}
		return handlers.Reset(*cmd.Reset)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
