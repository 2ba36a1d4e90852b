// Package commands parses the quick-input palette. Every line typed
// into the palette becomes a typed command dispatched against the
// store; parse failures carry a stable error code the status bar can
// key messages off.
package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeGoal   Type = "goal"
	TypeTask   Type = "task"
	TypeWater  Type = "water"
	TypeWeight Type = "weight"
	TypeEarn   Type = "earn"
	TypeNote   Type = "note"
	TypeTheme  Type = "theme"
	TypeImport Type = "import"
	TypeReset  Type = "reset"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type GoalArgs struct {
	Title string
}

type TaskArgs struct {
	Title string
}

type WaterArgs struct {
	Litres float64
}

type WeightArgs struct {
	Kilograms float64
}

type EarnArgs struct {
	Amount float64
	Note   string
}

type NoteArgs struct {
	Text string
}

type ThemeArgs struct {
	Name string
}

type ImportArgs struct {
	Path string
}

type ResetArgs struct {
	All bool
}

type Command struct {
	Type   Type
	Raw    string
	Goal   *GoalArgs
	Task   *TaskArgs
	Water  *WaterArgs
	Weight *WeightArgs
	Earn   *EarnArgs
	Note   *NoteArgs
	Theme  *ThemeArgs
	Import *ImportArgs
	Reset  *ResetArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeGoal:
		return parseGoal(input, args)
	case TypeTask:
		return parseTask(input, args)
	case TypeWater:
		return parseWater(input, args)
	case TypeWeight:
		return parseWeight(input, args)
	case TypeEarn:
		return parseEarn(input, args)
	case TypeNote:
		return parseNote(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	case TypeImport:
		return parseImport(input, args)
	case TypeReset:
		return parseReset(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseGoal(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal requires a title"}
	}
	return Command{Type: TypeGoal, Raw: raw, Goal: &GoalArgs{Title: title}}, nil
}

func parseTask(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "task requires a title"}
	}
	return Command{Type: TypeTask, Raw: raw, Task: &TaskArgs{Title: title}}, nil
}

func parseWater(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "water requires a litre amount"}
	}
	litres, err := strconv.ParseFloat(args[0], 64)
	if err != nil || litres < 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid litre amount: %s", args[0])}
	}
	return Command{Type: TypeWater, Raw: raw, Water: &WaterArgs{Litres: litres}}, nil
}

func parseWeight(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "weight requires a kilogram amount"}
	}
	kg, err := strconv.ParseFloat(args[0], 64)
	if err != nil || kg <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid weight: %s", args[0])}
	}
	return Command{Type: TypeWeight, Raw: raw, Weight: &WeightArgs{Kilograms: kg}}, nil
}

func parseEarn(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "earn requires an amount"}
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil || amount < 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid amount: %s", args[0])}
	}
	note := strings.TrimSpace(strings.Join(args[1:], " "))
	return Command{Type: TypeEarn, Raw: raw, Earn: &EarnArgs{Amount: amount, Note: note}}, nil
}

func parseNote(raw string, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "note requires text"}
	}
	return Command{Type: TypeNote, Raw: raw, Note: &NoteArgs{Text: text}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "theme requires dark or light"}
	}
	name := strings.ToLower(args[0])
	if name != "dark" && name != "light" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown theme: %s", args[0])}
	}
	return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Name: name}}, nil
}

func parseImport(raw string, args []string) (Command, error) {
	path := strings.TrimSpace(strings.Join(args, " "))
	if path == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "import requires a file path"}
	}
	return Command{Type: TypeImport, Raw: raw, Import: &ImportArgs{Path: path}}, nil
}

// parseReset demands an explicit scope so a bare "reset" can never
// wipe anything by accident.
func parseReset(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "reset requires a scope: all or data"}
	}
	switch strings.ToLower(args[0]) {
	case "all":
		return Command{Type: TypeReset, Raw: raw, Reset: &ResetArgs{All: true}}, nil
	case "data":
		return Command{Type: TypeReset, Raw: raw, Reset: &ResetArgs{All: false}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown reset scope: %s", args[0])}
	}
}
