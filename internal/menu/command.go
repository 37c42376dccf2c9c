// Package menu maps menu choices onto playback controller operations.
// The dispatcher is independent of any input source; Menu drives it from
// a line-oriented reader such as the console.
package menu

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/cliplay/internal/player"
)

// Kind identifies a menu command.
type Kind int

const (
	List Kind = iota + 1
	PlayAll
	PlayLatest
	PlayByIndex
	Exit
)

var kindNames = map[Kind]string{
	List:        "List all files",
	PlayAll:     "Play all files",
	PlayLatest:  "Play latest file",
	PlayByIndex: "Play specific file",
	Exit:        "Exit",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds returns the commands in menu order.
func Kinds() []Kind {
	return []Kind{List, PlayAll, PlayLatest, PlayByIndex, Exit}
}

// Command is a single menu action. Index is the 1-based clip number for
// PlayByIndex; zero means "ask for it".
type Command struct {
	Kind  Kind
	Index int
}

// ParseChoice maps a menu choice ("1" to "5") to a command.
func ParseChoice(s string) (Command, error) {
	switch strings.TrimSpace(s) {
	case "1":
		return Command{Kind: List}, nil
	case "2":
		return Command{Kind: PlayAll}, nil
	case "3":
		return Command{Kind: PlayLatest}, nil
	case "4":
		return Command{Kind: PlayByIndex}, nil
	case "5":
		return Command{Kind: Exit}, nil
	default:
		return Command{}, fmt.Errorf("%w: %q", player.ErrInvalidSelection, s)
	}
}
