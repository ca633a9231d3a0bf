package repl

import (
	"strings"
	"unicode"
)

// Command is one verb of the prompt's vocabulary.
type Command string

const (
	CmdNone       Command = ""
	CmdList       Command = "list"
	CmdExit       Command = "exit"
	CmdLook       Command = "look"
	CmdAttachment Command = "attachment"
	CmdOpen       Command = "open"
	CmdIgnore     Command = "ignore"
	CmdRemove     Command = "remove"
	CmdCourse     Command = "course"
)

// Vocabulary lists every command in help order.
var Vocabulary = []Command{CmdList, CmdLook, CmdAttachment, CmdOpen, CmdIgnore, CmdRemove, CmdCourse, CmdExit}

const minPrefix = 2

// Resolve maps a typed token to a command. The token must be at least two
// characters long and a prefix of exactly one vocabulary word.
func Resolve(token string) Command {
	if len(token) < minPrefix {
		return CmdNone
	}
	match := CmdNone
	for _, c := range Vocabulary {
		if !strings.HasPrefix(string(c), token) {
			continue
		}
		if match != CmdNone {
			return CmdNone
		}
		match = c
	}
	return match
}

func (c Command) numberTarget() bool {
	return c == CmdLook || c == CmdAttachment || c == CmdOpen
}

func (c Command) courseTarget() bool {
	return c == CmdIgnore || c == CmdRemove
}

var usage = map[Command]string{
	CmdList:       "list                show pending assignments by due date",
	CmdLook:       "look <n>            show assignment n in full",
	CmdAttachment: "attachment <n>      open the file attached to assignment n",
	CmdOpen:       "open <n>            open assignment n in Classroom",
	CmdIgnore:     "ignore <course>     stop fetching work for a course",
	CmdRemove:     "remove <course>     take a course off the ignore list",
	CmdCourse:     "course              refresh the course list now",
	CmdExit:       "exit                quit",
}

// parse splits a line into the command token and the rest of the line.
func parse(line string) (token, target string) {
	line = strings.TrimSpace(line)
	token, target = line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		token, target = line[:i], line[i+1:]
	}
	return token, strings.TrimSpace(target)
}

// unquote strips one pair of matching surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
