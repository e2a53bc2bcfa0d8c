package maru

import (
	"strings"
	"time"
)

// Argument describes one positional argument of a command, used to synthesize
// usage strings for /help and to validate invocations.
type Argument struct {
	Name     string
	Required bool
}

// Cooldown limits a command to Rate invocations per chat within Per.
// A zero value disables the cooldown.
type Cooldown struct {
	Rate int64
	Per  time.Duration
}

type Command struct {
	Command  string
	Help     func(*Context) string
	Args     []Argument
	Cooldown Cooldown
	Checks   []CheckFunc
	Handler  Handler
}

// Usage renders the command with its arguments, required ones in brackets and
// optional ones in parentheses: "/quote (number)".
func (cmd Command) Usage() string {
	parts := make([]string, 0, len(cmd.Args)+1)
	parts = append(parts, "/"+cmd.Command)

	for _, arg := range cmd.Args {
		if arg.Required {
			parts = append(parts, "["+arg.Name+"]")
		} else {
			parts = append(parts, "("+arg.Name+")")
		}
	}

	return strings.Join(parts, " ")
}

func (cmd Command) requiredArgCount() int {
	count := 0

	for _, arg := range cmd.Args {
		if arg.Required {
			count++
		}
	}

	return count
}

func (cmd Command) helpText(c *Context) string {
	if cmd.Help == nil {
		return ""
	}

	return cmd.Help(c)
}

type commandGroup struct {
	slug     string
	name     func(*Context) string
	commands []Command
}

// CheckFunc gates a command invocation. Returning a *CheckError produces the
// standard permission reply; any other error is translated as usual.
type CheckFunc func(c *Context) error

// RequireGroupChat rejects invocations outside group and supergroup chats.
func RequireGroupChat() CheckFunc {
	return func(c *Context) error {
		chat := c.Update.FromChat()
		if chat == nil {
			return &CheckError{Reason: "update carries no chat"}
		}

		switch ChatType(chat.Type) {
		case ChatTypeGroup, ChatTypeSuperGroup:
			return nil
		default:
			return &CheckError{Reason: "command is only available in group chats"}
		}
	}
}

// RequireAdministrator rejects senders that are not the chat creator or an
// administrator. Private chats always pass; anonymous group admins post as
// the group's service account and pass as well.
func RequireAdministrator() CheckFunc {
	return func(c *Context) error {
		chat := c.Update.FromChat()
		from := c.Update.SentFrom()

		if chat == nil || from == nil {
			return &CheckError{Reason: "update carries no chat or sender"}
		}
		if ChatType(chat.Type) == ChatTypePrivate {
			return nil
		}
		if c.Bot.IsGroupAnonymousBot(from) {
			return nil
		}

		ok, err := c.Bot.IsUserMemberStatus(chat.ID, from.ID, []MemberStatus{
			MemberStatusCreator,
			MemberStatusAdministrator,
		})
		if err != nil {
			return err
		}
		if !ok {
			return &CheckError{Reason: "sender is not an administrator"}
		}

		return nil
	}
}
