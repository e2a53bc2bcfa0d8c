// Package admin bundles the moderation commands: pinning, unpinning and
// cleaning up the helper messages the bot left behind. All commands are
// restricted to group chats and administrators.
package admin

import (
	"strings"

	"github.com/marubot/maru"
)

type Cog struct{}

func New() *Cog {
	return &Cog{}
}

func (a *Cog) Name() string {
	return "admin"
}

func (a *Cog) Register(bot *maru.Bot) error {
	checks := []maru.CheckFunc{
		maru.RequireGroupChat(),
		maru.RequireAdministrator(),
	}

	bot.OnCommandGroup("admin", func(c *maru.Context) string {
		return c.T("bot.cogs.admin.group.name")
	}, []maru.Command{
		{
			Command: "pin",
			Help: func(c *maru.Context) string {
				return c.T("bot.cogs.admin.commands.pin.help")
			},
			Checks:  checks,
			Handler: maru.NewHandler(a.handlePin),
		},
		{
			Command: "unpin",
			Help: func(c *maru.Context) string {
				return c.T("bot.cogs.admin.commands.unpin.help")
			},
			Checks:  checks,
			Handler: maru.NewHandler(a.handleUnpin),
		},
		{
			Command: "purge",
			Help: func(c *maru.Context) string {
				return c.T("bot.cogs.admin.commands.purge.help")
			},
			Checks:  checks,
			Handler: maru.NewHandler(a.handlePurge),
		},
	})

	bot.OnNewChatMember(maru.NewHandler(a.handleNewChatMembers))

	return nil
}

func (a *Cog) handlePin(c *maru.Context) (maru.Response, error) {
	reply := c.Update.Message.ReplyToMessage
	if reply == nil {
		return c.NewMessage(c.T("bot.cogs.admin.pin.no_reply")), nil
	}

	err := c.Bot.PinChatMessage(maru.PinChatMessageConfig{
		ChatID:              c.Update.FromChat().ID,
		MessageID:           reply.MessageID,
		DisableNotification: true,
	})
	if err != nil {
		return nil, err
	}

	return c.NewMessageReplyTo(c.T("bot.cogs.admin.pin.done"), reply.MessageID), nil
}

func (a *Cog) handleUnpin(c *maru.Context) (maru.Response, error) {
	config := maru.UnpinChatMessageConfig{
		ChatID: c.Update.FromChat().ID,
	}

	// unpin the replied-to message when there is one, the latest pin otherwise
	if reply := c.Update.Message.ReplyToMessage; reply != nil {
		config.MessageID = reply.MessageID
	}

	err := c.Bot.UnpinChatMessage(config)
	if err != nil {
		return nil, err
	}

	return c.NewMessage(c.T("bot.cogs.admin.unpin.done")), nil
}

func (a *Cog) handlePurge(c *maru.Context) (maru.Response, error) {
	err := c.Bot.DeleteAllDeleteLaterMessages(c.Update.SentFrom().ID)
	if err != nil {
		return nil, err
	}

	return c.NewMessage(c.T("bot.cogs.admin.purge.done")), nil
}

func (a *Cog) handleNewChatMembers(c *maru.Context) (maru.Response, error) {
	names := make([]string, 0, len(c.Update.Message.NewChatMembers))

	for _, member := range c.Update.Message.NewChatMembers {
		if member.IsBot {
			continue
		}

		names = append(names, maru.FullNameFromFirstAndLastName(member.FirstName, member.LastName))
	}

	if len(names) == 0 {
		return nil, nil
	}

	return c.NewMessage(c.T("bot.cogs.admin.welcome", "Name", strings.Join(names, ", "))), nil
}
