// Package ping is the smallest possible cog, mostly useful to confirm the
// bot is dispatching commands at all.
package ping

import (
	"time"

	"github.com/marubot/maru"
)

type Cog struct{}

func New() *Cog {
	return &Cog{}
}

func (p *Cog) Name() string {
	return "ping"
}

func (p *Cog) Register(bot *maru.Bot) error {
	bot.OnCommand(maru.Command{
		Command: "ping",
		Help: func(c *maru.Context) string {
			return c.T("bot.cogs.ping.commands.ping.help")
		},
		Cooldown: maru.Cooldown{Rate: 3, Per: 10 * time.Second},
		Handler: maru.NewHandler(func(c *maru.Context) (maru.Response, error) {
			return c.NewMessage(c.T("bot.cogs.ping.pong")), nil
		}),
	})

	return nil
}
