// Package quotes lets a chat collect memorable lines and pull them back out,
// by number or at random.
package quotes

import (
	"context"
	"errors"
	"strconv"

	"github.com/marubot/maru"
)

type Cog struct {
	dbPath string
	store  *Store
}

func New(dbPath string) *Cog {
	return &Cog{dbPath: dbPath}
}

func (q *Cog) Name() string {
	return "quotes"
}

// Register opens the backing database. Opening lazily here, rather than in
// New, means a locked or corrupt database flows through the plugin loader's
// failure isolation and retry pass instead of aborting startup.
func (q *Cog) Register(bot *maru.Bot) error {
	store, err := NewStore(q.dbPath)
	if err != nil {
		return err
	}

	q.store = store

	bot.OnCommandGroup("quotes", func(c *maru.Context) string {
		return c.T("bot.cogs.quotes.group.name")
	}, []maru.Command{
		{
			Command: "quoteadd",
			Help: func(c *maru.Context) string {
				return c.T("bot.cogs.quotes.commands.quoteadd.help")
			},
			Args:    []maru.Argument{{Name: "text", Required: true}},
			Handler: maru.NewHandler(q.handleQuoteAdd),
		},
		{
			Command: "quote",
			Help: func(c *maru.Context) string {
				return c.T("bot.cogs.quotes.commands.quote.help")
			},
			Args:    []maru.Argument{{Name: "number"}},
			Handler: maru.NewHandler(q.handleQuote),
		},
	})

	return nil
}

func (q *Cog) Close(_ context.Context) error {
	if q.store == nil {
		return nil
	}

	return q.store.Close()
}

func (q *Cog) handleQuoteAdd(c *maru.Context) (maru.Response, error) {
	from := c.Update.SentFrom()

	id, err := q.store.Add(
		context.Background(),
		c.Update.FromChat().ID,
		c.CommandArgString(),
		maru.FullNameFromFirstAndLastName(from.FirstName, from.LastName),
	)
	if err != nil {
		return nil, err
	}

	return c.NewMessage(c.T("bot.cogs.quotes.added", "ID", id)), nil
}

func (q *Cog) handleQuote(c *maru.Context) (maru.Response, error) {
	chatID := c.Update.FromChat().ID
	args := c.CommandArgs()

	if len(args) == 0 {
		quote, err := q.store.Random(context.Background(), chatID)
		if errors.Is(err, ErrQuoteNotFound) {
			return c.NewMessage(c.T("bot.cogs.quotes.empty")), nil
		}
		if err != nil {
			return nil, err
		}

		return c.NewMessage(q.renderQuote(c, quote)), nil
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return c.NewMessage(c.T("bot.cogs.quotes.invalid_id")), nil
	}

	quote, err := q.store.Get(context.Background(), chatID, id)
	if errors.Is(err, ErrQuoteNotFound) {
		return c.NewMessage(c.T("bot.cogs.quotes.not_found", "ID", id)), nil
	}
	if err != nil {
		return nil, err
	}

	return c.NewMessage(q.renderQuote(c, quote)), nil
}

func (q *Cog) renderQuote(c *maru.Context, quote Quote) string {
	return c.T("bot.cogs.quotes.quote",
		"Text", quote.Text,
		"ID", quote.ID,
		"AddedBy", quote.AddedBy,
	)
}
