package maru

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeTelegramClient points a real tgbotapi client at a local server so
// send paths can run without the network. Parameters of the last sendMessage
// call are copied into sentParams when it is non-nil.
func newFakeTelegramClient(t *testing.T, sendOK bool, sentParams *url.Values) *tgbotapi.BotAPI {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"maru","username":"marubot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			_ = r.ParseForm()

			if sentParams != nil {
				*sentParams = r.PostForm
			}

			if !sendOK {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))

				return
			}

			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":777,"date":1,"chat":{"id":-100123,"type":"supergroup"},"text":"sent"}}`))
		default:
			_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
		}
	}))
	t.Cleanup(srv.Close)

	client, err := tgbotapi.NewBotAPIWithAPIEndpoint("123456:test-token", srv.URL+"/bot%s/%s")
	require.NoError(t, err)

	return client
}

func TestDispatcherRegistersBuiltinCommands(t *testing.T) {
	d := NewDispatcher(newTestLogger(t))

	_, ok := d.commands["help"]
	assert.True(t, ok)

	_, ok = d.commands["start"]
	assert.True(t, ok)
}

func TestOnCommandGroupLowercasesSlug(t *testing.T) {
	d := NewDispatcher(newTestLogger(t))
	d.OnCommandGroup("Quotes", func(c *Context) string { return "Quotes" }, []Command{
		{Command: "quote", Handler: NewHandler(func(c *Context) (Response, error) { return nil, nil })},
	})

	_, ok := d.helpCommand.groupBySlug("quotes")
	assert.True(t, ok)

	_, ok = d.commands["quote"]
	assert.True(t, ok)
}

func TestInvokeCommandMissingRequiredArgs(t *testing.T) {
	d := NewDispatcher(newTestLogger(t))

	handled := false
	cmd := Command{
		Command: "quoteadd",
		Args:    []Argument{{Name: "text", Required: true}},
		Handler: NewHandler(func(c *Context) (Response, error) {
			handled = true
			return nil, nil
		}),
	}

	ctx := NewContext(nil, newTestBotAPI(t), commandUpdate("/quoteadd"), newTestLogger(t), newTestI18n(t))

	_, err := d.invokeCommand(ctx, cmd)

	var usageErr *UsageError

	require.ErrorAs(t, err, &usageErr)
	assert.Equal(t, "/quoteadd [text]", usageErr.Usage)
	assert.False(t, handled)
}

func TestInvokeCommandCheckRejects(t *testing.T) {
	d := NewDispatcher(newTestLogger(t))

	handled := false
	cmd := Command{
		Command: "pin",
		Checks: []CheckFunc{func(c *Context) error {
			return &CheckError{Reason: "group only"}
		}},
		Handler: NewHandler(func(c *Context) (Response, error) {
			handled = true
			return nil, nil
		}),
	}

	ctx := NewContext(nil, newTestBotAPI(t), commandUpdate("/pin"), newTestLogger(t), newTestI18n(t))

	_, err := d.invokeCommand(ctx, cmd)

	var checkErr *CheckError

	require.ErrorAs(t, err, &checkErr)
	assert.False(t, handled)
}

func TestInvokeCommandCooldown(t *testing.T) {
	d := NewDispatcher(newTestLogger(t))

	handled := 0
	cmd := Command{
		Command:  "ping",
		Cooldown: Cooldown{Rate: 1, Per: time.Minute},
		Handler: NewHandler(func(c *Context) (Response, error) {
			handled++
			return c.NewMessage("pong"), nil
		}),
	}

	ctx := NewContext(nil, newTestBotAPI(t), commandUpdate("/ping"), newTestLogger(t), newTestI18n(t))

	resp, err := d.invokeCommand(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, resp)

	_, err = d.invokeCommand(ctx, cmd)

	var cooldownErr *CooldownError

	require.ErrorAs(t, err, &cooldownErr)
	assert.Greater(t, cooldownErr.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, cooldownErr.RetryAfter, time.Minute)
	assert.Equal(t, 1, handled)
}

func TestInvokeCommandHandlerError(t *testing.T) {
	d := NewDispatcher(newTestLogger(t))

	wantErr := errors.New("database is locked")
	cmd := Command{
		Command: "quote",
		Handler: NewHandler(func(c *Context) (Response, error) {
			return nil, wantErr
		}),
	}

	ctx := NewContext(nil, newTestBotAPI(t), commandUpdate("/quote"), newTestLogger(t), newTestI18n(t))

	_, err := d.invokeCommand(ctx, cmd)
	require.ErrorIs(t, err, wantErr)
}

func TestRegisteredBotCommands(t *testing.T) {
	d := newTestDispatcherWithCogs(t)

	// a command without help text falls back to its own name
	d.OnCommand(Command{Command: "echo", Handler: NewHandler(func(c *Context) (Response, error) { return nil, nil })})

	ctx := NewContext(nil, nil, tgbotapi.Update{}, newTestLogger(t), newTestI18n(t))

	botCommands := d.registeredBotCommands(ctx)
	require.Len(t, botCommands, 6)

	ping, ok := lo.Find(botCommands, func(cmd tgbotapi.BotCommand) bool { return cmd.Command == "ping" })
	require.True(t, ok)
	assert.Equal(t, "Check that the bot is alive", ping.Description)

	echo, ok := lo.Find(botCommands, func(cmd tgbotapi.BotCommand) bool { return cmd.Command == "echo" })
	require.True(t, ok)
	assert.Equal(t, "/echo", echo.Description)
}

func TestRunCommandErrorReplyQueuedForDeletion(t *testing.T) {
	d := NewDispatcher(newTestLogger(t))

	var sent url.Values

	bot := newTestBotAPI(t)
	bot.BotAPI = newFakeTelegramClient(t, true, &sent)

	cmd := Command{
		Command: "quote",
		Handler: NewHandler(func(c *Context) (Response, error) {
			return nil, errors.New("database is locked")
		}),
	}

	ctx := NewContext(bot.BotAPI, bot, commandUpdate("/quote"), newTestLogger(t), newTestI18n(t))

	d.runCommand(ctx, cmd)

	// the reply is the translated error, sent as a reply to the invocation
	assert.Equal(t, "Something went wrong while running this command.", sent.Get("text"))
	assert.Equal(t, "1", sent.Get("reply_to_message_id"))

	// in group chats the reply is remembered so /purge can remove it
	elems, err := bot.queue.PopAll(t.Context(), "session/delete_later_messages_for_actor/42")
	require.NoError(t, err)
	require.Len(t, elems, 1)
	assert.Equal(t, "-100123;777", elems[0])
}

func TestRunCommandErrorReplyPrivateChatNotQueued(t *testing.T) {
	d := NewDispatcher(newTestLogger(t))

	var sent url.Values

	bot := newTestBotAPI(t)
	bot.BotAPI = newFakeTelegramClient(t, true, &sent)

	cmd := Command{
		Command: "quote",
		Handler: NewHandler(func(c *Context) (Response, error) {
			return nil, errors.New("database is locked")
		}),
	}

	update := commandUpdate("/quote")
	update.Message.Chat.Type = "private"

	ctx := NewContext(bot.BotAPI, bot, update, newTestLogger(t), newTestI18n(t))

	d.runCommand(ctx, cmd)

	assert.Equal(t, "Something went wrong while running this command.", sent.Get("text"))

	elems, err := bot.queue.PopAll(t.Context(), "session/delete_later_messages_for_actor/42")
	require.NoError(t, err)
	assert.Empty(t, elems)
}

func TestRunCommandErrorReplySendFailureNotQueued(t *testing.T) {
	d := NewDispatcher(newTestLogger(t))

	bot := newTestBotAPI(t)
	bot.BotAPI = newFakeTelegramClient(t, false, nil)

	cmd := Command{
		Command: "quote",
		Handler: NewHandler(func(c *Context) (Response, error) {
			return nil, errors.New("database is locked")
		}),
	}

	ctx := NewContext(bot.BotAPI, bot, commandUpdate("/quote"), newTestLogger(t), newTestI18n(t))

	d.runCommand(ctx, cmd)

	// nothing got sent, so there is nothing to clean up later
	elems, err := bot.queue.PopAll(t.Context(), "session/delete_later_messages_for_actor/42")
	require.NoError(t, err)
	assert.Empty(t, elems)
}

func TestDispatchMiddlewareAbort(t *testing.T) {
	d := NewDispatcher(newTestLogger(t))

	var handled atomic.Bool

	d.OnCommand(Command{Command: "echo", Handler: NewHandler(func(c *Context) (Response, error) {
		handled.Store(true)
		return nil, nil
	})})
	d.Use(func(c *Context, next func()) {
		c.Abort()
	})

	d.Dispatch(nil, newTestBotAPI(t), newTestI18n(t), commandUpdate("/echo"))

	assert.Never(t, handled.Load, 200*time.Millisecond, 20*time.Millisecond)
}

func TestDispatchMiddlewarePassThrough(t *testing.T) {
	d := NewDispatcher(newTestLogger(t))

	var middlewareRan, handled atomic.Bool

	d.OnCommand(Command{Command: "echo", Handler: NewHandler(func(c *Context) (Response, error) {
		handled.Store(true)
		return nil, nil
	})})
	d.Use(func(c *Context, next func()) {
		middlewareRan.Store(true)
	})

	d.Dispatch(nil, newTestBotAPI(t), newTestI18n(t), commandUpdate("/echo"))

	assert.True(t, middlewareRan.Load())
	assert.Eventually(t, handled.Load, time.Second, 10*time.Millisecond)
}

func TestStartCommandFallbackGreeting(t *testing.T) {
	d := NewDispatcher(newTestLogger(t))

	bot := newTestBotAPI(t)
	bot.BotAPI = &tgbotapi.BotAPI{Self: tgbotapi.User{FirstName: "Maru"}}

	ctx := NewContext(nil, bot, commandUpdate("/start"), newTestLogger(t), newTestI18n(t))

	resp, err := d.startCommand.handle(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello! I am Maru. Send /help to see what I can do.", resp.(MessageResponse).config.Text)
}

func TestStartCommandRegisteredHandlerWins(t *testing.T) {
	d := NewDispatcher(newTestLogger(t))
	d.OnStartCommand(NewHandler(func(c *Context) (Response, error) {
		return c.NewMessage("custom greeting"), nil
	}))

	ctx := NewContext(nil, newTestBotAPI(t), commandUpdate("/start"), newTestLogger(t), newTestI18n(t))

	resp, err := d.startCommand.handle(ctx)
	require.NoError(t, err)
	assert.Equal(t, "custom greeting", resp.(MessageResponse).config.Text)
}
