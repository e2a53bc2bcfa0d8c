package maru

import (
	"crypto/sha256"
	"fmt"
	"runtime/debug"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gookit/color"
	"github.com/nekomeowww/xo/logger"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/marubot/maru/pkg/i18n"
)

// Dispatcher routes incoming updates to registered handlers. Command
// invocations run through a fixed pipeline: checks, cooldown, handler,
// response send, with failures translated into localized replies.
type Dispatcher struct {
	logger *logger.Logger

	helpCommand                *helpCommandHandler
	startCommand               *startCommandHandler
	middlewares                []MiddlewareFunc
	commands                   map[string]Command
	channelPostHandlers        []Handler
	callbackQueryHandlers      map[string]HandleFunc
	callbackQueryHandlersRoute map[string]string
	leftChatMemberHandlers     []Handler
	newChatMembersHandlers     []Handler
	myChatMemberHandlers       []Handler
	chatMigrationFromHandlers  []Handler
}

func NewDispatcher(logger *logger.Logger) *Dispatcher {
	d := &Dispatcher{
		logger:                     logger,
		helpCommand:                newHelpCommandHandler(),
		startCommand:               newStartCommandHandler(),
		middlewares:                make([]MiddlewareFunc, 0),
		commands:                   make(map[string]Command),
		channelPostHandlers:        make([]Handler, 0),
		callbackQueryHandlers:      make(map[string]HandleFunc),
		callbackQueryHandlersRoute: make(map[string]string),
		leftChatMemberHandlers:     make([]Handler, 0),
		newChatMembersHandlers:     make([]Handler, 0),
		myChatMemberHandlers:       make([]Handler, 0),
		chatMigrationFromHandlers:  make([]Handler, 0),
	}

	d.OnCommandGroup("basic", func(c *Context) string {
		return c.T("bot.system.commands.groups.basic.name")
	}, []Command{
		{Command: d.helpCommand.Command(), Args: []Argument{{Name: "group"}}, Help: d.helpCommand.CommandHelp, Handler: NewHandler(d.helpCommand.handle)},
		{Command: d.startCommand.Command(), Help: d.startCommand.CommandHelp, Handler: NewHandler(d.startCommand.handle)},
	})
	d.OnCallbackQuery(callbackQueryRouteHelpGroup, NewHandler(d.helpCommand.handleGroupCallback))
	d.OnCallbackQuery("nop", NewHandler(func(ctx *Context) (Response, error) {
		return nil, nil
	}))

	return d
}

func (d *Dispatcher) Use(middleware MiddlewareFunc) {
	d.middlewares = append(d.middlewares, middleware)
}

// OnCommand registers a standalone command. It shows up in the /help overview
// below the command groups.
func (d *Dispatcher) OnCommand(cmd Command) {
	d.helpCommand.defaultGroup.commands = append(d.helpCommand.defaultGroup.commands, cmd)
	d.commands[cmd.Command] = cmd
}

// OnCommandGroup registers a named group of commands. The slug is what users
// type after /help; the name is the localized display name.
func (d *Dispatcher) OnCommandGroup(slug string, name func(*Context) string, commands []Command) {
	d.helpCommand.commandGroups = append(d.helpCommand.commandGroups, commandGroup{
		slug:     strings.ToLower(slug),
		name:     name,
		commands: commands,
	})

	for _, cmd := range commands {
		d.commands[cmd.Command] = cmd
	}
}

func (d *Dispatcher) OnStartCommand(h Handler) {
	d.startCommand.startCommandHandlers = append(d.startCommand.startCommandHandlers, h)
}

func (d *Dispatcher) dispatchMessage(c *Context) {
	message := c.Update.Message

	identityStrings := make([]string, 0)
	identityStrings = append(identityStrings, FullNameFromFirstAndLastName(message.From.FirstName, message.From.LastName))

	if message.From.UserName != "" {
		identityStrings = append(identityStrings, "@"+message.From.UserName)
	}

	text := lo.Ternary(message.Text == "", "<empty or contains medias>", message.Text)

	if ChatType(message.Chat.Type) == ChatTypePrivate {
		d.logger.Debug(fmt.Sprintf("[message|%s] %s (%s): %s",
			message.Chat.Type,
			strings.Join(identityStrings, " "),
			color.FgYellow.Render(message.From.ID),
			text,
		))
	} else {
		d.logger.Debug(fmt.Sprintf("[message|%s] [%s (%s)] %s (%s): %s",
			message.Chat.Type,
			color.FgGreen.Render(message.Chat.Title),
			color.FgYellow.Render(message.Chat.ID),
			strings.Join(identityStrings, " "),
			color.FgYellow.Render(message.From.ID),
			text,
		))
	}

	if message.Command() == "" {
		return
	}

	cmd, ok := d.commands[message.Command()]
	if !ok {
		return
	}

	d.dispatchInGoroutine(func() {
		d.runCommand(c, cmd)
	})
}

// runCommand drives one command invocation through the pipeline and sends
// whatever comes out of it, response or translated error.
func (d *Dispatcher) runCommand(c *Context, cmd Command) {
	resp, err := d.invokeCommand(c, cmd)
	if err != nil {
		d.replyWithTranslatedError(c, cmd, err)
		return
	}
	if resp == nil {
		return
	}

	c.Bot.MaySend(resp.chattable())
}

func (d *Dispatcher) invokeCommand(c *Context, cmd Command) (Response, error) {
	if len(c.CommandArgs()) < cmd.requiredArgCount() {
		return nil, &UsageError{Usage: cmd.Usage()}
	}

	for _, check := range cmd.Checks {
		err := check(c)
		if err != nil {
			return nil, err
		}
	}

	if cmd.Cooldown.Per > 0 {
		ok, retryAfter, err := c.Bot.AcquireCommandCooldown(c.Update.FromChat().ID, cmd.Command, cmd.Cooldown.Rate, cmd.Cooldown.Per)
		if err != nil {
			d.logger.Error("failed to count command cooldown",
				zap.String("command", cmd.Command),
				zap.Error(err),
			)
		}
		if !ok {
			return nil, &CooldownError{RetryAfter: retryAfter}
		}
	}

	return cmd.Handler.Handle(c)
}

func (d *Dispatcher) replyWithTranslatedError(c *Context, cmd Command, err error) {
	if expectedCommandError(err) {
		d.logger.Debug("command invocation rejected",
			zap.String("command", cmd.Command),
			zap.Error(err),
		)
	} else {
		d.logger.Error("command failed",
			zap.String("command", cmd.Command),
			zap.Error(err),
		)
	}

	text := translateCommandError(c, err)

	var reply MessageResponse
	if c.Update.Message != nil {
		reply = c.NewMessageReplyTo(text, c.Update.Message.MessageID)
	} else {
		reply = c.NewMessage(text)
	}

	sent := c.Bot.MaySend(reply.chattable())
	if sent == nil || sent.MessageID == 0 {
		return
	}

	// in group chats, remember the reply so /purge can clean it up later
	chat := c.Update.FromChat()
	from := c.Update.SentFrom()

	if chat != nil && from != nil && !chat.IsPrivate() {
		_ = c.Bot.PushOneDeleteLaterMessage(from.ID, chat.ID, sent.MessageID)
	}
}

func (d *Dispatcher) OnChannelPost(handler Handler) {
	d.channelPostHandlers = append(d.channelPostHandlers, handler)
}

func (d *Dispatcher) dispatchChannelPost(c *Context) {
	d.logger.Debug(fmt.Sprintf("[channel post|%s] [%s (%s)]: %s",
		c.Update.ChannelPost.Chat.Type,
		color.FgGreen.Render(c.Update.ChannelPost.Chat.Title),
		color.FgYellow.Render(c.Update.ChannelPost.Chat.ID),
		lo.Ternary(c.Update.ChannelPost.Text == "", "<empty or contains medias>", c.Update.ChannelPost.Text),
	))

	d.dispatchInGoroutine(func() {
		for _, h := range d.channelPostHandlers {
			_, _ = h.Handle(c)
		}
	})
}

func (d *Dispatcher) OnCallbackQuery(route string, h Handler) {
	routeHash := fmt.Sprintf("%x", sha256.Sum256([]byte(route)))[0:16]
	d.callbackQueryHandlersRoute[routeHash] = route
	d.callbackQueryHandlers[routeHash] = h.Handle
}

func (d *Dispatcher) dispatchCallbackQuery(c *Context) {
	var err error
	var ok bool
	var route, routeHash, actionDataHash, actionData string

	defer func() {
		identityStrings := make([]string, 0)
		identityStrings = append(identityStrings, FullNameFromFirstAndLastName(c.Update.CallbackQuery.From.FirstName, c.Update.CallbackQuery.From.LastName))

		if c.Update.CallbackQuery.From.UserName != "" {
			identityStrings = append(identityStrings, "@"+c.Update.CallbackQuery.From.UserName)
		}

		switch {
		case route == "":
			d.logger.Error(fmt.Sprintf("[callback query|%s] [%s (%s)] %s (%s): %s (raw data)\n%s\n\n%s\n",
				c.Update.CallbackQuery.Message.Chat.Type,
				color.FgGreen.Render(c.Update.CallbackQuery.Message.Chat.Title),
				color.FgYellow.Render(c.Update.CallbackQuery.Message.Chat.ID),
				strings.Join(identityStrings, " "),
				color.FgYellow.Render(c.Update.CallbackQuery.From.ID),
				c.Update.CallbackData(),
				color.FgRed.Render(c.I18n.TWithTag(language.English, "bot.system.callback_query.error_missing_route.error")),
				color.FgRed.Render(c.I18n.TWithTag(language.English, "bot.system.callback_query.error_missing_route.solution")),
			),
				zap.String("route_hash", routeHash),
				zap.String("action_data_hash", actionDataHash),
			)
		case actionData == "":
			d.logger.Error(fmt.Sprintf("[callback query|%s] [%s (%s)] %s (%s): %s (raw data)\n%s\n\n%s\n",
				c.Update.CallbackQuery.Message.Chat.Type,
				color.FgGreen.Render(c.Update.CallbackQuery.Message.Chat.Title),
				color.FgYellow.Render(c.Update.CallbackQuery.Message.Chat.ID),
				strings.Join(identityStrings, " "),
				color.FgYellow.Render(c.Update.CallbackQuery.From.ID),
				c.Update.CallbackData(),
				color.FgRed.Render(c.I18n.TWithTag(language.English, "bot.system.callback_query.error_missing_action_data.error")),
				color.FgRed.Render(c.I18n.TWithTag(language.English, "bot.system.callback_query.error_missing_action_data.solution")),
			),
				zap.String("route", route),
				zap.String("route_hash", routeHash),
				zap.String("action_data_hash", actionDataHash),
			)
		default:
			d.logger.Debug(fmt.Sprintf("[callback query|%s] [%s (%s)] %s (%s): %s: %s",
				c.Update.CallbackQuery.Message.Chat.Type,
				color.FgGreen.Render(c.Update.CallbackQuery.Message.Chat.Title),
				color.FgYellow.Render(c.Update.CallbackQuery.Message.Chat.ID),
				strings.Join(identityStrings, " "),
				color.FgYellow.Render(c.Update.CallbackQuery.From.ID),
				route, actionData,
			),
				zap.String("route", route),
				zap.String("route_hash", routeHash),
				zap.String("action_data_hash", actionDataHash),
			)
		}
	}()

	invalidActionDataMessage := tgbotapi.NewEditMessageText(
		c.Update.CallbackQuery.Message.Chat.ID,
		c.Update.CallbackQuery.Message.MessageID,
		c.T("bot.system.callback_query.invalid_action_data.try_again"),
	)

	routeHash, actionDataHash = c.Bot.routeHashAndActionHashFromData(c.Update.CallbackQuery.Data)
	if routeHash == "" || actionDataHash == "" {
		c.Bot.MayRequest(invalidActionDataMessage)
		return
	}

	route, ok = d.callbackQueryHandlersRoute[routeHash]
	if !ok || route == "" {
		return
	}

	handler, ok := d.callbackQueryHandlers[routeHash]
	if !ok || handler == nil {
		c.Bot.MayRequest(invalidActionDataMessage)
		return
	}

	actionData, ok, err = d.fetchActionDataForCallbackQueryHandler(c.Bot, route, routeHash, actionDataHash)
	if err != nil {
		d.logger.Error("failed to fetch the callback query action data for handler", zap.String("route", route), zap.Error(err))
		return
	}
	if !ok {
		c.Bot.MayRequest(invalidActionDataMessage)
		return
	}

	c.withCallbackQueryActionData(actionData)

	d.dispatchInGoroutine(func() {
		resp, err := handler(c)
		if err != nil {
			d.logger.Error("callback query handler failed", zap.String("route", route), zap.Error(err))
			return
		}
		if resp != nil {
			c.Bot.MaySend(resp.chattable())
		}

		c.Bot.MayRequest(tgbotapi.NewCallback(c.Update.CallbackQuery.ID, ""))
	})
}

func (d *Dispatcher) fetchActionDataForCallbackQueryHandler(botAPI *BotAPI, route, routeHash, actionDataHash string) (string, bool, error) {
	if routeHash == "" {
		return "", false, fmt.Errorf("callback query handler route hash is empty")
	}
	if actionDataHash == "" {
		return "", false, fmt.Errorf("callback query handler action data hash is empty")
	}

	str, err := botAPI.fetchCallbackQueryActionData(route, actionDataHash)
	if err != nil {
		return "", false, err
	}

	return str, str != "", nil
}

func (d *Dispatcher) OnMyChatMember(handler Handler) {
	d.myChatMemberHandlers = append(d.myChatMemberHandlers, handler)
}

func (d *Dispatcher) dispatchMyChatMember(c *Context) {
	identityStrings := make([]string, 0)
	identityStrings = append(identityStrings, FullNameFromFirstAndLastName(c.Update.MyChatMember.From.FirstName, c.Update.MyChatMember.From.LastName))

	if c.Update.MyChatMember.From.UserName != "" {
		identityStrings = append(identityStrings, "@"+c.Update.MyChatMember.From.UserName)
	}

	d.logger.Debug(fmt.Sprintf("[my chat member|%s] [%s (%s)] %s (%s): member status changed from %s to %s",
		c.Update.MyChatMember.Chat.Type,
		color.FgGreen.Render(c.Update.MyChatMember.Chat.Title),
		color.FgYellow.Render(c.Update.MyChatMember.Chat.ID),
		strings.Join(identityStrings, " "),
		color.FgYellow.Render(c.Update.MyChatMember.From.ID),
		c.Update.MyChatMember.OldChatMember.Status,
		c.Update.MyChatMember.NewChatMember.Status,
	))

	d.dispatchInGoroutine(func() {
		for _, h := range d.myChatMemberHandlers {
			_, _ = h.Handle(c)
		}
	})
}

func (d *Dispatcher) OnLeftChatMember(h Handler) {
	d.leftChatMemberHandlers = append(d.leftChatMemberHandlers, h)
}

func (d *Dispatcher) dispatchLeftChatMember(c *Context) {
	identityStrings := make([]string, 0)
	identityStrings = append(identityStrings, FullNameFromFirstAndLastName(c.Update.Message.LeftChatMember.FirstName, c.Update.Message.LeftChatMember.LastName))

	if c.Update.Message.LeftChatMember.UserName != "" {
		identityStrings = append(identityStrings, "@"+c.Update.Message.LeftChatMember.UserName)
	}

	d.logger.Debug(fmt.Sprintf("[chat member|%s] [%s (%s)] %s (%s) left the chat",
		c.Update.Message.Chat.Type,
		color.FgGreen.Render(c.Update.Message.Chat.Title),
		color.FgYellow.Render(c.Update.Message.Chat.ID),
		strings.Join(identityStrings, " "),
		color.FgYellow.Render(c.Update.Message.LeftChatMember.ID),
	))

	d.dispatchInGoroutine(func() {
		for _, h := range d.leftChatMemberHandlers {
			_, _ = h.Handle(c)
		}
	})
}

func (d *Dispatcher) OnNewChatMember(h Handler) {
	d.newChatMembersHandlers = append(d.newChatMembersHandlers, h)
}

func (d *Dispatcher) dispatchNewChatMember(c *Context) {
	identities := make([]string, 0, len(c.Update.Message.NewChatMembers))

	for _, identity := range c.Update.Message.NewChatMembers {
		identityStrings := make([]string, 0)
		identityStrings = append(identityStrings, FullNameFromFirstAndLastName(identity.FirstName, identity.LastName))

		if identity.UserName != "" {
			identityStrings = append(identityStrings, "@"+identity.UserName)
		}

		identityStrings = append(identityStrings, fmt.Sprintf("(%s)", color.FgYellow.Render(identity.ID)))
		identities = append(identities, strings.Join(identityStrings, " "))
	}

	d.logger.Debug(fmt.Sprintf("[chat member|%s] [%s (%s)] %s joined the chat",
		c.Update.Message.Chat.Type,
		color.FgGreen.Render(c.Update.Message.Chat.Title),
		color.FgYellow.Render(c.Update.Message.Chat.ID),
		strings.Join(identities, ", "),
	))

	d.dispatchInGoroutine(func() {
		for _, h := range d.newChatMembersHandlers {
			resp, err := h.Handle(c)
			if err != nil {
				d.logger.Error("new chat member handler failed", zap.Error(err))
				continue
			}
			if resp != nil {
				c.Bot.MaySend(resp.chattable())
			}
		}
	})
}

func (d *Dispatcher) OnChatMigrationFrom(h Handler) {
	d.chatMigrationFromHandlers = append(d.chatMigrationFromHandlers, h)
}

func (d *Dispatcher) dispatchChatMigrationFrom(c *Context) {
	d.logger.Debug(fmt.Sprintf("[chat migration] supergroup [%s (%s)] migrated from group [%s (%s)]",
		color.FgGreen.Render(c.Update.Message.Chat.Title),
		color.FgYellow.Render(c.Update.Message.Chat.ID),
		color.FgGreen.Render(c.Update.Message.Chat.Title),
		color.FgYellow.Render(c.Update.Message.MigrateFromChatID),
	))

	d.dispatchInGoroutine(func() {
		for _, h := range d.chatMigrationFromHandlers {
			_, _ = h.Handle(c)
		}
	})
}

func (d *Dispatcher) dispatchChatMigrationTo(c *Context) {
	d.logger.Debug(fmt.Sprintf("[chat migration] group [%s (%s)] migrated to supergroup [%s (%s)]",
		color.FgGreen.Render(c.Update.Message.Chat.Title),
		color.FgYellow.Render(c.Update.Message.Chat.ID),
		color.FgGreen.Render(c.Update.Message.Chat.Title),
		color.FgYellow.Render(c.Update.Message.MigrateToChatID),
	))
}

func (d *Dispatcher) Dispatch(bot *tgbotapi.BotAPI, botAPI *BotAPI, i18n *i18n.I18n, update tgbotapi.Update) {
	ctx := NewContext(bot, botAPI, update, d.logger, i18n)

	for _, m := range d.middlewares {
		m(ctx, func() {})

		if ctx.IsAborted() {
			d.logger.Debug("update dispatch aborted by middleware")
			return
		}
	}

	switch ctx.UpdateType() {
	case UpdateTypeMessage:
		d.dispatchMessage(ctx)
	case UpdateTypeEditedMessage:
		d.logger.Debug("edited message is not supported yet")
	case UpdateTypeChannelPost:
		d.dispatchChannelPost(ctx)
	case UpdateTypeEditedChannelPost:
		d.logger.Debug("edited channel post is not supported yet")
	case UpdateTypeInlineQuery:
		d.logger.Debug("inline query is not supported yet")
	case UpdateTypeChosenInlineResult:
		d.logger.Debug("chosen inline result is not supported yet")
	case UpdateTypeCallbackQuery:
		d.dispatchCallbackQuery(ctx)
	case UpdateTypeShippingQuery:
		d.logger.Debug("shipping query is not supported yet")
	case UpdateTypePreCheckoutQuery:
		d.logger.Debug("pre checkout query is not supported yet")
	case UpdateTypePoll:
		d.logger.Debug("poll is not supported yet")
	case UpdateTypePollAnswer:
		d.logger.Debug("poll answer is not supported yet")
	case UpdateTypeMyChatMember:
		d.dispatchMyChatMember(ctx)
	case UpdateTypeChatMember:
		d.logger.Debug("chat member is not supported yet")
	case UpdateTypeLeftChatMember:
		d.dispatchLeftChatMember(ctx)
	case UpdateTypeNewChatMembers:
		d.dispatchNewChatMember(ctx)
	case UpdateTypeChatJoinRequest:
		d.logger.Debug("chat join request is not supported yet")
	case UpdateTypeChatMigrationFrom:
		d.dispatchChatMigrationFrom(ctx)
	case UpdateTypeChatMigrationTo:
		d.dispatchChatMigrationTo(ctx)
	case UpdateTypeUnknown:
		d.logger.Debug("unable to dispatch update due to unknown update type")
	default:
		d.logger.Debug("unable to dispatch update due to unknown update type", zap.String("update_type", string(ctx.UpdateType())))
	}
}

func (d *Dispatcher) dispatchInGoroutine(f func()) {
	go func() {
		defer func() {
			if err := recover(); err != nil {
				d.logger.Error("Panic recovered from command dispatcher",
					zap.Error(fmt.Errorf("panic error: %v", err)),
					zap.Stack("stack"),
				)
				fmt.Println("Panic recovered from command dispatcher: " + string(debug.Stack()))

				return
			}
		}()

		f()
	}()
}

// registeredBotCommands flattens all registered commands into the shape the
// platform wants for its command menu.
func (d *Dispatcher) registeredBotCommands(c *Context) []tgbotapi.BotCommand {
	botCommands := make([]tgbotapi.BotCommand, 0, len(d.commands))

	appendCommands := func(commands []Command) {
		for _, cmd := range commands {
			description := cmd.helpText(c)
			if description == "" {
				description = "/" + cmd.Command
			}

			botCommands = append(botCommands, tgbotapi.BotCommand{
				Command:     cmd.Command,
				Description: description,
			})
		}
	}

	for _, group := range d.helpCommand.commandGroups {
		appendCommands(group.commands)
	}

	appendCommands(d.helpCommand.defaultGroup.commands)

	return botCommands
}
