package maru

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const callbackQueryRouteHelpGroup = "system/help/group"

type helpGroupActionData struct {
	Slug string `json:"slug"`
}

// helpCommandHandler synthesizes the /help listing from whatever commands and
// groups the cogs registered. Nothing here is hardcoded: adding a command to
// a group is all it takes to show up in the help.
type helpCommandHandler struct {
	defaultGroup  commandGroup
	commandGroups []commandGroup
}

func newHelpCommandHandler() *helpCommandHandler {
	return &helpCommandHandler{}
}

func (h *helpCommandHandler) Command() string {
	return "help"
}

func (h *helpCommandHandler) CommandHelp(c *Context) string {
	return c.T("bot.system.commands.help.help")
}

func (h *helpCommandHandler) handle(c *Context) (Response, error) {
	slug := strings.ToLower(c.CommandArgString())
	if slug == "" {
		return h.overview(c)
	}

	group, ok := h.groupBySlug(slug)
	if !ok {
		return c.NewMessage(c.T("bot.system.help.group.not_found",
			"Slug", slug,
			"Groups", strings.Join(h.groupSlugs(), ", "),
		)), nil
	}

	return c.NewMessage(h.renderGroup(c, group)), nil
}

// overview lists every command group plus the standalone commands, with an
// inline button per group as a shortcut to its detail view.
func (h *helpCommandHandler) overview(c *Context) (Response, error) {
	var b strings.Builder

	b.WriteString(c.T("bot.system.help.overview.header"))
	b.WriteString("\n")

	for _, group := range h.commandGroups {
		b.WriteString("\n")
		b.WriteString(c.T("bot.system.help.overview.group_line",
			"Name", group.name(c),
			"Slug", group.slug,
		))
	}

	if len(h.defaultGroup.commands) > 0 {
		b.WriteString("\n\n")
		b.WriteString(c.T("bot.system.help.overview.standalone_header"))

		for _, cmd := range h.defaultGroup.commands {
			b.WriteString("\n")
			b.WriteString(cmd.Usage())

			if help := cmd.helpText(c); help != "" {
				b.WriteString(" — " + help)
			}
		}
	}

	msg := c.NewMessage(b.String())

	rows := h.groupButtons(c)
	if len(rows) > 0 {
		msg = msg.WithReplyMarkup(tgbotapi.NewInlineKeyboardMarkup(rows...))
	}

	return msg, nil
}

func (h *helpCommandHandler) groupButtons(c *Context) [][]tgbotapi.InlineKeyboardButton {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(h.commandGroups))

	for _, group := range h.commandGroups {
		data, err := c.Bot.AssignOneCallbackQueryData(callbackQueryRouteHelpGroup, helpGroupActionData{Slug: group.slug})
		if err != nil {
			c.Logger.Error("failed to assign callback query data for help group button",
				zap.String("group", group.slug),
				zap.Error(err),
			)

			continue
		}

		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(group.name(c), data),
		))
	}

	return rows
}

func (h *helpCommandHandler) renderGroup(c *Context, group commandGroup) string {
	var b strings.Builder

	b.WriteString(c.T("bot.system.help.group.header", "Name", group.name(c)))

	hasArgs := false

	for _, cmd := range group.commands {
		b.WriteString("\n")
		b.WriteString(cmd.Usage())

		if help := cmd.helpText(c); help != "" {
			b.WriteString(" — " + help)
		}
		if len(cmd.Args) > 0 {
			hasArgs = true
		}
	}

	if hasArgs {
		b.WriteString("\n\n")
		b.WriteString(c.T("bot.system.help.group.footer"))
	}

	return b.String()
}

func (h *helpCommandHandler) handleGroupCallback(c *Context) (Response, error) {
	var action helpGroupActionData

	err := c.BindFromCallbackQueryData(&action)
	if err != nil {
		return nil, err
	}

	group, ok := h.groupBySlug(action.Slug)
	if !ok {
		return nil, nil
	}

	return c.NewEditMessageText(c.Update.CallbackQuery.Message.MessageID, h.renderGroup(c, group)), nil
}

func (h *helpCommandHandler) groupBySlug(slug string) (commandGroup, bool) {
	return lo.Find(h.commandGroups, func(group commandGroup) bool {
		return group.slug == slug
	})
}

func (h *helpCommandHandler) groupSlugs() []string {
	return lo.Map(h.commandGroups, func(group commandGroup, _ int) string {
		return group.slug
	})
}
