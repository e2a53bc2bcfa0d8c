package locales

import (
	i18nv2 "github.com/nicksnyder/go-i18n/v2/i18n"
)

func RegisterEn() []*i18nv2.Message {
	return []*i18nv2.Message{
		{
			ID:    "bot.system.commands.groups.basic.name",
			Other: "Basic Commands",
		},
		{
			ID:    "bot.system.commands.help.help",
			Other: "Show the command groups, or detailed help for one group",
		},
		{
			ID:    "bot.system.commands.start.help",
			Other: "Begin interacting with the bot",
		},
		{
			ID:    "bot.system.start.message",
			Other: "Hello! I am {{ .BotName }}. Send /help to see what I can do.",
		},
		{
			ID:    "bot.system.help.overview.header",
			Other: "🔍 Here is everything I can do.\nUse /help <group> or tap a button below for details.",
		},
		{
			ID:    "bot.system.help.overview.group_line",
			Other: "📎 {{ .Name }} — /help {{ .Slug }}",
		},
		{
			ID:    "bot.system.help.overview.standalone_header",
			Other: "Standalone commands:",
		},
		{
			ID:    "bot.system.help.group.header",
			Other: "📚 {{ .Name }} commands:",
		},
		{
			ID:    "bot.system.help.group.footer",
			Other: "[] = required argument, () = optional argument",
		},
		{
			ID:    "bot.system.help.group.not_found",
			Other: "❌ Unknown command group \"{{ .Slug }}\". Available groups: {{ .Groups }}",
		},
		{
			ID:    "bot.system.errors.usage",
			Other: "Usage: {{ .Usage }}",
		},
		{
			ID:    "bot.system.errors.cooldown",
			Other: "Command is on cooldown, try again in {{ .Seconds }}s.",
		},
		{
			ID:    "bot.system.errors.check_failed",
			Other: "You do not have permission to use this command here.",
		},
		{
			ID:    "bot.system.errors.platform",
			Other: "The chat platform returned an error, please try again later.",
		},
		{
			ID:    "bot.system.errors.timeout",
			Other: "The request timed out, please try again.",
		},
		{
			ID:    "bot.system.errors.internal",
			Other: "Something went wrong while running this command.",
		},
		{
			ID:    "bot.system.callback_query.invalid_action_data.try_again",
			Other: "Sorry, this operation is no longer valid. Please start over and try again.",
		},
		{
			ID:    "bot.system.callback_query.error_missing_route.error",
			Other: "Unable to dispatch callback query due to missing route.",
		},
		{
			ID:    "bot.system.callback_query.error_missing_route.solution",
			Other: "Usually the handler was never registered through OnCallbackQuery(...), or the dispatcher failed to match it. Check the registered routes and try again.",
		},
		{
			ID:    "bot.system.callback_query.error_missing_action_data.error",
			Other: "Unable to dispatch callback query due to missing action data.",
		},
		{
			ID:    "bot.system.callback_query.error_missing_action_data.solution",
			Other: "The action data stored for this callback query is empty, expired, or could not be fetched from cache. Flush the corresponding cache keys and try again.",
		},
		{
			ID:    "bot.cogs.ping.commands.ping.help",
			Other: "Check that the bot is alive",
		},
		{
			ID:    "bot.cogs.ping.pong",
			Other: "pong 🏓",
		},
		{
			ID:    "bot.cogs.admin.group.name",
			Other: "Admin",
		},
		{
			ID:    "bot.cogs.admin.commands.pin.help",
			Other: "Pin the message you replied to",
		},
		{
			ID:    "bot.cogs.admin.commands.unpin.help",
			Other: "Unpin the message you replied to, or the most recent pin",
		},
		{
			ID:    "bot.cogs.admin.commands.purge.help",
			Other: "Delete the helper messages I left for you in this chat",
		},
		{
			ID:    "bot.cogs.admin.pin.no_reply",
			Other: "Reply to the message you want pinned, then send /pin.",
		},
		{
			ID:    "bot.cogs.admin.pin.done",
			Other: "Pinned.",
		},
		{
			ID:    "bot.cogs.admin.unpin.done",
			Other: "Unpinned.",
		},
		{
			ID:    "bot.cogs.admin.purge.done",
			Other: "Cleaned up.",
		},
		{
			ID:    "bot.cogs.admin.welcome",
			Other: "Welcome, {{ .Name }}! Send /help to see what I can do.",
		},
		{
			ID:    "bot.cogs.quotes.group.name",
			Other: "Quotes",
		},
		{
			ID:    "bot.cogs.quotes.commands.quoteadd.help",
			Other: "Save a quote",
		},
		{
			ID:    "bot.cogs.quotes.commands.quote.help",
			Other: "Recall a saved quote by number, or a random one",
		},
		{
			ID:    "bot.cogs.quotes.added",
			Other: "Quote #{{ .ID }} saved.",
		},
		{
			ID:    "bot.cogs.quotes.empty",
			Other: "No quotes saved in this chat yet.",
		},
		{
			ID:    "bot.cogs.quotes.not_found",
			Other: "There is no quote #{{ .ID }} in this chat.",
		},
		{
			ID:    "bot.cogs.quotes.invalid_id",
			Other: "Quote numbers are plain numbers, e.g. /quote 3.",
		},
		{
			ID:    "bot.cogs.quotes.quote",
			Other: "“{{ .Text }}”\n— #{{ .ID }}, saved by {{ .AddedBy }}",
		},
	}
}
