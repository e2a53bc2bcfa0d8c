package locales

import (
	i18nv2 "github.com/nicksnyder/go-i18n/v2/i18n"
)

func RegisterKo() []*i18nv2.Message {
	return []*i18nv2.Message{
		{
			ID:    "bot.system.commands.groups.basic.name",
			Other: "기본 명령어",
		},
		{
			ID:    "bot.system.commands.help.help",
			Other: "기능 그룹 목록 또는 특정 그룹의 상세 도움말을 확인합니다",
		},
		{
			ID:    "bot.system.commands.start.help",
			Other: "봇과 대화를 시작합니다",
		},
		{
			ID:    "bot.system.start.message",
			Other: "안녕하세요! 저는 {{ .BotName }}입니다. /help 를 입력하면 할 수 있는 일을 보여드려요.",
		},
		{
			ID:    "bot.system.help.overview.header",
			Other: "🔍 사용 가능한 모든 기능 그룹 및 명령어입니다.\n자세한 설명을 보려면 /help <그룹> 을 입력하거나 아래 버튼을 눌러주세요.",
		},
		{
			ID:    "bot.system.help.overview.group_line",
			Other: "📎 {{ .Name }} — /help {{ .Slug }}",
		},
		{
			ID:    "bot.system.help.overview.standalone_header",
			Other: "특수 명령어:",
		},
		{
			ID:    "bot.system.help.group.header",
			Other: "📚 {{ .Name }} 명령어:",
		},
		{
			ID:    "bot.system.help.group.footer",
			Other: "[] = 필수 항목, () = 선택 항목",
		},
		{
			ID:    "bot.system.help.group.not_found",
			Other: "❌ \"{{ .Slug }}\" 그룹을 찾을 수 없습니다. 사용 가능한 그룹: {{ .Groups }}",
		},
		{
			ID:    "bot.system.errors.usage",
			Other: "사용법: {{ .Usage }}",
		},
		{
			ID:    "bot.system.errors.cooldown",
			Other: "명령어 쿨다운: {{ .Seconds }}초 남음",
		},
		{
			ID:    "bot.system.errors.check_failed",
			Other: "권한이 없거나 이 채널에서 사용할 수 없는 명령어입니다.",
		},
		{
			ID:    "bot.system.errors.platform",
			Other: "채팅 플랫폼 API 오류가 발생했습니다. 잠시 후 다시 시도해주세요.",
		},
		{
			ID:    "bot.system.errors.timeout",
			Other: "요청 시간이 초과되었습니다.",
		},
		{
			ID:    "bot.system.errors.internal",
			Other: "명령어 실행 중 오류가 발생했습니다.",
		},
		{
			ID:    "bot.system.callback_query.invalid_action_data.try_again",
			Other: "죄송합니다. 이 작업은 더 이상 유효하지 않습니다. 처음부터 다시 시도해주세요.",
		},
		{
			ID:    "bot.cogs.ping.commands.ping.help",
			Other: "봇이 살아있는지 확인합니다",
		},
		{
			ID:    "bot.cogs.ping.pong",
			Other: "퐁 🏓",
		},
		{
			ID:    "bot.cogs.admin.group.name",
			Other: "관리",
		},
		{
			ID:    "bot.cogs.admin.commands.pin.help",
			Other: "답장한 메시지를 고정합니다",
		},
		{
			ID:    "bot.cogs.admin.commands.unpin.help",
			Other: "답장한 메시지 또는 최근 고정 메시지를 해제합니다",
		},
		{
			ID:    "bot.cogs.admin.commands.purge.help",
			Other: "봇이 남긴 안내 메시지를 정리합니다",
		},
		{
			ID:    "bot.cogs.admin.pin.no_reply",
			Other: "고정할 메시지에 답장한 뒤 /pin 을 입력해주세요.",
		},
		{
			ID:    "bot.cogs.admin.pin.done",
			Other: "고정했습니다.",
		},
		{
			ID:    "bot.cogs.admin.unpin.done",
			Other: "고정을 해제했습니다.",
		},
		{
			ID:    "bot.cogs.admin.purge.done",
			Other: "정리했습니다.",
		},
		{
			ID:    "bot.cogs.admin.welcome",
			Other: "{{ .Name }}님, 환영합니다! /help 를 입력하면 할 수 있는 일을 보여드려요.",
		},
		{
			ID:    "bot.cogs.quotes.group.name",
			Other: "명언",
		},
		{
			ID:    "bot.cogs.quotes.commands.quoteadd.help",
			Other: "명언을 저장합니다",
		},
		{
			ID:    "bot.cogs.quotes.commands.quote.help",
			Other: "번호로 저장된 명언을 불러오거나, 무작위로 하나를 보여줍니다",
		},
		{
			ID:    "bot.cogs.quotes.added",
			Other: "명언 #{{ .ID }} 이(가) 저장되었습니다.",
		},
		{
			ID:    "bot.cogs.quotes.empty",
			Other: "이 채팅방에는 아직 저장된 명언이 없습니다.",
		},
		{
			ID:    "bot.cogs.quotes.not_found",
			Other: "이 채팅방에 #{{ .ID }} 명언이 없습니다.",
		},
		{
			ID:    "bot.cogs.quotes.invalid_id",
			Other: "명언 번호는 숫자로 입력해주세요. 예: /quote 3",
		},
		{
			ID:    "bot.cogs.quotes.quote",
			Other: "“{{ .Text }}”\n— #{{ .ID }}, {{ .AddedBy }} 님이 저장함",
		},
	}
}
