package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFormat(t *testing.T) {
	assert.Equal(t,
		"session/delete_later_messages_for_actor/42",
		SessionDeleteLaterMessagesForActor1.Format(int64(42)),
	)
	assert.Equal(t,
		"callback_query/button_data/system/help/group/abcd1234",
		CallbackQueryData2.Format("system/help/group", "abcd1234"),
	)
	assert.Equal(t,
		"cooldown/command:ping/telegram/-100123",
		CommandCooldown3.Format("ping", "telegram", "-100123"),
	)
}
