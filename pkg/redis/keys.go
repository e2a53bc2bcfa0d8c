package redis

import "fmt"

// Key key.
type Key string

// Format format.
func (k Key) Format(params ...interface{}) string {
	return fmt.Sprintf(string(k), params...)
}

// Session keys.

const (
	// SessionDeleteLaterMessagesForActor1 is the key for messages queued up
	// to be deleted later on behalf of an actor.
	// params: actor id
	SessionDeleteLaterMessagesForActor1 Key = "session/delete_later_messages_for_actor/%d" // List
)

// CallbackQueryData keys.

const (
	// CallbackQueryData2 is the key for storing callback query data.
	// params: handler route, action hash
	CallbackQueryData2 Key = "callback_query/button_data/%s/%s"
)

// Cooldowns.

const (
	// CommandCooldown3 is the key for the per-chat command cooldown window.
	// params: command, platform, chat id
	CommandCooldown3 Key = "cooldown/command:%s/%s/%s"
)
