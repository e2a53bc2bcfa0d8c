package maru

import (
	"encoding/json"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/nekomeowww/xo/logger"

	"github.com/marubot/maru/pkg/storage/queue"
	"github.com/marubot/maru/pkg/storage/ttlcache"
)

func newTestBotAPI(t *testing.T) *BotAPI {
	t.Helper()

	logger, err := logger.NewLogger(logger.WithLevel(zapcore.DebugLevel), logger.WithAppName("maru"), logger.WithNamespace("marubot"))
	require.NoError(t, err)

	return &BotAPI{
		logger:   logger,
		queue:    queue.NewInMemoryQueue(),
		ttlcache: ttlcache.NewInMemoryTTLCache(),
	}
}

func TestAssignOneCallbackQueryData(t *testing.T) {
	data := struct {
		Hello string `json:"hello"`
	}{
		Hello: "world",
	}

	bot := newTestBotAPI(t)

	callbackQueryData, err := bot.AssignOneCallbackQueryData("test", data)
	require.NoError(t, err)

	routeHash, dataHash := bot.routeHashAndActionHashFromData(callbackQueryData)
	require.NotEmpty(t, routeHash)
	require.NotEmpty(t, dataHash)

	dataStr, err := bot.fetchCallbackQueryActionData("test", dataHash)
	require.NoError(t, err)

	assert.Equal(t, string(lo.Must(json.Marshal(data))), dataStr)
}

func TestAssignOneNopCallbackQueryData(t *testing.T) {
	bot := newTestBotAPI(t)

	callbackQueryData, err := bot.AssignOneNopCallbackQueryData()
	require.NoError(t, err)

	routeHash, dataHash := bot.routeHashAndActionHashFromData(callbackQueryData)
	assert.NotEmpty(t, routeHash)
	assert.NotEmpty(t, dataHash)
}

func TestPushAndDeleteAllDeleteLaterMessages(t *testing.T) {
	bot := newTestBotAPI(t)

	// zero values are ignored on purpose
	require.NoError(t, bot.PushOneDeleteLaterMessage(0, 1, 1))
	require.NoError(t, bot.PushOneDeleteLaterMessage(42, 100, 7))

	elems, err := bot.queue.PopAll(t.Context(), "session/delete_later_messages_for_actor/42")
	require.NoError(t, err)
	require.Len(t, elems, 1)
	assert.Equal(t, "100;7", elems[0])
}

func TestRouteHashAndActionHashFromData(t *testing.T) {
	bot := newTestBotAPI(t)

	routeHash, actionHash := bot.routeHashAndActionHashFromData("not-a-valid-pair")
	assert.Empty(t, routeHash)
	assert.Empty(t, actionHash)

	routeHash, actionHash = bot.routeHashAndActionHashFromData("abcd;efgh")
	assert.Equal(t, "abcd", routeHash)
	assert.Equal(t, "efgh", actionHash)
}
