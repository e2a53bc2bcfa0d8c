package maru

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/rueidis"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"

	"github.com/nekomeowww/fo"
	"github.com/nekomeowww/xo"
	"github.com/nekomeowww/xo/exp/channelx"
	"github.com/nekomeowww/xo/logger"

	"github.com/marubot/maru/pkg/i18n"
	"github.com/marubot/maru/pkg/redis"
	"github.com/marubot/maru/pkg/storage/queue"
	"github.com/marubot/maru/pkg/storage/ttlcache"
)

type botOptions struct {
	webhookURL  string
	webhookPort string
	token       string
	apiEndpoint string
	dispatcher  *Dispatcher
	logger      *logger.Logger
	queue       queue.Queue
	ttlcache    ttlcache.TTLCache
	i18n        *i18n.I18n

	presences        []string
	presenceInterval time.Duration
	pluginRetryDelay time.Duration
}

type CallOption func(*botOptions)

func WithWebhookURL(url string) CallOption {
	return func(o *botOptions) {
		o.webhookURL = url
	}
}

func WithWebhookPort(port string) CallOption {
	return func(o *botOptions) {
		o.webhookPort = port
	}
}

func WithToken(token string) CallOption {
	return func(o *botOptions) {
		o.token = token
	}
}

func WithAPIEndpoint(endpoint string) CallOption {
	return func(o *botOptions) {
		o.apiEndpoint = endpoint
	}
}

func WithDispatcher(dispatcher *Dispatcher) CallOption {
	return func(o *botOptions) {
		o.dispatcher = dispatcher
	}
}

func WithLogger(logger *logger.Logger) CallOption {
	return func(o *botOptions) {
		o.logger = logger
	}
}

func WithQueue(queue queue.Queue) CallOption {
	return func(o *botOptions) {
		o.queue = queue
	}
}

func WithTTLCache(ttlcache ttlcache.TTLCache) CallOption {
	return func(o *botOptions) {
		o.ttlcache = ttlcache
	}
}

func WithRueidis(rueidis rueidis.Client) CallOption {
	return func(o *botOptions) {
		o.queue = queue.NewRueidisQueue(rueidis)
		o.ttlcache = ttlcache.NewRueidisTTLCache(rueidis)
	}
}

func WithI18n(i18n *i18n.I18n) CallOption {
	return func(o *botOptions) {
		o.i18n = i18n
	}
}

// WithPresences configures the rotating bot status texts. The interval says
// how often the next text is shown; zero keeps the 5 minute default.
func WithPresences(interval time.Duration, texts ...string) CallOption {
	return func(o *botOptions) {
		o.presences = texts

		if interval > 0 {
			o.presenceInterval = interval
		}
	}
}

// WithPluginRetryDelay overrides how long the bot waits before giving failed
// plugins their one retry.
func WithPluginRetryDelay(delay time.Duration) CallOption {
	return func(o *botOptions) {
		if delay > 0 {
			o.pluginRetryDelay = delay
		}
	}
}

type Bot struct {
	*tgbotapi.BotAPI

	opts       *botOptions
	logger     *logger.Logger
	dispatcher *Dispatcher
	i18n       *i18n.I18n

	webhookServer     *http.Server
	webhookUpdateChan chan tgbotapi.Update
	updateChan        tgbotapi.UpdatesChannel
	started           atomic.Bool

	alreadyStopped bool
	stopChan       chan struct{}

	pluginsMutex     sync.Mutex
	installedPlugins map[string]Plugin
	installOrder     []string

	puller *channelx.Puller[tgbotapi.Update]
}

func NewBot(callOpts ...CallOption) (*Bot, error) {
	opts := &botOptions{
		queue:            queue.NewInMemoryQueue(),
		ttlcache:         ttlcache.NewInMemoryTTLCache(),
		presenceInterval: 5 * time.Minute,
		pluginRetryDelay: 5 * time.Second,
	}

	for _, callOpt := range callOpts {
		callOpt(opts)
	}

	if opts.token == "" {
		return nil, errors.New("must supply a valid telegram bot token in configs or environment variable")
	}
	if opts.logger == nil {
		var err error

		opts.logger, err = logger.NewLogger()
		if err != nil {
			return nil, err
		}
	}
	if opts.i18n == nil {
		var err error

		opts.i18n, err = i18n.NewI18n()
		if err != nil {
			return nil, err
		}
	}
	if opts.dispatcher == nil {
		opts.dispatcher = NewDispatcher(opts.logger)
	}

	var err error
	var b *tgbotapi.BotAPI

	if opts.apiEndpoint != "" {
		b, err = tgbotapi.NewBotAPIWithAPIEndpoint(opts.token, opts.apiEndpoint+"/bot%s/%s")
	} else {
		b, err = tgbotapi.NewBotAPI(opts.token)
	}
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		BotAPI:           b,
		opts:             opts,
		logger:           opts.logger,
		dispatcher:       opts.dispatcher,
		i18n:             opts.i18n,
		stopChan:         make(chan struct{}),
		installedPlugins: make(map[string]Plugin),
		installOrder:     make([]string, 0),
	}

	bot.puller = channelx.NewPuller[tgbotapi.Update]().
		WithHandler(func(update tgbotapi.Update) {
			bot.dispatcher.Dispatch(bot.BotAPI, bot.Bot(), bot.i18n, update)
		}).
		WithPanicHandler(func(panicValues *panics.Recovered) {
			bot.logger.Error("panic occurred", zap.Any("panic", panicValues))
		})

	// init webhook server and set webhook
	if bot.opts.webhookURL != "" {
		parsed, err := url.Parse(bot.opts.webhookURL)
		if err != nil {
			return nil, err
		}

		if bot.opts.webhookPort == "" {
			bot.opts.webhookPort = "8443"
		}

		bot.webhookUpdateChan = make(chan tgbotapi.Update, b.Buffer)
		bot.webhookServer = newWebhookServer(parsed.Path, bot.opts.webhookPort, bot.BotAPI, bot.webhookUpdateChan)
		bot.puller = bot.puller.WithNotifyChannel(bot.webhookUpdateChan)

		err = setWebhook(bot.opts.webhookURL, bot.BotAPI)
		if err != nil {
			return nil, err
		}
	} else {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		bot.updateChan = b.GetUpdatesChan(u)
		bot.puller = bot.puller.WithNotifyChannel(bot.updateChan)
	}

	// obtain webhook info
	webhookInfo, err := bot.GetWebhookInfo()
	if err != nil {
		return nil, err
	}
	if bot.opts.webhookURL != "" && webhookInfo.IsSet() && webhookInfo.LastErrorDate != 0 {
		bot.logger.Error("webhook callback failed", zap.String("last_message", webhookInfo.LastErrorMessage))
	}

	// cancel the previous set webhook
	if bot.opts.webhookURL == "" && webhookInfo.IsSet() {
		_, err := bot.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true})
		if err != nil {
			return nil, err
		}
	}

	return bot, nil
}

// OnCommand registers a standalone command with the dispatcher.
func (b *Bot) OnCommand(cmd Command) {
	b.dispatcher.OnCommand(cmd)
}

// OnCommandGroup registers a named group of commands with the dispatcher.
func (b *Bot) OnCommandGroup(slug string, name func(*Context) string, commands []Command) {
	b.dispatcher.OnCommandGroup(slug, name, commands)
}

func (b *Bot) OnStartCommand(h Handler) {
	b.dispatcher.OnStartCommand(h)
}

func (b *Bot) OnCallbackQuery(route string, h Handler) {
	b.dispatcher.OnCallbackQuery(route, h)
}

func (b *Bot) OnChannelPost(h Handler) {
	b.dispatcher.OnChannelPost(h)
}

func (b *Bot) OnMyChatMember(h Handler) {
	b.dispatcher.OnMyChatMember(h)
}

func (b *Bot) OnLeftChatMember(h Handler) {
	b.dispatcher.OnLeftChatMember(h)
}

func (b *Bot) OnNewChatMember(h Handler) {
	b.dispatcher.OnNewChatMember(h)
}

func (b *Bot) OnChatMigrationFrom(h Handler) {
	b.dispatcher.OnChatMigrationFrom(h)
}

func (b *Bot) Use(middleware MiddlewareFunc) {
	b.dispatcher.Use(middleware)
}

func (b *Bot) Stop(ctx context.Context) error {
	if b.alreadyStopped {
		return nil
	}

	b.alreadyStopped = true
	close(b.stopChan)

	b.teardownPlugins(ctx)

	if b.opts.webhookURL != "" {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := b.webhookServer.Shutdown(closeCtx); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to shutdown webhook server: %w", err)
		}

		close(b.webhookUpdateChan)
	} else {
		b.StopReceivingUpdates()
	}

	_ = b.puller.StopPull(ctx)

	return nil
}

func (b *Bot) startPullUpdates() {
	b.puller.StartPull(context.Background())
}

func (b *Bot) Start(ctx context.Context) error {
	return fo.Invoke0(ctx, func() error {
		if b.opts.webhookURL != "" && b.webhookServer != nil {
			l, err := net.Listen("tcp", b.webhookServer.Addr)
			if err != nil {
				return err
			}

			go func() {
				err := b.webhookServer.Serve(l)
				if err != nil && err != http.ErrServerClosed {
					b.logger.Fatal("", zap.Error(err))
				}
			}()

			b.logger.Info("Telegram Bot webhook server is listening", zap.String("addr", b.webhookServer.Addr))
		}

		b.startPullUpdates()
		b.syncCommandList()
		b.startPresenceRotation()
		b.started.Store(true)

		return nil
	})
}

// Bootstrap starts the bot and blocks until the context is cancelled or the
// process receives SIGINT/SIGTERM, then shuts down gracefully.
func (b *Bot) Bootstrap(ctx context.Context) error {
	err := b.Start(ctx)
	if err != nil {
		return err
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalChan)

	select {
	case <-ctx.Done():
	case sig := <-signalChan:
		b.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	return b.Stop(stopCtx)
}

// syncCommandList publishes the registered commands as the bot's command
// menu so clients can autocomplete them.
func (b *Bot) syncCommandList() {
	c := NewContext(b.BotAPI, b.Bot(), tgbotapi.Update{}, b.logger, b.i18n)

	commands := b.dispatcher.registeredBotCommands(c)
	if len(commands) == 0 {
		return
	}

	b.Bot().MayRequest(tgbotapi.NewSetMyCommands(commands...))
	b.logger.Debug("synced command list", zap.Int("commands", len(commands)))
}

func (b *Bot) Bot() *BotAPI {
	return &BotAPI{
		BotAPI:   b.BotAPI,
		logger:   b.logger,
		queue:    b.opts.queue,
		ttlcache: b.opts.ttlcache,
	}
}

type BotAPI struct {
	*tgbotapi.BotAPI

	logger   *logger.Logger
	queue    queue.Queue
	ttlcache ttlcache.TTLCache
}

func (b *BotAPI) MaySend(chattable tgbotapi.Chattable) *tgbotapi.Message {
	may := fo.NewMay[tgbotapi.Message]().Use(func(err error, messageArgs ...any) {
		b.logger.Error("failed to send message to telegram", zap.String("message", xo.SprintJSON(chattable)), zap.Error(err))
	})

	return lo.ToPtr(may.Invoke(b.Send(chattable)))
}

func (b *BotAPI) MayRequest(chattable tgbotapi.Chattable) *tgbotapi.APIResponse {
	may := fo.NewMay[*tgbotapi.APIResponse]().Use(func(err error, messageArgs ...any) {
		b.logger.Error("failed to send request to telegram", zap.String("request", xo.SprintJSON(chattable)), zap.Error(err))
	})

	return may.Invoke(b.Request(chattable))
}

func (b *BotAPI) MayMakeRequest(endpoint string, params tgbotapi.Params) *tgbotapi.APIResponse {
	may := fo.NewMay[*tgbotapi.APIResponse]().Use(func(err error, messageArgs ...any) {
		b.logger.Error("failed to send request to telegram endpoint: "+endpoint, zap.String("request", xo.SprintJSON(params)), zap.Error(err))
	})

	return may.Invoke(b.MakeRequest(endpoint, params))
}

func (b *BotAPI) IsBotAdministrator(chatID int64) (bool, error) {
	botMember, err := b.GetChatMember(tgbotapi.GetChatMemberConfig{ChatConfigWithUser: tgbotapi.ChatConfigWithUser{ChatID: chatID, UserID: b.Self.ID}})
	if err != nil {
		return false, err
	}
	if botMember.Status == string(MemberStatusAdministrator) {
		return true, err
	}

	return false, err
}

func (b *BotAPI) IsUserMemberStatus(chatID int64, userID int64, status []MemberStatus) (bool, error) {
	member, err := b.GetChatMember(tgbotapi.GetChatMemberConfig{ChatConfigWithUser: tgbotapi.ChatConfigWithUser{ChatID: chatID, UserID: userID}})
	if err != nil {
		return false, err
	}
	if lo.Contains(status, MemberStatus(member.Status)) {
		return true, nil
	}

	return false, nil
}

func (b *BotAPI) IsGroupAnonymousBot(user *tgbotapi.User) bool {
	if user == nil {
		return false
	}

	return user.ID == 1087968824 && user.IsBot && user.UserName == "GroupAnonymousBot" && user.FirstName == "Group"
}

func (b *BotAPI) PushOneDeleteLaterMessage(forUserID int64, chatID int64, messageID int) error {
	if forUserID == 0 || chatID == 0 || messageID == 0 {
		return nil
	}

	err := b.queue.Push(context.Background(), redis.SessionDeleteLaterMessagesForActor1.Format(forUserID), fmt.Sprintf("%d;%d", chatID, messageID))
	if err != nil {
		b.logger.Error("failed to push one delete later message for user",
			zap.Error(err),
			zap.Int64("from_id", forUserID),
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
		)

		return err
	}

	b.logger.Debug("pushed one delete later message for user",
		zap.Int64("from_id", forUserID),
		zap.Int64("chat_id", chatID),
		zap.Int("message_id", messageID),
	)

	return nil
}

func (b *BotAPI) DeleteAllDeleteLaterMessages(forUserID int64) error {
	if forUserID == 0 {
		return nil
	}

	elems, err := b.queue.PopAll(context.Background(), redis.SessionDeleteLaterMessagesForActor1.Format(forUserID))
	if err != nil {
		return err
	}

	for _, v := range elems {
		pairs := strings.Split(v, ";")
		if len(pairs) != 2 {
			continue
		}

		chatID, err := strconv.ParseInt(pairs[0], 10, 64)
		if err != nil {
			continue
		}

		messageID, err := strconv.Atoi(pairs[1])
		if err != nil {
			continue
		}
		if chatID == 0 || messageID == 0 {
			continue
		}

		b.MayRequest(tgbotapi.NewDeleteMessage(chatID, messageID))
		b.logger.Debug("deleted one delete later message for user",
			zap.Int64("from_id", forUserID),
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
		)
	}

	return nil
}

func (b *BotAPI) AssignOneNopCallbackQueryData() (string, error) {
	return b.AssignOneCallbackQueryData("nop", "")
}

func (b *BotAPI) AssignOneCallbackQueryData(route string, data any) (string, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	routeHash := fmt.Sprintf("%x", sha256.Sum256([]byte(route)))[0:16]
	actionHash := fmt.Sprintf("%x", sha256.Sum256(jsonData))[0:16]

	err = b.ttlcache.Set(context.Background(), redis.CallbackQueryData2.Format(route, actionHash), string(jsonData), 24*time.Hour)
	if err != nil {
		return fmt.Sprintf("%s;%s", routeHash, actionHash), err
	}

	b.logger.Debug("assigned callback query for route",
		zap.String("route", route),
		zap.String("routeHash", routeHash),
		zap.String("actionHash", actionHash),
		zap.String("data", string(jsonData)),
	)

	return fmt.Sprintf("%s;%s", routeHash, actionHash), nil
}

func (b *BotAPI) routeHashAndActionHashFromData(callbackQueryData string) (string, string) {
	handlerIdentifierPairs := strings.Split(callbackQueryData, ";")
	if len(handlerIdentifierPairs) != 2 {
		return "", ""
	}

	return handlerIdentifierPairs[0], handlerIdentifierPairs[1]
}

func (b *BotAPI) fetchCallbackQueryActionData(route string, dataHash string) (string, error) {
	str, err := b.ttlcache.Get(context.Background(), redis.CallbackQueryData2.Format(route, dataHash))
	if err != nil {
		return "", err
	}

	return str.OrEmpty(), nil
}
