package maru

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marubot/maru/pkg/storage/queue"
	"github.com/marubot/maru/pkg/storage/ttlcache"
)

func newTestBot(t *testing.T) *Bot {
	t.Helper()

	logger := newTestLogger(t)

	return &Bot{
		opts: &botOptions{
			queue:            queue.NewInMemoryQueue(),
			ttlcache:         ttlcache.NewInMemoryTTLCache(),
			pluginRetryDelay: 50 * time.Millisecond,
		},
		logger:           logger,
		dispatcher:       NewDispatcher(logger),
		i18n:             newTestI18n(t),
		stopChan:         make(chan struct{}),
		installedPlugins: make(map[string]Plugin),
		installOrder:     make([]string, 0),
	}
}

type stubPlugin struct {
	mu sync.Mutex

	name          string
	failuresLeft  int
	panics        bool
	registerCalls int
}

func (p *stubPlugin) Name() string {
	return p.name
}

func (p *stubPlugin) Register(_ *Bot) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.registerCalls++

	if p.panics {
		panic("register blew up")
	}
	if p.failuresLeft > 0 {
		p.failuresLeft--
		return errors.New("register failed")
	}

	return nil
}

func (p *stubPlugin) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.registerCalls
}

type closablePlugin struct {
	stubPlugin

	closedOrder *[]string
}

func (p *closablePlugin) Close(_ context.Context) error {
	*p.closedOrder = append(*p.closedOrder, p.name)
	return nil
}

func TestInstallPlugins(t *testing.T) {
	b := newTestBot(t)

	b.InstallPlugins(t.Context(),
		&stubPlugin{name: "ping"},
		&stubPlugin{name: "quotes"},
	)

	assert.Equal(t, []string{"ping", "quotes"}, b.InstalledPlugins())
}

func TestInstallPluginsSkipsAlreadyInstalled(t *testing.T) {
	b := newTestBot(t)
	plugin := &stubPlugin{name: "ping"}

	b.InstallPlugins(t.Context(), plugin)
	b.InstallPlugins(t.Context(), plugin)

	assert.Equal(t, 1, plugin.calls())
	assert.Equal(t, []string{"ping"}, b.InstalledPlugins())
}

func TestInstallPluginsIsolatesFailures(t *testing.T) {
	b := newTestBot(t)

	failing := &stubPlugin{name: "broken", failuresLeft: 10}
	panicking := &stubPlugin{name: "bomb", panics: true}
	good := &stubPlugin{name: "ping"}

	b.InstallPlugins(t.Context(), failing, panicking, good)

	// the healthy plugin is installed right away, the broken ones are not
	assert.Equal(t, []string{"ping"}, b.InstalledPlugins())

	// each failed plugin gets exactly one retry, then stays uninstalled
	assert.Eventually(t, func() bool {
		return failing.calls() == 2 && panicking.calls() == 2
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"ping"}, b.InstalledPlugins())
}

func TestInstallPluginsRetryRecovers(t *testing.T) {
	b := newTestBot(t)

	flaky := &stubPlugin{name: "quotes", failuresLeft: 1}

	b.InstallPlugins(t.Context(), flaky)
	require.Empty(t, b.InstalledPlugins())

	assert.Eventually(t, func() bool {
		return b.isPluginInstalled("quotes")
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, 2, flaky.calls())
}

func TestTeardownPluginsReverseOrder(t *testing.T) {
	b := newTestBot(t)

	closedOrder := make([]string, 0)

	b.InstallPlugins(t.Context(),
		&closablePlugin{stubPlugin: stubPlugin{name: "first"}, closedOrder: &closedOrder},
		&closablePlugin{stubPlugin: stubPlugin{name: "second"}, closedOrder: &closedOrder},
	)
	require.Equal(t, []string{"first", "second"}, b.InstalledPlugins())

	b.teardownPlugins(t.Context())

	assert.Equal(t, []string{"second", "first"}, closedOrder)
	assert.Empty(t, b.InstalledPlugins())
}
