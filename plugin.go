package maru

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"
)

// Plugin is a self-contained feature module (a "cog"): it registers its
// commands and event handlers against the bot when installed.
//
// Plugins may additionally implement Close(context.Context) error; the bot
// calls it during shutdown in reverse install order.
type Plugin interface {
	Name() string
	Register(bot *Bot) error
}

type pluginCloser interface {
	Close(ctx context.Context) error
}

type pluginFailure struct {
	plugin Plugin
	err    error
}

// InstallPlugins registers the given plugins. A plugin that fails (or panics)
// during registration does not take the bot down: the failure is logged, the
// remaining plugins are still installed, and the failed ones get exactly one
// retry pass after the configured delay.
func (b *Bot) InstallPlugins(ctx context.Context, plugins ...Plugin) {
	failed := make([]pluginFailure, 0)

	for _, plugin := range plugins {
		if b.isPluginInstalled(plugin.Name()) {
			b.logger.Warn("plugin already installed, skipping", zap.String("plugin", plugin.Name()))
			continue
		}

		err := b.registerPlugin(plugin)
		if err != nil {
			b.logger.Error("failed to load plugin", zap.String("plugin", plugin.Name()), zap.Error(err))
			failed = append(failed, pluginFailure{plugin: plugin, err: err})

			continue
		}

		b.markPluginInstalled(plugin)
		b.logger.Debug("loaded plugin", zap.String("plugin", plugin.Name()))
	}

	if len(failed) > 0 {
		go b.retryFailedPlugins(ctx, failed)
	}
}

// InstalledPlugins returns the names of successfully installed plugins in
// install order.
func (b *Bot) InstalledPlugins() []string {
	b.pluginsMutex.Lock()
	defer b.pluginsMutex.Unlock()

	return append([]string{}, b.installOrder...)
}

func (b *Bot) registerPlugin(plugin Plugin) error {
	var err error

	recovered := panics.Try(func() {
		err = plugin.Register(b)
	})
	if recovered != nil {
		return fmt.Errorf("plugin %s panicked during register: %w", plugin.Name(), recovered.AsError())
	}

	return err
}

func (b *Bot) retryFailedPlugins(ctx context.Context, failed []pluginFailure) {
	select {
	case <-ctx.Done():
		return
	case <-b.stopChan:
		return
	case <-time.After(b.opts.pluginRetryDelay):
	}

	recoveredAny := false

	for _, failure := range failed {
		if b.isPluginInstalled(failure.plugin.Name()) {
			continue
		}

		err := b.registerPlugin(failure.plugin)
		if err != nil {
			b.logger.Error("retry loading plugin failed",
				zap.String("plugin", failure.plugin.Name()),
				zap.NamedError("first_error", failure.err),
				zap.Error(err),
			)

			continue
		}

		b.markPluginInstalled(failure.plugin)
		recoveredAny = true
		b.logger.Info("successfully loaded plugin on retry", zap.String("plugin", failure.plugin.Name()))
	}

	// late registrations changed the command set
	if recoveredAny && b.started.Load() {
		b.syncCommandList()
	}
}

func (b *Bot) isPluginInstalled(name string) bool {
	b.pluginsMutex.Lock()
	defer b.pluginsMutex.Unlock()

	_, ok := b.installedPlugins[name]

	return ok
}

func (b *Bot) markPluginInstalled(plugin Plugin) {
	b.pluginsMutex.Lock()
	defer b.pluginsMutex.Unlock()

	b.installedPlugins[plugin.Name()] = plugin
	b.installOrder = append(b.installOrder, plugin.Name())
}

func (b *Bot) teardownPlugins(ctx context.Context) {
	b.pluginsMutex.Lock()
	defer b.pluginsMutex.Unlock()

	for i := len(b.installOrder) - 1; i >= 0; i-- {
		plugin := b.installedPlugins[b.installOrder[i]]

		closer, ok := plugin.(pluginCloser)
		if !ok {
			continue
		}

		err := closer.Close(ctx)
		if err != nil {
			b.logger.Error("plugin teardown failed", zap.String("plugin", plugin.Name()), zap.Error(err))
		}
	}

	b.installedPlugins = make(map[string]Plugin)
	b.installOrder = make([]string, 0)
}
