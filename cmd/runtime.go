package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/menubar/internal/accelerator"
	"github.com/zjrosen/menubar/internal/app"
	"github.com/zjrosen/menubar/internal/cachemanager"
	"github.com/zjrosen/menubar/internal/config"
	"github.com/zjrosen/menubar/internal/flags"
	"github.com/zjrosen/menubar/internal/log"
	"github.com/zjrosen/menubar/internal/menu"
	"github.com/zjrosen/menubar/internal/roles"
	"github.com/zjrosen/menubar/internal/tracing"
)

// runtime is the compiled menu and everything needed to drive it.
type runtime struct {
	session    *app.Session
	registry   *roles.Registry
	cache      *cachemanager.InMemoryCacheManager[string, string]
	renderer   *accelerator.CachedRenderer
	compiler   *menu.Compiler
	dispatcher *menu.Dispatcher
	tracer     *tracing.Provider
	root       *menu.Menu
}

func newRuntime(c config.Config) (*runtime, error) {
	p, err := c.PlatformValue()
	if err != nil {
		return nil, fmt.Errorf("platform: %w", err)
	}

	tcfg := c.Tracing.ProviderConfig()
	if tcfg.Enabled && tcfg.Exporter == "file" && tcfg.FilePath == "" {
		tcfg.FilePath = config.DefaultTracesFilePath()
		if err := os.MkdirAll(filepath.Dir(tcfg.FilePath), 0o750); err != nil {
			return nil, fmt.Errorf("creating traces directory: %w", err)
		}
	}
	provider, err := tracing.NewProvider(tcfg)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	ff := flags.New(c.Flags)
	session := app.NewSession(p, c.AppName)
	reg := roles.New(session)
	cache := cachemanager.NewInMemoryCacheManager[string, string]("accelerator-text", cachemanager.NoExpiration, 0)

	renderer := accelerator.NewCachedRenderer(cache, !ff.Enabled(flags.FlagAcceleratorCache))

	rt := &runtime{
		session:  session,
		registry: reg,
		cache:    cache,
		renderer: renderer,
		tracer:   provider,
		compiler: menu.NewCompiler(reg,
			menu.WithRenderer(renderer),
			menu.WithStrictRadio(ff.Enabled(flags.FlagStrictRadio)),
			menu.WithTracer(provider.Tracer()),
		),
		dispatcher: menu.NewDispatcher(reg, session, menu.WithDispatchTracer(provider.Tracer())),
	}

	tmpl, err := app.LoadTemplate(c.Template)
	if err != nil {
		rt.shutdown()
		return nil, fmt.Errorf("loading template: %w", err)
	}
	rt.root, err = rt.compiler.Compile(tmpl)
	if err != nil {
		rt.shutdown()
		return nil, fmt.Errorf("compiling template: %w", err)
	}
	log.Info(log.CatMenu, "template compiled",
		"template", c.Template, "platform", p, "flags", ff.EnabledNames())
	return rt, nil
}

func (rt *runtime) shutdown() {
	stats := rt.renderer.Stats()
	log.Debug(log.CatCache, "accelerator cache", "hits", stats.Hits, "misses", stats.Misses)

	ctx, cancel := shutdownContext()
	defer cancel()
	if err := rt.tracer.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatTrace, "tracer shutdown failed", err)
	}
}
