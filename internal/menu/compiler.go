package menu

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/menubar/internal/accelerator"
	"github.com/zjrosen/menubar/internal/log"
	"github.com/zjrosen/menubar/internal/platform"
	"github.com/zjrosen/menubar/internal/roles"
	"github.com/zjrosen/menubar/internal/tracing"
)

var (
	lastCommandID atomic.Int64
	lastGroupID   atomic.Int64
)

func nextCommandID() int { return int(lastCommandID.Add(1)) }
func nextGroupID() int   { return int(lastGroupID.Add(1)) }

// Renderer turns an accelerator string into display text for a platform.
type Renderer interface {
	Render(accel string, p platform.Platform) string
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(accel string, p platform.Platform) string

func (f RendererFunc) Render(accel string, p platform.Platform) string { return f(accel, p) }

// Compiler turns templates into menus. Menus keep a reference to the
// compiler that built them so later appends resolve roles the same way.
type Compiler struct {
	reg         *roles.Registry
	renderer    Renderer
	tracer      trace.Tracer
	strictRadio bool
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithRenderer replaces the accelerator renderer used by AcceleratorTextAt.
func WithRenderer(r Renderer) Option {
	return func(c *Compiler) { c.renderer = r }
}

// WithTracer records a span per Compile call.
func WithTracer(t trace.Tracer) Option {
	return func(c *Compiler) { c.tracer = t }
}

// WithStrictRadio makes WillShow fail on radio groups with several checked
// items instead of repairing them.
func WithStrictRadio(strict bool) Option {
	return func(c *Compiler) { c.strictRadio = strict }
}

// NewCompiler returns a compiler resolving roles through reg.
func NewCompiler(reg *roles.Registry, opts ...Option) *Compiler {
	c := &Compiler{
		reg:      reg,
		renderer: RendererFunc(accelerator.RenderString),
		tracer:   noop.NewTracerProvider().Tracer("menubar"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the role registry the compiler resolves against.
func (c *Compiler) Registry() *roles.Registry { return c.reg }

// Compile builds a menu from t. Any invalid descriptor aborts the whole
// compile and no menu is returned.
func (c *Compiler) Compile(t Template) (*Menu, error) {
	_, span := c.tracer.Start(context.Background(), tracing.SpanMenuCompile)
	defer span.End()

	m, err := c.compileLevel(t, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatMenu, "compile failed", err)
		return nil, err
	}

	count := 0
	m.Walk(func(*Item, int) { count++ })
	span.SetAttributes(
		attribute.String(tracing.AttrMenuID, m.id),
		attribute.Int(tracing.AttrMenuItems, count),
		attribute.String(tracing.AttrPlatform, string(c.reg.Platform())),
	)
	log.Debug(log.CatMenu, "template compiled", "menu", m.id, "items", count)
	return m, nil
}

func (c *Compiler) compileLevel(t Template, owner *Item) (*Menu, error) {
	m := newMenu(c, owner)
	groups := radioGroupIDs(t)
	m.items = make([]*Item, 0, len(t))
	for i, d := range t {
		it, err := c.compileItem(d, groups[i], m)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		m.items = append(m.items, it)
	}
	return m, nil
}

// radioGroupIDs assigns one fresh group id to every maximal run of
// consecutive radio descriptors. Non-radio positions get 0.
func radioGroupIDs(t Template) []int {
	ids := make([]int, len(t))
	inRun := false
	group := 0
	for i := range t {
		if ItemType(t[i].Type) != TypeRadio {
			inRun = false
			continue
		}
		if !inRun {
			group = nextGroupID()
			inRun = true
		}
		ids[i] = group
	}
	return ids
}

func (c *Compiler) compileItem(d Descriptor, groupID int, parent *Menu) (*Item, error) {
	var typ ItemType
	if d.Type != "" {
		var err error
		if typ, err = ParseType(d.Type); err != nil {
			return nil, err
		}
	}

	it := &Item{
		parent:      parent,
		id:          d.ID,
		label:       d.Label,
		hasLabel:    d.Label != "",
		sublabel:    d.Sublabel,
		toolTip:     d.ToolTip,
		accelerator: d.Accelerator,
		checked:     d.Checked,
		enabled:     d.Enabled == nil || *d.Enabled,
		visible:     d.Visible == nil || *d.Visible,
		click:       d.Click,
	}

	sub := d.Submenu
	if d.Role != "" {
		it.role = roles.Normalize(d.Role)
		info, ok := c.reg.Lookup(d.Role)
		if !ok {
			log.Debug(log.CatMenu, "unknown role", "role", d.Role)
		}
		if sub == nil && info.Submenu != nil {
			sub = fromEntries(info.Submenu)
		}
	}

	if typ == "" {
		typ = TypeNormal
		if sub != nil {
			typ = TypeSubmenu
		}
	}
	if typ == TypeSubmenu && len(sub) == 0 {
		return nil, ErrInvalidSubmenu
	}
	it.typ = typ
	it.commandID = nextCommandID()

	if typ == TypeRadio {
		it.groupID = groupID
	}

	if typ == TypeSubmenu {
		child, err := c.compileLevel(sub, it)
		if err != nil {
			return nil, err
		}
		it.submenu = child
	} else if len(d.Submenu) > 0 {
		log.Debug(log.CatMenu, "submenu ignored on non-submenu item", "type", typ, "label", d.Label)
	}

	for k, v := range d.Extra {
		if reservedProps[k] {
			log.Debug(log.CatMenu, "reserved property dropped", "property", k)
			continue
		}
		if it.props == nil {
			it.props = make(map[string]any, len(d.Extra))
		}
		it.props[k] = v
	}
	return it, nil
}
