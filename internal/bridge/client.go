package bridge

import (
	"sync"

	"go.uber.org/zap"
)

// Resolver finds an exported function of a loaded module.
type Resolver interface {
	Resolve(module, name string) (uintptr, bool)
}

// Invoker calls a resolved export.
type Invoker func(fn uintptr, args ...uintptr) uintptr

// Client is the sending side used by the sound hook. Exports are resolved
// lazily and retried until found, so the overlay module may load after the
// sound hook. A missing export makes the call a silent no-op.
type Client struct {
	Module   string
	resolver Resolver
	invoke   Invoker
	log      *zap.SugaredLogger

	mu    sync.Mutex
	procs map[string]uintptr
}

func NewClient(module string, resolver Resolver, invoke Invoker, log *zap.SugaredLogger) *Client {
	return &Client{
		Module:   module,
		resolver: resolver,
		invoke:   invoke,
		log:      log,
		procs:    make(map[string]uintptr),
	}
}

func (c *Client) proc(name string) (uintptr, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fn, ok := c.procs[name]; ok {
		return fn, true
	}
	fn, ok := c.resolver.Resolve(c.Module, name)
	if !ok || fn == 0 {
		return 0, false
	}
	c.procs[name] = fn
	c.log.Debugw("bridge export resolved", "module", c.Module, "export", name)
	return fn, true
}

func (c *Client) call(name string, args ...uintptr) bool {
	fn, ok := c.proc(name)
	if !ok {
		return false
	}
	c.invoke(fn, args...)
	return true
}

// Connected reports whether the whole bridge contract resolves.
func (c *Client) Connected() bool {
	for _, name := range Exports {
		if _, ok := c.proc(name); !ok {
			return false
		}
	}
	return true
}

func (c *Client) NotifyTrackStart(id uint32) bool {
	return c.call(ExportTrackStart, uintptr(id))
}

func (c *Client) NotifyTrackStop(id uint32) bool {
	return c.call(ExportTrackStop, uintptr(id))
}

func (c *Client) ResetSession() bool {
	return c.call(ExportResetSession)
}
