package telegram

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/m3rciful/sneakerbot/core/logger"
	"github.com/m3rciful/sneakerbot/core/telegram/commands"
	"github.com/m3rciful/sneakerbot/core/telegram/ui"

	tele "gopkg.in/telebot.v4"
)

// Callback is a button handler bound to a decoded callback key.
type Callback struct {
	Handler tele.HandlerFunc
	// AdminOnly routes the press through the capability gate first.
	AdminOnly bool
}

// Registry is the table of everything the bot answers to: slash commands,
// callback keys, and the two fallbacks for updates neither of them claims.
// It is filled during wiring and read while serving.
type Registry struct {
	mu        sync.RWMutex
	commands  map[string]commands.Command
	callbacks map[string]Callback

	unknownCallback tele.HandlerFunc
	unknownText     tele.HandlerFunc
}

// NewRegistry returns an empty registry. Until replaced, unknown callbacks get
// a short notice and unknown text is ignored.
func NewRegistry() *Registry {
	return &Registry{
		commands:  make(map[string]commands.Command),
		callbacks: make(map[string]Callback),
		unknownCallback: func(c tele.Context) error {
			return c.Respond(&tele.CallbackResponse{Text: "Unsupported action"})
		},
	}
}

func wireSkip(attrs ...slog.Attr) {
	logger.LogEvent(logger.Background(), logger.TWire, slog.LevelWarn, "register.skip", attrs...)
}

// RegisterCommand adds cmd under name, which must carry the leading slash.
func (r *Registry) RegisterCommand(name string, cmd commands.Command) error {
	if err := cmd.Validate(name); err != nil {
		wireSkip(slog.String("name", name), slog.String("reason", err.Error()))
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.commands[name]; dup {
		return fmt.Errorf("command already registered: %s", name)
	}
	r.commands[name] = cmd
	return nil
}

// CommandNames lists registered command names in order.
func (r *Registry) CommandNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Command returns the command registered under name.
func (r *Registry) Command(name string) (commands.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// ListCommands returns Telegram menu entries in name order. With visibleOnly,
// hidden and admin-only commands are left out.
func (r *Registry) ListCommands(visibleOnly bool) []tele.Command {
	var menu []tele.Command
	for _, name := range r.CommandNames() {
		cmd, _ := r.Command(name)
		if !visibleOnly || cmd.Visible() {
			menu = append(menu, cmd.MenuEntry(name))
		}
	}
	return menu
}

// LookupCommand resolves a name or alias, with or without the slash, to the
// registered name and its command.
func (r *Registry) LookupCommand(name string) (string, commands.Command, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", commands.Command{}, false
	}
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	if cmd, ok := r.Command(name); ok {
		return name, cmd, true
	}
	for _, key := range r.CommandNames() {
		if cmd, _ := r.Command(key); cmd.Matches(name) {
			return key, cmd, true
		}
	}
	return "", commands.Command{}, false
}

// RegisterCallback binds key to cb.
func (r *Registry) RegisterCallback(key string, cb Callback) error {
	if key == "" || cb.Handler == nil {
		wireSkip(slog.String("key", key), slog.Bool("handler_nil", cb.Handler == nil))
		return fmt.Errorf("invalid callback registration: %q", key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.callbacks[key]; dup {
		return fmt.Errorf("callback already registered: %s", key)
	}
	r.callbacks[key] = cb
	return nil
}

// GetCallback returns the callback bound to key.
func (r *Registry) GetCallback(key string) (Callback, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cb, ok := r.callbacks[key]
	return cb, ok
}

// ListCallbacks returns the bound keys in order.
func (r *Registry) ListCallbacks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.callbacks))
	for k := range r.callbacks {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// UseFallbacks installs both handlers of p. A nil handler keeps the current one.
func (r *Registry) UseFallbacks(p ui.FallbackProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h := p.UnknownCallback(); h != nil {
		r.unknownCallback = h
	}
	if h := p.UnknownText(); h != nil {
		r.unknownText = h
	}
}

// SetTextFallback replaces the handler for text nothing else claimed.
func (r *Registry) SetTextFallback(h tele.HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unknownText = h
}

// CallbackNotFound returns the handler for undecodable or unbound callbacks.
func (r *Registry) CallbackNotFound() tele.HandlerFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.unknownCallback
}

// TextFallback returns the handler for text nothing else claimed.
func (r *Registry) TextFallback() tele.HandlerFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.unknownText
}

// SetupCommands publishes the visible commands as the bot's command menu.
// A failure is logged; the bot still runs without a menu.
func SetupCommands(bot *tele.Bot, reg *Registry) {
	if bot == nil || reg == nil {
		return
	}
	menu := reg.ListCommands(true)
	ctx := logger.Background()
	if err := bot.SetCommands(menu); err != nil {
		logger.LogEvent(ctx, logger.TWire, slog.LevelError, "register.commands",
			slog.String("status", "fail"),
			slog.String("err", RedactError(err)),
		)
		return
	}
	logger.LogEvent(ctx, logger.TWire, slog.LevelInfo, "register.commands",
		slog.String("status", "ok"),
		slog.Int("commands", len(menu)),
	)
}
