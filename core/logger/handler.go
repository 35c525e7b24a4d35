package logger

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

type logFormat string

const (
	formatJSON logFormat = "json"
	formatKV   logFormat = "kv"
)

const tsLayout = "2006-01-02T15:04:05.000Z07:00"

var errNoWriter = errors.New("logger: writer not initialized")

type handlerConfig struct {
	level    slog.Leveler
	writer   *lineWriter
	format   logFormat
	keyOrder []string
}

// field is an attribute already flattened and converted to a printable value.
type field struct {
	key string
	val any
}

// entry collects the fields of one line; later writes win.
type entry map[string]any

func (e entry) setDefault(key string, val any) {
	if _, ok := e[key]; !ok {
		e[key] = val
	}
}

// structuredHandler prints one line per record, either JSON or key=value,
// with keys in a fixed order so lines from different components line up.
type structuredHandler struct {
	cfg    handlerConfig
	prefix string
	bound  []field
}

func newStructuredHandler(cfg handlerConfig) *structuredHandler {
	if cfg.level == nil {
		cfg.level = slog.LevelInfo
	}
	if len(cfg.keyOrder) == 0 {
		cfg.keyOrder = defaultKeyOrder
	}
	return &structuredHandler{cfg: cfg}
}

func (h *structuredHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.cfg.level.Level()
}

func (h *structuredHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg.writer == nil {
		return errNoWriter
	}
	e := make(entry, 16)
	ts := r.Time.UTC()
	e["ts"] = ts.Truncate(time.Millisecond).Format(tsLayout)
	e["level"] = levelName(r.Level)
	for _, f := range h.bound {
		e[f.key] = f.val
	}
	r.Attrs(func(a slog.Attr) bool {
		for _, f := range flatten(nil, h.prefix, a) {
			e[f.key] = f.val
		}
		return true
	})
	MetaFrom(ctx).fill(e)
	h.settle(e, r.Message, ts)

	line, err := h.encode(e)
	if err != nil {
		return err
	}
	return h.cfg.writer.Write(line)
}

func (h *structuredHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.bound = slices.Clip(h.bound)
	for _, a := range attrs {
		clone.bound = flatten(clone.bound, h.prefix, a)
	}
	return &clone
}

func (h *structuredHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = joinKey(h.prefix, name)
	return &clone
}

// settle fills defaults and canonical forms once every source has been merged.
func (h *structuredHandler) settle(e entry, msg string, ts time.Time) {
	if rid, ok := e["rid"].(string); ok {
		if short := CompactRID(rid); short != rid {
			if h.cfg.format == formatJSON {
				e.setDefault("rid_full", rid)
			}
			e["rid"] = short
		}
	}
	if h.cfg.format == formatJSON {
		e.setDefault("ts_unix_nano", ts.UnixNano())
	}
	e.setDefault("event", cmp.Or(msg, "unknown"))
	e.setDefault("component", "app")
	if s, ok := e["status"].(string); ok {
		e["status"] = strings.ToLower(s)
	}
	if o, ok := e["outcome"].(string); ok {
		if o = strings.ToLower(o); outcomes[o] {
			e["outcome"] = o
		} else {
			delete(e, "outcome")
		}
	}
}

func (h *structuredHandler) encode(e entry) ([]byte, error) {
	keys := orderKeys(e, h.cfg.keyOrder)
	buf := make([]byte, 0, 256)
	if h.cfg.format != formatJSON {
		for i, k := range keys {
			if i > 0 {
				buf = append(buf, ' ')
			}
			buf = append(buf, k...)
			buf = append(buf, '=')
			buf = appendPlain(buf, e[k])
		}
		return append(buf, '\n'), nil
	}
	buf = append(buf, '{')
	for i, k := range keys {
		val, err := json.Marshal(e[k])
		if err != nil {
			return nil, fmt.Errorf("logger: encode %s: %w", k, err)
		}
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendQuote(buf, k)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}', '\n'), nil
}

// orderKeys lists the keys of e found in order first, then the rest sorted.
func orderKeys(e entry, order []string) []string {
	keys := make([]string, 0, len(e))
	for _, k := range order {
		if _, ok := e[k]; ok && !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	known := len(keys)
	for k := range e {
		if !slices.Contains(keys[:known], k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys[known:])
	return keys
}

func appendPlain(buf []byte, v any) []byte {
	s := fmt.Sprint(v)
	if strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}

func joinKey(prefix, key string) string {
	switch {
	case prefix == "":
		return key
	case key == "":
		return prefix
	}
	return prefix + "." + key
}

// flatten appends a, with groups expanded into dotted keys, to dst.
func flatten(dst []field, prefix string, a slog.Attr) []field {
	key := joinKey(prefix, a.Key)
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, child := range v.Group() {
			dst = flatten(dst, key, child)
		}
		return dst
	}
	if key == "" {
		return dst
	}
	if k, val, ok := printable(key, v); ok {
		dst = append(dst, field{key: k, val: val})
	}
	return dst
}

// printable converts v to a JSON-friendly value. Durations become whole
// milliseconds under a _ms key. Empty strings and nils are dropped.
func printable(key string, v slog.Value) (string, any, bool) {
	switch v.Kind() {
	case slog.KindDuration:
		return durationKey(key), RoundMS(v.Duration()).Milliseconds(), true
	case slog.KindTime:
		return key, v.Time().UTC().Format(time.RFC3339Nano), true
	case slog.KindUint64:
		if u := v.Uint64(); u <= math.MaxInt64 {
			return key, int64(u), true
		}
	}
	switch x := v.Any().(type) {
	case nil:
		return key, nil, false
	case string:
		s := strings.TrimSpace(x)
		return key, s, s != ""
	case bool, int64, uint64, float64:
		return key, x, true
	case time.Duration:
		return durationKey(key), RoundMS(x).Milliseconds(), true
	case error:
		return key, x.Error(), true
	case fmt.Stringer:
		s := x.String()
		return key, s, s != ""
	default:
		return key, fmt.Sprint(x), true
	}
}

// durationKey maps duration -> duration_ms, startup_duration ->
// startup_duration_ms, took -> took_ms. Keys ending in _ms are kept.
func durationKey(key string) string {
	if strings.HasSuffix(key, "_ms") {
		return key
	}
	return key + "_ms"
}
