package velux_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/Vilsol/veluxcore/pkg/config"
	"github.com/Vilsol/veluxcore/pkg/velux"
	"github.com/knadh/koanf/v2"
)

// journal records lifecycle calls across modules in call order.
type journal struct {
	calls []string
}

func (j *journal) add(call string) {
	j.calls = append(j.calls, call)
}

type fakeModule struct {
	name      string
	journal   *journal
	loadErr   error
	unloadErr error
	panicLoad bool
	panicStop bool
	loaded    *config.Document
}

func (m *fakeModule) Name() string {
	return m.name
}

func (m *fakeModule) Load(_ context.Context, cfg *config.Document) error {
	m.journal.add("load:" + m.name)
	if m.panicLoad {
		panic("load exploded")
	}
	if m.loadErr != nil {
		return m.loadErr
	}
	m.loaded = cfg
	return nil
}

func (m *fakeModule) Unload(_ context.Context) error {
	m.journal.add("unload:" + m.name)
	if m.panicStop {
		panic("unload exploded")
	}
	return m.unloadErr
}

func entry(m *fakeModule) velux.Entry {
	return velux.Entry{
		Name: m.name,
		New:  func() velux.Module { return m },
	}
}

// mapProvider implements koanf.Provider to load from a map.
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) { return nil, errors.New("not supported") }
func (m mapProvider) Read() (map[string]any, error) {
	return map[string]any(m), nil
}

// fakeLoader serves module documents from memory; names in failing return an error.
type fakeLoader struct {
	docs    map[string]map[string]any
	failing map[string]error
}

func (l *fakeLoader) LoadModuleConfig(name string) (*config.Document, error) {
	if err, ok := l.failing[name]; ok {
		return nil, err
	}

	k := koanf.New(".")
	if data, ok := l.docs[name]; ok {
		if err := k.Load(mapProvider(data), nil); err != nil {
			return nil, err
		}
	}
	return config.NewDocument(k, nil), nil
}

type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *recordingHandler) Handle(_ context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
	return nil
}

func (h *recordingHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *recordingHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *recordingHandler) messages(level slog.Level) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []string
	for _, r := range h.records {
		if r.Level == level {
			out = append(out, r.Message)
		}
	}
	return out
}

func (h *recordingHandler) count(level slog.Level, message string) int {
	n := 0
	for _, m := range h.messages(level) {
		if m == message {
			n++
		}
	}
	return n
}

func newLogger(t *testing.T) (*slog.Logger, *recordingHandler) {
	t.Helper()

	handler := &recordingHandler{}
	return slog.New(handler), handler
}
