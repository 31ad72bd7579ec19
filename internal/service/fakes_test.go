package service

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"promptquest/internal/config"
	"promptquest/internal/llm"
	"promptquest/internal/model"
)

const (
	completionModel = "completion-model"
	hintModel       = "hint-model"
)

const pirate = "You are a pirate who speaks in rhyme"

func testAIConfig() *config.AIConfig {
	return &config.AIConfig{
		Provider:        config.ProviderOpenAI,
		APIKey:          "test",
		Models:          config.AIModels{Completion: completionModel, Hint: hintModel, Embedding: "emb"},
		HintTemperature: 0.4,
	}
}

func pirateLevel(number int) model.Level {
	return model.Level{
		Number:        number,
		Conversation:  model.NewConversation(pirate, "Tell me about the sea", "Arr, the sea be wide, it swallows the tide"),
		Hints:         []string{"Think nautical", "Rhymes matter", "Who says arr?"},
		PassThreshold: 0.8,
	}
}

// fakeCompleter answers completion and hint requests separately by model name
type fakeCompleter struct {
	mu         sync.Mutex
	requests   []llm.ChatRequest
	completion func(req llm.ChatRequest) (string, error)
	hint       func(req llm.ChatRequest) (string, error)
}

func newFakeCompleter() *fakeCompleter {
	return &fakeCompleter{
		completion: func(req llm.ChatRequest) (string, error) { return "Ahoy: " + req.User, nil },
		hint:       func(llm.ChatRequest) (string, error) { return "Think of salty sailors", nil },
	}
}

func (f *fakeCompleter) Complete(_ context.Context, req llm.ChatRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if req.Model == hintModel {
		return f.hint(req)
	}
	return f.completion(req)
}

func (f *fakeCompleter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// fakeEmbedder returns fixed vectors per text
type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
	calls   atomic.Int32
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{vectors: map[string][]float64{
		pirate:                        {1, 0.1, 0},
		"You are a helpful assistant": {0.1, 1, 0},
	}}
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float64{0, 0, 1}, nil
}

// memSessions is an in-memory SessionCache
type memSessions struct {
	mu    sync.Mutex
	data  map[string][]byte
	locks map[string]string
	seq   int
	ttl   time.Duration
}

func newMemSessions() *memSessions {
	return &memSessions{data: map[string][]byte{}, locks: map[string]string{}}
}

func (m *memSessions) Save(_ context.Context, s *model.PlaySession) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[s.ID] = b
	return nil
}

func (m *memSessions) Get(_ context.Context, id string) (*model.PlaySession, error) {
	m.mu.Lock()
	b, ok := m.data[id]
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	var s model.PlaySession
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *memSessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

func (m *memSessions) Lock(_ context.Context, id string, ttl time.Duration) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ttl = ttl
	if _, held := m.locks[id]; held {
		return "", false, nil
	}
	m.seq++
	token := string(rune('a' + m.seq))
	m.locks[id] = token
	return token, true, nil
}

func (m *memSessions) Unlock(_ context.Context, id, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[id] == token {
		delete(m.locks, id)
	}
	return nil
}

type memAttempts struct {
	mu      sync.Mutex
	entries []model.AttemptLog
	err     error
}

func (m *memAttempts) LogAttempt(_ context.Context, a *model.AttemptLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, *a)
	return nil
}

type recordedEvent struct {
	sessionID string
	msgType   string
}

type memBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (b *memBroadcaster) BroadcastToSession(sessionID, msgType string, _ interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{sessionID, msgType})
}

func (b *memBroadcaster) DisconnectSession(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{sessionID, "disconnect"})
}

func (b *memBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	for i, e := range b.events {
		out[i] = e.msgType
	}
	return out
}

type staticSource struct {
	levels []model.Level
	err    error
}

func (s staticSource) List(context.Context) ([]model.Level, error) {
	return s.levels, s.err
}

// stallingCompleter answers hints at once and holds completions until the context ends
type stallingCompleter struct {
	entered chan struct{}
}

func (c *stallingCompleter) Complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	if req.Model == hintModel {
		return "Think of salty sailors", nil
	}
	close(c.entered)
	<-ctx.Done()
	return "", ctx.Err()
}

// rendezvous releases its callers only once n of them have arrived
type rendezvous struct {
	wg   sync.WaitGroup
	done chan struct{}
}

func newRendezvous(n int) *rendezvous {
	r := &rendezvous{done: make(chan struct{})}
	r.wg.Add(n)
	go func() {
		r.wg.Wait()
		close(r.done)
	}()
	return r
}

// arrive reports whether every sibling showed up before timeout
func (r *rendezvous) arrive(timeout time.Duration) bool {
	r.wg.Done()
	select {
	case <-r.done:
		return true
	case <-time.After(timeout):
		return false
	}
}
