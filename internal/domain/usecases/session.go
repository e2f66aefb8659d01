// session.go owns the single active session and serializes interactions.
package usecases

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/sanhariharan/Chat-With-Csv/internal/domain/entities"
)

// ErrNoIndex means a chat turn arrived before any file was uploaded.
var ErrNoIndex = errors.New("no file uploaded yet")

// SessionManager holds the one live session and runs uploads and chat turns
// against it. One interaction at a time: the mutex matches the synchronous
// one-user model, so a slow generation blocks the next request rather than
// racing it.
type SessionManager struct {
	mu      sync.Mutex
	session *entities.Session
	ingest  *IngestUseCase
	chat    *ChatUseCase
}

// NewSessionManager creates a manager with an empty session.
func NewSessionManager(ingest *IngestUseCase, chat *ChatUseCase) *SessionManager {
	return &SessionManager{
		session: entities.NewSession(),
		ingest:  ingest,
		chat:    chat,
	}
}

// Upload ingests a new file and rebinds the session to the fresh index.
// History and transcript are wiped before any further input is accepted.
// On failure the prior session state is left untouched, so a bad file can
// simply be retried.
func (m *SessionManager) Upload(ctx context.Context, name string, r io.Reader) (*entities.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count, err := m.ingest.Ingest(ctx, name, r)
	if err != nil {
		return nil, err
	}

	m.session.Reset(name, count)
	return m.snapshotLocked(), nil
}

// Restore rebinds the session to a persisted index snapshot from an earlier
// run. No-op when no snapshot exists.
func (m *SessionManager) Restore(ctx context.Context) (*entities.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count, err := m.ingest.Restore(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		m.session.Reset("(restored snapshot)", count)
	}
	return m.snapshotLocked(), nil
}

// Ask runs one chat turn. Empty or whitespace-only queries are a no-op:
// no turn is recorded and the session is unchanged. A failed turn leaves
// history and index valid for a retry.
func (m *SessionManager) Ask(ctx context.Context, query string) (string, *entities.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	query = strings.TrimSpace(query)
	if query == "" {
		return "", m.snapshotLocked(), nil
	}
	if m.session.State == entities.StateEmpty {
		return "", nil, &entities.OrchestratorError{Query: query, Err: ErrNoIndex}
	}

	answer, err := m.chat.Answer(ctx, query, m.session.History)
	if err != nil {
		return "", nil, err
	}

	m.session.AppendTurn(query, answer)
	return answer, m.snapshotLocked(), nil
}

// Session returns a copy of the current session for rendering.
func (m *SessionManager) Session() *entities.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// snapshotLocked copies the session so callers cannot mutate manager state.
// Caller must hold mu.
func (m *SessionManager) snapshotLocked() *entities.Session {
	s := *m.session
	s.History = append([]entities.Turn(nil), m.session.History...)
	s.Transcript = entities.Transcript{
		Past:      append([]string(nil), m.session.Transcript.Past...),
		Generated: append([]string(nil), m.session.Transcript.Generated...),
	}
	return &s
}
