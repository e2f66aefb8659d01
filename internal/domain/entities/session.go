package entities

import "github.com/google/uuid"

// SessionState tracks where a session is in its lifecycle.
type SessionState int

const (
	// StateEmpty means no file has been uploaded yet.
	StateEmpty SessionState = iota
	// StateIndexed means an index is built and history is empty.
	StateIndexed
	// StateConversing means at least one turn has completed.
	StateConversing
)

// String returns the lowercase state name used in API responses.
func (s SessionState) String() string {
	switch s {
	case StateIndexed:
		return "indexed"
	case StateConversing:
		return "conversing"
	default:
		return "empty"
	}
}

// Session is one user's isolated conversational state: history, transcript
// and the name of the file the active index was built from. It replaces the
// ambient per-browser-session globals of a typical notebook demo with an
// explicit entity that is passed around and reset as a whole.
type Session struct {
	ID         string
	State      SessionState
	SourceName string
	DocCount   int
	History    []Turn
	Transcript Transcript
}

// NewSession returns an empty session awaiting its first upload.
func NewSession() *Session {
	return &Session{ID: uuid.NewString(), State: StateEmpty}
}

// Reset wipes history and transcript and rebinds the session to a newly
// indexed source. Called on every upload, regardless of prior state.
func (s *Session) Reset(sourceName string, docCount int) {
	s.ID = uuid.NewString()
	s.State = StateIndexed
	s.SourceName = sourceName
	s.DocCount = docCount
	s.History = nil
	s.Transcript = Transcript{}
}

// AppendTurn records a completed exchange in both history and transcript.
// History stays append-only; the two transcript slices grow together.
func (s *Session) AppendTurn(query, answer string) {
	s.History = append(s.History, Turn{Query: query, Answer: answer})
	s.Transcript.Past = append(s.Transcript.Past, query)
	s.Transcript.Generated = append(s.Transcript.Generated, answer)
	s.State = StateConversing
}
