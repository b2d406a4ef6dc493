// Package session holds the per-user state of the dashboard: the budget editor,
// the uploaded actual-spending table and the analysis settings.
package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/budget-dashboard/backend/internal/domain/entity"
	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
	"github.com/budget-dashboard/backend/internal/domain/valueobject"
)

// FileInfo identifies an uploaded file by name and content digest.
type FileInfo struct {
	Name     string
	Digest   string
	Size     int
	LoadedAt time.Time
}

// Session is an isolated workspace. Callers must hold the lock (Lock/Unlock)
// around every read or write of its state.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu         sync.Mutex
	lastAccess atomic.Int64

	editor        *entity.BudgetEditor
	actuals       *entity.SpendingTable
	settings      valueobject.AnalysisSettings
	budgetFile    *FileInfo
	actualsFile   *FileInfo
	budgetVersion int
}

// State is a point-in-time copy of a session's metadata.
type State struct {
	ID            uuid.UUID
	CreatedAt     time.Time
	LastAccess    time.Time
	BudgetFile    *FileInfo
	ActualsFile   *FileInfo
	BudgetVersion int
	EditorState   entity.EditorState
	Periods       []string
	Settings      valueobject.AnalysisSettings
}

func newSession(id uuid.UUID, now time.Time, settings valueobject.AnalysisSettings) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: now,
		settings:  settings,
	}
	s.touch(now)
	return s
}

// Lock acquires exclusive access to the session state.
func (s *Session) Lock() {
	s.mu.Lock()
}

// Unlock releases the session state.
func (s *Session) Unlock() {
	s.mu.Unlock()
}

func (s *Session) touch(now time.Time) {
	s.lastAccess.Store(now.UnixNano())
}

// LastAccess returns when the session was last fetched from the manager.
func (s *Session) LastAccess() time.Time {
	return time.Unix(0, s.lastAccess.Load()).UTC()
}

// Editor returns the budget editor, or an error when no budget was uploaded.
func (s *Session) Editor() (*entity.BudgetEditor, error) {
	if s.editor == nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetNotLoaded,
			"no budget has been uploaded to this session",
			domainerror.ErrBudgetNotLoaded,
		)
	}
	return s.editor, nil
}

// LiveBudget returns the committed budget.
func (s *Session) LiveBudget() (*entity.Budget, error) {
	editor, err := s.Editor()
	if err != nil {
		return nil, err
	}
	return editor.Live(), nil
}

// SetBudget replaces the budget, resets the editor and bumps the budget version.
func (s *Session) SetBudget(budget *entity.Budget, file FileInfo) {
	s.editor = entity.NewBudgetEditor(budget)
	s.budgetFile = &file
	s.budgetVersion++
}

// CommitEdits saves the editor's working copy. The budget version only moves
// when there was something to save. It reports whether the editor was dirty.
func (s *Session) CommitEdits() (bool, error) {
	editor, err := s.Editor()
	if err != nil {
		return false, err
	}
	dirty := editor.IsDirty()
	editor.Save()
	if dirty {
		s.budgetVersion++
	}
	return dirty, nil
}

// Actuals returns the actual-spending table, if any.
func (s *Session) Actuals() (*entity.SpendingTable, bool) {
	return s.actuals, s.actuals != nil
}

// SetActuals replaces the spending table and resets the range to every period.
func (s *Session) SetActuals(table *entity.SpendingTable, file FileInfo) {
	s.actuals = table
	s.actualsFile = &file
	s.settings.Range = valueobject.FullPeriodRange(table.PeriodCount())
}

// Settings returns the analysis settings.
func (s *Session) Settings() valueobject.AnalysisSettings {
	return s.settings
}

// SetSettings replaces the analysis settings.
func (s *Session) SetSettings(settings valueobject.AnalysisSettings) {
	s.settings = settings
}

// IsCurrentBudget reports whether digest matches the loaded budget file.
func (s *Session) IsCurrentBudget(digest string) bool {
	return s.budgetFile != nil && s.editor != nil && s.budgetFile.Digest == digest
}

// IsCurrentActuals reports whether digest matches the loaded spending export.
func (s *Session) IsCurrentActuals(digest string) bool {
	return s.actualsFile != nil && s.actuals != nil && s.actualsFile.Digest == digest
}

// Snapshot copies the session metadata.
func (s *Session) Snapshot() State {
	state := State{
		ID:            s.ID,
		CreatedAt:     s.CreatedAt,
		LastAccess:    s.LastAccess(),
		BudgetVersion: s.budgetVersion,
		Settings:      s.settings,
		Periods:       make([]string, 0),
	}
	if s.budgetFile != nil {
		file := *s.budgetFile
		state.BudgetFile = &file
	}
	if s.actualsFile != nil {
		file := *s.actualsFile
		state.ActualsFile = &file
	}
	if s.editor != nil {
		state.EditorState = s.editor.State()
	}
	if s.actuals != nil {
		state.Periods = append(state.Periods, s.actuals.Periods...)
	}
	return state
}
