package service

import (
	"encoding/json"
	"gyanbrix_backend/internal/model"
	"gyanbrix_backend/internal/repository"
	"gyanbrix_backend/internal/util"
	"gyanbrix_backend/pkg/logger"
	"gyanbrix_backend/pkg/monitoring"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// attemptSession is one live quiz attempt. Sessions are held in memory only;
// nothing is persisted until the session is finalized, at which point an
// immutable Attempt row is written and the session discarded.
type attemptSession struct {
	mu sync.Mutex

	ID        string
	UserID    string
	Quiz      *model.Quiz
	Questions []model.Question
	// Answers maps question id to selected option; absence means unanswered.
	Answers      map[string]int
	CurrentIndex int
	StartedAt    time.Time
	Deadline     time.Time

	timer     *time.Timer
	submitted bool
}

// SessionQuestion is the client-facing projection of a question: the correct
// index and explanation never leave the server while a session is live.
type SessionQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Marks    int      `json:"marks"`
}

type SessionView struct {
	SessionID        string            `json:"sessionId"`
	QuizID           string            `json:"quizId"`
	QuizTitle        string            `json:"quizTitle"`
	DurationMinutes  int               `json:"durationMinutes"`
	StartedAt        time.Time         `json:"startedAt"`
	RemainingSeconds int               `json:"remainingSeconds"`
	CurrentIndex     int               `json:"currentIndex"`
	TotalQuestions   int               `json:"totalQuestions"`
	Questions        []SessionQuestion `json:"questions"`
	Answers          map[string]int    `json:"answers"`
}

// SessionService runs the timed attempt lifecycle. Expiry fires server-side
// through a timer per session, so a stalled client still produces exactly one
// completed attempt.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]*attemptSession

	quizSvc     *QuizService
	attemptRepo *repository.AttemptRepository
}

func NewSessionService(quizSvc *QuizService, attemptRepo *repository.AttemptRepository) *SessionService {
	return &SessionService{
		sessions:    make(map[string]*attemptSession),
		quizSvc:     quizSvc,
		attemptRepo: attemptRepo,
	}
}

// Start resolves the quiz's questions and opens a session. The deadline is
// fixed here; answering and navigation never extend it.
func (s *SessionService) Start(userID, quizID string) (*SessionView, error) {
	quiz, err := s.quizSvc.Get(quizID)
	if err != nil {
		return nil, err
	}

	questions, err := s.quizSvc.ResolveQuestions(quiz)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &attemptSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		Quiz:      quiz,
		Questions: questions,
		Answers:   make(map[string]int),
		StartedAt: now,
		Deadline:  now.Add(time.Duration(quiz.DurationMinutes) * time.Minute),
	}

	session.timer = time.AfterFunc(time.Until(session.Deadline), func() {
		s.expire(session.ID)
	})

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	logger.Log.Info("Attempt session started",
		zap.String("session_id", session.ID),
		zap.String("user_id", userID),
		zap.String("quiz_id", quizID))

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.view(), nil
}

func (s *SessionService) find(sessionID, userID string) (*attemptSession, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	if session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	return session, nil
}

// SelectAnswer records a choice. Picking the option already selected clears
// it, so the same endpoint serves select and deselect.
func (s *SessionService) SelectAnswer(sessionID, userID, questionID string, option int) (*SessionView, error) {
	session, err := s.find(sessionID, userID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.submitted {
		return nil, util.ErrSessionCompleted
	}
	if option < 0 || option >= util.OptionCount {
		return nil, util.ErrInvalidOption
	}

	found := false
	for i := range session.Questions {
		if session.Questions[i].ID == questionID {
			found = true
			break
		}
	}
	if !found {
		return nil, util.ErrQuestionNotInQuiz
	}

	if current, ok := session.Answers[questionID]; ok && current == option {
		delete(session.Answers, questionID)
	} else {
		session.Answers[questionID] = option
	}

	return session.view(), nil
}

// Navigate moves the session cursor, clamping the target into range.
func (s *SessionService) Navigate(sessionID, userID string, index int) (*SessionView, error) {
	session, err := s.find(sessionID, userID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.submitted {
		return nil, util.ErrSessionCompleted
	}

	if index < 0 {
		index = 0
	}
	if index > len(session.Questions)-1 {
		index = len(session.Questions) - 1
	}
	session.CurrentIndex = index

	return session.view(), nil
}

func (s *SessionService) Get(sessionID, userID string) (*SessionView, error) {
	session, err := s.find(sessionID, userID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.submitted {
		return nil, util.ErrSessionCompleted
	}
	return session.view(), nil
}

// Submit finalizes the session on the user's request.
func (s *SessionService) Submit(sessionID, userID string) (*model.Attempt, error) {
	session, err := s.find(sessionID, userID)
	if err != nil {
		return nil, err
	}
	return s.finalize(session, false)
}

// Abandon discards the session without recording an attempt.
func (s *SessionService) Abandon(sessionID, userID string) error {
	session, err := s.find(sessionID, userID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	if session.submitted {
		session.mu.Unlock()
		return util.ErrSessionCompleted
	}
	session.submitted = true
	session.timer.Stop()
	session.mu.Unlock()

	s.remove(session.ID)

	logger.Log.Info("Attempt session abandoned",
		zap.String("session_id", session.ID),
		zap.String("user_id", userID))
	return nil
}

// expire is the timer callback: the deadline passed with the session still
// open, so it is submitted with whatever answers accumulated.
func (s *SessionService) expire(sessionID string) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return
	}

	if _, err := s.finalize(session, true); err != nil {
		logger.Log.Error("Failed to auto-submit expired session",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}

// finalize is the single point where a session turns into an attempt. The
// submitted flag under the session mutex makes a racing manual submit and
// timer expiry yield exactly one attempt row.
func (s *SessionService) finalize(session *attemptSession, timedOut bool) (*model.Attempt, error) {
	session.mu.Lock()
	if session.submitted {
		session.mu.Unlock()
		return nil, util.ErrSessionCompleted
	}
	session.submitted = true
	session.timer.Stop()

	result := Evaluate(session.Questions, session.Answers)

	detail, err := json.Marshal(result.Detail)
	if err != nil {
		session.mu.Unlock()
		return nil, err
	}

	attempt := &model.Attempt{
		UserID:         session.UserID,
		QuizID:         session.Quiz.ID,
		QuizTitle:      session.Quiz.Title,
		QuizType:       session.Quiz.Type,
		ClassID:        session.Quiz.ClassID,
		SubjectID:      session.Quiz.SubjectID,
		ChapterID:      session.Quiz.ChapterID,
		TotalQuestions: result.Total,
		Correct:        result.Correct,
		Wrong:          result.Wrong,
		Skipped:        result.Skipped,
		Score:          result.Score,
		TimedOut:       timedOut,
		Detail:         detail,
	}
	session.mu.Unlock()

	if err := s.attemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	s.remove(session.ID)

	trigger := "manual"
	if timedOut {
		trigger = "auto"
	}
	monitoring.AttemptSubmissions.WithLabelValues(string(attempt.QuizType), trigger).Inc()

	logger.Log.Info("Attempt submitted",
		zap.String("session_id", session.ID),
		zap.String("user_id", attempt.UserID),
		zap.Int("score", attempt.Score),
		zap.Bool("timed_out", timedOut))

	return attempt, nil
}

func (s *SessionService) remove(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// ActiveSessions reports how many sessions are currently open.
func (s *SessionService) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions that finished but were never removed, for instance
// when the attempt insert failed during expiry. Run periodically.
func (s *SessionService) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		session.mu.Lock()
		done := session.submitted
		session.mu.Unlock()
		if done {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// view renders the client-facing state. Callers hold session.mu.
func (session *attemptSession) view() *SessionView {
	remaining := int(time.Until(session.Deadline).Seconds())
	if remaining < 0 {
		remaining = 0
	}

	questions := make([]SessionQuestion, 0, len(session.Questions))
	for i := range session.Questions {
		q := &session.Questions[i]
		questions = append(questions, SessionQuestion{
			ID:       q.ID,
			Question: q.Text,
			Options:  q.OptionList(),
			Marks:    q.Marks,
		})
	}

	answers := make(map[string]int, len(session.Answers))
	for k, v := range session.Answers {
		answers[k] = v
	}

	return &SessionView{
		SessionID:        session.ID,
		QuizID:           session.Quiz.ID,
		QuizTitle:        session.Quiz.Title,
		DurationMinutes:  session.Quiz.DurationMinutes,
		StartedAt:        session.StartedAt,
		RemainingSeconds: remaining,
		CurrentIndex:     session.CurrentIndex,
		TotalQuestions:   len(session.Questions),
		Questions:        questions,
		Answers:          answers,
	}
}
