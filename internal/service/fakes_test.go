package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/guessnica/guessnica-backend/internal/model"
	"github.com/guessnica/guessnica-backend/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository doubles backing the service tests. They mirror the
// gorm-backed implementations closely enough to exercise the not-found and
// duplicate-key paths the services depend on.

type memUserRiddleRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*model.UserRiddle

	riddles *memRiddleRepo
}

func newMemUserRiddleRepo(riddles *memRiddleRepo) *memUserRiddleRepo {
	return &memUserRiddleRepo{nextID: 1, rows: map[uint]*model.UserRiddle{}, riddles: riddles}
}

func (r *memUserRiddleRepo) clone(ur *model.UserRiddle) *model.UserRiddle {
	cp := *ur
	if r.riddles != nil {
		if riddle, ok := r.riddles.rows[ur.RiddleID]; ok {
			cp.Riddle = *riddle
		}
	}
	return &cp
}

func (r *memUserRiddleRepo) Create(_ context.Context, ur *model.UserRiddle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.UserID == ur.UserID && existing.GameDay.Equal(ur.GameDay) {
			return gorm.ErrDuplicatedKey
		}
	}
	ur.ID = r.nextID
	r.nextID++
	cp := *ur
	r.rows[ur.ID] = &cp
	return nil
}

func (r *memUserRiddleRepo) FindByID(_ context.Context, id uint) (*model.UserRiddle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ur, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.clone(ur), nil
}

func (r *memUserRiddleRepo) FindInWindow(_ context.Context, userID string, start, end time.Time) (*model.UserRiddle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ur := range r.rows {
		if ur.UserID == userID && !ur.AssignedAt.Before(start) && ur.AssignedAt.Before(end) {
			return r.clone(ur), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRiddleRepo) SolvedRiddleIDs(_ context.Context, userID string) ([]uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[uint]bool{}
	var ids []uint
	for _, ur := range r.rows {
		if ur.UserID == userID && ur.IsCorrect != nil && *ur.IsCorrect && !seen[ur.RiddleID] {
			seen[ur.RiddleID] = true
			ids = append(ids, ur.RiddleID)
		}
	}
	return ids, nil
}

func (r *memUserRiddleRepo) MarkAnswered(_ context.Context, id uint, upd repository.AnswerUpdate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ur, ok := r.rows[id]
	if !ok || ur.AnsweredAt != nil {
		return false, nil
	}
	answeredAt := upd.AnsweredAt
	isCorrect := upd.IsCorrect
	distance := upd.DistanceMeters
	seconds := upd.TimeSeconds
	points := upd.Points
	lat := upd.SubmittedLatitude
	lon := upd.SubmittedLongitude
	ur.AnsweredAt = &answeredAt
	ur.IsCorrect = &isCorrect
	ur.DistanceMeters = &distance
	ur.TimeSeconds = &seconds
	ur.Points = &points
	ur.SubmittedLatitude = &lat
	ur.SubmittedLongitude = &lon
	return true, nil
}

func (r *memUserRiddleRepo) FindAllByUser(_ context.Context, userID string) ([]model.UserRiddle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.UserRiddle
	for _, ur := range r.rows {
		if ur.UserID == userID {
			out = append(out, *r.clone(ur))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssignedAt.Before(out[j].AssignedAt) })
	return out, nil
}

func (r *memUserRiddleRepo) FindAnsweredByUser(_ context.Context, userID string) ([]model.UserRiddle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.UserRiddle
	for _, ur := range r.rows {
		if ur.UserID == userID && ur.AnsweredAt != nil {
			out = append(out, *r.clone(ur))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AnsweredAt.After(*out[j].AnsweredAt) })
	return out, nil
}

func (r *memUserRiddleRepo) AggregateSince(_ context.Context, since time.Time) ([]repository.LeaderboardAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byUser := map[string]*repository.LeaderboardAggregate{}
	timeSums := map[string]int{}
	for _, ur := range r.rows {
		if ur.AnsweredAt == nil || ur.AnsweredAt.Before(since) {
			continue
		}
		agg, ok := byUser[ur.UserID]
		if !ok {
			agg = &repository.LeaderboardAggregate{UserID: ur.UserID}
			byUser[ur.UserID] = agg
		}
		agg.GamesPlayed++
		if ur.IsCorrect != nil && *ur.IsCorrect {
			agg.CorrectAnswers++
		}
		if ur.Points != nil {
			agg.TotalPoints += *ur.Points
		}
		if ur.TimeSeconds != nil {
			timeSums[ur.UserID] += *ur.TimeSeconds
		}
	}
	var out []repository.LeaderboardAggregate
	for userID, agg := range byUser {
		if agg.GamesPlayed > 0 {
			avg := float64(timeSums[userID]) / float64(agg.GamesPlayed)
			agg.AverageTimeSeconds = &avg
		}
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type memRiddleRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*model.Riddle
}

func newMemRiddleRepo() *memRiddleRepo {
	return &memRiddleRepo{nextID: 1, rows: map[uint]*model.Riddle{}}
}

func (r *memRiddleRepo) Create(_ context.Context, riddle *model.Riddle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if riddle.ID == 0 {
		riddle.ID = r.nextID
	}
	if riddle.ID >= r.nextID {
		r.nextID = riddle.ID + 1
	}
	cp := *riddle
	r.rows[riddle.ID] = &cp
	return nil
}

func (r *memRiddleRepo) FindByID(_ context.Context, id uint) (*model.Riddle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	riddle, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *riddle
	return &cp, nil
}

func (r *memRiddleRepo) FindAll(_ context.Context) ([]model.Riddle, error) {
	return r.FindCandidates(context.Background(), nil)
}

func (r *memRiddleRepo) FindCandidates(_ context.Context, excludedIDs []uint) ([]model.Riddle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	excluded := map[uint]bool{}
	for _, id := range excludedIDs {
		excluded[id] = true
	}
	var out []model.Riddle
	for _, riddle := range r.rows {
		if !excluded[riddle.ID] {
			out = append(out, *riddle)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRiddleRepo) Update(_ context.Context, riddle *model.Riddle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *riddle
	r.rows[riddle.ID] = &cp
	return nil
}

func (r *memRiddleRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

type memUserRepo struct {
	mu   sync.Mutex
	rows map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{rows: map[string]*model.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *user
	r.rows[user.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.rows {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) FindByIDs(_ context.Context, ids []string) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, id := range ids {
		if user, ok := r.rows[id]; ok {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *memUserRepo) Update(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	r.rows[user.ID] = &cp
	return nil
}

type memCodeRepo struct {
	mu   sync.Mutex
	rows map[string]*model.UserVerificationCode
}

func newMemCodeRepo() *memCodeRepo {
	return &memCodeRepo{rows: map[string]*model.UserVerificationCode{}}
}

func (r *memCodeRepo) Create(_ context.Context, code *model.UserVerificationCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now().UTC()
	}
	cp := *code
	r.rows[code.ID] = &cp
	return nil
}

func (r *memCodeRepo) Save(_ context.Context, code *model.UserVerificationCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *code
	r.rows[code.ID] = &cp
	return nil
}

func (r *memCodeRepo) DeleteActive(_ context.Context, userID, purpose string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, code := range r.rows {
		if code.UserID == userID && code.Purpose == purpose && code.UsedAt == nil && code.ExpiresAt.After(now) {
			delete(r.rows, id)
		}
	}
	return nil
}

func (r *memCodeRepo) FindLatestActive(_ context.Context, userID, purpose string, now time.Time) (*model.UserVerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *model.UserVerificationCode
	for _, code := range r.rows {
		if code.UserID != userID || code.Purpose != purpose || code.UsedAt != nil || !code.ExpiresAt.After(now) {
			continue
		}
		if latest == nil || code.CreatedAt.After(latest.CreatedAt) {
			latest = code
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r *memCodeRepo) FindByResetSession(_ context.Context, userID, sessionID string, now time.Time) (*model.UserVerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, code := range r.rows {
		if code.UserID != userID || code.Purpose != model.PurposePasswordReset {
			continue
		}
		if code.ResetSessionID == nil || *code.ResetSessionID != sessionID {
			continue
		}
		if code.ResetSessionExpiresAt == nil || !code.ResetSessionExpiresAt.After(now) {
			continue
		}
		cp := *code
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memCodeRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, code := range r.rows {
		sessionDead := code.ResetSessionExpiresAt == nil || !code.ResetSessionExpiresAt.After(now)
		if !code.ExpiresAt.After(now) && sessionDead {
			delete(r.rows, id)
			deleted++
		}
	}
	return deleted, nil
}

// fakeEmailSender records outgoing mail instead of delivering it.
type fakeEmailSender struct {
	mu   sync.Mutex
	sent []sentEmail
}

type sentEmail struct {
	To      string
	Subject string
	Body    string
}

func (f *fakeEmailSender) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeEmailSender) last() (sentEmail, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sentEmail{}, false
	}
	return f.sent[len(f.sent)-1], true
}
