package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/entity"
	"github.com/pdmartins/sdlc-internet-banking-sub000/services/auth/internal/domain/repository"
	"github.com/stretchr/testify/mock"
)

var errStoreFailure = errors.New("store failure")

type fakeClock struct {
	t time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// 사용자

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	r := &memUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.EmailMatches(email) {
			return u, nil
		}
	}
	return nil, nil
}

// 인증 세션

type memOtpRepo struct {
	mu       sync.Mutex
	sessions map[string]entity.OtpSession

	// afterFind 조회 직후 한 번 실행됩니다. 동시 요청 끼어들기 재현용
	afterFind func()
}

func newMemOtpRepo() *memOtpRepo {
	return &memOtpRepo{sessions: make(map[string]entity.OtpSession)}
}

func (r *memOtpRepo) ReplaceForUser(_ context.Context, session *entity.OtpSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.UserID == session.UserID {
			delete(r.sessions, id)
		}
	}
	r.sessions[session.ID] = *session
	return nil
}

func (r *memOtpRepo) FindByID(_ context.Context, id string) (*entity.OtpSession, error) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	hook := r.afterFind
	r.afterFind = nil
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memOtpRepo) RecordFailure(_ context.Context, id string, now time.Time) (*entity.OtpSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.IsTerminal(now) {
		return nil, nil
	}
	s.RecordFailure()
	r.sessions[id] = s
	return &s, nil
}

func (r *memOtpRepo) MarkUsed(_ context.Context, id, codeHash string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.IsTerminal(at) || s.CodeHash != codeHash {
		return false, nil
	}
	s.MarkUsed(at)
	r.sessions[id] = s
	return true, nil
}

func (r *memOtpRepo) Reissue(_ context.Context, session *entity.OtpSession, issuedBefore time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[session.ID]
	if !ok {
		return false, errStoreFailure
	}
	if s.IsUsed || s.CreatedAt.After(issuedBefore) {
		return false, nil
	}
	s.CodeHash = session.CodeHash
	s.CreatedAt = session.CreatedAt
	s.ExpiresAt = session.ExpiresAt
	s.AttemptCount = 0
	s.IsBlocked = false
	r.sessions[session.ID] = s
	return true, nil
}

func (r *memOtpRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if s.ExpiresAt.Before(before) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

func (r *memOtpRepo) countForUser(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.sessions {
		if s.UserID == userID {
			n++
		}
	}
	return n
}

// 로그인 세션

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]entity.UserSession

	// afterFind 조회 직후 한 번 실행됩니다
	afterFind func()
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]entity.UserSession)}
}

func (r *memSessionRepo) Create(_ context.Context, session *entity.UserSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Token] = *session
	return nil
}

func (r *memSessionRepo) FindByToken(_ context.Context, token string) (*entity.UserSession, error) {
	r.mu.Lock()
	s, ok := r.sessions[token]
	hook := r.afterFind
	r.afterFind = nil
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memSessionRepo) TouchActivity(_ context.Context, token string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok || !s.IsActive || s.ExpiryReason(now) != "" {
		return false, nil
	}
	s.LastActivityAt = now
	r.sessions[token] = s
	return true, nil
}

func (r *memSessionRepo) RevokeByToken(_ context.Context, token, reason string, at time.Time) (bool, error) {
	return r.revokeWhere(reason, at, func(s *entity.UserSession) bool {
		return s.Token == token
	}) == 1, nil
}

func (r *memSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *memSessionRepo) ListActiveByUser(_ context.Context, userID string) ([]*entity.UserSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.UserSession
	for _, s := range r.sessions {
		if s.UserID == userID && s.IsActive {
			cp := s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memSessionRepo) RevokeAllExcept(_ context.Context, userID, exceptToken, reason string, at time.Time) (int64, error) {
	return r.revokeWhere(reason, at, func(s *entity.UserSession) bool {
		return s.UserID == userID && s.Token != exceptToken
	}), nil
}

func (r *memSessionRepo) RevokeExpired(_ context.Context, now time.Time) (int64, error) {
	return r.revokeWhere(entity.RevokeReasonExpired, now, func(s *entity.UserSession) bool {
		return s.IsAbsoluteExpired(now)
	}), nil
}

func (r *memSessionRepo) RevokeInactive(_ context.Context, now time.Time) (int64, error) {
	return r.revokeWhere(entity.RevokeReasonInactivity, now, func(s *entity.UserSession) bool {
		return s.IsInactive(now)
	}), nil
}

func (r *memSessionRepo) revokeWhere(reason string, at time.Time, match func(*entity.UserSession) bool) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for token, s := range r.sessions {
		if s.IsActive && match(&s) {
			s.Revoke(reason, at)
			r.sessions[token] = s
			n++
		}
	}
	return n
}

func (r *memSessionRepo) get(token string) entity.UserSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[token]
}

// 로그인 시도 / 기준선 / 이상 징후

type memAttemptRepo struct {
	attempts  []entity.LoginAttempt
	createErr error
}

func (r *memAttemptRepo) Create(_ context.Context, attempt *entity.LoginAttempt) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.attempts = append(r.attempts, *attempt)
	return nil
}

func (r *memAttemptRepo) UpdateAssessment(_ context.Context, attempt *entity.LoginAttempt) error {
	for i := range r.attempts {
		if r.attempts[i].ID == attempt.ID {
			r.attempts[i] = *attempt
			return nil
		}
	}
	return errStoreFailure
}

func (r *memAttemptRepo) CountByUserSince(_ context.Context, userID string, since time.Time) (int64, error) {
	var n int64
	for _, a := range r.attempts {
		if a.HasUser() && *a.UserID == userID && !a.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *memAttemptRepo) CountByEmailSince(_ context.Context, email string, since time.Time) (int64, error) {
	var n int64
	for _, a := range r.attempts {
		if a.Email == email && !a.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *memAttemptRepo) CountFailedByIPSince(_ context.Context, ip string, since time.Time) (int64, error) {
	var n int64
	for _, a := range r.attempts {
		if a.IP == ip && !a.IsSuccessful && !a.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type memBaselineRepo struct {
	baselines map[string]entity.UserBehaviorBaseline
}

func newMemBaselineRepo() *memBaselineRepo {
	return &memBaselineRepo{baselines: make(map[string]entity.UserBehaviorBaseline)}
}

func cloneBaseline(b entity.UserBehaviorBaseline) entity.UserBehaviorBaseline {
	b.RecentIPs = append([]string(nil), b.RecentIPs...)
	b.Locations = append([]string(nil), b.Locations...)
	b.Devices = append([]string(nil), b.Devices...)
	b.TypicalHours = append([]int(nil), b.TypicalHours...)
	b.TypicalDays = append([]int(nil), b.TypicalDays...)
	return b
}

func (r *memBaselineRepo) FindByUserID(_ context.Context, userID string) (*entity.UserBehaviorBaseline, error) {
	b, ok := r.baselines[userID]
	if !ok {
		return nil, nil
	}
	cp := cloneBaseline(b)
	return &cp, nil
}

func (r *memBaselineRepo) Save(_ context.Context, baseline *entity.UserBehaviorBaseline) error {
	r.baselines[baseline.UserID] = cloneBaseline(*baseline)
	return nil
}

type memAnomalyRepo struct {
	records map[string]entity.AnomalyRecord
}

func newMemAnomalyRepo() *memAnomalyRepo {
	return &memAnomalyRepo{records: make(map[string]entity.AnomalyRecord)}
}

func (r *memAnomalyRepo) Create(_ context.Context, record *entity.AnomalyRecord) error {
	r.records[record.ID] = *record
	return nil
}

func (r *memAnomalyRepo) FindByID(_ context.Context, id string) (*entity.AnomalyRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *memAnomalyRepo) Update(_ context.Context, record *entity.AnomalyRecord) error {
	r.records[record.ID] = *record
	return nil
}

func (r *memAnomalyRepo) ListByUser(_ context.Context, userID string, status entity.AnomalyStatus, limit int) ([]*entity.AnomalyRecord, error) {
	var out []*entity.AnomalyRecord
	for _, rec := range r.records {
		if rec.UserID != userID || (status != "" && rec.Status != status) {
			continue
		}
		cp := rec
		out = append(out, &cp)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeUnitOfWork struct {
	tx *repository.TxRepositories
}

func (u *fakeUnitOfWork) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx *repository.TxRepositories) error) error {
	return fn(ctx, u.tx)
}

// 감사 로그

type memAuditRepo struct {
	mu   sync.Mutex
	logs []*entity.AuditLog
}

func (r *memAuditRepo) Create(_ context.Context, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

func (r *memAuditRepo) ListByUserID(_ context.Context, userID string, page, limit int) ([]*entity.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.AuditLog
	for _, l := range r.logs {
		if l.UserID != nil && *l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memAuditRepo) types() []entity.AuditLogType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.AuditLogType, 0, len(r.logs))
	for _, l := range r.logs {
		out = append(out, l.Type)
	}
	return out
}

// 외부 협력 객체

type mockRateLimiter struct {
	mock.Mock
}

func (m *mockRateLimiter) CanAttempt(ctx context.Context, key, action string, max int) (bool, error) {
	args := m.Called(ctx, key, action, max)
	return args.Bool(0), args.Error(1)
}

func (m *mockRateLimiter) RecordAttempt(ctx context.Context, key, action string, success bool) error {
	args := m.Called(ctx, key, action, success)
	return args.Error(0)
}

type mockAlertDispatcher struct {
	mock.Mock
}

func (m *mockAlertDispatcher) SendAlert(ctx context.Context, alert *entity.SecurityAlert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

type captureDelivery struct {
	codes   []string
	methods []entity.MFAMethod
	err     error
}

func (d *captureDelivery) Send(_ context.Context, _ *entity.User, code string, method entity.MFAMethod) error {
	if d.err != nil {
		return d.err
	}
	d.codes = append(d.codes, code)
	d.methods = append(d.methods, method)
	return nil
}

func (d *captureDelivery) last() string {
	if len(d.codes) == 0 {
		return ""
	}
	return d.codes[len(d.codes)-1]
}

type recordingPublisher struct {
	events []*entity.SecurityEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event *entity.SecurityEvent) error {
	p.events = append(p.events, event)
	return p.err
}

type staticDeviceParser struct {
	info entity.DeviceInfo
}

func (p staticDeviceParser) Parse(string) entity.DeviceInfo { return p.info }

type staticGeoResolver struct {
	locations map[string]entity.GeoLocation
}

func (g staticGeoResolver) Resolve(ip string) (entity.GeoLocation, error) {
	loc, ok := g.locations[ip]
	if !ok {
		return entity.GeoLocation{}, errors.New("unknown ip")
	}
	return loc, nil
}
