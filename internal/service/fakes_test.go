package service

import (
	"context"
	"io"
	"sort"
	"sync"

	"aiacademy/internal/cache"
	"aiacademy/internal/model"
	"aiacademy/internal/repository"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Save(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	var out []*model.User
	for _, id := range ids {
		if u, _ := r.GetByID(ctx, id); u != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) update(id string, fn func(u *model.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(u)
	return nil
}

func (r *fakeUserRepo) SetOverallScore(_ context.Context, id string, score float64, resultCount int, lastUpdated string) (bool, error) {
	applied := false
	err := r.update(id, func(u *model.User) {
		if u.ResultCount > resultCount {
			return
		}
		u.OverallScore = score
		u.ResultCount = resultCount
		u.LastUpdated = lastUpdated
		applied = true
	})
	return applied, err
}

func (r *fakeUserRepo) SetCourses(_ context.Context, id string, courses model.Courses) error {
	return r.update(id, func(u *model.User) { u.Courses = courses })
}

func (r *fakeUserRepo) SetProfileImage(_ context.Context, id, url, lastUpdated string) error {
	return r.update(id, func(u *model.User) {
		u.ProfileImageURL = url
		u.LastUpdated = lastUpdated
	})
}

func (r *fakeUserRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) ListScores(context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, &model.User{ID: u.ID, OverallScore: u.OverallScore})
	}
	return out, nil
}

type fakeResultRepo struct {
	mu      sync.Mutex
	results []*model.TestResult
}

func (r *fakeResultRepo) Create(_ context.Context, result *model.TestResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *result
	r.results = append(r.results, &cp)
	return nil
}

func (r *fakeResultRepo) forUser(userID string) []*model.TestResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.TestResult
	for _, res := range r.results {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	return out
}

func (r *fakeResultRepo) CompletedTopics(ctx context.Context, userID string) ([]string, error) {
	results := r.forUser(userID)
	seen := map[string]bool{}
	var topics []string
	for _, res := range results {
		if !seen[res.Topic] {
			seen[res.Topic] = true
			topics = append(topics, res.Topic)
		}
	}
	return topics, nil
}

func (r *fakeResultRepo) MonthlyBest(ctx context.Context, userID string) ([12]float64, error) {
	var best [12]float64
	results := r.forUser(userID)
	for _, res := range results {
		m := int(res.Timestamp.Month()) - 1
		if res.Percentage > best[m] {
			best[m] = res.Percentage
		}
	}
	return best, nil
}

func (r *fakeResultRepo) AveragePercentage(ctx context.Context, userID string) (float64, int, error) {
	results := r.forUser(userID)
	if len(results) == 0 {
		return 0, 0, nil
	}
	var sum float64
	for _, res := range results {
		sum += res.Percentage
	}
	return sum / float64(len(results)), len(results), nil
}

type fakeQuestionRepo struct {
	banks map[string]*model.QuestionBank
	reads int
}

func (r *fakeQuestionRepo) Upsert(_ context.Context, b *model.QuestionBank) error {
	r.banks[b.Topic] = b
	return nil
}

func (r *fakeQuestionRepo) GetByTopic(_ context.Context, topic string) (*model.QuestionBank, error) {
	r.reads++
	return r.banks[topic], nil
}

func (r *fakeQuestionRepo) ListTopics(context.Context) ([]model.Topic, error) {
	var out []model.Topic
	for _, b := range r.banks {
		out = append(out, model.Topic{Key: b.Topic, Name: b.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

type fakeLeaderboard struct {
	mu       sync.Mutex
	scores   map[string]float64
	err      error
	replaced int
}

func newFakeLeaderboard() *fakeLeaderboard {
	return &fakeLeaderboard{scores: make(map[string]float64)}
}

func (c *fakeLeaderboard) UpdateScore(_ context.Context, userID string, score float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.scores[userID] = score
	return nil
}

func (c *fakeLeaderboard) GetTop(_ context.Context, limit int) ([]cache.ScoreEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	out := make([]cache.ScoreEntry, 0, len(c.scores))
	for id, s := range c.scores {
		out = append(out, cache.ScoreEntry{UserID: id, Score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].UserID > out[j].UserID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (c *fakeLeaderboard) Size(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	return int64(len(c.scores)), nil
}

func (c *fakeLeaderboard) Replace(_ context.Context, entries []cache.ScoreEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.scores = make(map[string]float64, len(entries))
	for _, e := range entries {
		c.scores[e.UserID] = e.Score
	}
	c.replaced++
	return nil
}

type fakeSessionCache struct {
	mu    sync.Mutex
	views map[string]model.QuizSessionView
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{views: make(map[string]model.QuizSessionView)}
}

func (c *fakeSessionCache) Set(_ context.Context, v *model.QuizSessionView) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[v.ID] = *v
	return nil
}

func (c *fakeSessionCache) Get(_ context.Context, id string) (*model.QuizSessionView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.views[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

type fakeBankCache struct {
	banks map[string]*model.QuestionBank
}

func (c *fakeBankCache) SetBank(_ context.Context, b *model.QuestionBank) error {
	c.banks[b.Topic] = b
	return nil
}

func (c *fakeBankCache) GetBank(_ context.Context, topic string) (*model.QuestionBank, error) {
	return c.banks[topic], nil
}

func (c *fakeBankCache) DeleteBank(_ context.Context, topic string) error {
	delete(c.banks, topic)
	return nil
}

type fakeIdentity struct {
	accounts map[string]string // email -> password
	uids     map[string]string // email -> uid
}

func (f *fakeIdentity) SignIn(_ context.Context, email, password string) (*Identity, error) {
	pw, ok := f.accounts[email]
	if !ok {
		return nil, &IdentityError{Status: 400, Code: "EMAIL_NOT_FOUND"}
	}
	if pw != password {
		return nil, &IdentityError{Status: 400, Code: "INVALID_PASSWORD"}
	}
	return &Identity{UID: f.uids[email], Email: email}, nil
}

func (f *fakeIdentity) SignUp(_ context.Context, email, password string) (*Identity, error) {
	if _, ok := f.accounts[email]; ok {
		return nil, &IdentityError{Status: 400, Code: "EMAIL_EXISTS"}
	}
	uid := "uid-" + email
	f.accounts[email] = password
	f.uids[email] = uid
	return &Identity{UID: uid, Email: email}, nil
}

type fakeImageStore struct {
	uploaded map[string][]byte
}

func (f *fakeImageStore) Upload(_ context.Context, publicID, _ string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.uploaded[publicID] = data
	return "https://img.example.com/quiz_portal_profiles/" + publicID + ".jpg", nil
}

type recordedEvent struct {
	session string
	kind    string
	payload interface{}
}

type recordingBroadcaster struct {
	mu       sync.Mutex
	events   []recordedEvent
	watchers map[string]int
}

func (b *recordingBroadcaster) BroadcastToSession(sessionID, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{session: sessionID, kind: msgType, payload: payload})
}

func (b *recordingBroadcaster) Subscribers(sessionID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.watchers[sessionID]
}

func (b *recordingBroadcaster) watch(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.watchers == nil {
		b.watchers = make(map[string]int)
	}
	b.watchers[sessionID]++
}

func (b *recordingBroadcaster) ofKind(kind string) []recordedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []recordedEvent
	for _, e := range b.events {
		if e.kind == kind {
			out = append(out, e)
		}
	}
	return out
}
