package service

import (
	"context"
	"sort"
	"strings"

	"emojiparty/internal/cache"
	"emojiparty/internal/model"
	"emojiparty/internal/repository"
)

// In-memory fakes for the repository and cache interfaces.

type fakeRoomRepo struct {
	rooms map[string]*model.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: map[string]*model.Room{}}
}

func (f *fakeRoomRepo) Create(ctx context.Context, room *model.Room) error {
	cp := *room
	f.rooms[room.ID] = &cp
	return nil
}

func (f *fakeRoomRepo) GetByCode(ctx context.Context, code string) (*model.Room, error) {
	for _, r := range f.rooms {
		if r.Code == code {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRoomRepo) GetByID(ctx context.Context, roomID string) (*model.Room, error) {
	r, ok := f.rooms[roomID]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoomRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	r, _ := f.GetByCode(ctx, code)
	return r != nil, nil
}

func (f *fakeRoomRepo) Delete(ctx context.Context, roomID string) error {
	delete(f.rooms, roomID)
	return nil
}

type fakeRosterRepo struct {
	members []model.Membership
}

func (f *fakeRosterRepo) Insert(ctx context.Context, m *model.Membership) (*model.Membership, error) {
	if existing, _ := f.Get(ctx, m.RoomID, m.UserID); existing != nil {
		return existing, nil
	}
	f.members = append(f.members, *m)
	return m, nil
}

func (f *fakeRosterRepo) Get(ctx context.Context, roomID, userID string) (*model.Membership, error) {
	for i := range f.members {
		if f.members[i].RoomID == roomID && f.members[i].UserID == userID {
			cp := f.members[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRosterRepo) List(ctx context.Context, roomID string) ([]model.Membership, error) {
	var out []model.Membership
	for _, m := range f.members {
		if m.RoomID == roomID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRosterRepo) RemoveAll(ctx context.Context, roomID string) error {
	kept := f.members[:0]
	for _, m := range f.members {
		if m.RoomID != roomID {
			kept = append(kept, m)
		}
	}
	f.members = kept
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*model.Session
	// conflictNext makes the next versioned update lose the race.
	conflictNext bool
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*model.Session{}}
}

func copySession(s *model.Session) *model.Session {
	cp := *s
	if s.Scores != nil {
		cp.Scores = make(map[string]int, len(s.Scores))
		for k, v := range s.Scores {
			cp.Scores[k] = v
		}
	}
	return &cp
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *model.Session) error {
	s.Version = 1
	f.sessions[s.RoomID] = copySession(s)
	return nil
}

func (f *fakeSessionRepo) Get(ctx context.Context, roomID string) (*model.Session, error) {
	s, ok := f.sessions[roomID]
	if !ok {
		return nil, nil
	}
	return copySession(s), nil
}

func (f *fakeSessionRepo) UpdateVersioned(ctx context.Context, s *model.Session) error {
	if f.conflictNext {
		f.conflictNext = false
		return repository.ErrVersionConflict
	}
	stored, ok := f.sessions[s.RoomID]
	if !ok || stored.Version != s.Version {
		return repository.ErrVersionConflict
	}
	s.Version++
	f.sessions[s.RoomID] = copySession(s)
	return nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, roomID string) error {
	delete(f.sessions, roomID)
	return nil
}

type fakePuzzleRepo struct {
	puzzles []model.Puzzle
}

func (f *fakePuzzleRepo) Insert(ctx context.Context, p *model.Puzzle) error {
	f.puzzles = append(f.puzzles, *p)
	return nil
}

func (f *fakePuzzleRepo) GetByID(ctx context.Context, id string) (*model.Puzzle, error) {
	for i := range f.puzzles {
		if f.puzzles[i].ID == id {
			cp := f.puzzles[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePuzzleRepo) Genres(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var genres []string
	for _, p := range f.puzzles {
		if !seen[p.Genre] {
			seen[p.Genre] = true
			genres = append(genres, p.Genre)
		}
	}
	return genres, nil
}

func (f *fakePuzzleRepo) ByGenre(ctx context.Context, genre string) ([]model.Puzzle, error) {
	var out []model.Puzzle
	for _, p := range f.puzzles {
		if p.Genre == genre {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePuzzleRepo) ByGenreOrdered(ctx context.Context, genre string) ([]model.Puzzle, error) {
	out, _ := f.ByGenre(ctx, genre)
	sort.SliceStable(out, func(i, j int) bool { return out[i].LevelNumber < out[j].LevelNumber })
	return out, nil
}

func (f *fakePuzzleRepo) ByLevel(ctx context.Context, genre string, levelNumber int) (*model.Puzzle, error) {
	for i := range f.puzzles {
		if f.puzzles[i].Genre == genre && f.puzzles[i].LevelNumber == levelNumber {
			cp := f.puzzles[i]
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeLeaderboardRepo struct {
	scores []*model.Score
}

func (f *fakeLeaderboardRepo) find(userID, genre string) *model.Score {
	for _, s := range f.scores {
		if s.UserID == userID && s.Genre == genre {
			return s
		}
	}
	return nil
}

func (f *fakeLeaderboardRepo) Incr(ctx context.Context, userID, genre string, delta int) (*model.Score, error) {
	s := f.find(userID, genre)
	if s == nil {
		s = &model.Score{UserID: userID, Genre: genre}
		f.scores = append(f.scores, s)
	}
	s.TotalScore += delta
	cp := *s
	return &cp, nil
}

func (f *fakeLeaderboardRepo) Set(ctx context.Context, userID, genre string, score int) error {
	s := f.find(userID, genre)
	if s == nil {
		s = &model.Score{UserID: userID, Genre: genre}
		f.scores = append(f.scores, s)
	}
	s.TotalScore = score
	return nil
}

func (f *fakeLeaderboardRepo) Get(ctx context.Context, userID, genre string) (*model.Score, error) {
	s := f.find(userID, genre)
	if s == nil {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeLeaderboardRepo) Page(ctx context.Context, offset, limit int64) ([]model.Score, error) {
	sorted := make([]*model.Score, len(f.scores))
	copy(sorted, f.scores)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].TotalScore > sorted[j].TotalScore })

	var out []model.Score
	for i := offset; i < int64(len(sorted)) && int64(len(out)) < limit; i++ {
		out = append(out, *sorted[i])
	}
	return out, nil
}

func (f *fakeLeaderboardRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.scores)), nil
}

func (f *fakeLeaderboardRepo) ResetUser(ctx context.Context, userID string) error {
	for _, s := range f.scores {
		if s.UserID == userID {
			s.TotalScore = 0
		}
	}
	return nil
}

func (f *fakeLeaderboardRepo) ResetAll(ctx context.Context) error {
	f.scores = nil
	return nil
}

type fakeProgressRepo struct {
	completed map[string]int
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{completed: map[string]int{}}
}

func progressKey(userID, genre string) string {
	return userID + "|" + genre
}

func (f *fakeProgressRepo) Get(ctx context.Context, userID, genre string) (*model.Progress, error) {
	n, ok := f.completed[progressKey(userID, genre)]
	if !ok {
		return nil, nil
	}
	return &model.Progress{UserID: userID, Genre: genre, CompletedLevels: n}, nil
}

func (f *fakeProgressRepo) Advance(ctx context.Context, userID, genre string, level int) error {
	key := progressKey(userID, genre)
	if level > f.completed[key] {
		f.completed[key] = level
	}
	return nil
}

type fakeChatRepo struct {
	messages []model.ChatMessage
}

func (f *fakeChatRepo) Insert(ctx context.Context, msg *model.ChatMessage) error {
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeChatRepo) ListByRoom(ctx context.Context, roomID string) ([]model.ChatMessage, error) {
	var out []model.ChatMessage
	for _, m := range f.messages {
		if m.RoomID == roomID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeChatRepo) RemoveAll(ctx context.Context, roomID string) error {
	kept := f.messages[:0]
	for _, m := range f.messages {
		if m.RoomID != roomID {
			kept = append(kept, m)
		}
	}
	f.messages = kept
	return nil
}

type fakeUserRepo struct {
	users map[string]*model.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	if _, ok := f.users[u.Email]; ok {
		return repository.ErrEmailTaken
	}
	cp := *u
	f.users[u.Email] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeRoomCache struct {
	metas map[string]*model.RoomMeta
}

func newFakeRoomCache() *fakeRoomCache {
	return &fakeRoomCache{metas: map[string]*model.RoomMeta{}}
}

func (f *fakeRoomCache) SetMeta(ctx context.Context, code string, meta *model.RoomMeta) error {
	cp := *meta
	f.metas[code] = &cp
	return nil
}

func (f *fakeRoomCache) GetMeta(ctx context.Context, code string) (*model.RoomMeta, error) {
	m, ok := f.metas[code]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRoomCache) Exists(ctx context.Context, code string) (bool, error) {
	_, ok := f.metas[code]
	return ok, nil
}

func (f *fakeRoomCache) Delete(ctx context.Context, code string) error {
	delete(f.metas, code)
	return nil
}

type fakeLeaderboardCache struct {
	scores map[string]float64 // "genre|user" -> score, "" genre = global
}

func newFakeLeaderboardCache() *fakeLeaderboardCache {
	return &fakeLeaderboardCache{scores: map[string]float64{}}
}

func (f *fakeLeaderboardCache) IncrScore(ctx context.Context, genre, userID string, delta int) error {
	f.scores["|"+userID] += float64(delta)
	if genre != "" {
		f.scores[genre+"|"+userID] += float64(delta)
	}
	return nil
}

func (f *fakeLeaderboardCache) SetScore(ctx context.Context, genre, userID string, score int) error {
	f.scores[genre+"|"+userID] = float64(score)
	return nil
}

func (f *fakeLeaderboardCache) Top(ctx context.Context, limit int) ([]cache.CachedEntry, error) {
	var entries []cache.CachedEntry
	for key, score := range f.scores {
		if strings.HasPrefix(key, "|") {
			entries = append(entries, cache.CachedEntry{
				UserID: strings.TrimPrefix(key, "|"),
				Score:  int(score),
			})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (f *fakeLeaderboardCache) Rank(ctx context.Context, userID string) (int64, error) {
	entries, _ := f.Top(ctx, len(f.scores)+1)
	for _, e := range entries {
		if e.UserID == userID {
			return int64(e.Rank), nil
		}
	}
	return -1, nil
}

func (f *fakeLeaderboardCache) RemoveUser(ctx context.Context, userID string) error {
	for key := range f.scores {
		if strings.HasSuffix(key, "|"+userID) {
			delete(f.scores, key)
		}
	}
	return nil
}

func (f *fakeLeaderboardCache) Clear(ctx context.Context) error {
	f.scores = map[string]float64{}
	return nil
}
