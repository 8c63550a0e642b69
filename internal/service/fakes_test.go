package service

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/fitnesshub/internal/model"
	"github.com/Freeeeeet/fitnesshub/internal/notify"
	"github.com/Freeeeeet/fitnesshub/internal/repository"
	"github.com/Freeeeeet/fitnesshub/internal/schedule"
)

// fakeSlotStore хранит слоты в памяти; мьютекс играет роль блокировки строки тренера
type fakeSlotStore struct {
	mu       sync.Mutex
	nextID   int64
	slots    map[int64]*model.TrainerSlot
	trainers map[int64]bool

	availableDay schedule.Weekday
	availableAt  schedule.TimeOfDay
}

func newFakeSlotStore(trainerIDs ...int64) *fakeSlotStore {
	s := &fakeSlotStore{
		slots:    make(map[int64]*model.TrainerSlot),
		trainers: make(map[int64]bool),
	}
	for _, id := range trainerIDs {
		s.trainers[id] = true
	}
	return s
}

func (s *fakeSlotStore) add(slot model.TrainerSlot) *model.TrainerSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	slot.ID = s.nextID
	s.slots[slot.ID] = &slot
	return &slot
}

func (s *fakeSlotStore) ListPersonal(context.Context) ([]*model.TrainerSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.TrainerSlot
	for _, slot := range s.slots {
		out = append(out, slot)
	}
	return out, nil
}

func (s *fakeSlotStore) ListByTrainer(_ context.Context, trainerID int64) ([]*model.TrainerSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.TrainerSlot
	for _, slot := range s.slots {
		if slot.TrainerID == trainerID {
			c := *slot
			out = append(out, &c)
		}
	}
	return out, nil
}

func (s *fakeSlotStore) dayLocked(trainerID int64, day schedule.Weekday) []*model.TrainerSlot {
	var out []*model.TrainerSlot
	for _, slot := range s.slots {
		if slot.TrainerID == trainerID && slot.DayOfWeek == day && slot.IsActive {
			c := *slot
			out = append(out, &c)
		}
	}
	return out
}

func (s *fakeSlotStore) CreateChecked(_ context.Context, slot *model.TrainerSlot, check repository.SlotCheck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.trainers[slot.TrainerID] {
		return model.ErrTrainerNotFound
	}
	if err := check(s.dayLocked(slot.TrainerID, slot.DayOfWeek)); err != nil {
		return err
	}
	s.nextID++
	slot.ID = s.nextID
	slot.CreatedAt = time.Now()
	c := *slot
	s.slots[slot.ID] = &c
	return nil
}

func (s *fakeSlotStore) UpdateChecked(_ context.Context, slot *model.TrainerSlot, check repository.SlotCheck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.slots[slot.ID]; !ok {
		return model.ErrSlotNotFound
	}
	if !s.trainers[slot.TrainerID] {
		return model.ErrTrainerNotFound
	}
	if err := check(s.dayLocked(slot.TrainerID, slot.DayOfWeek)); err != nil {
		return err
	}
	c := *slot
	s.slots[slot.ID] = &c
	return nil
}

func (s *fakeSlotStore) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.slots[id]; !ok {
		return false, nil
	}
	delete(s.slots, id)
	return true, nil
}

func (s *fakeSlotStore) ListAvailableTrainers(_ context.Context, day schedule.Weekday, at schedule.TimeOfDay) ([]*model.AvailableTrainer, error) {
	s.availableDay = day
	s.availableAt = at
	return []*model.AvailableTrainer{{ID: 1, Name: "Anna"}}, nil
}

// fakeTrainerStore тренеры в памяти
type fakeTrainerStore struct {
	mu       sync.Mutex
	nextID   int64
	trainers map[int64]*model.TrainerProfile
	listHits int
}

func newFakeTrainerStore() *fakeTrainerStore {
	return &fakeTrainerStore{trainers: make(map[int64]*model.TrainerProfile)}
}

func (s *fakeTrainerStore) ListActive(context.Context) ([]*model.TrainerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listHits++
	var out []*model.TrainerProfile
	for _, t := range s.trainers {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeTrainerStore) ListAll(context.Context) ([]*model.TrainerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.TrainerProfile
	for _, t := range s.trainers {
		out = append(out, t)
	}
	return out, nil
}

func (s *fakeTrainerStore) GetByID(_ context.Context, id int64) (*model.TrainerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trainers[id], nil
}

func (s *fakeTrainerStore) GetByUserID(_ context.Context, userID int64) (*model.TrainerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.trainers {
		if t.UserID == userID {
			return t, nil
		}
	}
	return nil, nil
}

func (s *fakeTrainerStore) CreateWithUser(_ context.Context, user *model.User, trainer *model.Trainer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	trainer.ID = s.nextID
	user.ID = 100 + s.nextID
	trainer.UserID = user.ID
	s.trainers[trainer.ID] = &model.TrainerProfile{Trainer: *trainer, Name: user.Name, Email: user.Email}
	return nil
}

func (s *fakeTrainerStore) UpdateWithUser(_ context.Context, user *model.User, trainer *model.Trainer) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.trainers[trainer.ID]
	if !ok {
		return false, nil
	}
	trainer.UserID = cur.UserID
	s.trainers[trainer.ID] = &model.TrainerProfile{Trainer: *trainer, Name: user.Name, Email: user.Email, Phone: user.Phone}
	return true, nil
}

func (s *fakeTrainerStore) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trainers[id]; !ok {
		return false, nil
	}
	delete(s.trainers, id)
	return true, nil
}

// fakeUserStore пользователи в памяти
type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User)}
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (s *fakeUserStore) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.TelegramID != nil && *u.TelegramID == telegramID {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	c := *user
	s.users[user.ID] = &c
	return nil
}

func (s *fakeUserStore) List(context.Context) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.User
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeUserStore) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) Update(_ context.Context, user *model.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.users[user.ID]
	if !ok {
		return false, nil
	}
	cur.Name = user.Name
	cur.Email = user.Email
	cur.Phone = user.Phone
	if user.PasswordHash != "" {
		cur.PasswordHash = user.PasswordHash
	}
	return true, nil
}

func (s *fakeUserStore) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, nil
}

func (s *fakeUserStore) SetTelegramID(_ context.Context, userID int64, telegramID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if telegramID != nil && u.TelegramID != nil && *u.TelegramID == *telegramID {
			u.TelegramID = nil
		}
	}
	if u, ok := s.users[userID]; ok {
		u.TelegramID = telegramID
	}
	return nil
}

func (s *fakeUserStore) ClearTelegramID(_ context.Context, telegramID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.TelegramID != nil && *u.TelegramID == telegramID {
			u.TelegramID = nil
		}
	}
	return nil
}

// memCache кеш в памяти с подсчётом удалений
type memCache struct {
	mu      sync.Mutex
	items   map[string]any
	deleted []string
}

func newMemCache() *memCache {
	return &memCache{items: make(map[string]any)}
}

func (c *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]*model.TrainerProfile:
		*d = v.([]*model.TrainerProfile)
	case *[]*model.SubscriptionType:
		*d = v.([]*model.SubscriptionType)
	case *[]*model.GroupSession:
		*d = v.([]*model.GroupSession)
	default:
		return false, nil
	}
	return true, nil
}

func (c *memCache) Set(_ context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

// recordingSender запоминает отправленные письма
type recordingSender struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.err
}

// fakeTokens выдаёт предсказуемые токены
type fakeTokens struct{}

func (fakeTokens) Issue(user *model.User) (string, error) {
	return "token-" + string(user.Role), nil
}

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func int64Ptr(v int64) *int64 { return &v }
