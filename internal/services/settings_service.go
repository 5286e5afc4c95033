package services

import (
	"strconv"
	"sync"

	"posd/internal/domain"
	"posd/internal/repos"
)

// watchedKeys trigger subscriber notifications on change. This is a UI
// side channel, not a store invariant.
var watchedKeys = map[string]bool{
	"developer_mode": true,
}

type SettingsService struct {
	Repo *repos.SettingsRepo

	mu   sync.RWMutex
	subs []func(key, value string)
}

func NewSettingsService(repo *repos.SettingsRepo) *SettingsService {
	return &SettingsService{Repo: repo}
}

type SettingValue struct {
	Found bool   `json:"found"`
	Value string `json:"value"`
}

// Get never errors on an absent key; Found reports presence.
func (s *SettingsService) Get(key string) (SettingValue, error) {
	v, found, err := s.Repo.Get(key)
	if err != nil {
		return SettingValue{}, domain.Storage("settings.get", err)
	}
	return SettingValue{Found: found, Value: v}, nil
}

func (s *SettingsService) Set(key, value string) error {
	if err := s.Repo.Set(key, value, nowStamp()); err != nil {
		return domain.Storage("settings.set", err)
	}
	if watchedKeys[key] {
		s.notify(key, value)
	}
	return nil
}

// GetBool coerces a stored value to bool; absent or unparseable reads as false.
func (s *SettingsService) GetBool(key string) (bool, error) {
	v, err := s.Get(key)
	if err != nil || !v.Found {
		return false, err
	}
	b, perr := strconv.ParseBool(v.Value)
	if perr != nil {
		return false, nil
	}
	return b, nil
}

func (s *SettingsService) SetBool(key string, b bool) error {
	return s.Set(key, strconv.FormatBool(b))
}

// Subscribe registers a callback for watched-key changes.
func (s *SettingsService) Subscribe(fn func(key, value string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *SettingsService) notify(key, value string) {
	s.mu.RLock()
	subs := make([]func(string, string), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn(key, value)
	}
}
