package repository

import (
	"sort"
	"strings"
	"sync"

	"github.com/11shadownevermore11/Hackaton/internal/model"
)

// LocationRepo is the in-memory location catalog.
type LocationRepo struct {
	mu        sync.RWMutex
	locations map[uint64]*model.Location
}

func NewLocationRepo() *LocationRepo {
	return &LocationRepo{locations: make(map[uint64]*model.Location)}
}

// Create inserts a location. The id comes from the client and must be free.
func (r *LocationRepo) Create(loc model.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.locations[loc.ID]; ok {
		return ErrDuplicateLocation
	}
	if loc.Contacts == nil {
		loc.Contacts = map[string]string{}
	}
	r.locations[loc.ID] = &loc
	return nil
}

// Get fetches a location by id.
func (r *LocationRepo) Get(id uint64) (model.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loc, ok := r.locations[id]
	if !ok {
		return model.Location{}, ErrNotFound
	}
	return *loc, nil
}

// All returns every location ordered by id.
func (r *LocationRepo) All() []model.Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Location, 0, len(r.locations))
	for _, loc := range r.locations {
		out = append(out, *loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Update applies a partial update and returns the new state.
func (r *LocationRepo) Update(id uint64, patch model.LocationPatch) (model.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	loc, ok := r.locations[id]
	if !ok {
		return model.Location{}, ErrNotFound
	}
	if patch.Name != nil {
		loc.Name = *patch.Name
	}
	if patch.Description != nil {
		loc.Description = *patch.Description
	}
	if patch.Address != nil {
		loc.Address = *patch.Address
	}
	if patch.Coords != nil {
		loc.Coords = *patch.Coords
	}
	if patch.Photo != nil {
		loc.Photo = *patch.Photo
	}
	if patch.WorkTime != nil {
		loc.WorkTime = *patch.WorkTime
	}
	if patch.Contacts != nil {
		loc.Contacts = patch.Contacts
	}
	return *loc, nil
}

// SetPhoto stores the public URL of an uploaded photo.
func (r *LocationRepo) SetPhoto(id uint64, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	loc, ok := r.locations[id]
	if !ok {
		return ErrNotFound
	}
	loc.Photo = url
	return nil
}

// Delete removes a location from the catalog.
func (r *LocationRepo) Delete(id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.locations[id]; !ok {
		return ErrNotFound
	}
	delete(r.locations, id)
	return nil
}

// Search filters locations by case-insensitive substring match on address,
// description and working hours. Empty terms match everything.
func (r *LocationRepo) Search(address, description, workTime string) []model.Location {
	match := func(haystack, needle string) bool {
		return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
	}
	out := make([]model.Location, 0)
	for _, loc := range r.All() {
		if match(loc.Address, address) && match(loc.Description, description) && match(loc.WorkTime, workTime) {
			out = append(out, loc)
		}
	}
	return out
}
