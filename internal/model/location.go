package model

// Location describes a tourist location. IDs are assigned by the client on
// creation, matching the public API contract.
type Location struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Address     string            `json:"address"`
	Coords      string            `json:"coords"`
	Photo       string            `json:"photo"`
	WorkTime    string            `json:"work_time"`
	Contacts    map[string]string `json:"contacts"`
}

// LocationPatch carries the optional fields of a partial location update.
// Nil pointers leave the corresponding field untouched.
type LocationPatch struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Address     *string           `json:"address"`
	Coords      *string           `json:"coords"`
	Photo       *string           `json:"photo"`
	WorkTime    *string           `json:"work_time"`
	Contacts    map[string]string `json:"contacts"`
}
