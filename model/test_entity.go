package model

// TestEntity is a persisted record with a store assigned id and an optional name.
// ID is nil until the entity is saved for the first time.
type TestEntity struct {
	ID   *int64  `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
}

// TestEntityKey is the comparable form of a TestEntity, usable as a map key.
type TestEntityKey struct {
	ID      int64
	HasID   bool
	Name    string
	HasName bool
}

// NewTestEntity returns an unsaved entity without a name.
func NewTestEntity() *TestEntity {
	return &TestEntity{}
}

// ChangeName sets the name and returns the entity itself.
func (e *TestEntity) ChangeName(name string) *TestEntity {
	e.Name = &name
	return e
}

// Equal reports whether both entities have the same id and the same name.
// Unset fields are only equal to unset fields.
func (e *TestEntity) Equal(other *TestEntity) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Key() == other.Key()
}

// Key returns the comparable key of the entity.
func (e *TestEntity) Key() TestEntityKey {
	var key TestEntityKey
	if e.ID != nil {
		key.ID = *e.ID
		key.HasID = true
	}
	if e.Name != nil {
		key.Name = *e.Name
		key.HasName = true
	}
	return key
}

// GetID returns the id, or 0 if the entity was never saved.
func (e *TestEntity) GetID() int64 {
	if e.ID == nil {
		return 0
	}
	return *e.ID
}

// GetName returns the name, or an empty string if it is unset.
func (e *TestEntity) GetName() string {
	if e.Name == nil {
		return ""
	}
	return *e.Name
}
