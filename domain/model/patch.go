package model

import "fmt"

// Field is a tagged optional value for partial updates. Presence, not
// nullability, signals intent: an unset Field leaves the stored value
// untouched, a set Field overwrites it. This replaces "key absent from the
// JSON object" checks with something the type system can see.
type Field[T any] struct {
	value T
	set   bool
}

// Set returns a Field carrying v.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// IsSet reports whether the field was supplied.
func (f Field[T]) IsSet() bool {
	return f.set
}

// Value returns the carried value; only meaningful when IsSet.
func (f Field[T]) Value() T {
	return f.value
}

// RestaurantPatch is a field-level partial update. Identity fields
// (restaurantId, userId, createdAt, the key pair) are not representable here,
// which is what makes them immutable: a patch physically cannot touch them.
type RestaurantPatch struct {
	Name        Field[string]
	Location    Field[string]
	CuisineType Field[CuisineType]
	Description Field[string]
	Visited     Field[bool]
	Rating      Field[float64]
}

// IsEmpty reports whether the patch changes nothing.
func (p RestaurantPatch) IsEmpty() bool {
	return !p.Name.IsSet() && !p.Location.IsSet() && !p.CuisineType.IsSet() &&
		!p.Description.IsSet() && !p.Visited.IsSet() && !p.Rating.IsSet()
}

// Validate checks the supplied fields against domain invariants.
func (p RestaurantPatch) Validate() error {
	if p.Rating.IsSet() {
		if err := ValidateRating(p.Rating.Value()); err != nil {
			return err
		}
	}
	if p.CuisineType.IsSet() && !p.CuisineType.Value().IsValid() {
		return fmt.Errorf("invalid cuisine type: %q", p.CuisineType.Value())
	}
	return nil
}
