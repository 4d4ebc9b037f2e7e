package domain

// Geographic coordinates (latitude, longitude). Either component may be
// absent: legs are produced without geocoding in the current operating mode,
// and negative geocode lookups are stored with both components nil.
type Coordinates struct {
	Lat *float64
	Lon *float64
}

// Resolved reports whether both components are present. An entry with one or
// both components missing is not a usable coordinate.
func (c Coordinates) Resolved() bool { return c.Lat != nil && c.Lon != nil }
