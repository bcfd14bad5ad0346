package model

import "github.com/roach88/objstore/internal/attr"

// Kind tags. Each is the __class__ value written for the kind.
const (
	KindBaseModel = "BaseModel"
	KindUser      = "User"
	KindState     = "State"
	KindCity      = "City"
	KindAmenity   = "Amenity"
	KindPlace     = "Place"
	KindReview    = "Review"
)

// BaseModel is the plain entity with no attributes of its own.
type BaseModel struct {
	Base
}

// NewBaseModel creates a fresh BaseModel registered with s.
func NewBaseModel(s Store) *BaseModel {
	m := &BaseModel{}
	initFresh(s, m)
	return m
}

// Kind returns KindBaseModel.
func (*BaseModel) Kind() string { return KindBaseModel }

// Attributes returns the reserved attributes of m plus any extras it
// carried in from a reload.
func (m *BaseModel) Attributes() attr.Object { return encode(m) }

func (*BaseModel) fields() []field { return nil }

// User is an account holder.
type User struct {
	Base
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// NewUser creates a fresh User registered with s.
func NewUser(s Store) *User {
	u := &User{}
	initFresh(s, u)
	return u
}

// Kind returns KindUser.
func (*User) Kind() string { return KindUser }

// Attributes returns the mapping persisted for u, including the password
// as held.
func (u *User) Attributes() attr.Object { return encode(u) }

func (u *User) fields() []field {
	return []field{
		stringField("email", &u.Email),
		stringField("password", &u.Password),
		stringField("first_name", &u.FirstName),
		stringField("last_name", &u.LastName),
	}
}

// State is a top-level region.
type State struct {
	Base
	Name string
}

// NewState creates a fresh State registered with s.
func NewState(s Store) *State {
	st := &State{}
	initFresh(s, st)
	return st
}

// Kind returns KindState.
func (*State) Kind() string { return KindState }

// Attributes returns the mapping persisted for st.
func (st *State) Attributes() attr.Object { return encode(st) }

func (st *State) fields() []field {
	return []field{stringField("name", &st.Name)}
}

// City belongs to a State.
type City struct {
	Base
	StateID string
	Name    string
}

// NewCity creates a fresh City registered with s.
func NewCity(s Store) *City {
	c := &City{}
	initFresh(s, c)
	return c
}

// Kind returns KindCity.
func (*City) Kind() string { return KindCity }

// Attributes returns the mapping persisted for c.
func (c *City) Attributes() attr.Object { return encode(c) }

func (c *City) fields() []field {
	return []field{
		stringField("state_id", &c.StateID),
		stringField("name", &c.Name),
	}
}

// Amenity is a feature a Place can offer.
type Amenity struct {
	Base
	Name string
}

// NewAmenity creates a fresh Amenity registered with s.
func NewAmenity(s Store) *Amenity {
	a := &Amenity{}
	initFresh(s, a)
	return a
}

// Kind returns KindAmenity.
func (*Amenity) Kind() string { return KindAmenity }

// Attributes returns the mapping persisted for a.
func (a *Amenity) Attributes() attr.Object { return encode(a) }

func (a *Amenity) fields() []field {
	return []field{stringField("name", &a.Name)}
}

// Place is a listing in a City owned by a User.
type Place struct {
	Base
	CityID          string
	UserID          string
	Name            string
	Description     string
	NumberRooms     int
	NumberBathrooms int
	MaxGuest        int
	PriceByNight    int
	Latitude        float64
	Longitude       float64
	AmenityIDs      []string
}

// NewPlace creates a fresh Place registered with s.
func NewPlace(s Store) *Place {
	p := &Place{}
	initFresh(s, p)
	return p
}

// Kind returns KindPlace.
func (*Place) Kind() string { return KindPlace }

// Attributes returns the mapping persisted for p. Integer attributes are
// written as Int and coordinates as Float.
func (p *Place) Attributes() attr.Object { return encode(p) }

func (p *Place) fields() []field {
	return []field{
		stringField("city_id", &p.CityID),
		stringField("user_id", &p.UserID),
		stringField("name", &p.Name),
		stringField("description", &p.Description),
		intField("number_rooms", &p.NumberRooms),
		intField("number_bathrooms", &p.NumberBathrooms),
		intField("max_guest", &p.MaxGuest),
		intField("price_by_night", &p.PriceByNight),
		floatField("latitude", &p.Latitude),
		floatField("longitude", &p.Longitude),
		stringsField("amenity_ids", &p.AmenityIDs),
	}
}

// Review is a User's text about a Place.
type Review struct {
	Base
	PlaceID string
	UserID  string
	Text    string
}

// NewReview creates a fresh Review registered with s.
func NewReview(s Store) *Review {
	r := &Review{}
	initFresh(s, r)
	return r
}

// Kind returns KindReview.
func (*Review) Kind() string { return KindReview }

// Attributes returns the mapping persisted for r.
func (r *Review) Attributes() attr.Object { return encode(r) }

func (r *Review) fields() []field {
	return []field{
		stringField("place_id", &r.PlaceID),
		stringField("user_id", &r.UserID),
		stringField("text", &r.Text),
	}
}
