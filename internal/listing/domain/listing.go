package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrListingExists   = errors.New("listing already exists")
	ErrInvalidListing  = errors.New("invalid listing")
)

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidListing, msg)
}

// ---------------- Enums ----------------

type PropertyType string

const (
	PropertyResidential PropertyType = "residential"
	PropertyCommercial  PropertyType = "commercial"
	PropertyIndustrial  PropertyType = "industrial"
	PropertyLand        PropertyType = "land"
)

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyResidential, PropertyCommercial, PropertyIndustrial, PropertyLand:
		return true
	}
	return false
}

type ListingStatus string

const (
	StatusAvailable         ListingStatus = "available"
	StatusSold              ListingStatus = "sold"
	StatusPending           ListingStatus = "pending"
	StatusUnderConstruction ListingStatus = "under-construction"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusPending, StatusUnderConstruction:
		return true
	}
	return false
}

// ---------------- Entity ----------------

type Coordinates struct {
	Lat float64 `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng float64 `json:"lng,omitempty" bson:"lng,omitempty"`
}

type Location struct {
	Address     string       `json:"address" bson:"address"`
	City        string       `json:"city" bson:"city"`
	State       string       `json:"state" bson:"state"`
	ZipCode     string       `json:"zipCode" bson:"zipCode"`
	Coordinates *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
}

type Specifications struct {
	Area      float64 `json:"area" bson:"area"`
	Bedrooms  int     `json:"bedrooms" bson:"bedrooms"`
	Bathrooms int     `json:"bathrooms" bson:"bathrooms"`
	Parking   int     `json:"parking" bson:"parking"`
	YearBuilt int     `json:"yearBuilt,omitempty" bson:"yearBuilt,omitempty"`
}

type Agent struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// Listing is one property on the market.
type Listing struct {
	ID             uuid.UUID      `json:"id" bson:"_id"`
	Title          string         `json:"title" bson:"title"`
	Description    string         `json:"description" bson:"description"`
	Images         []string       `json:"images" bson:"images"`
	Location       Location       `json:"location" bson:"location"`
	Price          float64        `json:"price" bson:"price"`
	PropertyType   PropertyType   `json:"propertyType" bson:"propertyType"`
	Status         ListingStatus  `json:"status" bson:"status"`
	Features       []string       `json:"features" bson:"features"`
	Specifications Specifications `json:"specifications" bson:"specifications"`
	Amenities      []string       `json:"amenities" bson:"amenities"`
	Featured       bool           `json:"featured" bson:"featured"`
	Views          int64          `json:"views" bson:"views"`
	Agent          Agent          `json:"agent" bson:"agent"`
	CreatedAt      time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// Validate checks the invariants the storage layer cannot express.
func (l *Listing) Validate() error {
	if l.Title == "" {
		return invalid("title is required")
	}
	if l.Description == "" {
		return invalid("description is required")
	}
	if l.Location.Address == "" || l.Location.City == "" || l.Location.State == "" || l.Location.ZipCode == "" {
		return invalid("address, city, state and zip code are required")
	}
	if l.Price < 0 {
		return invalid("price cannot be negative")
	}
	if !l.PropertyType.Valid() {
		return invalid(fmt.Sprintf("property type %q is not recognized", l.PropertyType))
	}
	if !l.Status.Valid() {
		return invalid(fmt.Sprintf("status %q is not recognized", l.Status))
	}
	if l.Specifications.Area < 0 {
		return invalid("area cannot be negative")
	}
	if l.Specifications.Bedrooms < 0 || l.Specifications.Bathrooms < 0 || l.Specifications.Parking < 0 {
		return invalid("bedrooms, bathrooms and parking cannot be negative")
	}
	if yb := l.Specifications.YearBuilt; yb != 0 {
		if yb < 1800 || yb > time.Now().Year()+5 {
			return invalid(fmt.Sprintf("year built %d out of range", yb))
		}
	}
	return nil
}

// ---------------- Stats ----------------

// ListingStats is the admin dashboard overview.
type ListingStats struct {
	TotalListings     int64   `json:"totalListings" bson:"totalListings"`
	AvailableListings int64   `json:"availableListings" bson:"availableListings"`
	SoldListings      int64   `json:"soldListings" bson:"soldListings"`
	PendingListings   int64   `json:"pendingListings" bson:"pendingListings"`
	AveragePrice      float64 `json:"averagePrice" bson:"averagePrice"`
	TotalViews        int64   `json:"totalViews" bson:"totalViews"`
}

// PropertyTypeStat is the per-type breakdown.
type PropertyTypeStat struct {
	PropertyType PropertyType `json:"propertyType" bson:"_id"`
	Count        int64        `json:"count" bson:"count"`
	AveragePrice float64      `json:"averagePrice" bson:"averagePrice"`
}
