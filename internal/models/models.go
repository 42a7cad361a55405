package models

const (
	RoleRenter = "renter"
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
)

func ValidRole(role string) bool {
	return role == RoleRenter || role == RoleOwner || role == RoleAdmin
}

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

type User struct {
	ID           string `gorm:"primaryKey"            json:"id"`
	Email        string `gorm:"uniqueIndex;not null"  json:"email"`
	Name         string `gorm:"not null"              json:"name"`
	Phone        string `json:"phone"`
	PasswordHash string `gorm:"not null"              json:"-"`
	Role         string `gorm:"not null"              json:"role"`
	// always set explicitly on create; a column default would override
	// an inserted false
	Granted bool `gorm:"not null" json:"granted"`
}

type Property struct {
	ID          string   `gorm:"primaryKey"            json:"id"`
	OwnerID     string   `gorm:"index;not null"        json:"owner_id"`
	OwnerName   string   `json:"owner_name"`
	Title       string   `gorm:"not null"              json:"title"`
	Description string   `json:"description"`
	Address     string   `gorm:"not null"              json:"address"`
	Price       float64  `gorm:"not null"              json:"price"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Area        int      `json:"area"`
	Images      []string `gorm:"serializer:json"       json:"images"`
	Amenities   []string `gorm:"serializer:json"       json:"amenities"`
	Available   bool     `gorm:"not null"        json:"available"`
	CreatedAt   int64    `gorm:"not null"        json:"created_at"`
}

// Booking keeps a snapshot of the renter's name and phone at the time
// the request was made, so the record stays meaningful even if the
// profile changes later.
type Booking struct {
	ID         string  `gorm:"primaryKey"     json:"id"`
	PropertyID string  `gorm:"index;not null" json:"property_id"`
	RenterID   string  `gorm:"index;not null" json:"renter_id"`
	OwnerID    string  `gorm:"index;not null" json:"owner_id"`
	RenterName string  `json:"renter_name"`
	Phone      string  `json:"phone"`
	CheckIn    string  `json:"check_in"`
	CheckOut   string  `json:"check_out"`
	TotalPrice float64 `gorm:"not null"       json:"total_price"`
	Status     string  `gorm:"not null"       json:"status"`
	CreatedAt  int64   `gorm:"not null"       json:"created_at"`
}
