package domain

// User represents a registered account in the system.
// Maps to the 'users' table in the database.
type User struct {
	ID             int64  `json:"id" db:"id"`
	Email          string `json:"email" db:"email"`
	FullName       string `json:"full_name" db:"full_name"`
	HashedPassword string `json:"-" db:"hashed_password"`
	IsActive       bool   `json:"is_active" db:"is_active"`
	IsAdmin        bool   `json:"is_admin" db:"is_admin"`
	Language       string `json:"language" db:"language"`
}

// UserRegistration carries validated registration input.
type UserRegistration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}
