package domain

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClient:
		return true
	}
	return false
}

type User struct {
	ID           uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"size:100"`
	Username     string `json:"username" gorm:"size:100;not null;uniqueIndex"`
	Email        string `json:"email" gorm:"size:150;not null;uniqueIndex"`
	PasswordHash string `json:"-" gorm:"column:password;size:255;not null"`
	Role         Role   `json:"role" gorm:"size:50;not null;default:'client'"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserPatch is a partial profile update; nil fields stay untouched.
// Password is plaintext here and hashed by the service before it reaches
// storage.
type UserPatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}
