package domain

import "time"

type User struct {
	ID         int64     `json:"id" db:"id"`
	Username   string    `json:"username" db:"username"`
	Password   string    `json:"-" db:"password"`
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	Email      *string   `json:"email" db:"email"`
	Department *string   `json:"department,omitempty" db:"department"`
	IsAdmin    bool      `json:"is_admin" db:"is_admin"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
