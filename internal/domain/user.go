package domain

import "time"

type User struct {
	ID       string    `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	Email    string    `json:"email" db:"email"`
	Password string    `json:"-" db:"password"`
	Avatar   string    `json:"avatar" db:"avatar"`
	Date     time.Time `json:"date" db:"date"`
}

// UserRef is the populated view of a user embedded in profile responses.
type UserRef struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (u *User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}
