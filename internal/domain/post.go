package domain

import "time"

type Post struct {
	ID       string    `json:"_id"`
	UserID   string    `json:"user"`
	Text     string    `json:"text"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	Likes    []Like    `json:"likes"`
	Comments []Comment `json:"comments"`
	Date     time.Time `json:"date"`
}

// Like marks a post as liked by a user. A user likes a post at most once.
type Like struct {
	UserID string `json:"user"`
}

func (l Like) Key() string { return l.UserID }

type Comment struct {
	ID     string    `json:"_id"`
	UserID string    `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

func (c Comment) Key() string { return c.ID }

func (p *Post) IsOwnedBy(userID string) bool {
	return p.UserID == userID
}

func (p *Post) Clone() *Post {
	c := *p
	if p.Likes != nil {
		c.Likes = append([]Like(nil), p.Likes...)
	}
	if p.Comments != nil {
		c.Comments = append([]Comment(nil), p.Comments...)
	}
	return &c
}
