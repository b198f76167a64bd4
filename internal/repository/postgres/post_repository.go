package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
	"github.com/gdugdh24/devconnector-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

const postColumns = `id, user_id, text, name, avatar, likes, comments, date`

type postRow struct {
	ID       string                  `db:"id"`
	UserID   string                  `db:"user_id"`
	Text     string                  `db:"text"`
	Name     string                  `db:"name"`
	Avatar   string                  `db:"avatar"`
	Likes    jsonb[[]domain.Like]    `db:"likes"`
	Comments jsonb[[]domain.Comment] `db:"comments"`
	Date     time.Time               `db:"date"`
}

func newPostRow(p *domain.Post) *postRow {
	return &postRow{
		ID:       p.ID,
		UserID:   p.UserID,
		Text:     p.Text,
		Name:     p.Name,
		Avatar:   p.Avatar,
		Likes:    jsonb[[]domain.Like]{V: nonNil(p.Likes)},
		Comments: jsonb[[]domain.Comment]{V: nonNil(p.Comments)},
		Date:     p.Date,
	}
}

func (r *postRow) toDomain() *domain.Post {
	return &domain.Post{
		ID:       r.ID,
		UserID:   r.UserID,
		Text:     r.Text,
		Name:     r.Name,
		Avatar:   r.Avatar,
		Likes:    nonNil(r.Likes.V),
		Comments: nonNil(r.Comments.V),
		Date:     r.Date,
	}
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) repository.PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (id, user_id, text, name, avatar, likes, comments, date)
		VALUES (:id, :user_id, :text, :name, :avatar, :likes, :comments, :date)
	`
	_, err := r.db.NamedExecContext(ctx, query, newPostRow(post))
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	var row postRow
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *postRepository) List(ctx context.Context) ([]*domain.Post, error) {
	var rows []postRow
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY date DESC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	posts := make([]*domain.Post, 0, len(rows))
	for i := range rows {
		posts = append(posts, rows[i].toDomain())
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	query := `
		UPDATE posts
		SET text = :text, name = :name, avatar = :avatar, likes = :likes, comments = :comments
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, newPostRow(post))
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM posts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}
