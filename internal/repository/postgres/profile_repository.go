package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
	"github.com/gdugdh24/devconnector-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const profileColumns = `id, user_id, handle, company, website, location, bio, status,
	githubusername, skills, social, experience, education, date`

type profileRow struct {
	ID             string                     `db:"id"`
	UserID         string                     `db:"user_id"`
	Handle         string                     `db:"handle"`
	Company        string                     `db:"company"`
	Website        string                     `db:"website"`
	Location       string                     `db:"location"`
	Bio            string                     `db:"bio"`
	Status         string                     `db:"status"`
	GithubUsername string                     `db:"githubusername"`
	Skills         pq.StringArray             `db:"skills"`
	Social         jsonb[domain.SocialLinks]  `db:"social"`
	Experience     jsonb[[]domain.Experience] `db:"experience"`
	Education      jsonb[[]domain.Education]  `db:"education"`
	Date           time.Time                  `db:"date"`
}

func newProfileRow(p *domain.Profile) *profileRow {
	return &profileRow{
		ID:             p.ID,
		UserID:         p.UserID,
		Handle:         p.Handle,
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Bio:            p.Bio,
		Status:         p.Status,
		GithubUsername: p.GithubUsername,
		Skills:         pq.StringArray(nonNil(p.Skills)),
		Social:         jsonb[domain.SocialLinks]{V: p.Social},
		Experience:     jsonb[[]domain.Experience]{V: nonNil(p.Experience)},
		Education:      jsonb[[]domain.Education]{V: nonNil(p.Education)},
		Date:           p.Date,
	}
}

func (r *profileRow) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:             r.ID,
		UserID:         r.UserID,
		Handle:         r.Handle,
		Company:        r.Company,
		Website:        r.Website,
		Location:       r.Location,
		Bio:            r.Bio,
		Status:         r.Status,
		GithubUsername: r.GithubUsername,
		Skills:         nonNil([]string(r.Skills)),
		Social:         r.Social.V,
		Experience:     nonNil(r.Experience.V),
		Education:      nonNil(r.Education.V),
		Date:           r.Date,
	}
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			id, user_id, handle, company, website, location, bio, status,
			githubusername, skills, social, experience, education, date
		)
		VALUES (
			:id, :user_id, :handle, :company, :website, :location, :bio, :status,
			:githubusername, :skills, :social, :experience, :education, :date
		)
	`
	_, err := r.db.NamedExecContext(ctx, query, newProfileRow(profile))
	return err
}

func (r *profileRepository) getOne(ctx context.Context, where string, arg interface{}) (*domain.Profile, error) {
	var row profileRow
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE ` + where + ` = $1 ORDER BY date LIMIT 1`
	err := r.db.GetContext(ctx, &row, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return r.getOne(ctx, "user_id", userID)
}

// GetByHandle returns the oldest profile carrying handle. Handles are not
// unique in storage.
func (r *profileRepository) GetByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	return r.getOne(ctx, "handle", handle)
}

func (r *profileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	var rows []profileRow
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY date DESC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	profiles := make([]*domain.Profile, 0, len(rows))
	for i := range rows {
		profiles = append(profiles, rows[i].toDomain())
	}
	return profiles, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET handle = :handle, company = :company, website = :website, location = :location,
		    bio = :bio, status = :status, githubusername = :githubusername, skills = :skills,
		    social = :social, experience = :experience, education = :education
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, newProfileRow(profile))
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) ApplyPatch(ctx context.Context, userID string, patch *domain.ProfilePatch) (*domain.Profile, error) {
	sets := []string{}
	args := []interface{}{}
	argCount := 1

	set := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argCount))
		args = append(args, value)
		argCount++
	}

	if patch.Handle != nil {
		set("handle", *patch.Handle)
	}
	if patch.Company != nil {
		set("company", *patch.Company)
	}
	if patch.Website != nil {
		set("website", *patch.Website)
	}
	if patch.Location != nil {
		set("location", *patch.Location)
	}
	if patch.Bio != nil {
		set("bio", *patch.Bio)
	}
	if patch.Status != nil {
		set("status", *patch.Status)
	}
	if patch.GithubUsername != nil {
		set("githubusername", *patch.GithubUsername)
	}
	if patch.SkillsSet {
		set("skills", pq.StringArray(nonNil(patch.Skills)))
	}
	if patch.Social != nil {
		set("social", jsonb[domain.SocialLinks]{V: *patch.Social})
	}

	if len(sets) == 0 {
		return r.GetByUserID(ctx, userID)
	}

	query := fmt.Sprintf(
		`UPDATE profiles SET %s WHERE user_id = $%d RETURNING %s`,
		strings.Join(sets, ", "), argCount, profileColumns,
	)
	args = append(args, userID)

	var row profileRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	query := `DELETE FROM profiles WHERE user_id = $1`
	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
