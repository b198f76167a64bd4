package profile

import (
	"strings"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
)

// ProfileInput is the sparse create-or-update payload. A nil field was not
// sent by the client.
type ProfileInput struct {
	Handle         *string `json:"handle" binding:"required,min=2,max=40"`
	Company        *string `json:"company" binding:"omitempty,max=100"`
	Website        *string `json:"website" binding:"omitempty,urlorempty"`
	Location       *string `json:"location" binding:"omitempty,max=100"`
	Bio            *string `json:"bio" binding:"omitempty,max=1000"`
	Status         *string `json:"status" binding:"required,min=1"`
	GithubUsername *string `json:"githubusername" binding:"omitempty,max=39"`
	Skills         *string `json:"skills" binding:"required,min=1"`
	Youtube        *string `json:"youtube" binding:"omitempty,urlorempty"`
	Twitter        *string `json:"twitter" binding:"omitempty,urlorempty"`
	Facebook       *string `json:"facebook" binding:"omitempty,urlorempty"`
	Linkedin       *string `json:"linkedin" binding:"omitempty,urlorempty"`
	Instagram      *string `json:"instagram" binding:"omitempty,urlorempty"`
}

// BuildPatch maps the populated fields of in to a partial update.
//
// Plain text fields are taken only when non-empty, so an empty string keeps
// the stored value. githubusername is taken whenever it was sent, empty or
// not. skills is split on commas as-is. Social is always set and replaces the
// stored links with the non-empty ones sent in this request.
func BuildPatch(userID string, in *ProfileInput) *domain.ProfilePatch {
	patch := &domain.ProfilePatch{
		UserID:   userID,
		Handle:   nonEmpty(in.Handle),
		Company:  nonEmpty(in.Company),
		Website:  nonEmpty(in.Website),
		Location: nonEmpty(in.Location),
		Bio:      nonEmpty(in.Bio),
		Status:   nonEmpty(in.Status),
		Social:   &domain.SocialLinks{},
	}

	if in.GithubUsername != nil {
		v := *in.GithubUsername
		patch.GithubUsername = &v
	}

	if in.Skills != nil {
		patch.Skills = strings.Split(*in.Skills, ",")
		patch.SkillsSet = true
	}

	setLink(&patch.Social.Youtube, in.Youtube)
	setLink(&patch.Social.Twitter, in.Twitter)
	setLink(&patch.Social.Facebook, in.Facebook)
	setLink(&patch.Social.Linkedin, in.Linkedin)
	setLink(&patch.Social.Instagram, in.Instagram)

	return patch
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

func setLink(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}
