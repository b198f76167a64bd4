package domain

// ProfilePatch is a partial profile update. A nil field is left untouched by
// the store; Social is replaced as a whole whenever it is non-nil.
type ProfilePatch struct {
	UserID         string
	Handle         *string
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         []string
	SkillsSet      bool
	Social         *SocialLinks
}

// ApplyTo merges the patch into p.
func (pp *ProfilePatch) ApplyTo(p *Profile) {
	if pp.UserID != "" {
		p.UserID = pp.UserID
	}
	setString(&p.Handle, pp.Handle)
	setString(&p.Company, pp.Company)
	setString(&p.Website, pp.Website)
	setString(&p.Location, pp.Location)
	setString(&p.Bio, pp.Bio)
	setString(&p.Status, pp.Status)
	setString(&p.GithubUsername, pp.GithubUsername)
	if pp.SkillsSet {
		p.Skills = append([]string(nil), pp.Skills...)
	}
	if pp.Social != nil {
		p.Social = *pp.Social
	}
}

// NewProfile builds a fresh profile document from the patch.
func (pp *ProfilePatch) NewProfile() *Profile {
	p := &Profile{
		Skills:     []string{},
		Experience: []Experience{},
		Education:  []Education{},
	}
	pp.ApplyTo(p)
	return p
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
