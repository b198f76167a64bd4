package domain

import "time"

type Profile struct {
	ID             string       `json:"_id"`
	UserID         string       `json:"user"`
	Handle         string       `json:"handle"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Status         string       `json:"status"`
	GithubUsername string       `json:"githubusername,omitempty"`
	Skills         []string     `json:"skills"`
	Social         SocialLinks  `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Date           time.Time    `json:"date"`
}

// SocialLinks holds the fixed set of social network links of a profile.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type Experience struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

func (e Experience) Key() string { return e.ID }

type Education struct {
	ID           string     `json:"_id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

func (e Education) Key() string { return e.ID }

// Clone returns a deep copy so that stored documents never share slices with callers.
func (p *Profile) Clone() *Profile {
	c := *p
	if p.Skills != nil {
		c.Skills = append([]string(nil), p.Skills...)
	}
	if p.Experience != nil {
		c.Experience = make([]Experience, len(p.Experience))
		for i, e := range p.Experience {
			e.To = cloneTime(e.To)
			c.Experience[i] = e
		}
	}
	if p.Education != nil {
		c.Education = make([]Education, len(p.Education))
		for i, e := range p.Education {
			e.To = cloneTime(e.To)
			c.Education[i] = e
		}
	}
	return &c
}

// ProfileView is a profile with its owning user populated.
type ProfileView struct {
	*Profile
	User *UserRef `json:"user"`
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
