package profile

import (
	"time"

	"github.com/google/uuid"

	"github.com/Varun5711/devconnect/internal/models/user"
)

type Social struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
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

type Profile struct {
	ID             string       `json:"_id"`
	UserID         string       `json:"user"`
	Handle         string       `json:"handle,omitempty"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Status         string       `json:"status"`
	Skills         []string     `json:"skills"`
	GitHubUsername string       `json:"githubusername,omitempty"`
	Social         Social       `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Date           time.Time    `json:"date"`
}

func New(userID string, now time.Time) *Profile {
	return &Profile{
		ID:         uuid.NewString(),
		UserID:     userID,
		Skills:     []string{},
		Experience: []Experience{},
		Education:  []Education{},
		Date:       now,
	}
}

// AddExperience puts e at the head of the list, most recent insert first.
func (p *Profile) AddExperience(e Experience) {
	p.Experience = append([]Experience{e}, p.Experience...)
}

// RemoveExperience drops the entry with the given id and reports whether one
// was found. Remaining entries keep their order.
func (p *Profile) RemoveExperience(id string) bool {
	kept := make([]Experience, 0, len(p.Experience))
	for _, e := range p.Experience {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	removed := len(kept) != len(p.Experience)
	p.Experience = kept
	return removed
}

func (p *Profile) AddEducation(e Education) {
	p.Education = append([]Education{e}, p.Education...)
}

func (p *Profile) RemoveEducation(id string) bool {
	kept := make([]Education, 0, len(p.Education))
	for _, e := range p.Education {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	removed := len(kept) != len(p.Education)
	p.Education = kept
	return removed
}

// Clone returns a deep copy safe to hand out of a shared store or cache.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Skills = append([]string{}, p.Skills...)
	c.Experience = make([]Experience, len(p.Experience))
	for i, e := range p.Experience {
		c.Experience[i] = e
		c.Experience[i].To = cloneTime(e.To)
	}
	c.Education = make([]Education, len(p.Education))
	for i, e := range p.Education {
		c.Education[i] = e
		c.Education[i].To = cloneTime(e.To)
	}
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// View is a profile joined with the public fields of its owner. The "user"
// key carries the summary instead of the bare id.
type View struct {
	Profile
	User user.Summary `json:"user"`
}

func NewView(p *Profile, owner *user.User) View {
	v := View{Profile: *p, User: user.Summary{ID: p.UserID}}
	if owner != nil {
		v.User = owner.Summary()
	}
	return v
}

type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

type DeleteResponse struct {
	Msg string `json:"msg"`
}
