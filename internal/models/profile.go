package models

// Profile is the site owner's biography and contact details.
type Profile struct {
	Name      string       `json:"name" yaml:"name"`
	Role      string       `json:"role" yaml:"role"`
	Tagline   string       `json:"tagline" yaml:"tagline"`
	Bio       string       `json:"bio" yaml:"bio"`
	BioHTML   string       `json:"bio_html,omitempty" yaml:"-"`
	Email     string       `json:"email" yaml:"email"`
	Phone     string       `json:"phone,omitempty" yaml:"phone"`
	Location  string       `json:"location,omitempty" yaml:"location"`
	Avatar    Media        `json:"avatar" yaml:"avatar"`
	ResumeURL string       `json:"resume_url,omitempty" yaml:"resume_url"`
	Socials   []SocialLink `json:"socials" yaml:"socials"`
}

// SocialLink is a named external profile.
type SocialLink struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// SkillGroup is a titled set of skills.
type SkillGroup struct {
	Title  string  `json:"title" yaml:"title"`
	Skills []Skill `json:"skills" yaml:"skills"`
}

// Skill is a named proficiency from 0 to 100.
type Skill struct {
	Name  string `json:"name" yaml:"name"`
	Level int    `json:"level" yaml:"level"`
	Icon  string `json:"icon,omitempty" yaml:"icon"`
}

// Experience is one position held.
type Experience struct {
	Role        string `json:"role" yaml:"role"`
	Company     string `json:"company" yaml:"company"`
	Period      string `json:"period" yaml:"period"`
	Description string `json:"description" yaml:"description"`
}

// Education is one degree or course.
type Education struct {
	Degree      string `json:"degree" yaml:"degree"`
	Institution string `json:"institution" yaml:"institution"`
	Period      string `json:"period" yaml:"period"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Testimonial is a quote from a client or collaborator.
type Testimonial struct {
	Quote    string `json:"quote" yaml:"quote"`
	Author   string `json:"author" yaml:"author"`
	Position string `json:"position" yaml:"position"`
	Avatar   Media  `json:"avatar" yaml:"avatar"`
}

// ProcessStep is one stage of the development process section.
type ProcessStep struct {
	Step        string `json:"step" yaml:"step"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
}
