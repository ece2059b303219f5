// Package content loads the static site data: profile, skills, timeline,
// testimonials and the project showcase.
package content

import (
	"time"

	"github.com/starford/folio/internal/models"
)

// Snapshot is one immutable, validated load of the content directory.
type Snapshot struct {
	Profile      models.Profile
	Skills       []models.SkillGroup
	Experience   []models.Experience
	Education    []models.Education
	Testimonials []models.Testimonial
	Process      []models.ProcessStep
	Projects     []models.Project

	// Checksum identifies the file set the snapshot was built from.
	Checksum string
	LoadedAt time.Time
}

// Project returns the project with id.
func (s *Snapshot) Project(id string) (models.Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// Featured returns the featured projects in content order.
func (s *Snapshot) Featured() []models.Project {
	var out []models.Project
	for _, p := range s.Projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}
