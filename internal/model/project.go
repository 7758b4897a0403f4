package model

// Project is a portfolio project.
type Project struct {
	Base            `bson:",inline"`
	Title           string          `json:"title" bson:"title" mod:"trim" validate:"required"`
	Description     string          `json:"description" bson:"description" mod:"trim" validate:"required"`
	LongDescription string          `json:"longDescription,omitempty" bson:"longDescription,omitempty" mod:"trim"`
	Technologies    []string        `json:"technologies" bson:"technologies" mod:"dive,trim"`
	Category        ProjectCategory `json:"category" bson:"category" validate:"required,oneof=web mobile desktop ai-ml other"`
	ImageURL        string          `json:"imageUrl,omitempty" bson:"imageUrl,omitempty" mod:"trim"`
	DemoURL         string          `json:"demoUrl,omitempty" bson:"demoUrl,omitempty" mod:"trim"`
	GithubURL       string          `json:"githubUrl,omitempty" bson:"githubUrl,omitempty" mod:"trim"`
	Featured        bool            `json:"featured" bson:"featured"`
	Order           int             `json:"order" bson:"order"`
	StartDate       *Date           `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate         *Date           `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Status          ProjectStatus   `json:"status" bson:"status" validate:"required,oneof=completed in-progress planned"`
}

// NewProject returns a project carrying the creation defaults.
func NewProject() *Project {
	return &Project{Technologies: []string{}, Status: ProjectStatusCompleted}
}

// FillDefaults replaces values a client may have nulled out.
func (p *Project) FillDefaults() {
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
}
