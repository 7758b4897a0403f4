package model

// Journey is a career timeline entry. Skills is free text, not a reference to Skill.
type Journey struct {
	Base         `bson:",inline"`
	Title        string      `json:"title" bson:"title" mod:"trim" validate:"required"`
	Organization string      `json:"organization" bson:"organization" mod:"trim" validate:"required"`
	Type         JourneyType `json:"type" bson:"type" validate:"required,oneof=education work achievement"`
	Description  string      `json:"description" bson:"description" mod:"trim" validate:"required"`
	StartDate    Date        `json:"startDate" bson:"startDate" validate:"required"`
	EndDate      *Date       `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Current      bool        `json:"current" bson:"current"`
	Location     string      `json:"location,omitempty" bson:"location,omitempty" mod:"trim"`
	Skills       []string    `json:"skills" bson:"skills" mod:"dive,trim"`
	Order        int         `json:"order" bson:"order"`
}

// NewJourney returns a journey entry carrying the creation defaults.
func NewJourney() *Journey {
	return &Journey{Skills: []string{}}
}

// FillDefaults replaces values a client may have nulled out.
func (j *Journey) FillDefaults() {
	if j.Skills == nil {
		j.Skills = []string{}
	}
}
