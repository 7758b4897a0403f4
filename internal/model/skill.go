package model

// Skill is a named skill with a proficiency level. Names are unique.
type Skill struct {
	Base     `bson:",inline"`
	Name     string        `json:"name" bson:"name" mod:"trim" validate:"required"`
	Category SkillCategory `json:"category" bson:"category" validate:"required,oneof=frontend backend database tools other"`
	Level    int           `json:"level" bson:"level" validate:"min=1,max=100"`
	Icon     string        `json:"icon,omitempty" bson:"icon,omitempty" mod:"trim"`
	Order    int           `json:"order" bson:"order"`
}

// DefaultSkillLevel applies when a skill is created without a level.
const DefaultSkillLevel = 50

// NewSkill returns a skill carrying the creation defaults.
func NewSkill() *Skill {
	return &Skill{Level: DefaultSkillLevel}
}
