package model

// ProjectCategory groups projects on the portfolio page.
type ProjectCategory string

const (
	ProjectCategoryWeb     ProjectCategory = "web"
	ProjectCategoryMobile  ProjectCategory = "mobile"
	ProjectCategoryDesktop ProjectCategory = "desktop"
	ProjectCategoryAIML    ProjectCategory = "ai-ml"
	ProjectCategoryOther   ProjectCategory = "other"
)

// ProjectStatus is the delivery state of a project.
type ProjectStatus string

const (
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusPlanned    ProjectStatus = "planned"
)

// SkillCategory groups skills on the portfolio page.
type SkillCategory string

const (
	SkillCategoryFrontend SkillCategory = "frontend"
	SkillCategoryBackend  SkillCategory = "backend"
	SkillCategoryDatabase SkillCategory = "database"
	SkillCategoryTools    SkillCategory = "tools"
	SkillCategoryOther    SkillCategory = "other"
)

// JourneyType distinguishes timeline entries.
type JourneyType string

const (
	JourneyTypeEducation   JourneyType = "education"
	JourneyTypeWork        JourneyType = "work"
	JourneyTypeAchievement JourneyType = "achievement"
)
