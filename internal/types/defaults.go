// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// NewBulletText is the placeholder for a newly added description point
const NewBulletText = "New description point"

// DefaultDocument returns the seed document used on first start and on
// recovery from a corrupt snapshot.
func DefaultDocument() ResumeDocument {
	return ResumeDocument{
		Name:                "Your Name",
		Title:               "Professional Title",
		Email:               "email@example.com",
		Phone:               "(123) 456-7890",
		Location:            "City, State",
		LinkedIn:            "linkedin.com/in/yourname",
		GitHub:              "github.com/yourname",
		ProfessionalSummary: "A brief professional summary highlighting your key qualifications and career objectives.",
		Sections: []Section{
			NewSection("education", "EDUCATION", EducationContent{
				{School: "University Name", Degree: "Degree Name", Year: "2020"},
			}),
			NewSection("experience", "EXPERIENCE", ExperienceContent{
				{
					Company:     "Company Name",
					Position:    "Job Title",
					Duration:    "2021 - Present",
					Description: []string{"Key responsibility or accomplishment"},
				},
			}),
			NewSection("skills", "TECHNICAL SKILLS", SkillsContent{
				{Key: SkillProgrammingLanguages, Items: []string{"JavaScript", "Python"}},
				{Key: SkillFrameworks, Items: []string{"React", "Node.js"}},
				{Key: SkillDatabaseManagement, Items: []string{"MongoDB", "PostgreSQL"}},
				{Key: SkillVersionControl, Items: []string{"Git", "GitHub"}},
				{Key: SkillCloudPlatforms, Items: []string{"AWS", "Firebase"}},
			}),
			NewSection("projects", "PROJECTS", ProjectsContent{
				{
					Name:        "Project Name",
					Tech:        "Technologies used",
					GithubLink:  "github.com/yourname/project",
					LiveLink:    "yourproject.com",
					Description: []string{"Bullet point 1", "Bullet point 2"},
				},
			}),
			NewSection("achievements", "ACHIEVEMENTS", AchievementsContent{
				{Name: "Achievement 1", Description: "Description"},
				{Name: "Achievement 2", Description: "Description"},
			}),
			NewSection("positionsOfResponsibility", "POSITIONS OF RESPONSIBILITY", PositionsContent{
				{
					Organization: "Organization Name",
					Position:     "Position of Responsibility 1",
					Duration:     "Date Range",
					Description:  []string{"Responsibility 1"},
				},
			}),
		},
	}
}

// DefaultSectionIDs returns the ids of the sections in DefaultDocument
func DefaultSectionIDs() []string {
	sections := DefaultDocument().Sections
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	return ids
}

// Templates for items appended by the section editors

// NewEducationItem returns the education append template
func NewEducationItem() EducationItem {
	return EducationItem{School: "New University", Degree: "New Degree", Year: "Year"}
}

// NewExperienceItem returns the experience append template
func NewExperienceItem() ExperienceItem {
	return ExperienceItem{
		Company:     "New Company",
		Position:    "Position",
		Duration:    "Date Range",
		Description: []string{"Responsibility 1"},
	}
}

// NewProjectItem returns the project append template
func NewProjectItem() ProjectItem {
	return ProjectItem{
		Name:        "New Project",
		Tech:        "Tech Stack",
		GithubLink:  "github.com",
		LiveLink:    "live.com",
		Description: []string{"Description point 1"},
	}
}

// NewAchievementItem returns the achievement append template
func NewAchievementItem() AchievementItem {
	return AchievementItem{Name: "New Achievement", Description: "Description"}
}

// NewPositionItem returns the position of responsibility append template
func NewPositionItem() PositionItem {
	return PositionItem{
		Organization: "New Organization",
		Position:     "Position",
		Duration:     "Date Range",
		Description:  []string{"Responsibility 1"},
	}
}

// TemplateContent returns the starting content for a newly added section of type t
func TemplateContent(t SectionType) Content {
	switch t {
	case SectionEducation:
		return EducationContent{NewEducationItem()}
	case SectionExperience:
		return ExperienceContent{NewExperienceItem()}
	case SectionProjects:
		return ProjectsContent{NewProjectItem()}
	case SectionAchievements:
		return AchievementsContent{NewAchievementItem()}
	case SectionPositions:
		return PositionsContent{NewPositionItem()}
	case SectionSkills:
		skills := make(SkillsContent, 0, len(SkillCategoryKeys()))
		for _, key := range SkillCategoryKeys() {
			skills = append(skills, SkillCategory{Key: key, Items: []string{}})
		}
		return skills
	case SectionSummary:
		return SummaryContent("")
	case SectionCustom:
		return CustomContent(json.RawMessage(`""`))
	}
	return nil
}
