package main

import "portfolio-api/internal/model"

func sampleProjects() []*model.Project {
	return []*model.Project{
		{
			Title:           "Portfolio Website",
			Description:     "Personal portfolio website built with React, TypeScript, and Node.js",
			LongDescription: "A modern, responsive portfolio website featuring project showcases, skills display, and contact functionality. Built with React for the frontend and Node.js/Express for the backend API.",
			Technologies:    []string{"React", "TypeScript", "Node.js", "Express", "MongoDB", "Framer Motion"},
			Category:        model.ProjectCategoryWeb,
			Featured:        true,
			Status:          model.ProjectStatusCompleted,
			Order:           1,
			StartDate:       model.DatePtr("2024-01-01"),
			EndDate:         model.DatePtr("2024-02-01"),
		},
		{
			Title:           "E-Commerce Platform",
			Description:     "Full-stack e-commerce application with payment integration",
			LongDescription: "A complete e-commerce solution with product management, shopping cart, user authentication, and payment processing using Stripe.",
			Technologies:    []string{"Next.js", "TypeScript", "Prisma", "PostgreSQL", "Stripe", "TailwindCSS"},
			Category:        model.ProjectCategoryWeb,
			Featured:        true,
			Status:          model.ProjectStatusInProgress,
			Order:           2,
			StartDate:       model.DatePtr("2024-03-01"),
		},
		{
			Title:           "Task Management App",
			Description:     "Collaborative task management tool for teams",
			LongDescription: "A Trello-like task management application with drag-and-drop functionality, real-time updates, and team collaboration features.",
			Technologies:    []string{"React", "Redux", "Socket.io", "Node.js", "MongoDB"},
			Category:        model.ProjectCategoryWeb,
			Status:          model.ProjectStatusCompleted,
			Order:           3,
			StartDate:       model.DatePtr("2023-09-01"),
			EndDate:         model.DatePtr("2023-11-01"),
		},
	}
}

func sampleSkills() []*model.Skill {
	type row struct {
		name  string
		level int
	}
	groups := []struct {
		category model.SkillCategory
		rows     []row
	}{
		{model.SkillCategoryFrontend, []row{{"React", 90}, {"TypeScript", 85}, {"JavaScript", 95}, {"HTML/CSS", 90}, {"Next.js", 80}, {"Vue.js", 70}}},
		{model.SkillCategoryBackend, []row{{"Node.js", 85}, {"Express.js", 85}, {"Python", 75}, {"REST APIs", 90}, {"GraphQL", 70}}},
		{model.SkillCategoryDatabase, []row{{"MongoDB", 85}, {"PostgreSQL", 80}, {"MySQL", 75}, {"Redis", 70}}},
		{model.SkillCategoryTools, []row{{"Git", 90}, {"Docker", 75}, {"AWS", 70}, {"VS Code", 95}, {"Postman", 85}}},
	}
	var out []*model.Skill
	for _, g := range groups {
		for i, r := range g.rows {
			out = append(out, &model.Skill{Name: r.name, Category: g.category, Level: r.level, Order: i + 1})
		}
	}
	return out
}

func sampleJourney() []*model.Journey {
	return []*model.Journey{
		{
			Title:        "Bachelor of Computer Science",
			Organization: "University Name",
			Type:         model.JourneyTypeEducation,
			Description:  "Studying Computer Science with focus on software engineering and web development. Relevant coursework includes Data Structures, Algorithms, Database Systems, and Web Technologies.",
			StartDate:    model.MustDate("2020-09-01"),
			Current:      true,
			Location:     "City, Country",
			Skills:       []string{"Programming", "Data Structures", "Algorithms", "Web Development"},
			Order:        1,
		},
		{
			Title:        "Full Stack Developer Intern",
			Organization: "Tech Company Inc.",
			Type:         model.JourneyTypeWork,
			Description:  "Developed and maintained web applications using React and Node.js. Collaborated with senior developers on feature implementation and bug fixes. Participated in code reviews and agile development processes.",
			StartDate:    model.MustDate("2023-06-01"),
			EndDate:      model.DatePtr("2023-08-31"),
			Location:     "Remote",
			Skills:       []string{"React", "Node.js", "MongoDB", "Git", "Agile"},
			Order:        2,
		},
		{
			Title:        "Hackathon Winner",
			Organization: "National Tech Hackathon 2023",
			Type:         model.JourneyTypeAchievement,
			Description:  "Won first place in a 48-hour hackathon by developing an innovative solution for sustainable agriculture using IoT and machine learning.",
			StartDate:    model.MustDate("2023-10-15"),
			EndDate:      model.DatePtr("2023-10-17"),
			Location:     "City, Country",
			Skills:       []string{"IoT", "Machine Learning", "Python", "Team Collaboration"},
			Order:        3,
		},
		{
			Title:        "Frontend Developer",
			Organization: "Startup XYZ",
			Type:         model.JourneyTypeWork,
			Description:  "Building responsive and performant user interfaces using React and TypeScript. Implementing design systems and component libraries. Optimizing application performance and user experience.",
			StartDate:    model.MustDate("2024-01-01"),
			Current:      true,
			Location:     "Hybrid",
			Skills:       []string{"React", "TypeScript", "TailwindCSS", "Figma", "Performance Optimization"},
			Order:        4,
		},
	}
}
