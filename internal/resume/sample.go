package resume

// Sample returns the built-in example resume. Each call returns a fresh copy.
func Sample() *Document {
	return &Document{
		SchemaVersion: SchemaVersion,
		PersonalInfo: PersonalInfo{
			Name:     "Alex Johnson",
			Email:    "alex@example.com",
			Phone:    "+1 (555) 123-4567",
			Location: "San Francisco, CA",
		},
		Summary: "Full-stack developer with 5+ years of experience building scalable web applications. " +
			"Passionate about React, Node.js, and creating excellent user experiences.",
		Education: []Education{
			{ID: "1", School: "Stanford University", Degree: "B.S.", Field: "Computer Science", GraduationDate: "May 2019"},
		},
		Experience: []Experience{
			{
				ID:          "1",
				Company:     "Tech Corp",
				Position:    "Senior Frontend Engineer",
				StartDate:   "Jan 2022",
				EndDate:     "Present",
				Description: "Led frontend architecture for 10+ products. Improved performance by 40% through optimization.",
			},
			{
				ID:          "2",
				Company:     "StartupXYZ",
				Position:    "Full Stack Developer",
				StartDate:   "Jun 2019",
				EndDate:     "Dec 2021",
				Description: "Built MVP for SaaS platform. Managed database design and API development.",
			},
		},
		Projects: []Project{
			{
				ID:           "1",
				Name:         "AI Resume Builder",
				Description:  "Web app for building AI-powered resumes with ATS scoring",
				Technologies: []string{"React", "Next.js", "TypeScript", "Tailwind CSS"},
				Link:         "https://github.com/example/resume-builder",
				GithubURL:    "",
			},
			{
				ID:           "2",
				Name:         "Task Management Dashboard",
				Description:  "Collaborative task management tool with real-time updates",
				Technologies: []string{"Node.js", "MongoDB", "Socket.io", "Vue.js"},
				Link:         "https://github.com/example/task-dashboard",
				GithubURL:    "",
			},
		},
		Skills: SkillSet{
			Technical: []string{
				"React", "Next.js", "TypeScript", "Node.js", "MongoDB",
				"PostgreSQL", "Tailwind CSS", "GraphQL", "REST APIs", "Git",
			},
			Soft:  []string{},
			Tools: []string{},
		},
		Links: Links{
			Github:   "https://github.com/example",
			LinkedIn: "https://linkedin.com/in/example",
		},
	}
}
