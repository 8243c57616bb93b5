package composer

import "portfolio-ai-go/internal/model"

// 结构化卡片使用的个人资料数据。与 content/profile.md 保持一致，
// 前者驱动卡片渲染，后者驱动向量检索。

var projects = []model.Project{
	{
		Title:        "GitSplit",
		Description:  "Open-source funding platform that splits donations between maintainers and contributors, built at ETHGlobal.",
		Technologies: []string{"Next.js", "TypeScript", "Solidity", "Ethereum", "The Graph"},
		Link:         "https://github.com/rockygeekz/gitsplit",
	},
	{
		Title:        "Cryptorage",
		Description:  "Chrome extension for secure storage of screenshots and snippets on Walrus over the Sui blockchain, winner at DoraHacks.",
		Technologies: []string{"React", "TypeScript", "Sui", "Walrus", "Chrome Extension API"},
		Link:         "https://github.com/rockygeekz/cryptorage",
	},
	{
		Title:        "Terminal AI Assistant",
		Description:  "CLI tool published as an npm package that turns natural language into shell commands and runs them step by step.",
		Technologies: []string{"Node.js", "TypeScript", "OpenAI API"},
		Link:         "https://www.npmjs.com/package/terminal-ai-assistant",
	},
}

var projectByTag = map[string]model.Project{
	"gitsplit_project":    projects[0],
	"cryptorage_project":  projects[1],
	"terminal_ai_project": projects[2],
}

var skills = []model.Skill{
	{Name: "JavaScript", Category: "Languages"},
	{Name: "TypeScript", Category: "Languages"},
	{Name: "Python", Category: "Languages"},
	{Name: "Solidity", Category: "Languages"},
	{Name: "React", Category: "Frontend"},
	{Name: "Next.js", Category: "Frontend"},
	{Name: "Tailwind CSS", Category: "Frontend"},
	{Name: "Node.js", Category: "Backend"},
	{Name: "Express", Category: "Backend"},
	{Name: "PostgreSQL", Category: "Backend"},
	{Name: "MongoDB", Category: "Backend"},
	{Name: "Ethereum", Category: "Blockchain"},
	{Name: "Sui", Category: "Blockchain"},
	{Name: "Docker", Category: "DevOps"},
	{Name: "Git", Category: "DevOps"},
}

var experience = []model.Experience{
	{
		Title:       "Software Developer Intern",
		Company:     "Lazarus Network Inc.",
		Period:      "2024 - Present",
		Description: "Working on decentralized VPN and network infrastructure across the Erebrus and NetSepio products.",
	},
}

var education = []model.Education{
	{
		Title:       "BE in Computer Engineering",
		Institution: "AISSMS College of Engineering, Pune",
		Period:      "2021 - 2025",
		Description: "Undergraduate degree in computer engineering.",
	},
}

var contact = model.Contact{
	Email:     "rakesh.s552004@gmail.com",
	Phone:     "+917022757953",
	Location:  "Pune, India",
	LinkedIn:  "https://www.linkedin.com/in/rakesh-s-52b94a256",
	GitHub:    "https://github.com/rockygeekz",
	Portfolio: "https://rockygeekz.dev",
}

var awards = []model.Award{
	{Title: "Solana Radar Hackathon", Description: "Winner with a Solana-based project."},
	{Title: "Sui Overflow", Description: "Winner in the Sui Overflow global hackathon."},
	{Title: "ETHGlobal", Description: "Finalist with GitSplit, an open-source funding platform."},
}

var resumeLink = model.Link{
	Title:       "Resume",
	URL:         "https://rockygeekz.dev/resume.pdf",
	Description: "Latest resume as a PDF.",
}

var githubLink = model.Link{
	Title:       "GitHub",
	URL:         "https://github.com/rockygeekz",
	Description: "Open-source projects and experiments.",
}

var linkedinLink = model.Link{
	Title:       "LinkedIn",
	URL:         "https://www.linkedin.com/in/rakesh-s-52b94a256",
	Description: "Professional profile.",
}

var portfolioLink = model.Link{
	Title:       "Portfolio",
	URL:         "https://rockygeekz.dev",
	Description: "Personal website and portfolio.",
}

var projectLinks = []model.Link{
	{Title: "GitSplit", URL: "https://github.com/rockygeekz/gitsplit", Description: "Open-source funding platform."},
	{Title: "Cryptorage", URL: "https://github.com/rockygeekz/cryptorage", Description: "Secure storage Chrome extension."},
	{Title: "Terminal AI Assistant", URL: "https://www.npmjs.com/package/terminal-ai-assistant", Description: "Natural language CLI tool."},
}

var allLinks = append([]model.Link{resumeLink, githubLink, linkedinLink, portfolioLink}, projectLinks...)
