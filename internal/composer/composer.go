// Package composer 把分类标签映射成回答末尾附带的结构化 JSON 数据块。
package composer

import (
	"encoding/json"
	"fmt"
	"portfolio-ai-go/internal/model"
)

// PayloadType 返回标签对应的结构化数据类型，前端据此选择卡片组件。
func PayloadType(tag string) string {
	switch tag {
	case "gitsplit_project", "cryptorage_project", "terminal_ai_project", "projects":
		return "projects"
	case "email_contact", "phone_contact", "location_contact", "contact":
		return "contact"
	case "resume_link", "github_link", "linkedin_link", "portfolio_link", "project_links", "links":
		return "links"
	case "skills":
		return "skills"
	case "experience":
		return "experience"
	case "education":
		return "education"
	case "awards":
		return "awards"
	}
	return ""
}

// Compose 返回标签对应的结构化数据块的 JSON 文本。
// 标签不在已知集合内时返回错误，调用方应跳过附加数据块。
func Compose(tag string) ([]byte, error) {
	payload := model.StructuredPayload{Type: PayloadType(tag)}

	switch tag {
	case "gitsplit_project", "cryptorage_project", "terminal_ai_project":
		payload.Data = []model.Project{projectByTag[tag]}
	case "projects":
		payload.Data = projects
	case "email_contact":
		payload.Data = model.Contact{Email: contact.Email}
	case "phone_contact":
		payload.Data = model.Contact{Phone: contact.Phone}
	case "location_contact":
		payload.Data = model.Contact{Location: contact.Location}
	case "contact":
		payload.Data = contact
	case "resume_link":
		payload.Data = []model.Link{resumeLink}
	case "github_link":
		payload.Data = []model.Link{githubLink}
	case "linkedin_link":
		payload.Data = []model.Link{linkedinLink}
	case "portfolio_link":
		payload.Data = []model.Link{portfolioLink}
	case "project_links":
		payload.Data = projectLinks
	case "links":
		payload.Data = allLinks
	case "skills":
		payload.Data = skills
	case "experience":
		payload.Data = experience
	case "education":
		payload.Data = education
	case "awards":
		payload.Data = awards
	default:
		return nil, fmt.Errorf("composer: unknown tag %q", tag)
	}

	return json.MarshalIndent(payload, "", "  ")
}
