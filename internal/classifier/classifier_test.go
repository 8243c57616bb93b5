package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"gitsplit by name", "Tell me about GitSplit", "gitsplit_project"},
		{"gitsplit by description", "what is the open-source funding platform you built", "gitsplit_project"},
		{"cryptorage by name", "How does Cryptorage work?", "cryptorage_project"},
		{"cryptorage by description", "tell me about your chrome extension", "cryptorage_project"},
		{"terminal ai by name", "what does terminal ai do", "terminal_ai_project"},
		{"terminal ai npm", "do you have an npm package", "terminal_ai_project"},
		{"email", "What is your email?", "email_contact"},
		{"phone", "can I call you on your phone", "phone_contact"},
		{"location", "where are you based", "location_contact"},
		{"resume", "send me your resume", "resume_link"},
		{"github", "share your github", "github_link"},
		{"linkedin", "are you on linkedin", "linkedin_link"},
		{"portfolio site", "link to your portfolio website please", "portfolio_link"},
		{"project links", "give me the project links", "project_links"},
		{"skills", "what technologies do you know", "skills"},
		{"projects broad", "show me your projects", "projects"},
		{"experience", "tell me about your experience at lazarus", "experience"},
		{"education", "where did you study", "education"},
		{"awards", "any hackathon wins", "awards"},
		{"no match", "hello there", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message))
		})
	}
}

// 排除词生效时应落到后面的宽泛规则，而不是直接返回空。
func TestClassifyExcludes(t *testing.T) {
	// email 和 phone 同时出现，单项联系方式规则互斥，落到宽泛 contact
	assert.Equal(t, "contact", Classify("share your email and phone"))
	// 两个项目同时出现，单项目规则互斥，落到宽泛 projects
	assert.Equal(t, "projects", Classify("compare gitsplit and cryptorage"))
	// resume 与 skills 同时出现时不返回 resume_link
	got := Classify("does your resume list your skills")
	assert.NotEqual(t, "resume_link", got)
}

// 规则顺序即优先级：具体规则必须排在宽泛规则之前。
func TestClassifyOrder(t *testing.T) {
	tags := Tags()
	idx := make(map[string]int, len(tags))
	for i, tag := range tags {
		idx[tag] = i
	}
	assert.Less(t, idx["gitsplit_project"], idx["projects"])
	assert.Less(t, idx["email_contact"], idx["contact"])
	assert.Less(t, idx["resume_link"], idx["links"])
}
