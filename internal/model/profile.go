package model

// Skill 代表一项技能条目。
type Skill struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Project 代表一个项目条目。
type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link,omitempty"`
}

// Experience 代表一段工作经历。
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// Education 代表一段教育经历。
type Education struct {
	Title       string `json:"title"`
	Institution string `json:"institution"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// Contact 代表联系方式。
type Contact struct {
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// Award 代表一项获奖记录。
type Award struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Link 代表一个可展示的外部链接。
type Link struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// StructuredPayload 是追加在回答末尾的结构化数据块，前端据此渲染卡片。
type StructuredPayload struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}
