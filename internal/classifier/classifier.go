// Package classifier 通过正则规则表把用户问题归类到一个话题标签。
package classifier

import (
	"regexp"
	"strings"
)

// Rule 是一条分类规则。Match 命中且所有 Excludes 都不命中时规则生效。
type Rule struct {
	Tag      string
	Match    *regexp.Regexp
	Excludes []*regexp.Regexp
}

// rules 按优先级排列：具体项目、具体联系方式、具体链接在前，宽泛话题在后。
// 匹配按顺序取第一条命中的规则。
var rules = []Rule{
	// 单个项目
	{
		Tag:   "gitsplit_project",
		Match: regexp.MustCompile(`gitsplit|funding platform|open-source funding|ethglobal`),
		Excludes: []*regexp.Regexp{
			regexp.MustCompile(`cryptorage`),
			regexp.MustCompile(`terminal ai`),
		},
	},
	{
		Tag:   "cryptorage_project",
		Match: regexp.MustCompile(`cryptorage|chrome extension|secure storage|dorahacks|walrus blockchain`),
		Excludes: []*regexp.Regexp{
			regexp.MustCompile(`gitsplit`),
			regexp.MustCompile(`terminal ai`),
		},
	},
	{
		Tag:   "terminal_ai_project",
		Match: regexp.MustCompile(`terminal ai|assistant|cli tool|command line|npm package|terminal-ai-assistant`),
		Excludes: []*regexp.Regexp{
			regexp.MustCompile(`gitsplit`),
			regexp.MustCompile(`cryptorage`),
		},
	},
	// 单项联系方式
	{
		Tag:   "email_contact",
		Match: regexp.MustCompile(`email|e-mail|mail|send.*email|send.*mail|electronic mail`),
		Excludes: []*regexp.Regexp{
			regexp.MustCompile(`phone`),
			regexp.MustCompile(`location`),
		},
	},
	{
		Tag:   "phone_contact",
		Match: regexp.MustCompile(`phone|call|mobile|cell|telephone|contact number`),
		Excludes: []*regexp.Regexp{
			regexp.MustCompile(`email`),
		},
	},
	{
		Tag:   "location_contact",
		Match: regexp.MustCompile(`location|address|where.*live|where.*based|city|town|where.*from`),
	},
	// 单个链接
	{
		Tag:   "resume_link",
		Match: regexp.MustCompile(`resume|cv|curriculum vitae`),
		Excludes: []*regexp.Regexp{
			regexp.MustCompile(`skills`),
			regexp.MustCompile(`experience`),
		},
	},
	{
		Tag:   "github_link",
		Match: regexp.MustCompile(`github|code|repository|repositories|source code`),
		Excludes: []*regexp.Regexp{
			regexp.MustCompile(`projects`),
		},
	},
	{
		Tag:   "linkedin_link",
		Match: regexp.MustCompile(`linkedin|professional profile|professional network`),
	},
	{
		Tag:   "portfolio_link",
		Match: regexp.MustCompile(`portfolio website|personal website|portfolio site`),
	},
	{
		Tag:   "project_links",
		Match: regexp.MustCompile(`project links|project urls|project websites|hackathon projects`),
	},
	// 宽泛话题
	{
		Tag:   "skills",
		Match: regexp.MustCompile(`skills|technologies|tech stack|programming|languages|frameworks|tools|libraries|proficient|expertise|capable|abilities`),
	},
	{
		Tag:   "projects",
		Match: regexp.MustCompile(`projects|portfolio|work|applications|apps|websites|developed|built|created|made|showcase|gitsplit|cryptorage|terminal ai|mystic tarot`),
	},
	{
		Tag:   "experience",
		Match: regexp.MustCompile(`experience|work history|job|career|background|employment|company|lazarus|position|role`),
	},
	{
		Tag:   "education",
		Match: regexp.MustCompile(`education|degree|university|college|school|academic|study|studied|aissms|engineering|be|computer|pune`),
	},
	{
		Tag:   "contact",
		Match: regexp.MustCompile(`contact|email|phone|reach|get in touch|connect|social media|linkedin|github|twitter|message|call`),
	},
	{
		Tag:   "awards",
		Match: regexp.MustCompile(`awards|achievements|recognition|hackathon|solana|radar|sui|overflow|won|prize|honor`),
	},
	{
		Tag:   "links",
		Match: regexp.MustCompile(`links|urls|websites|resources|portfolio|resume|github|linkedin|social|profiles|connect|follow|check out|visit`),
	},
}

// Classify 返回问题命中的第一个话题标签；没有任何规则命中时返回空串。
func Classify(message string) string {
	lower := strings.ToLower(message)
	for _, r := range rules {
		if !r.Match.MatchString(lower) {
			continue
		}
		excluded := false
		for _, ex := range r.Excludes {
			if ex.MatchString(lower) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		return r.Tag
	}
	return ""
}

// Tags 返回规则表覆盖的全部标签，顺序与优先级一致。
func Tags() []string {
	tags := make([]string, 0, len(rules))
	for _, r := range rules {
		tags = append(tags, r.Tag)
	}
	return tags
}
