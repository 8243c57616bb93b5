package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPageOrComponentSpecific(t *testing.T) {
	assert.True(t, isPageOrComponentSpecific("make the project cards blue"))
	assert.True(t, isPageOrComponentSpecific("change the home page background"))
	assert.True(t, isPageOrComponentSpecific("style the about-page"))
	assert.True(t, isPageOrComponentSpecific("tweak the hero section"))
	assert.True(t, isPageOrComponentSpecific("change #projects-title color"))
	assert.True(t, isPageOrComponentSpecific("make the header sticky"))
	assert.False(t, isPageOrComponentSpecific("make everything darker"))
	assert.False(t, isPageOrComponentSpecific("use a warmer palette"))
}

func TestNormalizeThemeScriptAlreadyWellFormed(t *testing.T) {
	input := "```js\nfunction applyThemeChanges() {\n  const changes = [];\n  changes.push(\"done\");\n  return changes;\n}\n```"
	assert.Equal(t, input, normalizeThemeScript(input))
}

func TestNormalizeThemeScriptAddsChangesTracking(t *testing.T) {
	input := "```js\nfunction applyThemeChanges() {\n  document.body.style.background = \"black\";\n}\n```"
	out := normalizeThemeScript(input)

	assert.Contains(t, out, "const changes = []")
	assert.Contains(t, out, "return changes.length > 0 ? changes")
}

func TestNormalizeThemeScriptNoCodeBlock(t *testing.T) {
	input := "I cannot generate that."
	assert.Equal(t, input, normalizeThemeScript(input))
}

func TestGenerateThemeScriptStripsPrefix(t *testing.T) {
	llmClient := &fakeLLM{answer: "```js\nfunction applyThemeChanges() {\n  const changes = [];\n  changes.push(\"x\");\n  return changes;\n}\n```"}
	svc := NewThemeService(&fakeRetrieval{passages: []string{"HOME PAGE STRUCTURE details"}}, llmClient)

	out, err := svc.GenerateThemeScript(context.Background(), "Theme: make the home page red")
	require.NoError(t, err)
	assert.Contains(t, out, "applyThemeChanges")

	// "Theme:" 前缀被剥掉后才作为 user 消息发送
	require.Len(t, llmClient.messages, 2)
	assert.Equal(t, "make the home page red", llmClient.messages[1].Content)
	// 命中页面结构检索，上下文进入 system 消息
	assert.Contains(t, llmClient.messages[0].Content, "HOME PAGE STRUCTURE")
}

func TestGenerateThemeScriptProjectFallback(t *testing.T) {
	llmClient := &fakeLLM{answer: "```js\nfunction applyThemeChanges() {\n  const changes = [];\n  changes.push(\"x\");\n  return changes;\n}\n```"}
	svc := NewThemeService(&fakeRetrieval{passages: nil}, llmClient)

	_, err := svc.GenerateThemeScript(context.Background(), "make the project cards glow")
	require.NoError(t, err)

	// 检索为空时项目类请求使用兜底结构描述
	assert.Contains(t, llmClient.messages[0].Content, "PROJECT PAGE STRUCTURE")
}
