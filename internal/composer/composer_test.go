package composer

import (
	"encoding/json"
	"testing"

	"portfolio-ai-go/internal/classifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 分类器能产出的每个标签都必须有对应的数据块。
func TestComposeCoversAllTags(t *testing.T) {
	for _, tag := range classifier.Tags() {
		payload, err := Compose(tag)
		require.NoError(t, err, "tag %s", tag)

		var decoded struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(payload, &decoded), "tag %s", tag)
		assert.Equal(t, PayloadType(tag), decoded.Type, "tag %s", tag)
		assert.NotEmpty(t, decoded.Data, "tag %s", tag)
	}
}

func TestComposeSingleProject(t *testing.T) {
	payload, err := Compose("gitsplit_project")
	require.NoError(t, err)

	var decoded struct {
		Type string `json:"type"`
		Data []struct {
			Title string `json:"title"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "projects", decoded.Type)
	require.Len(t, decoded.Data, 1)
	assert.Equal(t, "GitSplit", decoded.Data[0].Title)
}

func TestComposeSingleContactField(t *testing.T) {
	payload, err := Compose("email_contact")
	require.NoError(t, err)

	var decoded struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	// omitempty 保证单项联系方式不泄露其它字段
	assert.Len(t, decoded.Data, 1)
	assert.Contains(t, decoded.Data, "email")
}

func TestComposeUnknownTag(t *testing.T) {
	_, err := Compose("nonexistent")
	assert.Error(t, err)

	_, err = Compose("")
	assert.Error(t, err)
}
