// Package model 定义了与存储层对应的 Go 结构体。
package model

// EsDocument 定义了存储在 Elasticsearch 中的文档结构。
type EsDocument struct {
	VectorID     string    `json:"vector_id"` // 唯一标识，例如 source + chunkId
	Source       string    `json:"source"`    // 内容来源文件，例如 profile.md
	ChunkID      int       `json:"chunk_id"`
	TextContent  string    `json:"text_content"`
	Vector       []float32 `json:"vector"` // 文本内容的向量表示
	ModelVersion string    `json:"model_version"`
}
