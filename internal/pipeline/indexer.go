// Package pipeline 定义了内容索引与事件落库的核心流程。
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"portfolio-ai-go/internal/config"
	"portfolio-ai-go/internal/model"
	"portfolio-ai-go/pkg/embedding"
	"portfolio-ai-go/pkg/es"
	"portfolio-ai-go/pkg/log"
	"strings"
	"unicode/utf8"
)

// Indexer 把内容文件切块、向量化并索引到 Elasticsearch。
type Indexer struct {
	embeddingClient embedding.Client
	embeddingCfg    config.EmbeddingConfig
}

// NewIndexer 创建一个新的 Indexer 实例。
func NewIndexer(embeddingClient embedding.Client, embeddingCfg config.EmbeddingConfig) *Indexer {
	return &Indexer{
		embeddingClient: embeddingClient,
		embeddingCfg:    embeddingCfg,
	}
}

// IndexContent 处理一份内容文本：切块、向量化、写入指定索引。
// source 用于生成稳定的文档 ID，重复索引同一来源会覆盖旧文档。
func (idx *Indexer) IndexContent(ctx context.Context, indexName, source, content string) error {
	log.Infof("[Indexer] 开始索引内容, index: %s, source: %s, 长度: %d 字符", indexName, source, utf8.RuneCountInString(content))

	if strings.TrimSpace(content) == "" {
		return errors.New("内容为空")
	}

	chunks := splitText(content, 500, 50)
	if len(chunks) == 0 {
		return errors.New("未生成任何文本分块")
	}
	log.Infof("[Indexer] 文本分块完成, 共 %d 个分块", len(chunks))

	for i, chunk := range chunks {
		vector, err := idx.embeddingClient.CreateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("块 %d 向量化失败: %w", i, err)
		}

		esDoc := model.EsDocument{
			VectorID:     fmt.Sprintf("%s_%d", source, i),
			Source:       source,
			ChunkID:      i,
			TextContent:  chunk,
			Vector:       vector,
			ModelVersion: idx.embeddingCfg.Model,
		}
		if err := es.IndexDocument(ctx, indexName, esDoc); err != nil {
			return fmt.Errorf("索引块 %d 到 Elasticsearch 失败: %w", i, err)
		}
		log.Infof("[Indexer] 分块 %d/%d 向量化并索引成功", i+1, len(chunks))
	}

	log.Infof("[Indexer] 内容索引完成, source: %s", source)
	return nil
}

// splitText 将长文本按指定大小和重叠进行切分。
func splitText(text string, chunkSize int, chunkOverlap int) []string {
	if chunkSize <= chunkOverlap {
		return simpleSplit(text, chunkSize)
	}

	var chunks []string
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := chunkSize - chunkOverlap
	for i := 0; i < len(runes); i += step {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}

func simpleSplit(text string, chunkSize int) []string {
	var chunks []string
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	for i := 0; i < len(runes); i += chunkSize {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
