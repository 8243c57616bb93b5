// Package service 包含了应用的业务逻辑层。
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"portfolio-ai-go/internal/config"
	"portfolio-ai-go/internal/model"
	"portfolio-ai-go/pkg/embedding"
	"portfolio-ai-go/pkg/log"

	"github.com/elastic/go-elasticsearch/v8"
)

// RetrievalService 接口定义了向量检索操作。
type RetrievalService interface {
	// SearchProfile 在个人资料索引中检索与问题最相关的 topK 个文本分块。
	SearchProfile(ctx context.Context, query string, topK int) ([]string, error)
	// SearchTheme 在页面结构索引中检索与问题最相关的 topK 个文本分块。
	SearchTheme(ctx context.Context, query string, topK int) ([]string, error)
}

type retrievalService struct {
	embeddingClient embedding.Client
	esClient        *elasticsearch.Client
	profileIndex    string
	themeIndex      string
}

// NewRetrievalService 创建一个新的 RetrievalService 实例。
func NewRetrievalService(embeddingClient embedding.Client, esClient *elasticsearch.Client, esCfg config.ElasticsearchConfig) RetrievalService {
	return &retrievalService{
		embeddingClient: embeddingClient,
		esClient:        esClient,
		profileIndex:    esCfg.ProfileIndex,
		themeIndex:      esCfg.ThemeIndex,
	}
}

func (s *retrievalService) SearchProfile(ctx context.Context, query string, topK int) ([]string, error) {
	return s.knnSearch(ctx, s.profileIndex, query, topK)
}

func (s *retrievalService) SearchTheme(ctx context.Context, query string, topK int) ([]string, error) {
	return s.knnSearch(ctx, s.themeIndex, query, topK)
}

// knnSearch 执行一次向量 kNN 检索，返回命中分块的文本内容。
func (s *retrievalService) knnSearch(ctx context.Context, indexName, query string, topK int) ([]string, error) {
	// 1. 向量化查询
	queryVector, err := s.embeddingClient.CreateEmbedding(ctx, query)
	if err != nil {
		log.Errorf("[RetrievalService] 向量化查询失败: %v", err)
		return nil, fmt.Errorf("failed to create query embedding: %w", err)
	}

	// 2. 构建 kNN 查询
	esQuery := map[string]interface{}{
		"knn": map[string]interface{}{
			"field":          "vector",
			"query_vector":   queryVector,
			"k":              topK,
			"num_candidates": topK * 10,
		},
		"size": topK,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(esQuery); err != nil {
		return nil, fmt.Errorf("failed to encode es query: %w", err)
	}

	// 3. 执行搜索
	res, err := s.esClient.Search(
		s.esClient.Search.WithContext(ctx),
		s.esClient.Search.WithIndex(indexName),
		s.esClient.Search.WithBody(&buf),
	)
	if err != nil {
		log.Errorf("[RetrievalService] 向 Elasticsearch 发送搜索请求失败: %v", err)
		return nil, fmt.Errorf("elasticsearch search failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		bodyBytes, _ := io.ReadAll(res.Body)
		log.Errorf("[RetrievalService] Elasticsearch 返回错误, status: %s, body: %s", res.Status(), string(bodyBytes))
		return nil, fmt.Errorf("elasticsearch returned an error: %s", res.String())
	}

	// 4. 解析结果
	var esResponse struct {
		Hits struct {
			Hits []struct {
				Source model.EsDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResponse); err != nil {
		return nil, fmt.Errorf("failed to decode es response: %w", err)
	}

	passages := make([]string, 0, len(esResponse.Hits.Hits))
	for _, hit := range esResponse.Hits.Hits {
		passages = append(passages, hit.Source.TextContent)
	}
	log.Infof("[RetrievalService] 索引 '%s' 命中 %d 条, query: '%s'", indexName, len(passages), query)
	return passages, nil
}
