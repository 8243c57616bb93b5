// Package main 是内容索引器的入口点，把本地内容文件写入向量索引。
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"portfolio-ai-go/internal/config"
	"portfolio-ai-go/internal/pipeline"
	"portfolio-ai-go/pkg/embedding"
	"portfolio-ai-go/pkg/es"
	"portfolio-ai-go/pkg/log"
)

func main() {
	configPath := flag.String("config", "./configs/config.yaml", "配置文件路径")
	profilePath := flag.String("profile", "./content/profile.md", "个人资料内容文件")
	themePath := flag.String("theme", "./content/theme-structure.md", "页面结构内容文件")
	flag.Parse()

	config.Init(*configPath)
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	if err := es.InitES(cfg.Elasticsearch, cfg.Embedding.Dimensions); err != nil {
		log.Fatalf("es 初始化失败: %v", err)
	}

	embeddingClient := embedding.NewClient(cfg.Embedding)
	indexer := pipeline.NewIndexer(embeddingClient, cfg.Embedding)

	ctx := context.Background()
	indexFile(ctx, indexer, cfg.Elasticsearch.ProfileIndex, *profilePath)
	indexFile(ctx, indexer, cfg.Elasticsearch.ThemeIndex, *themePath)

	log.Info("内容索引完成")
}

func indexFile(ctx context.Context, indexer *pipeline.Indexer, indexName, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("读取内容文件失败: %s, err: %v", path, err)
	}
	source := filepath.Base(path)
	if err := indexer.IndexContent(ctx, indexName, source, string(content)); err != nil {
		log.Fatalf("索引内容失败: %s, err: %v", path, err)
	}
}
