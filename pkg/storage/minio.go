// Package storage 管理站点静态资产（简历 PDF 等）所在的对象存储。
package storage

import (
	"context"
	"fmt"
	"portfolio-ai-go/internal/config"
	"portfolio-ai-go/pkg/log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioClient 是一个全局的 MinIO 客户端实例。
var MinioClient *minio.Client

// InitMinIO 连接 MinIO 并确认资产存储桶可用。
// 资产由部署流程上传，服务侧只读，不负责建桶。
func InitMinIO(cfg config.MinIOConfig) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Fatalf("连接 MinIO 失败: %v", err)
	}

	exists, err := client.BucketExists(context.Background(), cfg.BucketName)
	if err != nil {
		log.Fatalf("检查资产存储桶失败: %v", err)
	}
	if !exists {
		log.Fatalf("资产存储桶 '%s' 不存在，请先创建并上传简历等资产", cfg.BucketName)
	}

	MinioClient = client
	log.Infof("MinIO 就绪, bucket: %s", cfg.BucketName)
}

// GetPresignedURL 为指定对象签发限时下载链接。
func GetPresignedURL(bucketName, objectName string, expiry time.Duration) (string, error) {
	presignedURL, err := MinioClient.PresignedGetObject(context.Background(), bucketName, objectName, expiry, nil)
	if err != nil {
		log.Errorf("签发预签名链接失败: %v", err)
		return "", fmt.Errorf("presign object %s: %w", objectName, err)
	}
	return presignedURL.String(), nil
}
