package service

import (
	"codequest_backend/internal/config"
	"codequest_backend/internal/util"
	"codequest_backend/pkg/logger"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider 对象存储；key 为相对路径，如 avatars/<user>/<id>.png
type StorageProvider interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	// URLPrefix 与 key 拼接得到对外访问地址
	URLPrefix() string
}

// LocalStorageProvider 写入本地目录，由 /uploads 静态路由提供访问
type LocalStorageProvider struct {
	Root string
}

func (p *LocalStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	dst := filepath.Join(p.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, reader)
	return err
}

func (p *LocalStorageProvider) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(p.Root, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (p *LocalStorageProvider) URLPrefix() string {
	return "/uploads/"
}

// MinioStorageProvider MinIO / S3 兼容存储
type MinioStorageProvider struct {
	Client *minio.Client
	Bucket string
	Public string
}

// NewMinioStorageProvider 连接 MinIO，桶不存在时创建
func NewMinioStorageProvider(cfg config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.MinioBucket, err)
		}
	}

	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}
	return &MinioStorageProvider{
		Client: client,
		Bucket: cfg.MinioBucket,
		Public: fmt.Sprintf("%s://%s/%s/", scheme, cfg.MinioEndpoint, cfg.MinioBucket),
	}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := p.Client.PutObject(ctx, p.Bucket, key, reader, size, minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (p *MinioStorageProvider) Delete(ctx context.Context, key string) error {
	return p.Client.RemoveObject(ctx, p.Bucket, key, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) URLPrefix() string {
	return p.Public
}

// OSSStorageProvider 阿里云 OSS
type OSSStorageProvider struct {
	Bucket *oss.Bucket
	Public string
}

func NewOSSStorageProvider(cfg config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.OSSEndpoint, "https://"), "http://")
	return &OSSStorageProvider{
		Bucket: bucket,
		Public: fmt.Sprintf("https://%s.%s/", cfg.OSSBucket, endpoint),
	}, nil
}

func (p *OSSStorageProvider) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	return p.Bucket.PutObject(key, reader, oss.ContentType(contentType), oss.WithContext(ctx))
}

func (p *OSSStorageProvider) Delete(ctx context.Context, key string) error {
	return p.Bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (p *OSSStorageProvider) URLPrefix() string {
	return p.Public
}

// StorageService 按配置选择存储，远端初始化失败时回退到本地目录
type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.Config) *StorageService {
	var (
		provider StorageProvider
		err      error
	)

	switch cfg.Storage.Type {
	case util.StorageMinio:
		provider, err = NewMinioStorageProvider(cfg.Storage)
	case util.StorageOSS:
		provider, err = NewOSSStorageProvider(cfg.Storage)
	}
	if err != nil {
		logger.Log.Warn("remote storage unavailable, falling back to local",
			zap.String("type", cfg.Storage.Type), zap.Error(err))
		provider = nil
	}

	if provider == nil {
		provider = &LocalStorageProvider{Root: cfg.Storage.LocalPath}
	}
	return &StorageService{Provider: provider}
}

// Upload 返回对外访问地址
func (s *StorageService) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	if err := s.Provider.Upload(ctx, key, reader, size, contentType); err != nil {
		return "", err
	}
	return s.Provider.URLPrefix() + key, nil
}

// KeyFromURL 仅识别当前存储生成的地址，外部头像（如 OAuth 头像）返回 false
func (s *StorageService) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, s.Provider.URLPrefix())
	return key, ok && key != ""
}

// DeleteByURL 删除由当前存储生成的对象，其余地址忽略
func (s *StorageService) DeleteByURL(ctx context.Context, url string) error {
	key, ok := s.KeyFromURL(url)
	if !ok {
		return nil
	}
	return s.Provider.Delete(ctx, key)
}
