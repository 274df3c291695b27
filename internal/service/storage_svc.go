package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ==================== 图片存储 ====================

// ImageStore 店铺图片存储（Logo、分区/商品/活动照片）
type ImageStore interface {
	// Upload 上传图片，返回公开访问 URL
	Upload(ctx context.Context, data []byte, filename string, contentType string) (string, error)

	// Delete 按 URL 删除图片
	Delete(ctx context.Context, url string) error

	// SignedURL 获取限时签名 URL（私有桶时使用）
	SignedURL(ctx context.Context, url string, expires time.Duration) (string, error)
}

// ImageStoreConfig 图片存储配置
type ImageStoreConfig struct {
	Provider  string // "s3" | "local"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	CDNDomain string // CDN 域名（可选）
	KeyPrefix string // 对象 key 前缀
	BaseDir   string // 本地存储目录
	BaseURL   string // 本地存储访问前缀
}

// NewImageStore 按配置创建存储实现，Provider 为空时走本地盘
func NewImageStore(cfg *ImageStoreConfig) (ImageStore, error) {
	switch cfg.Provider {
	case "s3":
		return newS3ImageStore(cfg)
	case "local", "":
		return newLocalImageStore(cfg)
	}
	return nil, fmt.Errorf("不支持的存储提供者: %s", cfg.Provider)
}

// objectKey 生成按日期分目录的随机对象名，避免同名覆盖
func objectKey(prefix, filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	day := time.Now().Format("2006/01/02")
	return path.Join(prefix, day, uuid.NewString()+ext)
}

// ==================== S3 ====================

type s3ImageStore struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	baseURL   string // 公开访问前缀，含 CDN 逻辑
	keyPrefix string
}

func newS3ImageStore(cfg *ImageStoreConfig) (*s3ImageStore, error) {
	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %v", err)
	}

	baseURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	if cfg.CDNDomain != "" {
		baseURL = "https://" + cfg.CDNDomain
	}

	client := s3.NewFromConfig(awsCfg)
	return &s3ImageStore{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		baseURL:   baseURL,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

func (s *s3ImageStore) Upload(ctx context.Context, data []byte, filename string, contentType string) (string, error) {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	key := objectKey(s.keyPrefix, filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("上传S3失败: %v", err)
	}
	return s.baseURL + "/" + key, nil
}

func (s *s3ImageStore) Delete(ctx context.Context, url string) error {
	key, ok := s.keyFromURL(url)
	if !ok {
		return ErrBadImageURL
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *s3ImageStore) SignedURL(ctx context.Context, url string, expires time.Duration) (string, error) {
	key, ok := s.keyFromURL(url)
	if !ok {
		return "", ErrBadImageURL
	}
	out, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return out.URL, nil
}

func (s *s3ImageStore) keyFromURL(url string) (string, bool) {
	key := strings.TrimPrefix(url, s.baseURL+"/")
	return key, key != url && key != ""
}

// ==================== 本地盘（开发环境） ====================

type localImageStore struct {
	dir     string
	baseURL string
}

func newLocalImageStore(cfg *ImageStoreConfig) (*localImageStore, error) {
	dir := cfg.BaseDir
	if dir == "" {
		dir = "./uploads"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:8080/uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %v", err)
	}
	return &localImageStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *localImageStore) Upload(ctx context.Context, data []byte, filename string, contentType string) (string, error) {
	key := objectKey("", filename)
	dst := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("写入本地文件失败: %v", err)
	}
	return s.baseURL + "/" + key, nil
}

func (s *localImageStore) Delete(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, s.baseURL+"/")
	if key == url {
		return ErrBadImageURL
	}
	return os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
}

func (s *localImageStore) SignedURL(ctx context.Context, url string, expires time.Duration) (string, error) {
	return url, nil // 本地盘无需签名
}

var ErrBadImageURL = errors.New("无法解析图片地址")
