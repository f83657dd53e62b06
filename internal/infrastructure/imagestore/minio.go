// Package imagestore 封装图片托管：上传返回 {public_id, url}，删除按 public_id。
// 底层是 MinIO (S3 兼容)，business 层只依赖 Provider 接口
package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/url"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/leon37/socializer/internal/config"
	"github.com/leon37/socializer/internal/model"
)

// 超过这个边长的图会被等比缩小，省流量；解不出来的格式 (avif/webp) 原样上传
const maxDimension = 1024

// Provider 定义业务层用到的图床能力 (接口方便测试注入假实现)
type Provider interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (model.Avatar, error)
	Delete(ctx context.Context, publicID string) error
}

type MinioStore struct {
	client *minio.Client
	cfg    config.StorageConfig
}

func NewMinioStore(cfg config.StorageConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化 MinIO 客户端失败: %w", err)
	}
	return &MinioStore{client: client, cfg: cfg}, nil
}

// EnsureBucket 启动时保证 bucket 存在，缺了直接建
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		return s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{})
	}
	return nil
}

// Upload 上传一张图，返回 public_id (对象名) 和访问 URL
func (s *MinioStore) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (model.Avatar, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return model.Avatar{}, fmt.Errorf("读取上传文件失败: %w", err)
	}

	// png/jpeg 能解码就压一下尺寸，失败不算错，照传原图
	if resized, ok := shrink(data); ok {
		data = resized
		contentType = "image/jpeg"
		filename = replaceExt(filename, ".jpg")
	}

	id, _ := uuid.NewV7()
	objectName := id.String() + filepath.Ext(filename)

	_, err = s.client.PutObject(ctx, s.cfg.Bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return model.Avatar{}, fmt.Errorf("上传对象失败: %w", err)
	}

	return model.Avatar{PublicID: objectName, URL: s.publicURL(objectName)}, nil
}

// Delete 按 public_id 删除对象
func (s *MinioStore) Delete(ctx context.Context, publicID string) error {
	return s.client.RemoveObject(ctx, s.cfg.Bucket, publicID, minio.RemoveObjectOptions{})
}

func (s *MinioStore) publicURL(objectName string) string {
	if s.cfg.PublicURL != "" {
		return s.cfg.PublicURL + "/" + objectName
	}
	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   s.cfg.Endpoint,
		Path:   "/" + s.cfg.Bucket + "/" + objectName,
	}).String()
}

// shrink 尝试把过大的图缩到 maxDimension 以内，返回 (数据, 是否重编码)
func shrink(data []byte) ([]byte, bool) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	bounds := img.Bounds()
	if bounds.Dx() <= maxDimension && bounds.Dy() <= maxDimension {
		return nil, false
	}
	resized := imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

func replaceExt(filename, ext string) string {
	return filename[:len(filename)-len(filepath.Ext(filename))] + ext
}
