package service

import (
	"context"
	"mime/multipart"

	"github.com/leon37/socializer/internal/apperr"
	"github.com/leon37/socializer/internal/infrastructure/imagestore"
	"github.com/leon37/socializer/internal/model"
)

// 允许上传的图片 MIME 类型，和前端约定保持一致
var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/avif": true,
	"image/webp": true,
}

func validImageType(file *multipart.FileHeader) bool {
	return allowedImageTypes[file.Header.Get("Content-Type")]
}

// uploadImage 打开 multipart 文件并推到图床，失败统一包装成 500
func uploadImage(ctx context.Context, store imagestore.Provider, file *multipart.FileHeader) (model.Avatar, error) {
	f, err := file.Open()
	if err != nil {
		return model.Avatar{}, apperr.Upload("Error reading uploaded picture")
	}
	defer f.Close()

	avatar, err := store.Upload(ctx, file.Filename, f, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return model.Avatar{}, apperr.Upload("Error uploading picture to image store")
	}
	return avatar, nil
}
