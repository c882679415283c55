package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"ume_backend/internal/logger"
	"ume_backend/internal/models"
	"ume_backend/internal/storage"
	"ume_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// photoExtension извлекает и проверяет расширение загружаемого файла.
// Проверка идет до любых записей на диск, чтобы отказ не оставлял следов.
func photoExtension(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "", apperrors.NewUnsupportedMediaTypeError("Не удалось определить формат файлов.")
	}
	for _, allowed := range models.AllowedPhotoExtensions {
		if ext == allowed {
			return ext, nil
		}
	}
	return "", apperrors.NewUnsupportedMediaTypeError("Не допустимый формат файлов.")
}

// checkPhotoSize отклоняет файлы крупнее лимита до записи на диск
func checkPhotoSize(fh *multipart.FileHeader, maxSize int64) error {
	if maxSize > 0 && fh.Size > maxSize {
		return apperrors.NewBadRequestError(
			fmt.Sprintf("Файл %s превышает допустимый размер", fh.Filename))
	}
	return nil
}

func contentTypeForExt(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// photoPath строит путь хранения вида users/<id>/<prefix>_<uuid><ext>
func photoPath(userID uint, prefix, ext string) string {
	return fmt.Sprintf("users/%d/%s_%s%s", userID, prefix, uuid.New().String(), ext)
}

func saveUpload(ctx context.Context, st storage.Storage, fh *multipart.FileHeader, path, contentType string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()
	return st.Save(ctx, path, src, contentType)
}

// cleanupFiles удаляет уже записанные файлы при откате операции.
// Ошибки удаления только логируются: осиротевший файл безопаснее,
// чем замаскированная исходная ошибка.
func cleanupFiles(ctx context.Context, st storage.Storage, paths []string) {
	for _, path := range paths {
		if err := st.Delete(ctx, path); err != nil {
			logger.CtxWarn(ctx, "failed to clean up file", "path", path, "error", err)
		}
	}
}
