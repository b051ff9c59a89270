// Package assets quản lý ảnh câu hỏi trên Cloud Storage (bucket mặc định của Firebase).
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/CarolZhiLi/GB-quiz-portal/internal/common"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/logger"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/utility"
)

// imageRoot là prefix chung cho mọi ảnh câu hỏi trong bucket
const imageRoot = "images"

// extByContentType ánh xạ content type sang phần mở rộng file
var extByContentType = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// Store đọc/ghi ảnh câu hỏi trên bucket mặc định
type Store struct {
	bucket *storage.BucketHandle
}

// NewStore lấy bucket mặc định từ Firebase app đã khởi tạo
func NewStore(ctx context.Context) (*Store, error) {
	bucket, err := utility.GetFirebaseStorageBucket(ctx)
	if err != nil {
		return nil, err
	}
	return &Store{bucket: bucket}, nil
}

// ObjectPath dựng đường dẫn object cho ảnh của một câu hỏi:
// images/<category>/<questionId>.<ext>
func ObjectPath(category, questionID, ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	return fmt.Sprintf("%s/%s/%s.%s", imageRoot, category, questionID, ext)
}

// ExtForContentType trả về phần mở rộng file cho một content type ảnh được hỗ trợ
func ExtForContentType(contentType string) (string, error) {
	ext, ok := extByContentType[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", common.NewError(common.ErrCodeValidationFormat,
			fmt.Sprintf("Định dạng ảnh '%s' không được hỗ trợ", contentType),
			common.StatusBadRequest, nil)
	}
	return ext, nil
}

// Upload ghi dữ liệu ảnh lên bucket và trả về URL công khai của object
func (s *Store) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	obj := s.bucket.Object(objectPath)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", common.NewError(common.ErrCodeExternalService,
			fmt.Sprintf("Lỗi ghi ảnh lên storage: %v", err),
			common.StatusInternalServerError, nil)
	}
	if err := w.Close(); err != nil {
		return "", common.NewError(common.ErrCodeExternalService,
			fmt.Sprintf("Lỗi ghi ảnh lên storage: %v", err),
			common.StatusInternalServerError, nil)
	}

	// Ảnh câu hỏi được phục vụ trực tiếp cho client nên object cần đọc công khai
	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		logger.GetLogger("assets").WithField("object", objectPath).WithError(err).
			Warn("⚠️ [ASSETS] Không đặt được quyền đọc công khai cho object")
	}

	return PublicURL(obj.BucketName(), objectPath), nil
}

// Delete xóa một object; object không tồn tại không phải lỗi (idempotent)
func (s *Store) Delete(ctx context.Context, objectPath string) error {
	err := s.bucket.Object(objectPath).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return common.NewError(common.ErrCodeExternalService,
			fmt.Sprintf("Lỗi xóa ảnh trên storage: %v", err),
			common.StatusInternalServerError, nil)
	}
	return nil
}

// DeleteByURL xóa object tương ứng với một URL công khai do Upload trả về.
// URL không thuộc bucket ảnh của hệ thống được bỏ qua.
func (s *Store) DeleteByURL(ctx context.Context, rawURL string) error {
	objectPath, ok := objectPathFromURL(rawURL)
	if !ok {
		return nil
	}
	return s.Delete(ctx, objectPath)
}

// Read tải về nội dung của một object
func (s *Store) Read(ctx context.Context, objectPath string) ([]byte, error) {
	r, err := s.bucket.Object(objectPath).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, common.ErrNotFound
		}
		return nil, common.NewError(common.ErrCodeExternalService,
			fmt.Sprintf("Lỗi đọc ảnh từ storage: %v", err),
			common.StatusInternalServerError, nil)
	}
	defer r.Close()
	return io.ReadAll(r)
}

// PublicURL dựng URL công khai cho một object trong bucket
func PublicURL(bucketName, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectPath)
}

// objectPathFromURL tách object path từ URL công khai dạng
// https://storage.googleapis.com/<bucket>/images/...
func objectPathFromURL(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host != "storage.googleapis.com" {
		return "", false
	}
	// Path có dạng /<bucket>/<objectPath>
	trimmed := strings.TrimPrefix(u.Path, "/")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", false
	}
	if !strings.HasPrefix(parts[1], imageRoot+"/") {
		return "", false
	}
	return path.Clean(parts[1]), true
}
