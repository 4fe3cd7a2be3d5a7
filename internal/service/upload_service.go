package service

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/akoudje/appfbo-backend/internal/config"
	"github.com/akoudje/appfbo-backend/internal/constants"

	_ "image/jpeg"
	_ "image/png"
)

var skuFileNameReplacer = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// UploadService 文件上传服务
type UploadService struct {
	cfg config.UploadConfig
	now func() time.Time
}

// NewUploadService 创建文件上传服务实例
func NewUploadService(cfg config.UploadConfig) *UploadService {
	if strings.TrimSpace(cfg.Dir) == "" {
		cfg.Dir = "uploads"
	}
	if strings.TrimSpace(cfg.PublicPrefix) == "" {
		cfg.PublicPrefix = "/uploads"
	}
	return &UploadService{cfg: cfg, now: time.Now}
}

// SaveProductImage 保存商品图片，文件名取自 SKU，同一 SKU 覆盖旧图
func (s *UploadService) SaveProductImage(file *multipart.FileHeader, sku string) (string, error) {
	if file == nil || file.Size == 0 {
		return "", ErrUploadEmpty
	}
	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return "", fmt.Errorf("%w: max %d MB", ErrUploadTooLarge, s.cfg.MaxSize/1024/1024)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.AllowedExtensions) > 0 && ext != "" && !isAllowedExtension(ext, s.cfg.AllowedExtensions) {
		return "", fmt.Errorf("%w: extension %s", ErrUploadTypeNotAllowed, ext)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// 读取文件头部识别 MIME 类型
	buffer := make([]byte, 512)
	if _, err := src.Read(buffer); err != nil && err != io.EOF {
		return "", err
	}
	contentType := http.DetectContentType(buffer)
	if !s.isAllowedType(contentType) {
		return "", fmt.Errorf("%w: %s", ErrUploadTypeNotAllowed, contentType)
	}
	if _, _, err := decodeImageDimensions(src, contentType); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadTypeNotAllowed, err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	baseName := SafeFileName(sku)
	if baseName == "" {
		return "", fmt.Errorf("%w: sku required", ErrProductInvalid)
	}
	ext = extensionForContentType(contentType)
	dir := filepath.Join(s.cfg.Dir, constants.UploadSceneProducts)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	// 同一 SKU 只保留一个文件
	for _, old := range []string{".jpg", ".png", ".webp"} {
		if old != ext {
			_ = os.Remove(filepath.Join(dir, baseName+old))
		}
	}

	savePath := filepath.Join(dir, baseName+ext)
	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	prefix := strings.TrimRight(s.cfg.PublicPrefix, "/")
	return fmt.Sprintf("%s/%s/%s%s?v=%d", prefix, constants.UploadSceneProducts, baseName, ext, s.now().Unix()), nil
}

// SafeFileName 将 SKU 转为安全文件名
func SafeFileName(raw string) string {
	return strings.Trim(skuFileNameReplacer.ReplaceAllString(strings.TrimSpace(raw), "_"), "_")
}

func (s *UploadService) isAllowedType(contentType string) bool {
	if len(s.cfg.AllowedTypes) == 0 {
		return strings.HasPrefix(contentType, "image/")
	}
	for _, t := range s.cfg.AllowedTypes {
		if strings.EqualFold(contentType, strings.TrimSpace(t)) {
			return true
		}
	}
	return false
}

func extensionForContentType(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}

func decodeImageDimensions(src io.ReadSeeker, contentType string) (int, int, error) {
	if strings.EqualFold(contentType, "image/webp") {
		width, height, err := decodeWebPDimensions(src)
		if err != nil {
			return 0, 0, fmt.Errorf("decode webp failed: %w", err)
		}
		return width, height, nil
	}

	if _, err := src.Seek(0, 0); err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image failed: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

func decodeWebPDimensions(src io.ReadSeeker) (int, int, error) {
	if _, err := src.Seek(0, 0); err != nil {
		return 0, 0, err
	}

	header := make([]byte, 12)
	if _, err := io.ReadFull(src, header); err != nil {
		return 0, 0, err
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WEBP" {
		return 0, 0, errors.New("invalid webp header")
	}

	for {
		chunkHeader := make([]byte, 8)
		if _, err := io.ReadFull(src, chunkHeader); err != nil {
			return 0, 0, err
		}
		chunkType := string(chunkHeader[0:4])
		chunkSize := int(binary.LittleEndian.Uint32(chunkHeader[4:8]))
		if chunkSize < 0 {
			return 0, 0, errors.New("invalid webp chunk")
		}

		data := make([]byte, chunkSize)
		if _, err := io.ReadFull(src, data); err != nil {
			return 0, 0, err
		}

		if chunkType == "VP8X" {
			if len(data) < 10 {
				return 0, 0, errors.New("vp8x chunk too short")
			}
			width := 1 + int(data[4]) + int(data[5])<<8 + int(data[6])<<16
			height := 1 + int(data[7]) + int(data[8])<<8 + int(data[9])<<16
			return width, height, nil
		}
		if chunkType == "VP8 " {
			if len(data) < 10 {
				return 0, 0, errors.New("vp8 chunk too short")
			}
			width := int(binary.LittleEndian.Uint16(data[6:8]) & 0x3FFF)
			height := int(binary.LittleEndian.Uint16(data[8:10]) & 0x3FFF)
			return width, height, nil
		}
		if chunkType == "VP8L" {
			if len(data) < 5 {
				return 0, 0, errors.New("vp8l chunk too short")
			}
			if data[0] != 0x2f {
				return 0, 0, errors.New("vp8l signature invalid")
			}
			bits := binary.LittleEndian.Uint32(data[1:5])
			width := int(bits&0x3FFF) + 1
			height := int((bits>>14)&0x3FFF) + 1
			return width, height, nil
		}

		if chunkSize%2 == 1 {
			if _, err := src.Seek(1, io.SeekCurrent); err != nil {
				return 0, 0, err
			}
		}
	}
}
