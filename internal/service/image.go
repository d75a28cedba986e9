package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

const (
	maxUploadBytes = 10 << 20
	targetImageBytes = 500 << 10
	maxImageWidth = 1200
	maxImageHeight = 800
	startJPEGQuality = 80
	minJPEGQuality = 10
	jpegQualityStep = 10

	uploadPath = "blog-images"
)

var filenameSanitizeRe = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

type imageService struct {
	logger *zap.Logger
	httpClient *http.Client
}

func newImageService(logger *zap.Logger) Image {
	return &imageService{
		logger: logger,
		httpClient: &http.Client{Timeout: time.Second * 30},
	}
}

// Upload validates, compresses and stores a cover image, returning its
// public URL. Validation failures are rejected before any network write.
func (s *imageService) Upload(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > maxUploadBytes {
		return "", ErrImageTooLarge
	}

	img, err := decodeImage(file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return "", ErrFileMustBeImage
	}

	compressed, err := compressImage(img, targetImageBytes)
	if err != nil {
		s.logger.Sugar().Errorf("failed to compress image %s: %s", fileHeader.Filename, err.Error())
		return "", ErrInternal
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), sanitizeFilename(fileHeader.Filename))
	return s.uploadToStorage(ctx, name, compressed)
}

func decodeImage(file multipart.File, contentType string) (image.Image, error) {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	switch contentType {
	case "image/jpeg", "image/jpg":
		return jpeg.Decode(file)
	case "image/png":
		return png.Decode(file)
	case "image/gif":
		return gif.Decode(file)
	case "image/webp":
		return webp.Decode(file)
	default:
		return nil, ErrFileMustBeImage
	}
}

// compressImage downscales the image to the bounding box and re-encodes it
// as JPEG, lowering quality stepwise until the output fits the byte budget
// or the quality floor is hit.
func compressImage(img image.Image, targetBytes int) ([]byte, error) {
	scaled := downscale(img, maxImageWidth, maxImageHeight)

	var buf bytes.Buffer
	for quality := startJPEGQuality; ; quality -= jpegQualityStep {
		buf.Reset()
		if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
		if buf.Len() <= targetBytes || quality-jpegQualityStep < minJPEGQuality {
			return buf.Bytes(), nil
		}
	}
}

func downscale(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > maxWidth {
		height = height * maxWidth / width
		width = maxWidth
	}
	if height > maxHeight {
		width = width * maxHeight / height
		height = maxHeight
	}
	if width == bounds.Dx() && height == bounds.Dy() {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func sanitizeFilename(name string) string {
	return filenameSanitizeRe.ReplaceAllString(name, "_")
}

// uploadToStorage writes the compressed image to the object storage service
// at blog-images/<name> and returns the public download URL it responds
// with.
func (s *imageService) uploadToStorage(ctx context.Context, name string, data []byte) (string, error) {
	url := viper.GetString("storage.origin") + "/upload"

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)

	fileWriter, err := writer.CreateFormFile("file", name)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create file part for storage request: %s", err.Error())
		return "", ErrInternal
	}
	if _, err := fileWriter.Write(data); err != nil {
		s.logger.Sugar().Errorf("failed to write file content for storage request: %s", err.Error())
		return "", ErrInternal
	}
	if err := writer.WriteField("path", uploadPath); err != nil {
		s.logger.Sugar().Errorf("failed to write path field for storage request: %s", err.Error())
		return "", ErrInternal
	}
	if err := writer.Close(); err != nil {
		s.logger.Sugar().Errorf("failed to close writer for storage request: %s", err.Error())
		return "", ErrInternal
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &requestBody)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create storage request: %s", err.Error())
		return "", ErrInternal
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Sugar().Errorf("failed to do storage request: %s", err.Error())
		return "", ErrFailedToUploadImage
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Sugar().Errorf("failed to read storage response: %s", err.Error())
		return "", ErrInternal
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Sugar().Errorf("ERROR from storage upload, code(%d), details: %s", resp.StatusCode, string(body))
		return "", ErrFailedToUploadImage
	}

	return string(body), nil
}
