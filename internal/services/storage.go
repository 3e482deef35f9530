package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"sway_back_end/internal/database"
	"sway_back_end/internal/models"
)

// Indirection so tests can exercise the partial-failure path without a bucket.
var uploadObject = UploadFile

// UploadProductImages pushes each file to MinIO. A failed file is skipped
// and reported back by name; the surviving uploads still go through.
func UploadProductImages(ctx context.Context, files []*multipart.FileHeader) ([]models.ProductImage, []string) {
	uploaded := []models.ProductImage{}
	failed := []string{}

	for _, fileHeader := range files {
		imageURL, err := uploadObject(ctx, "products", fileHeader)
		if err != nil {
			log.Printf("⚠️ Image upload failed for %s: %v", fileHeader.Filename, err)
			failed = append(failed, fileHeader.Filename)
			continue
		}

		// Single rendition for now; both slots carry the object URL until an
		// image-resizing proxy sits in front of the bucket.
		uploaded = append(uploaded, models.ProductImage{
			URL:         imageURL,
			StandardURL: imageURL,
		})
	}

	return uploaded, failed
}

// UploadFile stores one multipart file under a collision-free key and
// returns its public URL.
func UploadFile(ctx context.Context, folder string, fileHeader *multipart.FileHeader) (string, error) {
	if database.MinioClient == nil {
		return "", fmt.Errorf("MinIO not initialised")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	objectName := fmt.Sprintf("%s/%s-%s", folder, uuid.NewString(), fileHeader.Filename)

	_, err = database.MinioClient.PutObject(ctx, bucket, objectName, f, fileHeader.Size,
		minio.PutObjectOptions{ContentType: fileHeader.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), bucket, objectName), nil
}

// GenerateSignedURL returns a presigned GET link for a stored object.
func GenerateSignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if database.MinioClient == nil {
		return "", fmt.Errorf("MinIO not initialised")
	}

	u, err := database.MinioClient.PresignedGetObject(ctx, os.Getenv("MINIO_BUCKET"), key, expiry, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
