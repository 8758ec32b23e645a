package jobqueue

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"github.com/antojadoapp/antojado/app/models"
	"github.com/antojadoapp/antojado/internal/pkg/database"
	"github.com/antojadoapp/antojado/internal/pkg/imaging"
	"github.com/antojadoapp/antojado/internal/pkg/s3media"
	"github.com/antojadoapp/antojado/internal/pkg/storage"
)

var (
	mediaManager     = storage.NewManager()
	s3Client         *s3media.Client
	s3ClientOnce     sync.Once
	s3ClientErr      error
	s3ConfigDisabled bool
)

// getS3Client lazily builds the shared S3 client. Returns nil without error
// when replication is disabled.
func getS3Client() (*s3media.Client, error) {
	s3ClientOnce.Do(func() {
		cfg, err := s3media.LoadConfig()
		if err != nil {
			s3ClientErr = err
			return
		}
		if !cfg.IsEnabled() {
			s3ConfigDisabled = true
			return
		}
		s3Client, s3ClientErr = s3media.NewClient(cfg)
	})
	if s3ConfigDisabled {
		return nil, nil
	}
	return s3Client, s3ClientErr
}

// processThumbnailJob generates the gallery thumbnail for a freshly uploaded
// business image and flags the record once the variant exists.
func (q *Queue) processThumbnailJob(ctx context.Context, job *Job) error {
	payload, err := ThumbnailJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid thumbnail payload: %w", err)
	}

	srcPath := mediaManager.OriginalPath(payload.BusinessID, payload.FileName)
	dstPath := mediaManager.ThumbnailPath(payload.BusinessID, payload.FileName)

	if err := imaging.GenerateThumbnail(srcPath, dstPath); err != nil {
		return fmt.Errorf("thumbnail generation for image %s failed: %w", payload.ImageUUID, err)
	}

	db := database.GetDB()
	if err := db.Model(&models.BusinessImage{}).
		Where("id = ?", payload.ImageID).
		Update("has_thumbnail", true).Error; err != nil {
		return fmt.Errorf("failed to mark thumbnail for image %s: %w", payload.ImageUUID, err)
	}

	if payload.Replicate {
		uploadPayload := S3UploadJobPayload{
			ImageID:    payload.ImageID,
			ImageUUID:  payload.ImageUUID,
			BusinessID: payload.BusinessID,
			FileName:   payload.FileName,
		}
		if _, err := q.EnqueueJob(JobTypeS3Upload, uploadPayload.ToMap()); err != nil {
			// The local copy is intact, replication can be retried later
			log.Errorf("[JobQueue] Failed to enqueue S3 upload for image %s: %v", payload.ImageUUID, err)
		}
	}

	return nil
}

// processS3UploadJob replicates the original image file into the S3 bucket.
func (q *Queue) processS3UploadJob(ctx context.Context, job *Job) error {
	payload, err := S3UploadJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid S3 upload payload: %w", err)
	}

	client, err := getS3Client()
	if err != nil {
		return fmt.Errorf("S3 client unavailable: %w", err)
	}
	if client == nil {
		log.Debugf("[JobQueue] S3 replication disabled, skipping upload for image %s", payload.ImageUUID)
		return nil
	}

	cfg, _ := s3media.LoadConfig()
	objectKey := cfg.ObjectKey(payload.BusinessID, payload.ImageUUID, payload.FileName)
	localPath := mediaManager.OriginalPath(payload.BusinessID, payload.FileName)

	if err := client.UploadFile(localPath, objectKey); err != nil {
		return err
	}

	db := database.GetDB()
	if err := db.Model(&models.BusinessImage{}).
		Where("id = ?", payload.ImageID).
		Update("in_s3", true).Error; err != nil {
		return fmt.Errorf("failed to mark S3 copy for image %s: %w", payload.ImageUUID, err)
	}

	return nil
}

// processS3DeleteJob removes the replicated copy after an image was deleted.
func (q *Queue) processS3DeleteJob(ctx context.Context, job *Job) error {
	payload, err := S3DeleteJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid S3 delete payload: %w", err)
	}

	client, err := getS3Client()
	if err != nil {
		return fmt.Errorf("S3 client unavailable: %w", err)
	}
	if client == nil {
		return nil
	}

	exists, err := client.ObjectExists(payload.ObjectKey)
	if err != nil {
		return err
	}
	if !exists {
		log.Debugf("[JobQueue] Object %s already gone, nothing to delete", payload.ObjectKey)
		return nil
	}

	return client.DeleteFile(payload.ObjectKey)
}
