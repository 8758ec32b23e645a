package jobqueue

import (
	"encoding/json"
	"time"
)

// JobType defines the type of job
type JobType string

const (
	JobTypeThumbnail JobType = "thumbnail"
	JobTypeS3Upload  JobType = "s3_upload"
	JobTypeS3Delete  JobType = "s3_delete"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job represents a background job
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
}

// ThumbnailJobPayload contains the payload for thumbnail generation jobs
type ThumbnailJobPayload struct {
	ImageID    uint   `json:"image_id"`
	ImageUUID  string `json:"image_uuid"`
	BusinessID uint   `json:"business_id"`
	FileName   string `json:"file_name"`
	Replicate  bool   `json:"replicate"` // enqueue an S3 upload after the thumbnail
}

// ToMap converts the payload to a map for storage
func (p ThumbnailJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"image_id":    p.ImageID,
		"image_uuid":  p.ImageUUID,
		"business_id": p.BusinessID,
		"file_name":   p.FileName,
		"replicate":   p.Replicate,
	}
}

// ThumbnailJobPayloadFromMap creates a payload from a map
func ThumbnailJobPayloadFromMap(data map[string]interface{}) (*ThumbnailJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload ThumbnailJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// S3UploadJobPayload contains the payload for S3 replication jobs
type S3UploadJobPayload struct {
	ImageID    uint   `json:"image_id"`
	ImageUUID  string `json:"image_uuid"`
	BusinessID uint   `json:"business_id"`
	FileName   string `json:"file_name"`
}

func (p S3UploadJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"image_id":    p.ImageID,
		"image_uuid":  p.ImageUUID,
		"business_id": p.BusinessID,
		"file_name":   p.FileName,
	}
}

func S3UploadJobPayloadFromMap(data map[string]interface{}) (*S3UploadJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload S3UploadJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// S3DeleteJobPayload contains the payload for S3 delete jobs
type S3DeleteJobPayload struct {
	ImageUUID string `json:"image_uuid"`
	ObjectKey string `json:"object_key"`
}

func (p S3DeleteJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"image_uuid": p.ImageUUID,
		"object_key": p.ObjectKey,
	}
}

func S3DeleteJobPayloadFromMap(data map[string]interface{}) (*S3DeleteJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload S3DeleteJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// IsRetryable returns true if the job can be retried
func (j *Job) IsRetryable() bool {
	return j.RetryCount < j.MaxRetries
}

// MarkAsProcessing updates the job status to processing
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.UpdatedAt = now
	j.ProcessedAt = &now
}

// MarkAsCompleted updates the job status to completed
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.UpdatedAt = now
	j.CompletedAt = &now
	j.ErrorMsg = ""
}

// MarkAsFailed updates the job status to failed
func (j *Job) MarkAsFailed(errorMsg string) {
	j.Status = JobStatusFailed
	j.UpdatedAt = time.Now()
	j.ErrorMsg = errorMsg
	j.RetryCount++
}

// MarkAsRetrying updates the job status to retrying
func (j *Job) MarkAsRetrying() {
	j.Status = JobStatusRetrying
	j.UpdatedAt = time.Now()
}
