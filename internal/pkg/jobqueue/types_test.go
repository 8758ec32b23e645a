package jobqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThumbnailPayloadRoundTrip(t *testing.T) {
	in := ThumbnailJobPayload{
		ImageID:    12,
		ImageUUID:  "ab-cd",
		BusinessID: 7,
		FileName:   "ab-cd.jpg",
		Replicate:  true,
	}

	out, err := ThumbnailJobPayloadFromMap(in.ToMap())
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestS3PayloadRoundTrip(t *testing.T) {
	up := S3UploadJobPayload{ImageID: 3, ImageUUID: "u", BusinessID: 9, FileName: "u.png"}
	outUp, err := S3UploadJobPayloadFromMap(up.ToMap())
	require.NoError(t, err)
	assert.Equal(t, up, *outUp)

	del := S3DeleteJobPayload{ImageUUID: "u", ObjectKey: "businesses/9/u.png"}
	outDel, err := S3DeleteJobPayloadFromMap(del.ToMap())
	require.NoError(t, err)
	assert.Equal(t, del, *outDel)
}

func TestJobStatusTransitions(t *testing.T) {
	job := &Job{Status: JobStatusPending, MaxRetries: DefaultMaxRetries}

	job.MarkAsProcessing()
	assert.Equal(t, JobStatusProcessing, job.Status)
	require.NotNil(t, job.ProcessedAt)

	job.MarkAsFailed("boom")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, "boom", job.ErrorMsg)
	assert.Equal(t, 1, job.RetryCount)
	assert.True(t, job.IsRetryable())

	job.MarkAsFailed("boom")
	job.MarkAsFailed("boom")
	assert.False(t, job.IsRetryable())

	job.MarkAsCompleted()
	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.Empty(t, job.ErrorMsg)
	require.NotNil(t, job.CompletedAt)
}
