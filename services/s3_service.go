package services

import (
	"context"
	"os"
	"time"

	"vidtube_server/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var s3Client *s3.Client

func init() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		panic(err)
	}
	s3Client = s3.NewFromConfig(cfg)
}

// Asset classes map to key prefixes so lifecycle rules can differ per class.
var assetPrefixes = map[string]string{
	"video":     "videos/",
	"thumbnail": "thumbnails/",
	"avatar":    "avatars/",
	"cover":     "covers/",
}

// GenerateUploadURL generates a presigned URL for uploading a media asset.
// The upload bypasses the API process entirely; only the object key comes
// back through the publish/register endpoints.
func GenerateUploadURL(assetType, fileName, fileType string) (string, string, error) {
	prefix, ok := assetPrefixes[assetType]
	if !ok {
		return "", "", utils.BadRequest("unknown asset type")
	}

	key := prefix + uuid.New().String() + "-" + fileName
	params := &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET_NAME")),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presigner := s3.NewPresignClient(s3Client)
	presignedURL, err := presigner.PresignPutObject(context.TODO(), params, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}
	return presignedURL.URL, key, nil
}

// GenerateReadURL generates a presigned URL for reading a stored asset.
func GenerateReadURL(key string) (string, error) {
	params := &s3.GetObjectInput{
		Bucket: aws.String(os.Getenv("S3_BUCKET_NAME")),
		Key:    aws.String(key),
	}
	presigner := s3.NewPresignClient(s3Client)
	presignedURL, err := presigner.PresignGetObject(context.TODO(), params, s3.WithPresignExpires(time.Hour))
	if err != nil {
		return "", err
	}
	return presignedURL.URL, nil
}
