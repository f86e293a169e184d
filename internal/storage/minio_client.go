package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"healthcommunity/internal/config"
)

var logger = loggo.GetLogger("healthcommunity.storage")

// Storage keeps account avatars in object storage.
type Storage interface {
	UploadAvatar(ctx context.Context, accountID string, fileName string, file io.Reader, size int64) (string, string, error)
	DeleteObject(ctx context.Context, objectName string) error
	ObjectURL(ctx context.Context, objectName string) (string, error)
}

type MinIOClient struct {
	client *minio.Client
	config config.MinIO
}

// NewMinIOClient connects to MinIO and makes sure the avatar bucket exists.
func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, errors.Annotate(err, "creating minio client")
	}

	m := &MinIOClient{client: client, config: cfg.MinIO}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := m.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.config.BucketName)
	if err != nil {
		return errors.Annotatef(err, "checking bucket %s", m.config.BucketName)
	}
	if exists {
		return nil
	}

	err = m.client.MakeBucket(ctx, m.config.BucketName, minio.MakeBucketOptions{Region: m.config.Region})
	if err != nil {
		return errors.Annotatef(err, "creating bucket %s", m.config.BucketName)
	}
	logger.Infof("created bucket %s", m.config.BucketName)
	return nil
}

// avatarObjectName lays avatars out as avatars/<account>/<year>/<month>/<uuid><ext>.
func avatarObjectName(accountID, fileName string, now time.Time) (string, string) {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	contentType := mime.TypeByExtension(fileExt)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := fmt.Sprintf("avatars/%s/%d/%02d/%s%s",
		accountID,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		fileExt)

	return objectName, contentType
}

func (m *MinIOClient) UploadAvatar(ctx context.Context, accountID string, fileName string, file io.Reader, size int64) (string, string, error) {
	now := time.Now()
	objectName, contentType := avatarObjectName(accountID, fileName, now)

	_, err := m.client.PutObject(ctx, m.config.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"account-id":        accountID,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", errors.Annotatef(err, "uploading %s", objectName)
	}

	imageURL, err := m.ObjectURL(ctx, objectName)
	if err != nil {
		return "", "", err
	}

	return objectName, imageURL, nil
}

// ObjectURL returns a presigned GET URL valid for the configured expiry.
func (m *MinIOClient) ObjectURL(ctx context.Context, objectName string) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.config.BucketName, objectName, m.config.URLExpiry, url.Values{})
	if err != nil {
		return "", errors.Annotatef(err, "presigning %s", objectName)
	}
	return u.String(), nil
}

func (m *MinIOClient) DeleteObject(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.config.BucketName, objectName,
		minio.RemoveObjectOptions{
			GovernanceBypass: true,
		})
	if err != nil {
		return errors.Annotatef(err, "deleting %s", objectName)
	}
	return nil
}

// ObjectNameFromURL recovers the object name from a URL produced by
// ObjectURL. It returns "" for URLs outside bucket.
func ObjectNameFromURL(rawURL, bucket string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	prefix := "/" + bucket + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return ""
	}
	return strings.TrimPrefix(u.Path, prefix)
}
