package usecase

import (
	"bytes"
	"context"
	"net/http"

	"internview-backend/internal/domain"
	"internview-backend/pkg/apperror"
	"internview-backend/pkg/imaging"
	"internview-backend/pkg/logger"
	"internview-backend/pkg/security"
	"internview-backend/pkg/security/antivirus"
	"internview-backend/pkg/storage"

	"github.com/gabriel-vasile/mimetype"
)

// MaxProfileImageDimension bounds the longest side of stored profile pictures.
const MaxProfileImageDimension = 1024

// Uploader validates uploads and moves them in and out of storage.
type Uploader struct {
	store        storage.Storage
	cvPolicy     security.UploadPolicy
	imagePolicy  security.UploadPolicy
	maxDimension int
	scanner      antivirus.Scanner
}

func NewUploader(store storage.Storage, maxCVSizeMB, maxImageSizeMB int) *Uploader {
	return &Uploader{
		store:        store,
		cvPolicy:     security.CVPolicy(maxCVSizeMB),
		imagePolicy:  security.ProfileImagePolicy(maxImageSizeMB),
		maxDimension: MaxProfileImageDimension,
	}
}

// WithScanner makes every save pass through s first. Without one, files are
// stored unscanned.
func (u *Uploader) WithScanner(s antivirus.Scanner) *Uploader {
	u.scanner = s
	return u
}

// SaveCV stores a PDF and returns its public path.
func (u *Uploader) SaveCV(ctx context.Context, file *domain.FileUpload) (string, error) {
	result, err := u.cvPolicy.Validate(file.Filename, file.Data)
	if err != nil {
		return "", apperror.BadRequest(err.Error())
	}
	return u.save(ctx, storage.FolderCV, result.Extension, file.Data)
}

// SaveProfileImage stores a profile picture, downscaling raster formats first.
func (u *Uploader) SaveProfileImage(ctx context.Context, file *domain.FileUpload) (string, error) {
	result, err := u.imagePolicy.Validate(file.Filename, file.Data)
	if err != nil {
		return "", apperror.BadRequest(err.Error())
	}

	data, ext, err := imaging.Fit(file.Data, result.Extension, u.maxDimension)
	if err != nil {
		return "", apperror.New(http.StatusBadRequest, "Profile picture could not be decoded", err)
	}
	return u.save(ctx, storage.FolderProfile, ext, data)
}

func (u *Uploader) save(ctx context.Context, folder, ext string, data []byte) (string, error) {
	if err := u.scan(ctx, data); err != nil {
		return "", err
	}

	key := storage.NewKey(folder, ext)
	contentType := mimetype.Detect(data).String()
	if err := u.store.Save(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return "", apperror.Internal(err)
	}
	return u.store.URL(key), nil
}

func (u *Uploader) scan(ctx context.Context, data []byte) error {
	if u.scanner == nil {
		return nil
	}
	verdict, err := u.scanner.Scan(ctx, data)
	if err != nil {
		logger.Log.Error("upload scan failed", "scanner", u.scanner.Name(), "error", err)
		return apperror.New(http.StatusServiceUnavailable, "File could not be scanned. Please try again later.", err)
	}
	if verdict.Infected {
		logger.Log.Warn("upload rejected by scanner", "scanner", u.scanner.Name(), "threat", verdict.Threat)
		return apperror.BadRequest("File rejected by malware scan")
	}
	return nil
}

// Remove deletes a previously stored file. Failures are logged and swallowed.
func (u *Uploader) Remove(ctx context.Context, url string) {
	if url == "" {
		return
	}
	key, ok := u.store.KeyFromURL(url)
	if !ok {
		logger.Log.Warn("skipping removal of unmanaged file", "url", url)
		return
	}
	if err := u.store.Delete(ctx, key); err != nil {
		logger.Log.Warn("failed to remove stored file", "key", key, "error", err)
	}
}
