package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"internview-backend/pkg/apperror"
	"internview-backend/pkg/security/antivirus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScanner struct {
	verdict antivirus.Verdict
	err     error
	calls   int
}

func (s *stubScanner) Scan(ctx context.Context, data []byte) (antivirus.Verdict, error) {
	s.calls++
	return s.verdict, s.err
}

func (s *stubScanner) Name() string { return "stub" }

func TestUploaderScansBeforeSaving(t *testing.T) {
	ctx := context.Background()

	t.Run("Should store clean files", func(t *testing.T) {
		uploads, dir := newUploader(t)
		scanner := &stubScanner{}
		uploads.WithScanner(scanner)

		url, err := uploads.SaveCV(ctx, pdfUpload())
		require.NoError(t, err)
		assert.Equal(t, 1, scanner.calls)
		assert.True(t, fileExists(storedFile(dir, url)))
	})

	t.Run("Should reject infected files with 400 and store nothing", func(t *testing.T) {
		uploads, dir := newUploader(t)
		uploads.WithScanner(&stubScanner{verdict: antivirus.Verdict{Infected: true, Threat: "Eicar"}})

		_, err := uploads.SaveCV(ctx, pdfUpload())
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
		assert.Empty(t, cvFiles(t, dir))
	})

	t.Run("Should fail closed when the scanner is unreachable", func(t *testing.T) {
		uploads, dir := newUploader(t)
		uploads.WithScanner(&stubScanner{err: errors.New("connection refused")})

		_, err := uploads.SaveCV(ctx, pdfUpload())
		assert.Equal(t, http.StatusServiceUnavailable, apperror.CodeOf(err))
		assert.Empty(t, cvFiles(t, dir))
	})
}

func TestUploaderRejectsInvalidCV(t *testing.T) {
	uploads, dir := newUploader(t)

	_, err := uploads.SaveCV(context.Background(), pdfUpload())
	require.NoError(t, err)

	bad := pdfUpload()
	bad.Data = []byte("not a pdf")
	_, err = uploads.SaveCV(context.Background(), bad)
	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	assert.Len(t, cvFiles(t, dir), 1)
}
