package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"internview-backend/internal/domain"
	"internview-backend/internal/usecase"
	"internview-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCVUsecase(t *testing.T) (domain.CVUsecase, *MockCVRepo, *usecase.Uploader, string) {
	cvRepo := new(MockCVRepo)
	uploads, dir := newUploader(t)
	return usecase.NewCVUsecase(cvRepo, uploads), cvRepo, uploads, dir
}

func cvFiles(t *testing.T, dir string) []string {
	entries, err := os.ReadDir(filepath.Join(dir, "cv"))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestCreateCV(t *testing.T) {
	ctx := context.Background()

	t.Run("Should forbid recruiters", func(t *testing.T) {
		uc, cvRepo, _, _ := newCVUsecase(t)
		_, err := uc.CreateCV(ctx, recruiter, domain.CreateCVInput{Title: "CV"})
		assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
		assert.Contains(t, err.Error(), "Only interns")
		cvRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should require authentication", func(t *testing.T) {
		uc, _, _, _ := newCVUsecase(t)
		_, err := uc.CreateCV(ctx, domain.Principal{}, domain.CreateCVInput{Title: "CV"})
		assert.Equal(t, http.StatusUnauthorized, apperror.CodeOf(err))
	})

	t.Run("Should store the PDF and own the CV as the caller", func(t *testing.T) {
		uc, cvRepo, _, dir := newCVUsecase(t)
		cvRepo.On("Create", ctx, mock.AnythingOfType("*domain.CV")).Return(nil)

		cv, err := uc.CreateCV(ctx, intern, domain.CreateCVInput{Title: "Backend", File: pdfUpload()})
		require.NoError(t, err)
		assert.Equal(t, intern.UserID, cv.UserID)
		assert.Regexp(t, `^/uploads/cv/[0-9a-f-]{36}\.pdf$`, cv.PDF)
		assert.True(t, fileExists(storedFile(dir, cv.PDF)))
	})

	t.Run("Should create a CV without a file", func(t *testing.T) {
		uc, cvRepo, _, _ := newCVUsecase(t)
		cvRepo.On("Create", ctx, mock.AnythingOfType("*domain.CV")).Return(nil)

		cv, err := uc.CreateCV(ctx, intern, domain.CreateCVInput{Title: "Draft"})
		require.NoError(t, err)
		assert.Empty(t, cv.PDF)
	})

	t.Run("Should reject non-PDF uploads", func(t *testing.T) {
		uc, _, _, _ := newCVUsecase(t)
		_, err := uc.CreateCV(ctx, intern, domain.CreateCVInput{
			Title: "CV",
			File:  &domain.FileUpload{Filename: "cv.docx", Data: []byte("PK\x03\x04")},
		})
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})

	t.Run("Should reject a renamed file without the PDF signature", func(t *testing.T) {
		uc, _, _, _ := newCVUsecase(t)
		_, err := uc.CreateCV(ctx, intern, domain.CreateCVInput{
			Title: "CV",
			File:  &domain.FileUpload{Filename: "cv.pdf", Data: []byte("just text")},
		})
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})

	t.Run("Should reject a PDF over the size limit", func(t *testing.T) {
		uc, _, _, _ := newCVUsecase(t)
		big := make([]byte, 10*1024*1024+1)
		copy(big, samplePDF)
		_, err := uc.CreateCV(ctx, intern, domain.CreateCVInput{
			Title: "CV",
			File:  &domain.FileUpload{Filename: "cv.pdf", Data: big},
		})
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
		assert.Contains(t, err.Error(), "too large")
	})

	t.Run("Should remove the new file when the record fails", func(t *testing.T) {
		uc, cvRepo, _, dir := newCVUsecase(t)
		cvRepo.On("Create", ctx, mock.Anything).Return(errors.New("db down"))

		_, err := uc.CreateCV(ctx, intern, domain.CreateCVInput{Title: "CV", File: pdfUpload()})
		assert.Equal(t, http.StatusInternalServerError, apperror.CodeOf(err))
		assert.Empty(t, cvFiles(t, dir))
	})
}

func TestUpdateAndDeleteCV(t *testing.T) {
	ctx := context.Background()

	t.Run("Should forbid non-owners", func(t *testing.T) {
		uc, cvRepo, _, _ := newCVUsecase(t)
		cvRepo.On("GetByID", ctx, "cv1").Return(&domain.CV{ID: "cv1", UserID: intern.UserID}, nil)

		_, err := uc.UpdateCV(ctx, intern2, "cv1", domain.UpdateCVInput{Title: strPtr("x")})
		assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))

		err = uc.DeleteCV(ctx, intern2, "cv1")
		assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
		cvRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Should return 404 for a missing CV", func(t *testing.T) {
		uc, cvRepo, _, _ := newCVUsecase(t)
		cvRepo.On("GetByID", ctx, "nope").Return(nil, domain.ErrNotFound)

		_, err := uc.UpdateCV(ctx, intern, "nope", domain.UpdateCVInput{})
		assert.Equal(t, http.StatusNotFound, apperror.CodeOf(err))
	})

	t.Run("Should replace the file and delete the old one", func(t *testing.T) {
		uc, cvRepo, uploads, dir := newCVUsecase(t)
		oldURL, err := uploads.SaveCV(ctx, pdfUpload())
		require.NoError(t, err)

		cvRepo.On("GetByID", ctx, "cv1").Return(&domain.CV{ID: "cv1", UserID: intern.UserID, Title: "Old", PDF: oldURL}, nil)
		cvRepo.On("Update", ctx, mock.AnythingOfType("*domain.CV")).Return(nil)

		cv, err := uc.UpdateCV(ctx, intern, "cv1", domain.UpdateCVInput{Title: strPtr("New"), File: pdfUpload()})
		require.NoError(t, err)
		assert.Equal(t, "New", cv.Title)
		assert.NotEqual(t, oldURL, cv.PDF)
		assert.False(t, fileExists(storedFile(dir, oldURL)))
		assert.True(t, fileExists(storedFile(dir, cv.PDF)))
	})

	t.Run("Should keep the old file when the update fails", func(t *testing.T) {
		uc, cvRepo, uploads, dir := newCVUsecase(t)
		oldURL, err := uploads.SaveCV(ctx, pdfUpload())
		require.NoError(t, err)

		cvRepo.On("GetByID", ctx, "cv1").Return(&domain.CV{ID: "cv1", UserID: intern.UserID, Title: "Old", PDF: oldURL}, nil)
		cvRepo.On("Update", ctx, mock.Anything).Return(errors.New("db down"))

		_, err = uc.UpdateCV(ctx, intern, "cv1", domain.UpdateCVInput{File: pdfUpload()})
		require.Error(t, err)
		assert.True(t, fileExists(storedFile(dir, oldURL)))
		assert.Len(t, cvFiles(t, dir), 1)
	})

	t.Run("Should delete the record and then its file", func(t *testing.T) {
		uc, cvRepo, uploads, dir := newCVUsecase(t)
		url, err := uploads.SaveCV(ctx, pdfUpload())
		require.NoError(t, err)

		cvRepo.On("GetByID", ctx, "cv1").Return(&domain.CV{ID: "cv1", UserID: intern.UserID, PDF: url}, nil)
		cvRepo.On("Delete", ctx, "cv1").Return(nil)

		require.NoError(t, uc.DeleteCV(ctx, intern, "cv1"))
		assert.False(t, fileExists(storedFile(dir, url)))
	})
}

func TestListCVs(t *testing.T) {
	ctx := context.Background()
	uc, cvRepo, _, _ := newCVUsecase(t)
	owner := domain.UserProfile{ID: intern.UserID, Name: "Anna"}
	cvRepo.On("List", ctx).Return([]domain.CV{{ID: "cv1"}}, nil)
	cvRepo.On("ListWithOwner", ctx).Return([]domain.CVView{{CV: domain.CV{ID: "cv1"}, User: &owner}}, nil)

	plain, err := uc.ListCVs(ctx, false)
	require.NoError(t, err)
	require.Len(t, plain, 1)
	assert.Nil(t, plain[0].User)

	withUser, err := uc.ListCVs(ctx, true)
	require.NoError(t, err)
	require.Len(t, withUser, 1)
	assert.Equal(t, "Anna", withUser[0].User.Name)
}
