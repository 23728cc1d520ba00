package testutils

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// FakeAssets stands in for the cloudinary upload API and records every call.
type FakeAssets struct {
	mu sync.Mutex

	CloudName  string
	UploadErr  error
	DestroyErr error
	// DestroyResult defaults to "ok" when empty.
	DestroyResult string

	Uploads   []uploader.UploadParams
	Uploaded  [][]byte
	Destroyed []string
}

func NewFakeAssets() *FakeAssets {
	return &FakeAssets{CloudName: "shades"}
}

func (f *FakeAssets) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Uploads = append(f.Uploads, params)
	if r, ok := file.(io.Reader); ok {
		data, _ := io.ReadAll(r)
		f.Uploaded = append(f.Uploaded, data)
	}
	if f.UploadErr != nil {
		return nil, f.UploadErr
	}

	publicID := fmt.Sprintf("%s/img%d", params.Folder, len(f.Uploads))
	return &uploader.UploadResult{
		AssetID:   fmt.Sprintf("asset-%d", len(f.Uploads)),
		PublicID:  publicID,
		SecureURL: fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/v1712345678/%s.jpg", f.CloudName, publicID),
	}, nil
}

func (f *FakeAssets) Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Destroyed = append(f.Destroyed, params.PublicID)
	if f.DestroyErr != nil {
		return nil, f.DestroyErr
	}
	result := f.DestroyResult
	if result == "" {
		result = "ok"
	}
	return &uploader.DestroyResult{Result: result}, nil
}

func (f *FakeAssets) UploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Uploads)
}

func (f *FakeAssets) DestroyedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Destroyed...)
}
