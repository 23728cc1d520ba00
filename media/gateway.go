// Package media hands uploaded images to the external media host and maps
// every outcome onto the application error kinds.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/subratpandeyy/The-Wedding-Shades/utils"
)

// AssetAPI is the slice of the cloudinary upload API the gateway needs.
// *uploader.API satisfies it.
type AssetAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

type Options struct {
	Folder   string
	MaxBytes int64
	// MaxDimension bounds the longest edge of the stored image, 0 disables it.
	MaxDimension int
}

// Upload is what the host returns for a stored image.
type Upload struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var errNotConfigured = errors.New("media host is not configured")

var versionSegment = regexp.MustCompile(`^v\d+$`)

type Gateway struct {
	assets AssetAPI
	opts   Options
	ping   func(ctx context.Context) error
}

// NewGateway wraps assets. A nil assets value gives a gateway that still
// validates uploads but reports every host call as failed.
func NewGateway(assets AssetAPI, opts Options) *Gateway {
	return &Gateway{assets: assets, opts: opts}
}

func (g *Gateway) Folder() string {
	return g.opts.Folder
}

func (g *Gateway) MaxBytes() int64 {
	return g.opts.MaxBytes
}

// Verify checks the host credentials when the gateway knows how to.
func (g *Gateway) Verify(ctx context.Context) error {
	if g.assets == nil {
		return errNotConfigured
	}
	if g.ping == nil {
		return nil
	}
	return g.ping(ctx)
}

// Upload validates type and size, then makes exactly one call to the host.
// Precondition failures never reach the network.
func (g *Gateway) Upload(ctx context.Context, file io.Reader, mimeType string, size int64) (*Upload, error) {
	if g.opts.MaxBytes > 0 && size > g.opts.MaxBytes {
		return nil, g.tooLarge()
	}

	data, err := g.readAll(file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, utils.NewInvalidFileTypeError("Uploaded file is empty")
	}

	if !allowedTypes[normalizeType(mimeType, data)] {
		return nil, utils.NewInvalidFileTypeError("Only image files (JPEG, PNG, GIF, WebP) are allowed!")
	}

	if g.assets == nil {
		return nil, utils.NewUploadFailedError(errNotConfigured)
	}

	params := uploader.UploadParams{
		Folder:         g.opts.Folder,
		ResourceType:   "image",
		UniqueFilename: boolPointer(true),
		Transformation: g.transformation(),
	}

	result, err := g.assets.Upload(ctx, bytes.NewReader(data), params)
	if err != nil {
		return nil, utils.NewUploadFailedError(err)
	}
	if result == nil {
		return nil, utils.NewUploadFailedError(errors.New("empty response from media host"))
	}
	if result.Error.Message != "" {
		return nil, utils.NewUploadFailedError(errors.New(result.Error.Message))
	}

	secureURL := result.SecureURL
	if secureURL == "" {
		secureURL = result.URL
	}
	if secureURL == "" || result.PublicID == "" {
		return nil, utils.NewUploadFailedError(fmt.Errorf("media host returned no url for asset %q", result.AssetID))
	}

	return &Upload{URL: secureURL, PublicID: result.PublicID}, nil
}

// Delete removes an asset by public id. A result other than "ok" is an error.
func (g *Gateway) Delete(ctx context.Context, publicID string) error {
	if g.assets == nil {
		return errNotConfigured
	}

	result, err := g.assets.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
		Invalidate:   boolPointer(true),
	})
	if err != nil {
		return fmt.Errorf("destroy %s: %w", publicID, err)
	}
	if result == nil {
		return fmt.Errorf("destroy %s: empty response", publicID)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("destroy %s: %s", publicID, result.Error.Message)
	}
	if result.Result != "ok" {
		return fmt.Errorf("destroy %s: host answered %q", publicID, result.Result)
	}
	return nil
}

// PublicIDFromURL derives the asset id from a delivery url such as
// https://res.cloudinary.com/<cloud>/image/upload/v1712/blog_images/abc.jpg.
// URLs without an upload segment fall back to <folder>/<file name>.
func (g *Gateway) PublicIDFromURL(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Path == "" {
		return "", false
	}

	p := strings.Trim(u.Path, "/")
	if i := strings.Index(p, "upload/"); i >= 0 && (i == 0 || p[i-1] == '/') {
		segments := strings.Split(p[i+len("upload/"):], "/")
		for j, s := range segments {
			if versionSegment.MatchString(s) {
				segments = segments[j+1:]
				break
			}
		}
		if len(segments) == 0 {
			return "", false
		}
		id := strings.Join(segments, "/")
		id = strings.TrimSuffix(id, path.Ext(id))
		return id, id != ""
	}

	name := path.Base(p)
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "" || name == "." {
		return "", false
	}
	if g.opts.Folder == "" {
		return name, true
	}
	return g.opts.Folder + "/" + name, true
}

func (g *Gateway) readAll(file io.Reader) ([]byte, error) {
	if g.opts.MaxBytes <= 0 {
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, utils.NewInternalError("Failed to read upload", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(file, g.opts.MaxBytes+1))
	if err != nil {
		return nil, utils.NewInternalError("Failed to read upload", err)
	}
	if int64(len(data)) > g.opts.MaxBytes {
		return nil, g.tooLarge()
	}
	return data, nil
}

func (g *Gateway) tooLarge() error {
	return FileTooLarge(g.opts.MaxBytes)
}

// FileTooLarge is the error for payloads above max bytes.
func FileTooLarge(max int64) error {
	return utils.NewFileTooLargeError(fmt.Sprintf("File too large. Maximum size is %s.", humanSize(max)))
}

func (g *Gateway) transformation() string {
	parts := []string{}
	if g.opts.MaxDimension > 0 {
		parts = append(parts, fmt.Sprintf("c_limit,h_%d,w_%d", g.opts.MaxDimension, g.opts.MaxDimension))
	}
	parts = append(parts, "q_auto")
	return strings.Join(parts, "/")
}

// normalizeType returns the declared media type, or a sniffed one when the
// client sent nothing useful.
func normalizeType(declared string, data []byte) string {
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil || mediaType == "" || mediaType == "application/octet-stream" {
		head := data
		if len(head) > 512 {
			head = head[:512]
		}
		mediaType, _, _ = mime.ParseMediaType(http.DetectContentType(head))
	}
	return strings.ToLower(mediaType)
}

func humanSize(n int64) string {
	const mib = 1024 * 1024
	if n%mib == 0 {
		return fmt.Sprintf("%dMB", n/mib)
	}
	if n >= 1024 && n%1024 == 0 {
		return fmt.Sprintf("%dKB", n/1024)
	}
	return fmt.Sprintf("%d bytes", n)
}

func boolPointer(b bool) *bool {
	return &b
}
