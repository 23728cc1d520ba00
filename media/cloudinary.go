package media

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"

	"github.com/subratpandeyy/The-Wedding-Shades/config"
)

// NewCloudinary builds a gateway backed by a Cloudinary account. The client
// is created once and shared by every request.
func NewCloudinary(creds config.Cloudinary, opts Options) (*Gateway, error) {
	if !creds.Configured() {
		return nil, fmt.Errorf("cloudinary credentials are not set")
	}

	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if creds.URL != "" {
		cld, err = cloudinary.NewFromURL(creds.URL)
	} else {
		cld, err = cloudinary.NewFromParams(creds.CloudName, creds.APIKey, creds.APISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	g := NewGateway(&cld.Upload, opts)
	g.ping = func(ctx context.Context) error {
		_, err := cld.Admin.Ping(ctx)
		return err
	}
	return g, nil
}
