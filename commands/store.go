package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/subratpandeyy/The-Wedding-Shades/config"
	"github.com/subratpandeyy/The-Wedding-Shades/db"
	"github.com/subratpandeyy/The-Wedding-Shades/storage"
	"github.com/subratpandeyy/The-Wedding-Shades/storage/gormstore"
	"github.com/subratpandeyy/The-Wedding-Shades/storage/inmemory"
	"github.com/subratpandeyy/The-Wedding-Shades/storage/mongostore"
)

// openStore picks the post store from the scheme of cfg.DBURL.
func openStore(ctx context.Context, cfg *config.Config) (storage.PostStore, error) {
	url := cfg.DBURL

	switch {
	case url == "" || strings.HasPrefix(url, "memory:"):
		return inmemory.New(), nil
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		return mongostore.Connect(ctx, url, cfg.MongoDatabase)
	case db.IsRelational(url):
		conn, err := db.Open(url)
		if err != nil {
			return nil, err
		}
		return gormstore.New(conn), nil
	default:
		return nil, fmt.Errorf("unsupported database url scheme in %q", schemeOf(url))
	}
}

func schemeOf(url string) string {
	if i := strings.Index(url, ":"); i >= 0 {
		return url[:i]
	}
	return url
}
