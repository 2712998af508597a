package dataset

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/cavaliergopher/grab/v3"

	"github.com/TDiblik/as2org/as2org"
)

// Download fetches url into dir and returns the local file name.
func Download(ctx context.Context, url, dir string, logger *log.Logger) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, as2org.DirPermissions); err != nil {
		return "", as2org.IOError("unable to create download directory "+dir, err)
	}

	req, err := grab.NewRequest(dir, url)
	if err != nil {
		return "", as2org.IOError("unable to build request for "+url, err)
	}
	req = req.WithContext(ctx)

	logger.Printf("[INFO] Started downloading %s", url)
	start := time.Now()
	resp := grab.NewClient().Do(req)
	if err := resp.Err(); err != nil {
		return "", as2org.IOError("unable to download "+url, err)
	}
	logger.Printf("[INFO] Finished downloading %s to %s (%d bytes, %s)",
		url, resp.Filename, resp.BytesComplete(), time.Since(start).Round(time.Millisecond))
	return resp.Filename, nil
}
