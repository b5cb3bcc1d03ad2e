package emby

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// imageUploadRequest is the base64 JSON payload the primary image
// endpoint expects on the 4.8 line.
type imageUploadRequest struct {
	Format string `json:"Format"`
	Data   string `json:"Data"`
}

// UploadAvatar implements AccountProvisioner.
func (c *RealClient) UploadAvatar(ctx context.Context, accountID string, data []byte, contentType string) error {
	if len(data) == 0 {
		return fmt.Errorf("empty avatar image for account %s", accountID)
	}

	payload := imageUploadRequest{
		Format: imageFormat(contentType),
		Data:   base64.StdEncoding.EncodeToString(data),
	}

	return c.withRetry(ctx, func() error {
		_, err := c.postJSON(ctx, fmt.Sprintf("/emby/Users/%s/Images/Primary", accountID), payload)
		return err
	})
}

// imageFormat extracts the format token from a content type,
// "image/png" -> "png". The server defaults unknown formats to jpeg.
func imageFormat(contentType string) string {
	if i := strings.LastIndex(contentType, "/"); i >= 0 && i < len(contentType)-1 {
		format := contentType[i+1:]
		if j := strings.Index(format, ";"); j >= 0 {
			format = format[:j]
		}
		return strings.TrimSpace(format)
	}
	return "jpeg"
}
