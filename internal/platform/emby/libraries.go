package emby

import "context"

// mediaFoldersResponse is the /emby/Library/MediaFolders shape.
type mediaFoldersResponse struct {
	Items []struct {
		ID   string `json:"Id"`
		Name string `json:"Name"`
	} `json:"Items"`
}

// virtualFolder is one element of the /emby/Library/VirtualFolders array.
// Older server versions report ItemId, newer ones Id.
type virtualFolder struct {
	ItemID string `json:"ItemId"`
	ID     string `json:"Id"`
	Name   string `json:"Name"`
}

// ListLibraries implements LibraryCatalog. MediaFolders is the reliable
// endpoint on current servers; VirtualFolders is kept as a fallback for
// versions where MediaFolders is absent.
func (c *RealClient) ListLibraries(ctx context.Context) ([]Library, error) {
	var media mediaFoldersResponse
	err := c.withRetry(ctx, func() error {
		return c.getJSON(ctx, "/emby/Library/MediaFolders", &media)
	})
	if err == nil && len(media.Items) > 0 {
		libraries := make([]Library, 0, len(media.Items))
		for _, item := range media.Items {
			if item.ID != "" && item.Name != "" {
				libraries = append(libraries, Library{ID: item.ID, Name: item.Name})
			}
		}
		return libraries, nil
	}

	var virtual []virtualFolder
	fallbackErr := c.withRetry(ctx, func() error {
		return c.getJSON(ctx, "/emby/Library/VirtualFolders", &virtual)
	})
	if fallbackErr != nil {
		if err != nil {
			return nil, err
		}
		return nil, fallbackErr
	}

	libraries := make([]Library, 0, len(virtual))
	for _, folder := range virtual {
		id := folder.ItemID
		if id == "" {
			id = folder.ID
		}
		if id != "" && folder.Name != "" {
			libraries = append(libraries, Library{ID: id, Name: folder.Name})
		}
	}
	return libraries, nil
}
