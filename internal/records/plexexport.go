package records

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// mediaContainer mirrors the envelope of a Plex shared-users export.
// Plex wraps every API payload in a MediaContainer element.
type mediaContainer struct {
	XMLName xml.Name   `xml:"MediaContainer"`
	Users   []plexUser `xml:"User"`
}

type plexUser struct {
	Username string `xml:"username,attr"`
	Title    string `xml:"title,attr"`
	Email    string `xml:"email,attr"`
	Thumb    string `xml:"thumb,attr"`
}

// ParsePlexExport parses a Plex shared-users XML export into user records,
// assigning each a passphrase from gen. Users without a username fall back
// to the title attribute; entries carrying neither are skipped.
func ParsePlexExport(r io.Reader, gen func() (string, error)) ([]UserRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	var container mediaContainer
	if err := xml.Unmarshal(data, &container); err != nil {
		return nil, fmt.Errorf("failed to parse Plex export: %w", err)
	}

	var batch []UserRecord
	for _, u := range container.Users {
		username := strings.TrimSpace(u.Username)
		if username == "" {
			username = strings.TrimSpace(u.Title)
		}
		if username == "" {
			continue
		}

		passphrase, err := gen()
		if err != nil {
			return nil, fmt.Errorf("failed to generate passphrase for %q: %w", username, err)
		}

		batch = append(batch, UserRecord{
			Username:        username,
			Email:           strings.TrimSpace(u.Email),
			Passphrase:      passphrase,
			AvatarSourceURL: strings.TrimSpace(u.Thumb),
		})
	}

	return batch, nil
}
