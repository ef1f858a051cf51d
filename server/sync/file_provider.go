package sync

import (
	"fmt"
	"os"
	"time"

	"github.com/mattermost/idp-exchange-attribute-sync/server/exchange"
)

// FileProvider implements AttributeProvider from a JSON file holding an
// exchange users response ({"users":[{"username":...,"attributes":[...]}]}),
// for example an export of the exchange used for offline testing.
// The file is only re-read once its modification time advances past the
// last committed read.
type FileProvider struct {
	filePath    string
	serializer  exchange.Serializer
	lastModTime time.Time
	pendingTime time.Time
}

// NewFileProvider creates a provider reading filePath.
func NewFileProvider(filePath string) *FileProvider {
	return &FileProvider{
		filePath:   filePath,
		serializer: exchange.JSONSerializer{},
	}
}

func (f *FileProvider) GetUserAttributes() ([]exchange.UserResponse, error) {
	f.pendingTime = time.Time{}

	fileInfo, err := os.Stat(f.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %s: %w", f.filePath, err)
	}

	modTime := fileInfo.ModTime()
	if !f.lastModTime.IsZero() && !modTime.After(f.lastModTime) {
		return []exchange.UserResponse{}, nil
	}

	data, err := os.ReadFile(f.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", f.filePath, err)
	}

	var response exchange.UsersResponse
	if err := f.serializer.Decode(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse users from %s: %w", f.filePath, err)
	}

	f.pendingTime = modTime

	if response.Users == nil {
		return []exchange.UserResponse{}, nil
	}
	return response.Users, nil
}

func (f *FileProvider) Commit() error {
	if !f.pendingTime.IsZero() {
		f.lastModTime = f.pendingTime
		f.pendingTime = time.Time{}
	}
	return nil
}

// Close is a no-op; the file is not held open between calls.
func (f *FileProvider) Close() error {
	return nil
}
