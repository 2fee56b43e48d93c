package store

import (
	"context"
	"sort"
	"sync"

	"github.com/dkrish/GoOCR/internal/domain/jobModel"
	"github.com/dkrish/GoOCR/pkg/logger_i"
)

var fileLogger = logger_i.NewLogger("InMem FileStore")

// InMemoryFileStore owns every FileRecord for the process lifetime.
// No eviction - durability is an explicit non-goal.
type InMemoryFileStore struct {
	fileMutex *sync.RWMutex
	fileMap   map[string]jobModel.FileRecord
}

func InitInMemoryFileStore() *InMemoryFileStore {
	return &InMemoryFileStore{
		fileMutex: new(sync.RWMutex),
		fileMap:   make(map[string]jobModel.FileRecord),
	}
}

func (store *InMemoryFileStore) SaveFile(ctx context.Context, record jobModel.FileRecord) error {
	store.fileMutex.Lock()
	defer store.fileMutex.Unlock()
	store.fileMap[record.Id] = record
	fileLogger.Debug(record.Id, "name", record.OriginalName, "size", record.Size)
	return nil
}

func (store *InMemoryFileStore) GetFile(ctx context.Context, fileId string) (jobModel.FileRecord, bool) {
	store.fileMutex.RLock()
	defer store.fileMutex.RUnlock()
	result, found := store.fileMap[fileId]
	return result, found
}

func (store *InMemoryFileStore) DeleteFile(ctx context.Context, fileId string) {
	store.fileMutex.Lock()
	defer store.fileMutex.Unlock()
	delete(store.fileMap, fileId)
}

func (store *InMemoryFileStore) ListFiles(ctx context.Context) []jobModel.FileRecord {
	store.fileMutex.RLock()
	defer store.fileMutex.RUnlock()
	records := make([]jobModel.FileRecord, 0, len(store.fileMap))
	for _, r := range store.fileMap {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].UploadedAt.Before(records[j].UploadedAt)
	})
	return records
}
