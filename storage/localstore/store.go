package localstore

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"StudioLeads/config"
)

// Store 单机键值文档存储，浏览器 localStorage 的进程版：
// 一个 key 对应一个 JSON 文档文件，每次写入整体重写。
// 单写者模型，进程内用互斥锁串行化读改写。
type Store struct {
	mu  sync.Mutex
	dir string
}

var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var (
	store *Store
	once  sync.Once
	err   error
)

func Init() error {
	once.Do(func() {
		store, err = NewStore(config.Cfg.DataDir)
	})

	return err
}

func Default() *Store {
	if store == nil {
		panic("local store not initialized, call localstore.Init() first")
	}
	return store
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Get 读取 key 对应的文档，key 不存在返回 ok=false
func (s *Store) Get(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}

	return data, true, nil
}

// Set 整体重写 key 对应的文档。先写临时文件再 rename，
// 半截崩溃不会留下写了一半的文档。
func (s *Store) Set(key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace key %q: %w", key, err)
	}

	return nil
}

// Delete 删除 key 对应的文档，key 不存在不算错误
func (s *Store) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("invalid store key: %q", key)
	}
	return nil
}
