// Package mocks はテスト用のモック実装を提供します
package mocks

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ookamitai/go-cactisynth/internal/synth/interfaces"
)

// MockFileSystem はテスト用のファイルシステムモック
type MockFileSystem struct {
	Files map[string][]byte
	Dirs  map[string]bool
	Error error
}

// NewMockFileSystem は新しいMockFileSystemを作成します
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files: make(map[string][]byte),
		Dirs:  make(map[string]bool),
	}
}

// AddFile はファイルを追加し、親ディレクトリも登録します
func (fs *MockFileSystem) AddFile(path string, data []byte) {
	fs.Files[path] = data
	dir := filepath.Dir(path)
	for dir != "." && dir != "/" && dir != "" {
		fs.Dirs[dir] = true
		dir = filepath.Dir(dir)
	}
}

// FileExists はファイルが存在するか確認します
func (fs *MockFileSystem) FileExists(filename string) bool {
	_, exists := fs.Files[filename]
	return exists
}

// ReadFile はファイルを読み込みます
func (fs *MockFileSystem) ReadFile(filename string) ([]byte, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}
	data, exists := fs.Files[filename]
	if !exists {
		return nil, errors.New("file not found: " + filename)
	}
	return data, nil
}

// WriteFile はファイルを書き込みます
func (fs *MockFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	if fs.Error != nil {
		return fs.Error
	}
	fs.AddFile(filename, data)
	return nil
}

// MkdirAll はディレクトリを作成します
func (fs *MockFileSystem) MkdirAll(path string, perm uint32) error {
	if fs.Error != nil {
		return fs.Error
	}
	fs.Dirs[path] = true
	return nil
}

// Stat はファイル情報を取得します
func (fs *MockFileSystem) Stat(name string) (interfaces.FileInfo, error) {
	if fs.Dirs[name] {
		return &mockFileInfo{name: filepath.Base(name), isDir: true}, nil
	}
	if _, exists := fs.Files[name]; exists {
		return &mockFileInfo{name: filepath.Base(name), isDir: false}, nil
	}
	return nil, errors.New("file not found: " + name)
}

// ReadDir はディレクトリを読み込みます
func (fs *MockFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}
	seen := make(map[string]bool)
	var entries []interfaces.DirEntry
	for path := range fs.Files {
		if filepath.Dir(path) == dirname {
			name := filepath.Base(path)
			if !seen[name] {
				seen[name] = true
				entries = append(entries, &mockDirEntry{name: name, isDir: false})
			}
		}
	}
	for dir := range fs.Dirs {
		if filepath.Dir(dir) == dirname {
			name := filepath.Base(dir)
			if !seen[name] {
				seen[name] = true
				entries = append(entries, &mockDirEntry{name: name, isDir: true})
			}
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// WalkDir はルート以下のエントリを辞書順に走査します
func (fs *MockFileSystem) WalkDir(root string, fn interfaces.WalkFunc) error {
	if fs.Error != nil {
		return fs.Error
	}
	var paths []string
	for dir := range fs.Dirs {
		if dir == root || strings.HasPrefix(dir, root+string(filepath.Separator)) {
			paths = append(paths, dir)
		}
	}
	for path := range fs.Files {
		if strings.HasPrefix(path, root+string(filepath.Separator)) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	for _, path := range paths {
		if err := fn(path, fs.Dirs[path]); err != nil {
			return err
		}
	}
	return nil
}

// mockFileInfo はテスト用のファイル情報
type mockFileInfo struct {
	name  string
	isDir bool
}

// Name はファイル名を返します
func (fi *mockFileInfo) Name() string {
	return fi.name
}

// IsDir はディレクトリかどうかを返します
func (fi *mockFileInfo) IsDir() bool {
	return fi.isDir
}

// mockDirEntry はテスト用のディレクトリエントリ
type mockDirEntry struct {
	name  string
	isDir bool
}

// Name はエントリ名を返します
func (de *mockDirEntry) Name() string {
	return de.name
}

// IsDir はディレクトリかどうかを返します
func (de *mockDirEntry) IsDir() bool {
	return de.isDir
}
