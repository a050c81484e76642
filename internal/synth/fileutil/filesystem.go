package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ookamitai/go-cactisynth/internal/synth/interfaces"
)

// OSFileSystem は実際のOSファイルシステムを使用する実装
type OSFileSystem struct{}

// NewOSFileSystem は新しいOSFileSystemを作成します
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// FileExists はファイルが存在するか確認します
func (f *OSFileSystem) FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// ReadFile はファイルを読み込みます
func (f *OSFileSystem) ReadFile(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

// WriteFile はファイルを書き込みます
func (f *OSFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	return os.WriteFile(filename, data, os.FileMode(perm))
}

// MkdirAll はディレクトリを作成します
func (f *OSFileSystem) MkdirAll(path string, perm uint32) error {
	return os.MkdirAll(path, os.FileMode(perm))
}

// Stat はファイル情報を取得します
func (f *OSFileSystem) Stat(name string) (interfaces.FileInfo, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, err
	}
	return &osFileInfo{info}, nil
}

// ReadDir はディレクトリを読み込みます
func (f *OSFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}

	result := make([]interfaces.DirEntry, len(entries))
	for i, entry := range entries {
		result[i] = &osDirEntry{entry}
	}
	return result, nil
}

// WalkDir はルート以下のエントリを辞書順に走査します
func (f *OSFileSystem) WalkDir(root string, fn interfaces.WalkFunc) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return fn(path, d.IsDir())
	})
}

// osFileInfo はos.FileInfoのラッパー
type osFileInfo struct {
	os.FileInfo
}

// Name はファイル名を返します
func (fi *osFileInfo) Name() string {
	return fi.FileInfo.Name()
}

// IsDir はディレクトリかどうかを返します
func (fi *osFileInfo) IsDir() bool {
	return fi.FileInfo.IsDir()
}

// osDirEntry はos.DirEntryのラッパー
type osDirEntry struct {
	os.DirEntry
}

// Name はエントリ名を返します
func (de *osDirEntry) Name() string {
	return de.DirEntry.Name()
}

// IsDir はディレクトリかどうかを返します
func (de *osDirEntry) IsDir() bool {
	return de.DirEntry.IsDir()
}
