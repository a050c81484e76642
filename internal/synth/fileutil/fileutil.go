// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// FileExists はファイルが存在するか確認します
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// FromShiftJIS はShift-JISからUTF-8に変換します
func FromShiftJIS(str string) (string, error) {
	reader := strings.NewReader(str)
	transformer := japanese.ShiftJIS.NewDecoder()
	ret, err := io.ReadAll(transform.NewReader(reader, transformer))
	if err != nil {
		return "", err
	}
	return string(ret), nil
}

// ToShiftJIS はUTF-8からShift-JISに変換します
func ToShiftJIS(str string) (string, error) {
	reader := strings.NewReader(str)
	transformer := japanese.ShiftJIS.NewEncoder()
	ret, err := io.ReadAll(transform.NewReader(reader, transformer))
	if err != nil {
		return "", err
	}
	return string(ret), nil
}

// Stem はファイル名から拡張子を除いた部分を返します
func Stem(filename string) string {
	baseName := filepath.Base(filename)
	return strings.TrimSuffix(baseName, filepath.Ext(baseName))
}
