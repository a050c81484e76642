package oto

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	synterrors "github.com/ookamitai/go-cactisynth/internal/synth/errors"
	"github.com/ookamitai/go-cactisynth/internal/synth/fileutil"
	"github.com/ookamitai/go-cactisynth/internal/synth/interfaces"
)

// OTOSetting は1つの原音設定ファイルから読み込んだエントリ列です
type OTOSetting struct {
	Entries []*OTOEntry // ファイル内の出現順
	Size    int         // エントリ数（常にlen(Entries)と一致）
	Path    string      // 読み込み元のパス
}

// Load は原音設定ファイルを読み込んでOTOSettingを作成します
//
// ファイルはShift-JISとして読み、空でない行をファイル内の順で
// 1行ずつOTOEntryに解析します
func Load(path string, fs interfaces.FileSystem) (*OTOSetting, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, synterrors.NewNotFoundError(path, fmt.Errorf("%w: %w", ErrReadSetting, err))
	}

	text, err := fileutil.FromShiftJIS(string(data))
	if err != nil {
		return nil, synterrors.NewParseError(path, fmt.Errorf("%w: %w", ErrEncodingConversion, err))
	}

	setting := &OTOSetting{Path: path}
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		setting.Entries = append(setting.Entries, FromLine(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, synterrors.NewParseError(path, err)
	}

	setting.Size = len(setting.Entries)
	logrus.WithFields(logrus.Fields{
		"path":    path,
		"entries": setting.Size,
	}).Info("原音設定を読み込みました")

	return setting, nil
}

// Save はエントリを1行ずつ書き出して原音設定ファイルを保存します
func (s *OTOSetting) Save(path string, fs interfaces.FileSystem) error {
	var builder strings.Builder
	for _, entry := range s.Entries {
		builder.WriteString(entry.ToLine())
		builder.WriteString("\r\n")
	}

	text, err := fileutil.ToShiftJIS(builder.String())
	if err != nil {
		return synterrors.NewParseError(path, fmt.Errorf("%w: %w", ErrEncodingConversion, err))
	}

	if err := fs.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteSetting, path, err)
	}

	logrus.WithFields(logrus.Fields{
		"path":    path,
		"entries": len(s.Entries),
	}).Info("原音設定を保存しました")

	return nil
}

// FindEntries は指定フィールドが値に一致するエントリをすべて返します
//
// 一致がない場合は空ではなく、既定値のOTOEntryを1つだけ含む列を
// 返します。呼び出し側はこの番兵を確認する必要があります
func (s *OTOSetting) FindEntries(field EntryField, value string) []*OTOEntry {
	var matched []*OTOEntry
	for _, entry := range s.Entries {
		if entry.FieldValue(field) == value {
			matched = append(matched, entry)
		}
	}
	if len(matched) == 0 {
		return []*OTOEntry{NewOTOEntry()}
	}
	return matched
}
