// Package voicebank はボイスバンクのディレクトリを集約して読み込みます
package voicebank

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ookamitai/go-cactisynth/internal/synth/config"
	synterrors "github.com/ookamitai/go-cactisynth/internal/synth/errors"
	"github.com/ookamitai/go-cactisynth/internal/synth/fileutil"
	"github.com/ookamitai/go-cactisynth/internal/synth/interfaces"
	"github.com/ookamitai/go-cactisynth/internal/synth/oto"
)

const (
	// CharacterFileName はメタデータファイルの名前
	CharacterFileName = "character.txt"

	// ReadmeFileName は説明ファイルの名前
	ReadmeFileName = "readme.txt"

	// OtoFileName は原音設定ファイルの名前
	OtoFileName = "oto.ini"

	// DefaultSample はsampleが空の場合の既定値
	DefaultSample = "Random"
)

// VoiceBank は1つのサンプルライブラリを表します
//
// ディレクトリ走査1回につき1つ作成され、以後は読み取り専用です
type VoiceBank struct {
	Root      string                     // ボイスバンクのルートディレクトリ
	Name      string                     // 名前
	Author    string                     // 作者
	Image     string                     // アイコン画像
	Sample    string                     // サンプル音声（空なら"Random"）
	Web       string                     // Webサイト
	Readme    string                     // readme.txtの内容
	Settings  map[string]*oto.OTOSetting // サブディレクトリ名 → 原音設定
	PrefixMap map[string]string          // prefix.map（予約済み、未実装）
	OtoCount  int                        // 全原音設定のエントリ数の合計
	FileCount int                        // ルート以下の音声サンプルファイル数
}

// Load はボイスバンクのディレクトリを走査してVoiceBankを作成します
//
// character.txtとreadme.txtをルートから読み、ルート以下のすべての
// oto.iniをそれぞれ1つのOTOSettingとして親ディレクトリ名をキーに
// 集約し、音声サンプルファイルを数えます
func Load(root string, cfg *config.Config, fs interfaces.FileSystem) (*VoiceBank, error) {
	info, err := fs.Stat(root)
	if err != nil {
		return nil, synterrors.NewNotFoundError(root, err)
	}
	if !info.IsDir() {
		return nil, synterrors.NewPreconditionError(
			"ボイスバンクの読み込み",
			fmt.Sprintf("%s はディレクトリではありません", root),
		)
	}

	vb := &VoiceBank{
		Root:      root,
		Settings:  make(map[string]*oto.OTOSetting),
		PrefixMap: make(map[string]string),
	}

	vb.loadCharacter(fs)
	vb.loadReadme(fs)
	if vb.Sample == "" {
		vb.Sample = DefaultSample
	}

	// 原音設定とサンプルファイルの探索（辞書順の走査）
	var otoPaths []string
	sampleCount := 0
	err = fs.WalkDir(root, func(path string, isDir bool) error {
		if isDir {
			return nil
		}
		if filepath.Base(path) == OtoFileName {
			otoPaths = append(otoPaths, path)
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), cfg.SampleExtension) {
			sampleCount++
		}
		return nil
	})
	if err != nil {
		return nil, synterrors.NewNotFoundError(root, err)
	}

	// 各原音設定の読み込みは互いに独立なので並列に実行します。
	// 結果の対応付けは走査順に直列で行うため、同名キーの上書きは
	// 走査順に従って決定的になります
	settings := make([]*oto.OTOSetting, len(otoPaths))
	var group errgroup.Group
	for i, path := range otoPaths {
		i, path := i, path
		group.Go(func() error {
			setting, err := oto.Load(path, fs)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"path":  path,
					"error": err,
				}).Warn("原音設定を読み込めないためスキップします")
				return nil
			}
			settings[i] = setting
			return nil
		})
	}
	_ = group.Wait()

	for i, path := range otoPaths {
		if settings[i] == nil {
			continue
		}
		key := filepath.Base(filepath.Dir(path))
		vb.Settings[key] = settings[i]
	}
	for _, setting := range vb.Settings {
		vb.OtoCount += setting.Size
	}
	vb.FileCount = sampleCount

	logrus.WithFields(logrus.Fields{
		"root":    root,
		"otos":    vb.OtoCount,
		"samples": vb.FileCount,
	}).Info("ボイスバンクを読み込みました")

	return vb, nil
}

// characterFields はcharacter.txtで期待するフィールドの順序
var characterFields = []string{"name", "author", "image", "sample", "web"}

// loadCharacter はcharacter.txtを解析してメタデータを読み込みます
//
// 期待するフィールドを順番に1行ずつ照合します。期待中のフィールドに
// 一致しない行は読み進めずにスキップし、最後のフィールドに達した後は
// 位置を戻しません
func (vb *VoiceBank) loadCharacter(fs interfaces.FileSystem) {
	path := filepath.Join(vb.Root, CharacterFileName)
	data, err := fs.ReadFile(path)
	if err != nil {
		logrus.WithField("path", path).Warn("character.txtを読み込めないため既定値を使用します")
		return
	}
	text, err := fileutil.FromShiftJIS(string(data))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"path":  path,
			"error": err,
		}).Warn("character.txtの文字コード変換に失敗したため既定値を使用します")
		return
	}

	targets := map[string]*string{
		"name":   &vb.Name,
		"author": &vb.Author,
		"image":  &vb.Image,
		"sample": &vb.Sample,
		"web":    &vb.Web,
	}

	index := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		field := characterFields[index]
		prefix := field + "="
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		*targets[field] = strings.TrimPrefix(line, prefix)
		if index < len(characterFields)-1 {
			index++
		}
	}
}

// loadReadme はreadme.txtをそのままReadmeへ読み込みます
func (vb *VoiceBank) loadReadme(fs interfaces.FileSystem) {
	path := filepath.Join(vb.Root, ReadmeFileName)
	data, err := fs.ReadFile(path)
	if err != nil {
		logrus.WithField("path", path).Warn("readme.txtを読み込めないため空にします")
		return
	}
	text, err := fileutil.FromShiftJIS(string(data))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"path":  path,
			"error": err,
		}).Warn("readme.txtの文字コード変換に失敗したため空にします")
		return
	}
	vb.Readme = text
}

// FindEntries はすべての原音設定から指定フィールドが値に一致する
// エントリを集めます
//
// 一致がない場合は既定値のOTOEntryを1つだけ含む列を返します
func (vb *VoiceBank) FindEntries(field oto.EntryField, value string) []*oto.OTOEntry {
	keys := make([]string, 0, len(vb.Settings))
	for key := range vb.Settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var matched []*oto.OTOEntry
	for _, key := range keys {
		for _, entry := range vb.Settings[key].Entries {
			if entry.FieldValue(field) == value {
				matched = append(matched, entry)
			}
		}
	}
	if len(matched) == 0 {
		return []*oto.OTOEntry{oto.NewOTOEntry()}
	}
	return matched
}
