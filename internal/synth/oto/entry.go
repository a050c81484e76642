// Package oto はUTAU互換ボイスバンクの原音設定（oto.ini）を扱います
package oto

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ookamitai/go-cactisynth/internal/synth/fileutil"
)

// numericPattern は数値フィールドの形式（任意の先頭「-」、数字列、
// 任意の小数点1つ）
var numericPattern = regexp.MustCompile(`^-?[0-9]+(?:\.[0-9]+)?$`)

// OTOEntry は1つのサンプルのタイミング情報を表します
type OTOEntry struct {
	File     string  // サンプルのファイル名
	Alias    string  // エイリアス（空ならファイル名の拡張子なし部分）
	Offset   float64 // オフセット（ms）
	Fixed    float64 // 固定範囲（ms）
	Blank    float64 // 右ブランク（ms）
	Preutter float64 // 先行発声（ms）
	Overlap  float64 // オーバーラップ（ms）
}

// NewOTOEntry は既定値のOTOEntryを作成します
func NewOTOEntry() *OTOEntry {
	return &OTOEntry{}
}

// FromLine はoto.iniの1行をOTOEntryに解析します
//
// 最初の「=」でファイル名と残りに分け、残りを「,」で最大6フィールド
// （エイリアスと5つの数値）に分割します。数値のいずれかが形式に
// 一致しない場合は5つすべてを0に置き換え、診断を出します。
// 不正な行も拒否せず正規化して受け入れます
func FromLine(line string) *OTOEntry {
	entry := NewOTOEntry()

	file, rest, found := strings.Cut(line, "=")
	entry.File = file
	if !found {
		logrus.WithField("line", line).Warn("「=」のない行をエイリアスなしとして扱います")
	}

	fields := strings.SplitN(rest, ",", 6)
	entry.Alias = fields[0]
	if entry.Alias == "" {
		entry.Alias = fileutil.Stem(entry.File)
	}

	values := [5]float64{}
	valid := true
	for i := 0; i < 5; i++ {
		var field string
		if i+1 < len(fields) {
			field = fields[i+1]
		}
		if field == "" {
			continue
		}
		if !numericPattern.MatchString(field) {
			valid = false
			break
		}
		// パターンに一致した値の変換は失敗しない
		values[i], _ = strconv.ParseFloat(field, 64)
	}

	if !valid {
		logrus.WithFields(logrus.Fields{
			"line":     line,
			"defaults": "offset=0 fixed=0 blank=0 preutter=0 overlap=0",
		}).Warn("数値グループを解析できないためすべて0に置き換えます")
		return entry
	}

	entry.Offset = values[0]
	entry.Fixed = values[1]
	entry.Blank = values[2]
	entry.Preutter = values[3]
	entry.Overlap = values[4]
	return entry
}

// ToLine はOTOEntryをoto.iniの1行として書き出します
//
// 浮動小数は正規化された形式で再出力されるため、バイト単位の
// 再現ではなくフィールド値単位の再現になります
func (e *OTOEntry) ToLine() string {
	return fmt.Sprintf("%s=%s,%s,%s,%s,%s,%s",
		e.File,
		e.Alias,
		formatFloat(e.Offset),
		formatFloat(e.Fixed),
		formatFloat(e.Blank),
		formatFloat(e.Preutter),
		formatFloat(e.Overlap),
	)
}

// formatFloat は数値フィールドの正規化された文字列形式を返します
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EntryField はOTOEntryのフィールドを指定する列挙です
//
// 文字列のフィールド名による参照の代わりに使用します
type EntryField int

const (
	// FieldFile はファイル名フィールド
	FieldFile EntryField = iota
	// FieldAlias はエイリアスフィールド
	FieldAlias
	// FieldOffset はオフセットフィールド
	FieldOffset
	// FieldFixed は固定範囲フィールド
	FieldFixed
	// FieldBlank は右ブランクフィールド
	FieldBlank
	// FieldPreutter は先行発声フィールド
	FieldPreutter
	// FieldOverlap はオーバーラップフィールド
	FieldOverlap
)

// ParseEntryField はフィールド名をEntryFieldに対応付けます
func ParseEntryField(name string) (EntryField, error) {
	switch strings.ToLower(name) {
	case "file":
		return FieldFile, nil
	case "alias":
		return FieldAlias, nil
	case "offset":
		return FieldOffset, nil
	case "fixed":
		return FieldFixed, nil
	case "blank":
		return FieldBlank, nil
	case "preutter":
		return FieldPreutter, nil
	case "overlap":
		return FieldOverlap, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownField, name)
}

// FieldValue は指定フィールドの値を文字列形式で返します
//
// 数値フィールドはToLineと同じ正規化形式を使用します
func (e *OTOEntry) FieldValue(field EntryField) string {
	switch field {
	case FieldFile:
		return e.File
	case FieldAlias:
		return e.Alias
	case FieldOffset:
		return formatFloat(e.Offset)
	case FieldFixed:
		return formatFloat(e.Fixed)
	case FieldBlank:
		return formatFloat(e.Blank)
	case FieldPreutter:
		return formatFloat(e.Preutter)
	case FieldOverlap:
		return formatFloat(e.Overlap)
	}
	return ""
}
