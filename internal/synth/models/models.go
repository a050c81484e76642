// Package models はプロジェクトとノートのデータモデルを定義します
package models

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	synterrors "github.com/ookamitai/go-cactisynth/internal/synth/errors"
)

// Note は1つの発声イベントを表します
//
// 数値フィールドはすべて0以上で、読み込み時に欠落・空の値は0に補正されます
type Note struct {
	Length       int    // 長さ（tick）
	Lyric        string // 歌詞
	NoteNum      int    // 音高インデックス
	PreUtterance int    // 先行発声（tick）
	Velocity     int    // 子音速度
	Intensity    int    // 音量
	Modulation   int    // モジュレーション
	StartPoint   int    // 開始位置（絶対tick）
}

// DefaultNote は既定値のNoteを作成します
func DefaultNote() *Note {
	return &Note{
		Velocity: 100,
	}
}

// Validate は各フィールドの値域を検証します
func (n *Note) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"Length", n.Length},
		{"NoteNum", n.NoteNum},
		{"PreUtterance", n.PreUtterance},
		{"Velocity", n.Velocity},
		{"Intensity", n.Intensity},
		{"Modulation", n.Modulation},
		{"StartPoint", n.StartPoint},
	}
	for _, f := range fields {
		if f.value < 0 {
			return synterrors.NewPreconditionError(
				"Noteの検証",
				fmt.Sprintf("%s は0以上でなければなりません（値: %d）", f.name, f.value),
			)
		}
	}
	return nil
}

// Project は1つの楽曲プロジェクトを表します
type Project struct {
	Version  string   // バージョンタグ
	Tempo    float64  // テンポ（BPM）
	Tracks   int      // トラック数
	Name     string   // プロジェクト名
	VoiceDir string   // ボイスバンクのパス
	OutFile  string   // 出力ファイルのパス
	CacheDir string   // キャッシュディレクトリのパス
	Tools    []string // ツール一覧（出現順、重複許可）
	Modes    []string // モード一覧（出現順、重複許可）
	Flags    []string // フラグ一覧（出現順、重複許可）
	Notes    []*Note  // ノート列（StartPoint昇順を常に維持）
}

// NewProject は既定値のProjectを作成します
func NewProject() *Project {
	return &Project{
		Tempo:  120.0,
		Tracks: 1,
		Name:   "Untitled",
	}
}

// IsEmpty はノートが1つもないかどうかを返します
func (p *Project) IsEmpty() bool {
	return len(p.Notes) == 0
}

// AddNote はノートをStartPoint昇順を維持したままプロジェクトに追加します
//
// 既存のノート列をまず昇順に整列し直してから、各ノートの挿入位置を
// 求めて挿入します
func (p *Project) AddNote(notes ...*Note) *Project {
	p.SortNotes(false)

	for _, note := range notes {
		index := p.findNoteIndex(note)
		p.Notes = append(p.Notes, nil)
		copy(p.Notes[index+1:], p.Notes[index:])
		p.Notes[index] = note
	}

	return p
}

// findNoteIndex はノートの挿入位置を求めます
//
// 新しいStartPointが先頭以下なら0、末尾以上なら末尾、それ以外は
// 最初に「より大きい」値が現れる位置を返します。既存値と等しい場合は
// 等しい値の並びの後ろに入ります（同値は安定して後置）
func (p *Project) findNoteIndex(note *Note) int {
	if len(p.Notes) == 0 {
		return 0
	}

	startPoints := make([]int, len(p.Notes))
	for i, n := range p.Notes {
		startPoints[i] = n.StartPoint
	}

	if note.StartPoint <= startPoints[0] {
		return 0
	}
	if note.StartPoint >= startPoints[len(startPoints)-1] {
		return len(p.Notes)
	}
	for i, sp := range startPoints {
		if sp > note.StartPoint {
			return i
		}
	}
	return len(p.Notes)
}

// RemoveNoteByIndex は指定位置のノートを削除します
//
// 範囲外の場合はプロジェクトを変更せずにエラーを返します
func (p *Project) RemoveNoteByIndex(index int) error {
	if index < 0 || index >= len(p.Notes) {
		logrus.WithFields(logrus.Fields{
			"index": index,
			"notes": len(p.Notes),
		}).Error("ノートの削除に失敗しました")
		return synterrors.NewNotFoundError(
			fmt.Sprintf("ノート %d", index),
			synterrors.ErrIndexOutOfRange,
		)
	}
	p.Notes = append(p.Notes[:index], p.Notes[index+1:]...)
	return nil
}

// GetNote は指定位置のノートを返します
//
// 範囲外の場合はエラーを伝播せず、falseを返します
func (p *Project) GetNote(index int) (*Note, bool) {
	if index < 0 || index >= len(p.Notes) {
		return nil, false
	}
	return p.Notes[index], true
}

// SortNotes はノートをStartPointで整列します（既定は昇順）
//
// 同値のノートは入力順を保ちます
func (p *Project) SortNotes(descending bool) *Project {
	sort.SliceStable(p.Notes, func(i, j int) bool {
		if descending {
			return p.Notes[i].StartPoint > p.Notes[j].StartPoint
		}
		return p.Notes[i].StartPoint < p.Notes[j].StartPoint
	})
	return p
}
