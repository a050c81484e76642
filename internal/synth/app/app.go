// Package app はエディタセッションのメインロジックを実装します
package app

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ookamitai/go-cactisynth/internal/synth/config"
	"github.com/ookamitai/go-cactisynth/internal/synth/container"
	"github.com/ookamitai/go-cactisynth/internal/synth/fileutil"
	"github.com/ookamitai/go-cactisynth/internal/synth/interfaces"
	"github.com/ookamitai/go-cactisynth/internal/synth/models"
	"github.com/ookamitai/go-cactisynth/internal/synth/oto"
	"github.com/ookamitai/go-cactisynth/internal/synth/parser"
	"github.com/ookamitai/go-cactisynth/internal/synth/voicebank"
)

// App は1つの編集セッションを管理します
type App struct {
	config    *config.Config
	fs        interfaces.FileSystem
	ustParser *parser.USTParser
	renderer  interfaces.VoiceRenderer
	project   *models.Project
	voiceBank *voicebank.VoiceBank
}

// Options はAppの設定オプション
type Options struct {
	FileSystem interfaces.FileSystem
	Renderer   interfaces.VoiceRenderer
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	// デフォルトのファイルシステムを設定
	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	return &App{
		config:    cfg,
		fs:        fs,
		ustParser: parser.NewUSTParser(),
		renderer:  opts.Renderer,
	}
}

// Project は現在のプロジェクトを返します
func (a *App) Project() *models.Project {
	return a.project
}

// VoiceBank は現在のボイスバンクを返します
func (a *App) VoiceBank() *voicebank.VoiceBank {
	return a.voiceBank
}

// LoadUST はUSTファイルを解析してセッションのプロジェクトにします
func (a *App) LoadUST(path string) (*models.Project, error) {
	project, err := a.ustParser.ParseFile(path, a.fs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadUST, err)
	}
	a.project = project
	return project, nil
}

// OpenVoiceBank はボイスバンクを読み込んでセッションに設定します
func (a *App) OpenVoiceBank(root string) (*voicebank.VoiceBank, error) {
	vb, err := voicebank.Load(root, a.config, a.fs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenVoiceBank, err)
	}
	a.voiceBank = vb
	return vb, nil
}

// SaveProject は現在のプロジェクトをコンテナファイルとして保存します
//
// 名前が空の場合はプロジェクト名と設定の拡張子から生成されます
func (a *App) SaveProject(name string) (string, error) {
	return container.Save(a.project, a.config.OutputPath, name, a.config, a.fs)
}

// LoadProject はコンテナファイルからプロジェクトを復元して
// セッションに設定します
func (a *App) LoadProject(path string) (*models.Project, error) {
	project, err := container.Load(path, a.fs)
	if err != nil {
		return nil, err
	}
	a.project = project
	return project, nil
}

// FindEntries はフィールド名でボイスバンクの原音設定を検索します
func (a *App) FindEntries(fieldName, value string) ([]*oto.OTOEntry, error) {
	if a.voiceBank == nil {
		return nil, ErrNoVoiceBank
	}
	field, err := oto.ParseEntryField(fieldName)
	if err != nil {
		return nil, err
	}
	return a.voiceBank.FindEntries(field, value), nil
}

// RenderUnit はレンダリング対象のノートと解決済みの原音エントリの組です
type RenderUnit struct {
	Note     *models.Note
	Entry    *oto.OTOEntry
	Resolved bool // エイリアスがボイスバンクで見つかったか
}

// RenderTrigger は外部のGUIがレンダリング開始時に呼ぶコールバックです
//
// プロジェクトの各ノートを歌詞のエイリアスでボイスバンクと照合し、
// レンダリング単位の列を組み立てて返します。合成そのものは外部の
// VoiceRendererに委ねられます
func (a *App) RenderTrigger() ([]RenderUnit, error) {
	if a.project == nil {
		return nil, ErrNoProject
	}
	if a.voiceBank == nil {
		return nil, ErrNoVoiceBank
	}

	units := make([]RenderUnit, 0, len(a.project.Notes))
	for _, note := range a.project.Notes {
		entries := a.voiceBank.FindEntries(oto.FieldAlias, note.Lyric)
		resolved := entries[0].Alias == note.Lyric
		if !resolved {
			logrus.WithField("lyric", note.Lyric).Warn("エイリアスを解決できませんでした")
		}
		units = append(units, RenderUnit{
			Note:     note,
			Entry:    entries[0],
			Resolved: resolved,
		})
	}

	logrus.WithFields(logrus.Fields{
		"units": len(units),
	}).Info("レンダリング単位を組み立てました")

	return units, nil
}

// RenderNote は1つのノートの音声サンプルを外部レンダラで再合成します
//
// ピッチ推定と再合成はVoiceRendererへの薄い委譲であり、目標ピッチは
// ノートの音高から、速度比は子音速度から決まります
func (a *App) RenderNote(samples []float64, sampleRate int, note *models.Note) ([]float64, error) {
	if a.renderer == nil {
		return nil, ErrNoRenderer
	}

	timestamps, frequencies, err := a.renderer.EstimatePitch(samples, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEstimatePitch, err)
	}

	target := make([]float64, len(frequencies))
	freq := noteNumToFrequency(note.NoteNum)
	for i := range target {
		target[i] = freq
	}

	speedRatio := 1.0
	if note.Velocity > 0 {
		speedRatio = float64(note.Velocity) / 100.0
	}

	out, err := a.renderer.Resynthesize(samples, sampleRate, timestamps, frequencies, target, speedRatio, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResynthesize, err)
	}
	return out, nil
}

// noteNumToFrequency はMIDIノート番号を周波数（Hz）に変換します
func noteNumToFrequency(noteNum int) float64 {
	return 440.0 * math.Pow(2, float64(noteNum-69)/12.0)
}
