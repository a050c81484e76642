// Package container はプロジェクトのバイナリコンテナを読み書きします
//
// コンテナはマジックナンバー・フォーマットバージョン・ペイロード種別の
// ヘッダに続けて、リトルエンディアンの長さ付きレコードとして
// プロジェクト全体を1つの塊で格納します
package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ookamitai/go-cactisynth/internal/synth/config"
	synterrors "github.com/ookamitai/go-cactisynth/internal/synth/errors"
	"github.com/ookamitai/go-cactisynth/internal/synth/interfaces"
	"github.com/ookamitai/go-cactisynth/internal/synth/models"
)

const (
	// magic はコンテナ先頭のマジックナンバー
	magic = "OKMT"

	// FormatVersion は現在のコンテナフォーマットのバージョン
	FormatVersion uint16 = 1

	// payloadProject はProjectペイロードの種別値
	payloadProject byte = 1
)

// Save はプロジェクトをコンテナファイルとして保存します
//
// 出力先ディレクトリが既存の通常ファイルの場合はI/Oを行う前に
// 失敗します。ファイル名が空の場合はプロジェクト名と設定の拡張子から
// 生成します。保存先のパスを返します
func Save(project *models.Project, dir, name string, cfg *config.Config, fs interfaces.FileSystem) (string, error) {
	if project == nil {
		return "", synterrors.NewPreconditionError("プロジェクトの保存", "プロジェクトがありません")
	}

	// 前提条件の検査はI/Oより先に行います
	if info, err := fs.Stat(dir); err == nil && !info.IsDir() {
		return "", synterrors.NewPreconditionError(
			"プロジェクトの保存",
			fmt.Sprintf("出力先 %s は既存のファイルです", dir),
		)
	}

	if name == "" {
		name = project.Name + cfg.Extension
	}

	if err := fs.MkdirAll(dir, 0755); err != nil {
		return "", synterrors.NewContainerError("出力先ディレクトリの作成", dir, err)
	}

	path := filepath.Join(dir, name)
	if err := fs.WriteFile(path, encode(project), 0644); err != nil {
		return "", synterrors.NewContainerError("プロジェクトの保存", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"notes": len(project.Notes),
	}).Info("プロジェクトを保存しました")

	return path, nil
}

// Load はコンテナファイルからプロジェクトを復元します
//
// コンテナでないファイル、途中で切れたファイル、ペイロードが
// Projectでないファイルはすべて「有効なプロジェクトファイルではない」
// 失敗として報告し、部分的なProjectは返しません
func Load(path string, fs interfaces.FileSystem) (*models.Project, error) {
	if !fs.FileExists(path) {
		return nil, synterrors.NewNotFoundError(path, synterrors.ErrFileNotFound)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, synterrors.NewContainerError("プロジェクトの読み込み", path, err)
	}

	project, err := decode(data)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"path":  path,
			"error": err,
		}).Error("有効なプロジェクトファイルではありません")
		return nil, synterrors.NewContainerError("プロジェクトの読み込み", path,
			fmt.Errorf("%w: %w", synterrors.ErrNotValidProject, err))
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"notes": len(project.Notes),
	}).Info("プロジェクトを読み込みました")

	return project, nil
}

// encode はプロジェクトをコンテナのバイト列に変換します
func encode(project *models.Project) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString(magic)
	writeUint16(buf, FormatVersion)
	buf.WriteByte(payloadProject)

	writeString(buf, project.Version)
	writeFloat64(buf, project.Tempo)
	writeUint32(buf, uint32(project.Tracks))
	writeString(buf, project.Name)
	writeString(buf, project.VoiceDir)
	writeString(buf, project.OutFile)
	writeString(buf, project.CacheDir)
	writeStringSlice(buf, project.Tools)
	writeStringSlice(buf, project.Modes)
	writeStringSlice(buf, project.Flags)

	writeUint32(buf, uint32(len(project.Notes)))
	for _, note := range project.Notes {
		writeUint32(buf, uint32(note.Length))
		writeString(buf, note.Lyric)
		writeUint32(buf, uint32(note.NoteNum))
		writeUint32(buf, uint32(note.PreUtterance))
		writeUint32(buf, uint32(note.Velocity))
		writeUint32(buf, uint32(note.Intensity))
		writeUint32(buf, uint32(note.Modulation))
		writeUint32(buf, uint32(note.StartPoint))
	}

	return buf.Bytes()
}

// decode はコンテナのバイト列からプロジェクトを復元します
func decode(data []byte) (*models.Project, error) {
	r := &reader{data: data}

	header, err := r.bytes(len(magic))
	if err != nil {
		return nil, err
	}
	if string(header) != magic {
		return nil, ErrBadMagic
	}

	version, err := r.uint16()
	if err != nil {
		return nil, err
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	payload, err := r.byte()
	if err != nil {
		return nil, err
	}
	if payload != payloadProject {
		return nil, fmt.Errorf("%w: %d", ErrNotProjectPayload, payload)
	}

	project := &models.Project{}
	if project.Version, err = r.string(); err != nil {
		return nil, err
	}
	if project.Tempo, err = r.float64(); err != nil {
		return nil, err
	}
	tracks, err := r.uint32()
	if err != nil {
		return nil, err
	}
	project.Tracks = int(tracks)
	if project.Name, err = r.string(); err != nil {
		return nil, err
	}
	if project.VoiceDir, err = r.string(); err != nil {
		return nil, err
	}
	if project.OutFile, err = r.string(); err != nil {
		return nil, err
	}
	if project.CacheDir, err = r.string(); err != nil {
		return nil, err
	}
	if project.Tools, err = r.stringSlice(); err != nil {
		return nil, err
	}
	if project.Modes, err = r.stringSlice(); err != nil {
		return nil, err
	}
	if project.Flags, err = r.stringSlice(); err != nil {
		return nil, err
	}

	count, err := r.uint32()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < count; i++ {
		note := &models.Note{}
		var v uint32
		if v, err = r.uint32(); err != nil {
			return nil, err
		}
		note.Length = int(v)
		if note.Lyric, err = r.string(); err != nil {
			return nil, err
		}
		if v, err = r.uint32(); err != nil {
			return nil, err
		}
		note.NoteNum = int(v)
		if v, err = r.uint32(); err != nil {
			return nil, err
		}
		note.PreUtterance = int(v)
		if v, err = r.uint32(); err != nil {
			return nil, err
		}
		note.Velocity = int(v)
		if v, err = r.uint32(); err != nil {
			return nil, err
		}
		note.Intensity = int(v)
		if v, err = r.uint32(); err != nil {
			return nil, err
		}
		note.Modulation = int(v)
		if v, err = r.uint32(); err != nil {
			return nil, err
		}
		note.StartPoint = int(v)
		project.Notes = append(project.Notes, note)
	}

	if !r.atEnd() {
		return nil, ErrTrailingData
	}

	return project, nil
}

// reader は切り詰めを検出しながらバイト列を読み進めます
type reader struct {
	data   []byte
	offset int
}

func (r *reader) bytes(n int) ([]byte, error) {
	if r.offset+n > len(r.data) {
		return nil, ErrTruncated
	}
	b := r.data[r.offset : r.offset+n]
	r.offset += n
	return b, nil
}

func (r *reader) byte() (byte, error) {
	b, err := r.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) uint16() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) uint32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) float64() (float64, error) {
	b, err := r.bytes(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

func (r *reader) string() (string, error) {
	length, err := r.uint32()
	if err != nil {
		return "", err
	}
	b, err := r.bytes(int(length))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *reader) stringSlice() ([]string, error) {
	count, err := r.uint32()
	if err != nil {
		return nil, err
	}
	var items []string
	for i := uint32(0); i < count; i++ {
		s, err := r.string()
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, nil
}

func (r *reader) atEnd() bool {
	return r.offset == len(r.data)
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeFloat64(buf *bytes.Buffer, v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	buf.Write(b[:])
}

func writeString(buf *bytes.Buffer, s string) {
	writeUint32(buf, uint32(len(s)))
	buf.WriteString(s)
}

func writeStringSlice(buf *bytes.Buffer, items []string) {
	writeUint32(buf, uint32(len(items)))
	for _, s := range items {
		writeString(buf, s)
	}
}
