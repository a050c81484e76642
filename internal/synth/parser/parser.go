// Package parser はUSTファイルの解析を行います
package parser

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	synterrors "github.com/ookamitai/go-cactisynth/internal/synth/errors"
	"github.com/ookamitai/go-cactisynth/internal/synth/fileutil"
	"github.com/ookamitai/go-cactisynth/internal/synth/interfaces"
	"github.com/ookamitai/go-cactisynth/internal/synth/models"
)

// USTParser はUSTフォーマットのプロジェクトファイルを解析します
type USTParser struct{}

// NewUSTParser は新しいUSTParserを作成します
func NewUSTParser() *USTParser {
	return &USTParser{}
}

// chunk はUSTファイル内の1つの名前付きセクションを表します
type chunk struct {
	name  string
	lines []string
}

// Parse はShift-JISエンコードされたUSTデータを解析してProjectを返します
//
// 入力が読み取れない、または認識できるチャンクが1つもない場合は
// 部分的なProjectを返さずエラーを返します
func (p *USTParser) Parse(data []byte) (*models.Project, error) {
	text, err := fileutil.FromShiftJIS(string(data))
	if err != nil {
		return nil, synterrors.NewParseError("UST", err)
	}

	chunks, err := p.parseChunks(text)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, synterrors.NewParseError("UST", synterrors.ErrNoChunks)
	}

	project := models.NewProject()
	var notes []*models.Note

	for _, c := range chunks {
		name := normalizeChunkName(c.name)
		switch {
		case name == "version":
			project.Version = parseVersion(c.lines)
		case name == "setting":
			parseSetting(project, c.lines)
		case isDigits(name):
			if note := parseNote(name, c.lines); note != nil {
				notes = append(notes, note)
			}
		default:
			logrus.WithField("chunk", c.name).Debug("未対応のチャンクをスキップします")
		}
	}

	project.AddNote(notes...)
	return project, nil
}

// ParseFile はUSTファイルを読み込んで解析します
func (p *USTParser) ParseFile(path string, fs interfaces.FileSystem) (*models.Project, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, synterrors.NewNotFoundError(path, err)
	}
	return p.Parse(data)
}

// parseChunks は行の並びをチャンク列に分割します
//
// 「[」で始まる行が新しいチャンクを開き、次のヘッダまでの行が
// 前後の空白を除いた上でそのチャンクに属します
func (p *USTParser) parseChunks(text string) ([]*chunk, error) {
	var chunks []*chunk

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			chunks = append(chunks, &chunk{name: line})
			continue
		}
		if len(chunks) == 0 {
			if line != "" {
				logrus.WithField("line", line).Warn("チャンクヘッダより前の行をスキップします")
			}
			continue
		}
		current := chunks[len(chunks)-1]
		current.lines = append(current.lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, synterrors.NewParseError("UST", err)
	}

	return chunks, nil
}

// normalizeChunkName はチャンクヘッダから名前を取り出します
//
// 角括弧を外し、先頭の「#」を除去して小文字化します
func normalizeChunkName(header string) string {
	name := strings.TrimPrefix(header, "[")
	name = strings.TrimSuffix(name, "]")
	name = strings.TrimLeft(name, "#")
	return strings.ToLower(name)
}

// isDigits は文字列が数字のみで構成されているかを返します
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseVersion はversionチャンクを解析します
//
// 最初の空でない行がバージョン文字列になります
func parseVersion(lines []string) string {
	for _, line := range lines {
		if line != "" {
			return line
		}
	}
	return ""
}

// parseSetting はsettingチャンクを解析してProjectへ反映します
//
// Tool・Mode・Flagsで始まるキーはそれぞれの一覧へ出現順に追加した上で、
// すべてのキーをフィールドへの対応付けにも使用します
func parseSetting(project *models.Project, lines []string) {
	for _, line := range lines {
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			logrus.WithField("line", line).Warn("settingの不正な行をスキップします")
			continue
		}

		switch {
		case strings.HasPrefix(key, "Tool"):
			project.Tools = append(project.Tools, value)
		case strings.HasPrefix(key, "Mode"):
			project.Modes = append(project.Modes, value)
		case strings.HasPrefix(key, "Flags"):
			project.Flags = append(project.Flags, value)
		}

		switch key {
		case "Tempo":
			if tempo, err := strconv.ParseFloat(value, 64); err == nil {
				project.Tempo = tempo
			} else {
				logrus.WithFields(logrus.Fields{
					"line":  line,
					"value": value,
				}).Warn("Tempoを解析できないため既定値を使用します")
			}
		case "Tracks":
			if tracks, err := strconv.Atoi(value); err == nil {
				project.Tracks = tracks
			} else {
				logrus.WithFields(logrus.Fields{
					"line":  line,
					"value": value,
				}).Warn("Tracksを解析できないため既定値を使用します")
			}
		case "ProjectName":
			project.Name = value
		case "VoiceDir":
			project.VoiceDir = value
		case "OutFile":
			project.OutFile = value
		case "CacheDir":
			project.CacheDir = value
		}
	}
}

// parseNote はノート番号チャンクを1つのNoteに組み立てます
//
// 「=」を含まない行はスキップし、内容が空のチャンクはNoteを生成しません。
// 数値フィールドは欠落・空の場合0に補正されます
func parseNote(name string, lines []string) *models.Note {
	empty := true
	for _, line := range lines {
		if line != "" {
			empty = false
			break
		}
	}
	if empty {
		return nil
	}

	note := &models.Note{}
	for _, line := range lines {
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			logrus.WithFields(logrus.Fields{
				"chunk": name,
				"line":  line,
			}).Warn("ノートの不正な行をスキップします")
			continue
		}

		switch key {
		case "Lyric":
			note.Lyric = value
		case "Length":
			note.Length = parseNoteNumber(name, key, value)
		case "NoteNum":
			note.NoteNum = parseNoteNumber(name, key, value)
		case "PreUtterance":
			note.PreUtterance = parseNoteNumber(name, key, value)
		case "Velocity":
			note.Velocity = parseNoteNumber(name, key, value)
		case "Intensity":
			note.Intensity = parseNoteNumber(name, key, value)
		case "Modulation":
			note.Modulation = parseNoteNumber(name, key, value)
		case "StartPoint":
			note.StartPoint = parseNoteNumber(name, key, value)
		default:
			logrus.WithFields(logrus.Fields{
				"chunk": name,
				"key":   key,
			}).Debug("未対応のノートキーを無視します")
		}
	}

	if err := note.Validate(); err != nil {
		logrus.WithFields(logrus.Fields{
			"chunk": name,
			"error": err,
		}).Warn("検証に失敗したノートを破棄します")
		return nil
	}

	return note
}

// parseNoteNumber はノートの数値フィールドを解析します
//
// 空の値は0に補正し、解析できない値は診断を出した上で0を使用します
func parseNoteNumber(chunkName, key, value string) int {
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"chunk": chunkName,
			"key":   key,
			"value": value,
		}).Warn("数値を解析できないため0を使用します")
		return 0
	}
	return n
}
