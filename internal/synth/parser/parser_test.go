package parser

import (
	"errors"
	"testing"

	synterrors "github.com/ookamitai/go-cactisynth/internal/synth/errors"
	"github.com/ookamitai/go-cactisynth/internal/synth/mocks"
)

func TestUSTParser_Parse(t *testing.T) {
	parser := NewUSTParser()

	// Shift-JISエンコードされたUSTデータ
	// "あ" はShift-JISで 0x82 0xA0
	data := []byte("[#SETTING]\r\nTempo=140\r\n[#0000]\r\nLength=480\r\nLyric=")
	data = append(data, 0x82, 0xA0)
	data = append(data, []byte("\r\nNoteNum=60\r\n")...)

	project, err := parser.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if project.Tempo != 140.0 {
		t.Errorf("Expected tempo 140.0, got %f", project.Tempo)
	}
	if len(project.Notes) != 1 {
		t.Fatalf("Expected 1 note, got %d", len(project.Notes))
	}

	note := project.Notes[0]
	if note.Length != 480 {
		t.Errorf("Expected length 480, got %d", note.Length)
	}
	if note.Lyric != "あ" {
		t.Errorf("Expected lyric 'あ', got '%s'", note.Lyric)
	}
	if note.NoteNum != 60 {
		t.Errorf("Expected note num 60, got %d", note.NoteNum)
	}
	if note.StartPoint != 0 {
		t.Errorf("Expected start point 0, got %d", note.StartPoint)
	}
}

func TestUSTParser_Parse_チャンクがない場合(t *testing.T) {
	parser := NewUSTParser()

	_, err := parser.Parse([]byte("Tempo=120\r\nLyric=a\r\n"))
	if err == nil {
		t.Fatal("Expected error for input without chunks")
	}
	var parseErr *synterrors.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("Expected ParseError, got %T", err)
	}
	if !errors.Is(err, synterrors.ErrNoChunks) {
		t.Error("Expected ErrNoChunks in the chain")
	}
}

func TestUSTParser_Parse_バージョンチャンク(t *testing.T) {
	parser := NewUSTParser()

	project, err := parser.Parse([]byte("[#VERSION]\r\n\r\nUST Version1.2\r\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if project.Version != "UST Version1.2" {
		t.Errorf("Expected version 'UST Version1.2', got '%s'", project.Version)
	}
}

func TestUSTParser_Parse_settingの一覧キー(t *testing.T) {
	parser := NewUSTParser()

	data := []byte("[#SETTING]\r\n" +
		"Tool1=wavtool.exe\r\n" +
		"Tool2=resampler.exe\r\n" +
		"Mode2=True\r\n" +
		"Flags=g-5\r\n" +
		"Flags=g-5\r\n" +
		"ProjectName=test song\r\n" +
		"Tracks=2\r\n" +
		"VoiceDir=%VOICE%teto\r\n")

	project, err := parser.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// 出現順と重複が保持されること
	if len(project.Tools) != 2 || project.Tools[0] != "wavtool.exe" || project.Tools[1] != "resampler.exe" {
		t.Errorf("Unexpected tools: %v", project.Tools)
	}
	if len(project.Modes) != 1 || project.Modes[0] != "True" {
		t.Errorf("Unexpected modes: %v", project.Modes)
	}
	if len(project.Flags) != 2 {
		t.Errorf("Expected duplicated flags preserved, got %v", project.Flags)
	}
	if project.Name != "test song" {
		t.Errorf("Expected name 'test song', got '%s'", project.Name)
	}
	if project.Tracks != 2 {
		t.Errorf("Expected tracks 2, got %d", project.Tracks)
	}
	if project.VoiceDir != "%VOICE%teto" {
		t.Errorf("Expected voice dir '%%VOICE%%teto', got '%s'", project.VoiceDir)
	}
}

func TestUSTParser_Parse_ノートの整列(t *testing.T) {
	parser := NewUSTParser()

	// StartPointが降順のノート列でも昇順に整列されること
	data := []byte("[#0000]\r\nLyric=a\r\nStartPoint=960\r\n" +
		"[#0001]\r\nLyric=b\r\nStartPoint=0\r\n" +
		"[#0002]\r\nLyric=c\r\nStartPoint=480\r\n")

	project, err := parser.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(project.Notes) != 3 {
		t.Fatalf("Expected 3 notes, got %d", len(project.Notes))
	}
	for i := 1; i < len(project.Notes); i++ {
		if project.Notes[i-1].StartPoint > project.Notes[i].StartPoint {
			t.Errorf("Notes not sorted: %d > %d", project.Notes[i-1].StartPoint, project.Notes[i].StartPoint)
		}
	}
}

func TestUSTParser_Parse_不正な行と空チャンク(t *testing.T) {
	parser := NewUSTParser()

	tests := []struct {
		name      string
		data      string
		wantNotes int
	}{
		{
			name:      "空のノートチャンクはNoteを生成しない",
			data:      "[#0000]\r\n\r\n[#0001]\r\nLyric=a\r\n",
			wantNotes: 1,
		},
		{
			name:      "「=」のない行はスキップされる",
			data:      "[#0000]\r\nLyric=a\r\nthis is garbage\r\nLength=480\r\n",
			wantNotes: 1,
		},
		{
			name:      "数値を解析できない場合は0に補正される",
			data:      "[#0000]\r\nLyric=a\r\nLength=abc\r\n",
			wantNotes: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project, err := parser.Parse([]byte(tt.data))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if len(project.Notes) != tt.wantNotes {
				t.Errorf("Expected %d notes, got %d", tt.wantNotes, len(project.Notes))
			}
		})
	}
}

func TestUSTParser_Parse_欠落した数値は0になる(t *testing.T) {
	parser := NewUSTParser()

	project, err := parser.Parse([]byte("[#0000]\r\nLyric=a\r\nVelocity=\r\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	note := project.Notes[0]
	if note.Velocity != 0 {
		t.Errorf("Expected empty velocity coerced to 0, got %d", note.Velocity)
	}
	if note.Length != 0 || note.StartPoint != 0 {
		t.Error("Expected missing numeric fields coerced to 0")
	}
}

func TestUSTParser_Parse_チャンク名の正規化(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"[#SETTING]", "setting"},
		{"[#VERSION]", "version"},
		{"[SETTING]", "setting"},
		{"[#0000]", "0000"},
	}

	for _, tt := range tests {
		if got := normalizeChunkName(tt.header); got != tt.want {
			t.Errorf("normalizeChunkName(%s) = %s; want %s", tt.header, got, tt.want)
		}
	}
}

func TestUSTParser_ParseFile(t *testing.T) {
	parser := NewUSTParser()
	fs := mocks.NewMockFileSystem()
	fs.AddFile("/songs/test.ust", []byte("[#SETTING]\r\nTempo=95.5\r\n"))

	project, err := parser.ParseFile("/songs/test.ust", fs)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if project.Tempo != 95.5 {
		t.Errorf("Expected tempo 95.5, got %f", project.Tempo)
	}

	// 存在しないファイルはNotFoundとして報告されること
	_, err = parser.ParseFile("/songs/missing.ust", fs)
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	var notFound *synterrors.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError, got %T", err)
	}
}
