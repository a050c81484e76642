package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ookamitai/go-cactisynth/internal/synth/config"
	"github.com/ookamitai/go-cactisynth/internal/synth/mocks"
	"github.com/ookamitai/go-cactisynth/internal/synth/models"
)

func newTestApp(fs *mocks.MockFileSystem) *App {
	cfg := config.Default()
	cfg.OutputPath = "/output"
	return NewWithOptions(cfg, Options{FileSystem: fs})
}

func addVoiceBank(fs *mocks.MockFileSystem) {
	fs.AddFile("/vb/character.txt", []byte("name=Test\r\n"))
	fs.AddFile("/vb/oto.ini", []byte("a.wav=あ,100,0,0,0,0\r\ni.wav=い,0,0,0,0,0\r\n"))
	fs.AddFile("/vb/a.wav", []byte("RIFF"))
}

func TestApp_LoadUSTとSaveProjectの往復(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.AddFile("/songs/test.ust", []byte(
		"[#SETTING]\r\nTempo=140\r\nProjectName=song\r\n"+
			"[#0000]\r\nLyric=a\r\nLength=480\r\n"))

	application := newTestApp(fs)

	project, err := application.LoadUST("/songs/test.ust")
	require.NoError(t, err)
	assert.Equal(t, "song", project.Name)
	assert.Same(t, project, application.Project())

	path, err := application.SaveProject("")
	require.NoError(t, err)
	assert.Equal(t, "/output/song.okmt", path)

	// 復元したプロジェクトが保存時と一致すること
	loaded, err := application.LoadProject(path)
	require.NoError(t, err)
	assert.Equal(t, project, loaded)
}

func TestApp_SaveProject_プロジェクトがない場合(t *testing.T) {
	application := newTestApp(mocks.NewMockFileSystem())

	_, err := application.SaveProject("")
	require.Error(t, err)
}

func TestApp_FindEntries(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	addVoiceBank(fs)
	application := newTestApp(fs)

	// ボイスバンクが未読み込みの場合はエラー
	_, err := application.FindEntries("alias", "あ")
	assert.ErrorIs(t, err, ErrNoVoiceBank)

	_, err = application.OpenVoiceBank("/vb")
	require.NoError(t, err)

	entries, err := application.FindEntries("alias", "あ")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.wav", entries[0].File)

	// 未知のフィールド名はエラー
	_, err = application.FindEntries("nonsense", "x")
	assert.Error(t, err)
}

func TestApp_RenderTrigger(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	addVoiceBank(fs)
	// Shift-JISエンコードされたUSTデータ
	sjis := []byte("[#0000]\r\nLyric=")
	sjis = append(sjis, 0x82, 0xA0) // あ
	sjis = append(sjis, []byte("\r\n[#0001]\r\nLyric=")...)
	sjis = append(sjis, 0x82, 0xF1) // ん
	sjis = append(sjis, []byte("\r\nStartPoint=480\r\n")...)
	fs.AddFile("/songs/test.ust", sjis)

	application := newTestApp(fs)

	// プロジェクト未読み込みの場合
	_, err := application.RenderTrigger()
	assert.ErrorIs(t, err, ErrNoProject)

	_, err = application.LoadUST("/songs/test.ust")
	require.NoError(t, err)

	// ボイスバンク未読み込みの場合
	_, err = application.RenderTrigger()
	assert.ErrorIs(t, err, ErrNoVoiceBank)

	_, err = application.OpenVoiceBank("/vb")
	require.NoError(t, err)

	units, err := application.RenderTrigger()
	require.NoError(t, err)
	require.Len(t, units, 2)

	assert.True(t, units[0].Resolved)
	assert.Equal(t, "a.wav", units[0].Entry.File)
	assert.False(t, units[1].Resolved, "ボイスバンクにないエイリアスは未解決になること")
}

func TestApp_RenderNote(t *testing.T) {
	renderer := mocks.NewMockRenderer()
	application := NewWithOptions(config.Default(), Options{
		FileSystem: mocks.NewMockFileSystem(),
		Renderer:   renderer,
	})

	samples := make([]float64, 16)
	note := &models.Note{NoteNum: 69, Velocity: 50}

	out, err := application.RenderNote(samples, 44100, note)
	require.NoError(t, err)
	assert.Len(t, out, len(samples))
	assert.Equal(t, 1, renderer.EstimateCalls)
	assert.Equal(t, 1, renderer.ResynthesizeCalls)

	// 目標ピッチはノート番号69でA4（440Hz）
	require.NotEmpty(t, renderer.LastTarget)
	assert.InDelta(t, 440.0, renderer.LastTarget[0], 1e-9)

	// 速度比は子音速度から決まる
	assert.InDelta(t, 0.5, renderer.LastSpeedRatio, 1e-9)
}

func TestApp_RenderNote_レンダラがない場合(t *testing.T) {
	application := newTestApp(mocks.NewMockFileSystem())

	_, err := application.RenderNote(nil, 44100, &models.Note{})
	assert.ErrorIs(t, err, ErrNoRenderer)
}
