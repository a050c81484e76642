// Package interfaces はcactisynthで使用するインターフェースを定義します
package interfaces

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	FileExists(filename string) bool
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm uint32) error
	MkdirAll(path string, perm uint32) error
	Stat(name string) (FileInfo, error)
	ReadDir(dirname string) ([]DirEntry, error)
	WalkDir(root string, fn WalkFunc) error
}

// FileInfo はファイル情報のインターフェース
type FileInfo interface {
	Name() string
	IsDir() bool
}

// DirEntry はディレクトリエントリのインターフェース
type DirEntry interface {
	Name() string
	IsDir() bool
}

// WalkFunc はディレクトリ走査の各エントリに対して呼び出される関数です
// 辞書順で呼び出されることが保証されます
type WalkFunc func(path string, isDir bool) error

// VoiceRenderer は外部の音声レンダリング協調モジュールとの契約です
//
// ピッチ推定とボコーダによる再合成は外部ライブラリへの薄い委譲であり、
// この2つの呼び出しだけを通して利用します
type VoiceRenderer interface {
	// EstimatePitch は音声サンプル列のピッチ推定を行います
	EstimatePitch(samples []float64, sampleRate int) (timestamps []float64, frequencies []float64, err error)

	// Resynthesize は目標ピッチに合わせて音声を再合成します
	Resynthesize(samples []float64, sampleRate int, timestamps, frequencies, targetPitch []float64, speedRatio, formantShift float64) ([]float64, error)
}
